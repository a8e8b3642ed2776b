package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"bookview/internal/viewmodel"
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}

// Run starts the interactive book browser over the given view-model. It
// blocks until the user quits, then waits for in-flight fetches to finish.
func Run(vm *viewmodel.BookViewModel, queries []string) error {
	model := newAppModel(vm, queries)
	_, err := runProgram(model)
	vm.Wait()
	return err
}
