package main

import "bookview/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
