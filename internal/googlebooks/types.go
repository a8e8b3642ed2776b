package googlebooks

// BookListResponse is the envelope returned by the volume list endpoint.
type BookListResponse struct {
	Kind       string `json:"kind"`
	TotalItems int    `json:"totalItems"`
	Items      []Book `json:"items"`
}

// Book represents a single volume record from the Google Books API.
// ID is the stable identity used as the list key everywhere in the app.
type Book struct {
	Kind       string      `json:"kind"`
	ID         string      `json:"id"`
	Etag       string      `json:"etag"`
	SelfLink   string      `json:"selfLink"`
	VolumeInfo VolumeInfo  `json:"volumeInfo"`
	SaleInfo   SaleInfo    `json:"saleInfo"`
	SearchInfo *SearchInfo `json:"searchInfo,omitempty"`
}

// VolumeInfo holds the descriptive metadata of a volume.
// Categories is nil when the API omitted the field, which is semantically
// distinct from an empty list ("unknown" vs "known, none").
type VolumeInfo struct {
	Title               string               `json:"title"`
	Subtitle            string               `json:"subtitle"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	Description         string               `json:"description"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers"`
	PageCount           int                  `json:"pageCount"`
	AverageRating       float64              `json:"averageRating"`
	RatingsCount        int                  `json:"ratingsCount"`
	Categories          []string             `json:"categories"`
	ImageLinks          ImageLinks           `json:"imageLinks"`
	Language            string               `json:"language"`
	PreviewLink         string               `json:"previewLink"`
	InfoLink            string               `json:"infoLink"`
}

// IndustryIdentifier is an ISBN-10/ISBN-13 pair entry.
type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// ImageLinks holds the named cover URL variants. Only the two thumbnails are
// reliably present; the larger sizes appear on get-by-id responses only.
type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
	Small          string `json:"small"`
	Medium         string `json:"medium"`
	Large          string `json:"large"`
	ExtraLarge     string `json:"extraLarge"`
}

// SaleInfo describes purchase availability. Price fields are only meaningful
// when ListPrice is non-nil.
type SaleInfo struct {
	ListPrice *ListPrice `json:"listPrice,omitempty"`
	BuyLink   string     `json:"buyLink"`
	IsEbook   bool       `json:"isEbook"`
}

// ListPrice is an amount with an ISO currency code.
type ListPrice struct {
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currencyCode"`
}

// SearchInfo carries the highlighted text snippet present in search results.
type SearchInfo struct {
	TextSnippet string `json:"textSnippet"`
}

// CoverURL returns the best available cover image URL, preferring larger
// variants and upgrading the scheme to https (the API hands out http links).
func (b Book) CoverURL() string {
	links := b.VolumeInfo.ImageLinks
	for _, u := range []string{links.ExtraLarge, links.Large, links.Medium, links.Small, links.Thumbnail, links.SmallThumbnail} {
		if u != "" {
			return upgradeScheme(u)
		}
	}
	return ""
}

// ISBN13 returns the ISBN-13 identifier if present, otherwise an empty string.
func (b Book) ISBN13() string {
	for _, id := range b.VolumeInfo.IndustryIdentifiers {
		if id.Type == "ISBN_13" {
			return id.Identifier
		}
	}
	return ""
}

// PrimaryAuthor returns the first author, or an empty string when unknown.
func (b Book) PrimaryAuthor() string {
	if len(b.VolumeInfo.Authors) > 0 {
		return b.VolumeInfo.Authors[0]
	}
	return ""
}

func upgradeScheme(u string) string {
	if len(u) > 7 && u[:7] == "http://" {
		return "https://" + u[7:]
	}
	return u
}
