package openlibrary

// bookRecord matches one entry of the Open Library books API response,
// which is keyed by the requested bibkey ("ISBN:<isbn>").
type bookRecord struct {
	Title         string  `json:"title"`
	Authors       []named `json:"authors"`
	Publishers    []named `json:"publishers"`
	PublishDate   string  `json:"publish_date"`
	NumberOfPages int     `json:"number_of_pages"`
	Subjects      []named `json:"subjects"`
	Cover         cover   `json:"cover"`
}

type named struct {
	Name string `json:"name"`
}

type cover struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}
