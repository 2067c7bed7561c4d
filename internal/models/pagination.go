package models

// PaginationLink is one entry of the page navigation list.
type PaginationLink struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

// Pagination describes where a page sits within the full result set.
// URLs are nil when the target page does not exist.
type Pagination struct {
	CurrentPage  int              `json:"current_page"`
	FirstPageURL string           `json:"first_page_url"`
	From         int              `json:"from"`
	LastPage     int              `json:"last_page"`
	LastPageURL  string           `json:"last_page_url"`
	Links        []PaginationLink `json:"links"`
	NextPageURL  *string          `json:"next_page_url"`
	Path         string           `json:"path"`
	PerPage      int              `json:"per_page"`
	PrevPageURL  *string          `json:"prev_page_url"`
	To           int              `json:"to"`
	Total        int              `json:"total"`
}

// ClientPage is one page of the client directory.
type ClientPage struct {
	Pagination
	Data []Client `json:"data"`
}
