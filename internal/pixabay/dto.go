package pixabay

// SearchResponse is the root of a /api/ search response
type SearchResponse struct {
	Total     int   `json:"total"`
	TotalHits *int  `json:"totalHits"` // nil when the field is absent
	Hits      []Hit `json:"hits"`
}

// Hit is a single image in a search response
type Hit struct {
	ID            int    `json:"id"`
	PageURL       string `json:"pageURL"`
	Type          string `json:"type"`
	Tags          string `json:"tags"` // comma separated
	PreviewURL    string `json:"previewURL"`
	WebformatURL  string `json:"webformatURL"`
	LargeImageURL string `json:"largeImageURL"`
	ImageWidth    int    `json:"imageWidth"`
	ImageHeight   int    `json:"imageHeight"`
	Views         int    `json:"views"`
	Downloads     int    `json:"downloads"`
	Likes         int    `json:"likes"`
	Comments      int    `json:"comments"`
	UserID        int    `json:"user_id"`
	User          string `json:"user"`
}
