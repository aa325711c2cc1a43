package request

// NoteRequest represents a note create or update request
type NoteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsPinned *bool  `json:"is_pinned"`
}
