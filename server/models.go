package server

// FailureResponse is the outermost error envelope. Content is always a
// short, renderable Markdown report so callers have something to show even
// on total failure.
type FailureResponse struct {
	Success bool `json:"success"`

	Error        string `json:"error"`
	ErrorDetails string `json:"errorDetails"`

	Content string `json:"content"`
}
