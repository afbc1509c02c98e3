package ocr

type uploadResponse struct {
	ID string `json:"id"`

	Object   string `json:"object"`
	Filename string `json:"filename"`
	Purpose  string `json:"purpose"`
}

type signedURLResponse struct {
	URL string `json:"url"`

	ExpiresAt int64 `json:"expires_at,omitempty"`
}

type errorEnvelope struct {
	Message string `json:"message"`

	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
