package ocr

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey = errors.New("missing api key")
)

// UploadError reports a failed file upload.
type UploadError struct {
	Status int
	Body   string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed (status %d): %s", e.Status, e.Body)
}

// SignedURLError reports a failed signed-URL fetch for an uploaded file.
type SignedURLError struct {
	Status int
	Body   string
}

func (e *SignedURLError) Error() string {
	return fmt.Sprintf("signed url failed (status %d): %s", e.Status, e.Body)
}

// APIError reports a failed OCR request. Message is taken from the
// provider's error envelope when the body parses as JSON.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ocr request failed (status %d): %s", e.Status, e.Message)
}

// ConversionError carries the fallback document alongside the cause so the
// outer boundary can still deliver renderable Markdown.
type ConversionError struct {
	Err error

	Document string
}

func (e *ConversionError) Error() string {
	return e.Err.Error()
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// The provider reuses status 500 for several unrelated causes, so the error
// carries guidance instead of the bare status line.
const serverErrorHint = " This can happen when the file exceeds the 50MB size limit, " +
	"during a transient provider outage, when requests are rate limited, " +
	"or when the request is malformed. Try a smaller file or retry later."
