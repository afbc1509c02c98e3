package converter

import (
	"context"
	"errors"
)

type Provider interface {
	Convert(ctx context.Context, file File, options *ConvertOptions) (*Document, error)
}

var (
	ErrUnsupported = errors.New("unsupported type")
)

type File struct {
	Name string

	Content     []byte
	ContentType string
}

type ConvertOptions struct {
	Title    string
	Language string

	Model    string
	MaxPages int

	APIKey string

	Progress func(Status)
}

type Document struct {
	Name string

	Content     string
	ContentType string
}

// Metadata holds document properties supplied by a metadata extractor.
// All fields are optional; consumers must tolerate the zero value.
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords string

	Creator  string
	Producer string

	CreationDate     string
	ModificationDate string

	Pages int
}

type Stage string

const (
	StageUploading  Stage = "uploading"
	StageProcessing Stage = "processing"
	StageRendering  Stage = "rendering"
	StageCompleted  Stage = "completed"
	StageFailed     Stage = "failed"
)

type Status struct {
	Stage Stage

	Message string
}
