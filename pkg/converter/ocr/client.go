package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/notemark/notemark/pkg/converter"
	"github.com/notemark/notemark/pkg/filestore"
	"github.com/notemark/notemark/pkg/metadata"

	"github.com/google/uuid"
)

var _ converter.Provider = &Client{}

type Client struct {
	client *http.Client

	url   string
	token string

	model string

	store    filestore.Store
	metadata metadata.Provider
}

func New(options ...Option) (*Client, error) {
	c := &Client{
		client: http.DefaultClient,

		url: "https://api.mistral.ai/v1",

		model: "mistral-ocr-latest",

		store: filestore.New(),
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

// Convert drives the remote OCR pipeline and always yields Markdown: a
// fully assembled document on success, or a ConversionError carrying the
// fallback document when any stage fails.
func (c *Client) Convert(ctx context.Context, file converter.File, options *converter.ConvertOptions) (*converter.Document, error) {
	if options == nil {
		options = new(converter.ConvertOptions)
	}

	if !isSupported(file) {
		return nil, converter.ErrUnsupported
	}

	token := c.token

	if options.APIKey != "" {
		token = options.APIKey
	}

	if token == "" {
		return nil, ErrMissingAPIKey
	}

	meta := c.extractMetadata(ctx, file)

	result, err := c.process(ctx, file, token, options)

	if err != nil {
		report(options, converter.StageFailed, err.Error())

		return nil, &ConversionError{
			Err: err,

			Document: Fallback(meta, nil, err),
		}
	}

	report(options, converter.StageRendering, "rendering document")

	content, err := assembleSafe(file.Name, meta, result, options)

	if err != nil {
		report(options, converter.StageFailed, err.Error())

		return nil, &ConversionError{
			Err: err,

			Document: Fallback(meta, result, err),
		}
	}

	report(options, converter.StageCompleted, "conversion complete")

	return &converter.Document{
		Name: markdownName(file.Name),

		Content:     content,
		ContentType: "text/markdown",
	}, nil
}

// process runs the fixed three-step sequence: upload, signed URL, OCR. The
// steps are strictly ordered; there is a single attempt per call.
func (c *Client) process(ctx context.Context, file converter.File, token string, options *converter.ConvertOptions) (*Result, error) {
	dir, err := c.store.CreateDir("notemark-ocr")

	if err != nil {
		return nil, err
	}

	defer func() {
		if err := c.store.RemoveDir(dir); err != nil {
			slog.Warn("remove scratch dir", "dir", dir, "error", err)
		}
	}()

	name := file.Name

	if name == "" {
		name = uuid.NewString() + ".pdf"
	}

	spool, err := c.store.WriteFile(dir, name, file.Content)

	if err != nil {
		return nil, err
	}

	report(options, converter.StageUploading, "uploading document")

	fileID, err := c.upload(ctx, spool, name, token)

	if err != nil {
		return nil, err
	}

	url, err := c.signedURL(ctx, fileID, token)

	if err != nil {
		return nil, err
	}

	report(options, converter.StageProcessing, "processing document")

	data, err := c.requestOCR(ctx, url, token, options)

	if err != nil {
		return nil, err
	}

	return Normalize(data), nil
}

func (c *Client) upload(ctx context.Context, spool, name, token string) (string, error) {
	f, err := os.Open(spool)

	if err != nil {
		return "", err
	}

	defer f.Close()

	var body bytes.Buffer

	w := multipart.NewWriter(&body)

	if err := w.WriteField("purpose", "ocr"); err != nil {
		return "", err
	}

	part, err := w.CreateFormFile("file", name)

	if err != nil {
		return "", err
	}

	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}

	w.Close()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/files", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)

	if err != nil {
		return "", err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)

		return "", &UploadError{
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(data)),
		}
	}

	var result uploadResponse

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	return result.ID, nil
}

func (c *Client) signedURL(ctx context.Context, fileID, token string) (string, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/files/"+fileID+"/url", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)

	if err != nil {
		return "", err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)

		return "", &SignedURLError{
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(data)),
		}
	}

	var result signedURLResponse

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	return result.URL, nil
}

func (c *Client) requestOCR(ctx context.Context, url, token string, options *converter.ConvertOptions) ([]byte, error) {
	model := c.model

	if options.Model != "" {
		model = options.Model
	}

	body := map[string]any{
		"model": model,

		"document": map[string]any{
			"type":         "document_url",
			"document_url": url,
		},

		"include_image_base64": false,
	}

	if options.MaxPages > 0 {
		pages := make([]int, options.MaxPages)

		for i := range pages {
			pages[i] = i
		}

		body["pages"] = pages
	}

	data, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/ocr", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, convertAPIError(resp)
	}

	return io.ReadAll(resp.Body)
}

func convertAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	message := strings.TrimSpace(string(data))

	var envelope errorEnvelope

	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Error.Message != "" {
			message = envelope.Error.Message
		} else if envelope.Message != "" {
			message = envelope.Message
		}
	}

	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	if resp.StatusCode == http.StatusInternalServerError {
		message += serverErrorHint
	}

	return &APIError{
		Status:  resp.StatusCode,
		Message: message,
	}
}

func (c *Client) extractMetadata(ctx context.Context, file converter.File) *converter.Metadata {
	if c.metadata == nil {
		return nil
	}

	meta, err := c.metadata.Extract(ctx, file)

	if err != nil {
		slog.Debug("metadata extraction failed", "file", file.Name, "error", err)
		return nil
	}

	return meta
}

func assembleSafe(name string, meta *converter.Metadata, result *Result, options *converter.ConvertOptions) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("assemble document: %v", r)
		}
	}()

	return Assemble(name, meta, result, options), nil
}

func report(options *converter.ConvertOptions, stage converter.Stage, message string) {
	if options.Progress == nil {
		return
	}

	options.Progress(converter.Status{
		Stage: stage,

		Message: message,
	})
}

func markdownName(name string) string {
	if name == "" {
		return "document.md"
	}

	return strings.TrimSuffix(name, path.Ext(name)) + ".md"
}

func isSupported(file converter.File) bool {
	if file.Name != "" {
		ext := strings.ToLower(path.Ext(file.Name))

		if slices.Contains(SupportedExtensions, ext) {
			return true
		}
	}

	if file.ContentType != "" {
		if slices.Contains(SupportedMimeTypes, file.ContentType) {
			return true
		}
	}

	return false
}
