package ocr

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Result is the canonical model produced from an OCR response. It is the
// sole contract between the orchestrator and the assemblers.
type Result struct {
	Info DocumentInfo

	Pages []Page

	// Text carries document-level raw content for responses that could not
	// be split into pages.
	Text string
}

type DocumentInfo struct {
	Model    string
	Language string

	ProcessingTime float64
	Confidence     float64

	Usage *Usage

	Error string
}

type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

type Page struct {
	Number int

	Confidence float64

	Width  float64
	Height float64

	Text string
}

// response covers the observed OCR response shapes. Pages stay raw so one
// undecodable page cannot fail the document.
type response struct {
	Model    string `json:"model"`
	Language string `json:"language"`

	ProcessingTime    float64 `json:"processing_time"`
	ProcessingTimeAlt float64 `json:"processingTime"`

	Confidence float64 `json:"confidence"`

	Usage *Usage `json:"usage"`

	Pages []json.RawMessage `json:"pages"`
	Data  []json.RawMessage `json:"data"`

	Content json.RawMessage `json:"content"`
	Text    json.RawMessage `json:"text"`
}

type responsePage struct {
	PageNumber    int `json:"page_number"`
	PageNumberAlt int `json:"pageNumber"`

	Confidence float64 `json:"confidence"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Dimensions *dimensions `json:"dimensions"`

	Blocks   []json.RawMessage `json:"blocks"`
	Elements []element         `json:"elements"`

	Content json.RawMessage `json:"content"`
	Text    json.RawMessage `json:"text"`

	Markdown string `json:"markdown"`
}

type dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type element struct {
	Type string `json:"type"`

	Text    string `json:"text"`
	Content string `json:"content"`
}

// Normalize converts a raw OCR response body into the canonical model. It
// never fails: undecodable input degrades to a best-effort result with
// Info.Error set.
func Normalize(data []byte) *Result {
	if text, ok := asString(data); ok {
		return &Result{
			Info: defaultInfo(),

			Pages: []Page{{Number: 1, Text: text}},

			Text: text,
		}
	}

	var resp response

	if err := json.Unmarshal(data, &resp); err != nil {
		slog.Warn("unexpected ocr response", "error", err, "body", truncate(string(data), 512))

		result := degrade(data)
		result.Info.Error = err.Error()

		return result
	}

	result := &Result{
		Info: DocumentInfo{
			Model:    defaultString(resp.Model, "unknown"),
			Language: defaultString(resp.Language, "unknown"),

			ProcessingTime: firstNonZero(resp.ProcessingTime, resp.ProcessingTimeAlt),
			Confidence:     resp.Confidence,

			Usage: resp.Usage,
		},

		Pages: []Page{},
	}

	pages := resp.Pages

	if pages == nil {
		pages = resp.Data
	}

	if pages == nil {
		if text, ok := asString(resp.Content); ok {
			result.Pages = []Page{{Number: 1, Text: text, Confidence: resp.Confidence}}
			result.Text = text

			return result
		}

		if text, ok := asString(resp.Text); ok {
			result.Pages = []Page{{Number: 1, Text: text, Confidence: resp.Confidence}}
			result.Text = text

			return result
		}

		return result
	}

	if text, ok := asString(resp.Content); ok {
		result.Text = text
	} else if text, ok := asString(resp.Text); ok {
		result.Text = text
	}

	for i, raw := range pages {
		result.Pages = append(result.Pages, normalizePage(raw, i, result))
	}

	return result
}

func normalizePage(raw json.RawMessage, index int, result *Result) Page {
	var page responsePage

	if err := json.Unmarshal(raw, &page); err != nil {
		if result.Info.Error == "" {
			result.Info.Error = err.Error()
		}

		return degradePage(raw, index)
	}

	number := page.PageNumber

	if number == 0 {
		number = page.PageNumberAlt
	}

	if number == 0 {
		number = index + 1
	}

	width := page.Width
	height := page.Height

	if page.Dimensions != nil {
		if width == 0 {
			width = page.Dimensions.Width
		}

		if height == 0 {
			height = page.Dimensions.Height
		}
	}

	return Page{
		Number: number,

		Confidence: page.Confidence,

		Width:  width,
		Height: height,

		Text: pageText(page),
	}
}

// pageText resolves a page's content from the first matching shape: a blocks
// array, an elements array, a content string, a text string, or a
// provider-rendered markdown field.
func pageText(page responsePage) string {
	if page.Blocks != nil {
		return RenderBlocks(page.Blocks)
	}

	if page.Elements != nil {
		return renderElements(page.Elements)
	}

	if text, ok := asString(page.Content); ok {
		return text
	}

	if text, ok := asString(page.Text); ok {
		return text
	}

	return page.Markdown
}

func renderElements(elements []element) string {
	var parts []string

	for _, e := range elements {
		text := e.Content

		if e.Type == "text" {
			text = e.Text
		}

		if text == "" {
			continue
		}

		parts = append(parts, text)
	}

	return strings.Join(parts, "\n\n")
}

// degrade salvages whatever page or text content a malformed response still
// carries.
func degrade(data []byte) *Result {
	result := &Result{
		Info: defaultInfo(),

		Pages: []Page{},
	}

	var loose struct {
		Pages []json.RawMessage `json:"pages"`
		Data  []json.RawMessage `json:"data"`

		Content json.RawMessage `json:"content"`
		Text    json.RawMessage `json:"text"`

		Confidence float64 `json:"confidence"`
	}

	if err := json.Unmarshal(data, &loose); err != nil {
		return result
	}

	pages := loose.Pages

	if pages == nil {
		pages = loose.Data
	}

	for i, raw := range pages {
		result.Pages = append(result.Pages, degradePage(raw, i))
	}

	if text, ok := asString(loose.Content); ok {
		result.Text = text
	} else if text, ok := asString(loose.Text); ok {
		result.Text = text
	}

	if len(result.Pages) == 0 && result.Text != "" {
		result.Pages = []Page{{Number: 1, Text: result.Text, Confidence: loose.Confidence}}
	}

	return result
}

func degradePage(raw json.RawMessage, index int) Page {
	page := Page{
		Number: index + 1,
	}

	if text, ok := asString(raw); ok {
		page.Text = text
		return page
	}

	var loose struct {
		PageNumber int `json:"page_number"`

		Confidence float64 `json:"confidence"`

		Text    json.RawMessage `json:"text"`
		Content json.RawMessage `json:"content"`
	}

	if err := json.Unmarshal(raw, &loose); err != nil {
		return page
	}

	if loose.PageNumber != 0 {
		page.Number = loose.PageNumber
	}

	page.Confidence = loose.Confidence

	if text, ok := asString(loose.Text); ok {
		page.Text = text
	} else if text, ok := asString(loose.Content); ok {
		page.Text = text
	}

	return page
}

func defaultInfo() DocumentInfo {
	return DocumentInfo{
		Model:    "unknown",
		Language: "unknown",
	}
}

func asString(data []byte) (string, bool) {
	if len(data) == 0 || string(data) == "null" {
		return "", false
	}

	var s string

	if err := json.Unmarshal(data, &s); err != nil {
		return "", false
	}

	return s, true
}

func defaultString(val, fallback string) string {
	if val == "" {
		return fallback
	}

	return val
}

func firstNonZero(vals ...float64) float64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}

	return 0
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max] + "..."
}
