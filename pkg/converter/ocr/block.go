package ocr

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Block is the tagged union of content block variants the OCR provider may
// return. Unknown fields are ignored; absent fields stay zero.
type Block struct {
	Type string `json:"type"`

	Text    string `json:"text"`
	Content string `json:"content"`

	Level int `json:"level"`

	Ordered bool   `json:"ordered"`
	Items   []Cell `json:"items"`

	Rows []Row `json:"rows"`

	Caption string `json:"caption"`
	Alt     string `json:"alt"`

	Src    string `json:"src"`
	Source string `json:"source"`
	URL    string `json:"url"`

	Language string `json:"language"`
	Code     string `json:"code"`
}

type Row struct {
	Cells []Cell `json:"cells"`
}

// Cell accepts either a bare JSON string or an object carrying text/content.
type Cell struct {
	Text string
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var s string

	if err := json.Unmarshal(data, &s); err == nil {
		c.Text = s
		return nil
	}

	var obj struct {
		Text    string `json:"text"`
		Content string `json:"content"`
	}

	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	c.Text = obj.Text

	if c.Text == "" {
		c.Text = obj.Content
	}

	return nil
}

// RenderBlock renders one raw content block to a Markdown fragment. A block
// that cannot be decoded yields an error; callers drop such blocks so a
// malformed block never invalidates its page.
func RenderBlock(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	var s string

	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var block Block

	if err := json.Unmarshal(raw, &block); err != nil {
		return "", fmt.Errorf("decode block: %w", err)
	}

	// untyped blocks carrying text are plain text, regardless of other fields
	if block.Type == "" && block.Text != "" {
		return block.Text, nil
	}

	return renderBlock(block), nil
}

// RenderBlocks renders a page's blocks and joins the non-empty fragments
// with a blank line. Blocks that fail to render are dropped.
func RenderBlocks(blocks []json.RawMessage) string {
	var parts []string

	for _, raw := range blocks {
		text, err := RenderBlock(raw)

		if err != nil {
			continue
		}

		if strings.TrimSpace(text) == "" {
			continue
		}

		parts = append(parts, text)
	}

	return strings.Join(parts, "\n\n")
}

func renderBlock(block Block) string {
	switch block.Type {
	case "heading":
		return renderHeading(block)

	case "paragraph", "text":
		return block.Text

	case "list", "bullet_list", "numbered_list":
		return renderList(block)

	case "table":
		return renderTable(block)

	case "image", "figure":
		return renderImage(block)

	case "code", "code_block":
		return renderCode(block)

	case "quote", "blockquote":
		return renderQuote(block)

	default:
		if block.Text != "" {
			return block.Text
		}

		return block.Content
	}
}

func renderHeading(block Block) string {
	level := block.Level

	if level < 1 {
		level = 1
	}

	if level > 6 {
		level = 6
	}

	return strings.Repeat("#", level) + " " + block.Text
}

func renderList(block Block) string {
	if len(block.Items) == 0 {
		return ""
	}

	lines := make([]string, 0, len(block.Items))

	for i, item := range block.Items {
		if block.Ordered {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, item.Text))
		} else {
			lines = append(lines, "- "+item.Text)
		}
	}

	return strings.Join(lines, "\n")
}

func renderTable(block Block) string {
	if len(block.Rows) == 0 {
		return ""
	}

	lines := make([]string, 0, len(block.Rows)+1)

	for _, row := range block.Rows {
		if len(row.Cells) == 0 {
			lines = append(lines, "| |")
			continue
		}

		cells := make([]string, 0, len(row.Cells))

		for _, cell := range row.Cells {
			cells = append(cells, cell.Text)
		}

		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
	}

	if len(lines) > 1 {
		columns := strings.Count(lines[0], "|") - 1

		separator := "|" + strings.Repeat("---|", columns)

		lines = append(lines[:1], append([]string{separator}, lines[1:]...)...)
	}

	return strings.Join(lines, "\n")
}

func renderImage(block Block) string {
	caption := block.Caption

	if caption == "" {
		caption = block.Alt
	}

	if caption == "" {
		caption = "Image"
	}

	source := block.Src

	if source == "" {
		source = block.Source
	}

	if source == "" {
		source = block.URL
	}

	if source == "" {
		source = "image-reference"
	}

	return "![" + caption + "](" + source + ")"
}

func renderCode(block Block) string {
	code := block.Text

	if code == "" {
		code = block.Content
	}

	if code == "" {
		code = block.Code
	}

	return "```" + block.Language + "\n" + code + "\n```"
}

func renderQuote(block Block) string {
	text := block.Text

	if text == "" {
		text = block.Content
	}

	lines := strings.Split(text, "\n")

	for i, line := range lines {
		lines[i] = "> " + line
	}

	return strings.Join(lines, "\n")
}
