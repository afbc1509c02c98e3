package ocr

import (
	"net/http"
	"strings"

	"github.com/notemark/notemark/pkg/filestore"
	"github.com/notemark/notemark/pkg/metadata"
)

type Option func(*Client)

func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithURL(url string) Option {
	return func(c *Client) {
		c.url = strings.TrimRight(url, "/")
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

func WithFileStore(store filestore.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

func WithMetadata(provider metadata.Provider) Option {
	return func(c *Client) {
		c.metadata = provider
	}
}

var SupportedExtensions = []string{
	".pdf",

	".png",
	".jpg",
	".jpeg",
	".webp",
}

var SupportedMimeTypes = []string{
	"application/pdf",

	"image/png",
	"image/jpeg",
	"image/webp",
}
