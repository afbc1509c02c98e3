package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/notemark/notemark/config"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestParse(t *testing.T) {
	path := writeConfig(t, `
address: ":9090"

converters:
  ocr:
    type: ocr
    token: test-key

  pdf:
    type: pdf

  text:
    type: text
    limit: 10
`)

	cfg, err := config.Parse(path)
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Address)

	for _, id := range []string{"ocr", "pdf", "text", ""} {
		p, err := cfg.Converter(id)
		require.NoError(t, err)
		require.NotNil(t, p)
	}

	_, err = cfg.Converter("missing")
	require.Error(t, err)
}

func TestParseExpandsEnv(t *testing.T) {
	t.Setenv("TEST_OCR_TOKEN", "from-env")

	path := writeConfig(t, `
converters:
  ocr:
    type: ocr
    token: ${TEST_OCR_TOKEN}
`)

	cfg, err := config.Parse(path)
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Address)

	_, err = cfg.Converter("ocr")
	require.NoError(t, err)
}

func TestParseUnknownConverter(t *testing.T) {
	path := writeConfig(t, `
converters:
  odd:
    type: telepathy
`)

	_, err := config.Parse(path)
	require.Error(t, err)
}
