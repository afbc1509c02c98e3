package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/notemark/notemark/pkg/converter"
	"github.com/notemark/notemark/pkg/converter/ocr"
)

func (h *Handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	p, err := h.Converter(valueModel(r))

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	file, err := h.readFile(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	options := &converter.ConvertOptions{
		Title:    r.FormValue("title"),
		Language: valueLanguage(r),

		APIKey: valueAPIKey(r),
	}

	if val := r.FormValue("max_pages"); val != "" {
		if pages, err := strconv.Atoi(val); err == nil {
			options.MaxPages = pages
		}
	}

	result, err := p.Convert(r.Context(), *file, options)

	if err != nil {
		writeFailure(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Write([]byte(result.Content))
}

// writeFailure renders the outermost safety net. A ConversionError already
// carries a fallback document; anything else gets a minimal report.
func writeFailure(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError

	if errors.Is(err, converter.ErrUnsupported) {
		code = http.StatusUnsupportedMediaType
	}

	response := FailureResponse{
		Error:        "conversion failed",
		ErrorDetails: err.Error(),
	}

	var convErr *ocr.ConversionError

	if errors.As(err, &convErr) {
		response.Content = convErr.Document
	} else {
		response.Content = "# Conversion Failed\n\n" + err.Error() + "\n"
	}

	writeJson(w, code, response)
}
