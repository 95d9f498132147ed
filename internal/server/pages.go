package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ukaji3/exdiff-go/pkg/exdiff"
	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
)

// pageData feeds the HTML templates.
type pageData struct {
	Error  *APIError
	Sheet  string
	Sheets []string
	Result *models.Result
}

// Index serves the upload form.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, pageData{})
}

// ComparePage compares the uploaded files and renders the report as HTML.
func (s *Server) ComparePage(w http.ResponseWriter, r *http.Request) {
	result, sheets, err := s.compareUploads(w, r, "page")
	if err != nil {
		apiErr := toAPIError(err)
		s.logger.WarnContext(r.Context(), "comparison failed",
			slog.String("error", err.Error()),
			slog.String("error_code", apiErr.ErrorCode))

		data := pageData{Error: apiErr, Sheet: r.FormValue(FieldSheet)}
		var sheetErr *exdiff.SheetNotFoundError
		if errors.As(err, &sheetErr) {
			data.Sheets = sheetErr.Available
		}
		s.renderPage(w, r, apiErr.StatusCode, data)
		return
	}
	s.renderPage(w, r, http.StatusOK, pageData{Result: result, Sheet: result.Sheet, Sheets: sheets})
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.pages.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "template failed", slog.String("error", err.Error()))
	}
}
