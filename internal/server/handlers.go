package server

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/ukaji3/exdiff-go/pkg/exdiff"
	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
	"github.com/ukaji3/exdiff-go/pkg/exdiff/output"
)

// Form field names of the two uploads and the sheet selection.
const (
	FieldLeft  = "left"
	FieldRight = "right"
	FieldSheet = "sheet"
)

// uploadRequest holds the non-file form values.
type uploadRequest struct {
	Sheet string `validate:"max=31"`
}

// exportRequest holds the export format path parameter.
type exportRequest struct {
	Format string `validate:"oneof=csv xlsx"`
}

// SheetsResponse is the body of POST /api/v1/sheets.
type SheetsResponse struct {
	Mode         exdiff.Mode `json:"mode"`
	CommonSheets []string    `json:"common_sheets"`
}

// openUploads reads both uploaded files and applies the compatibility gate.
func (s *Server) openUploads(w http.ResponseWriter, r *http.Request) (*exdiff.Comparison, uploadRequest, error) {
	var req uploadRequest

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Limits.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.Limits.MaxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, req, err
		}
		return nil, req, invalidRequest(err)
	}

	req.Sheet = r.FormValue(FieldSheet)
	if err := s.validate.Struct(req); err != nil {
		return nil, req, invalidRequest(err)
	}

	left, leftHeader, err := r.FormFile(FieldLeft)
	if err != nil {
		return nil, req, invalidRequest(fmt.Errorf("%s file: %w", FieldLeft, err))
	}
	defer left.Close()

	right, rightHeader, err := r.FormFile(FieldRight)
	if err != nil {
		return nil, req, invalidRequest(fmt.Errorf("%s file: %w", FieldRight, err))
	}
	defer right.Close()

	s.logger.DebugContext(r.Context(), "files uploaded",
		slog.String("left", leftHeader.Filename),
		slog.String("left_size", humanize.Bytes(uint64(leftHeader.Size))),
		slog.String("right", rightHeader.Filename),
		slog.String("right_size", humanize.Bytes(uint64(rightHeader.Size))),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	c, err := exdiff.Open(input(leftHeader, left), input(rightHeader, right))
	return c, req, err
}

func input(h *multipart.FileHeader, f multipart.File) exdiff.Input {
	return exdiff.Input{Name: h.Filename, Reader: f}
}

// compareUploads runs one full comparison for a request. It also returns
// the sheets common to both uploads, empty for CSV files.
func (s *Server) compareUploads(w http.ResponseWriter, r *http.Request, endpoint string) (result *models.Result, sheets []string, err error) {
	start := time.Now()
	defer func() {
		changed := 0
		if result != nil {
			changed = result.Summary.ChangedCells
		}
		s.metrics.observe(endpoint, start, changed, err)
	}()

	c, req, err := s.openUploads(w, r)
	if err != nil {
		return nil, nil, err
	}
	defer c.Close()

	result, err = c.Compare(exdiff.Options{Sheet: req.Sheet})
	return result, c.CommonSheets(), err
}

// fail logs err and renders it as an APIError.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := toAPIError(err)
	level := slog.LevelWarn
	if apiErr.StatusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.Log(r.Context(), level, "comparison failed",
		slog.String("error", err.Error()),
		slog.String("error_code", apiErr.ErrorCode),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	render.Render(w, r, apiErr)
}

// Sheets reports the comparison mode and the sheets common to both uploads.
func (s *Server) Sheets(w http.ResponseWriter, r *http.Request) {
	c, _, err := s.openUploads(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer c.Close()

	sheets := c.CommonSheets()
	if sheets == nil {
		sheets = []string{}
	}
	render.JSON(w, r, SheetsResponse{Mode: c.Mode(), CommonSheets: sheets})
}

// Compare returns the comparison result as JSON.
func (s *Server) Compare(w http.ResponseWriter, r *http.Request) {
	result, _, err := s.compareUploads(w, r, "compare")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	view := output.NewResultView(result)
	view.ID = uuid.New().String()
	render.JSON(w, r, view)
}

// Export returns the difference report as a CSV or workbook download.
func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	req := exportRequest{Format: chi.URLParam(r, "format")}
	if err := s.validate.Struct(req); err != nil {
		s.fail(w, r, invalidRequest(err))
		return
	}

	result, _, err := s.compareUploads(w, r, "export_"+req.Format)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var (
		buf         bytes.Buffer
		name        string
		contentType string
	)
	switch req.Format {
	case "csv":
		name, contentType = output.ReportCSVName, output.CSVContentType
		err = output.WriteCSV(&buf, result, output.CSVOptions{BOMPrefix: true})
	case "xlsx":
		name, contentType = output.ReportWorkbookName, output.WorkbookContentType
		err = output.WriteWorkbook(&buf, result)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("X-Comparison-ID", uuid.New().String())
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
