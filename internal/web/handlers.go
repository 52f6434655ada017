// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wneessen/geocsv/internal/logger"
	"github.com/wneessen/geocsv/internal/service"
	"github.com/wneessen/geocsv/internal/table"
)

const (
	// multipart parts larger than this are buffered on disk
	maxUploadMemory = 8 << 20

	defaultPreviewRows = 10
	maxPreviewRows     = 100
)

type indexData struct {
	Provider      string
	MaxUploadSize int64
	MapLinks      bool
	Filename      string
}

type uploadResponse struct {
	ID string `json:"id"`
}

type previewResponse struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
	Total  int        `json:"total"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Provider:      s.jobs.Provider(),
		MaxUploadSize: s.config.Server.MaxUploadSize,
		MapLinks:      s.config.MapLinks.Enabled,
		Filename:      s.config.Server.Filename,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.index.Execute(w, data); err != nil {
		s.logger.Error("failed to render upload page", logger.Err(err))
	}
}

// handleUpload accepts a multipart CSV upload in the "file" field and starts a geocoding job.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.Server.MaxUploadSize)
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, err)
			return
		}
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			s.logger.Error("failed to remove multipart form files", logger.Err(err))
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.New("no file provided"))
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.logger.Error("failed to close uploaded file", logger.Err(err))
		}
	}()

	id, err := s.jobs.Submit(file)
	switch {
	case errors.Is(err, table.ErrInputUnreadable), errors.Is(err, table.ErrColumnsNotFound):
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	case err != nil:
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	s.logger.Debug("CSV upload accepted", slog.String("job", id), slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))
	w.Header().Set("Location", "/api/jobs/"+id)
	s.writeJSON(w, http.StatusAccepted, uploadResponse{ID: id})
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	info, err := s.jobs.Job(chi.URLParam(r, "id"))
	if err != nil {
		s.writeJobError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

// handlePreview returns the first rows of a finished job. The number of rows can be set with
// the "rows" query parameter.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	rows := defaultPreviewRows
	if raw := r.URL.Query().Get("rows"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, r, http.StatusBadRequest, errors.New("invalid number of preview rows"))
			return
		}
		rows = min(n, maxPreviewRows)
	}

	output, err := s.jobs.Result(chi.URLParam(r, "id"))
	if err != nil {
		s.writeJobError(w, r, err)
		return
	}
	head := output.Table.Head(rows)
	preview := previewResponse{
		Header: head.Header,
		Rows:   head.Records,
		Total:  output.Table.Len(),
	}
	if preview.Rows == nil {
		preview.Rows = [][]string{}
	}
	s.writeJSON(w, http.StatusOK, preview)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	output, err := s.jobs.Result(chi.URLParam(r, "id"))
	if err != nil {
		s.writeJobError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment",
		map[string]string{"filename": s.config.Server.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(output.Data)))
	if _, err = w.Write(output.Data); err != nil {
		s.logger.Error("failed to write CSV download", logger.Err(err))
	}
}

func (s *Server) writeJobError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		s.writeError(w, r, http.StatusNotFound, err)
	case errors.Is(err, service.ErrJobNotDone):
		s.writeError(w, r, http.StatusConflict, err)
	default:
		s.writeError(w, r, http.StatusInternalServerError, err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	requestID := middleware.GetReqID(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", slog.String("path", r.URL.Path), slog.Int("status", status),
			slog.String("request_id", requestID), logger.Err(err))
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: requestID})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode JSON response", logger.Err(err))
	}
}
