package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/CalKK/docbrain/internal/domain"
	"github.com/CalKK/docbrain/internal/extract"
	"github.com/CalKK/docbrain/internal/parser"
)

// minTextLen is the shortest extracted text worth running through the engine.
const minTextLen = 10

// uploadResponse wraps the extraction result with file metadata, matching
// the shape browser clients expect.
type uploadResponse struct {
	Filename  string `json:"filename"`
	FileSize  int64  `json:"fileSize"`
	PageCount int    `json:"pageCount"`
	*domain.ExtractionResult
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(s.cfg.Server.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, header, err := r.FormFile("document")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusBadRequest, "File too large.")
			return
		}
		s.writeError(w, http.StatusBadRequest, "No file uploaded.")
		return
	}
	defer file.Close()

	format, err := s.detectFormat(header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Info("processing upload", "filename", header.Filename, "bytes", header.Size, "format", format)

	doc, err := s.parser.Parse(file, format)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusBadRequest, "File too large.")
			return
		}
		s.logger.Error("parse failed", "filename", header.Filename, "err", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to process the document.")
		return
	}
	if len(strings.TrimSpace(doc.Text)) < minTextLen {
		s.writeError(w, http.StatusBadRequest, "The document did not contain enough text to analyze.")
		return
	}

	var opts []extract.Option
	if s.cfg.Engine.Seed != 0 {
		opts = append(opts, extract.WithSeed(s.cfg.Engine.Seed))
	}
	engine := extract.New(s.toolkit, opts...)
	result, err := engine.Extract(doc.Text)
	if err != nil {
		s.logger.Error("extraction failed", "filename", header.Filename, "err", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to process the document.")
		return
	}

	s.logger.Info("generated study material",
		"questions", result.Stats.TotalQuestions,
		"flashcards", result.Stats.TotalFlashcards,
		"topics", result.Stats.TotalTopics)

	s.writeJSON(w, http.StatusOK, uploadResponse{
		Filename:         header.Filename,
		FileSize:         header.Size,
		PageCount:        doc.PageCount,
		ExtractionResult: result,
	})
}

// detectFormat prefers the declared MIME type and falls back to the file
// extension for generic or missing types.
func (s *Server) detectFormat(mime, filename string) (parser.Format, error) {
	if mime != "" && mime != "application/octet-stream" {
		if i := strings.Index(mime, ";"); i >= 0 {
			mime = strings.TrimSpace(mime[:i])
		}
		if f, err := s.parser.DetectMIME(mime); err == nil {
			return f, nil
		}
	}
	return s.parser.Detect(filename)
}
