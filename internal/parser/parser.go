// Package parser extracts plain text and a page count from uploaded
// documents. Supported formats:
//
//   - .pdf: PDF text extraction via pdfcpu content streams
//   - .docx: Microsoft Word (archive/zip, word/document.xml)
//   - .txt: plain text passthrough
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Format identifies a supported document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDocx Format = "docx"
	FormatTXT  Format = "txt"
)

// Document is the parsed output: cleaned full text and a page count.
type Document struct {
	Text      string
	PageCount int
}

// Config configures a Pipeline.
type Config struct {
	Logger *log.Logger
}

// Pipeline dispatches document parsing by format.
type Pipeline struct {
	logger *log.Logger
}

// New creates a Pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Pipeline{logger: cfg.Logger}
}

// Detect returns the document format for a file name.
func (p *Pipeline) Detect(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx", ".doc":
		return FormatDocx, nil
	case ".txt", ".text":
		return FormatTXT, nil
	default:
		return "", fmt.Errorf("unsupported file type %q: upload a PDF, Word or plain-text document", filepath.Ext(name))
	}
}

// DetectMIME returns the document format for a MIME type.
func (p *Pipeline) DetectMIME(mime string) (Format, error) {
	switch mime {
	case "application/pdf":
		return FormatPDF, nil
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/msword":
		return FormatDocx, nil
	case "text/plain":
		return FormatTXT, nil
	default:
		return "", fmt.Errorf("unsupported file type %q: upload a PDF, Word or plain-text document", mime)
	}
}

// Parse extracts text from r according to format.
func (p *Pipeline) Parse(r io.Reader, format Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	switch format {
	case FormatPDF:
		return p.parsePDF(data)
	case FormatDocx:
		return p.parseDocx(data)
	case FormatTXT:
		return p.parseText(data)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func (p *Pipeline) parseText(data []byte) (*Document, error) {
	return &Document{Text: string(data), PageCount: 1}, nil
}
