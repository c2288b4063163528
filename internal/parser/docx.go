package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// charsPerDocxPage is the rough paragraph volume treated as one page when
// estimating the page count of a Word document.
const charsPerDocxPage = 3000

// parseDocx reads word/document.xml from the DOCX archive and joins its
// paragraphs. The page count is estimated from paragraph volume since DOCX
// has no fixed pagination.
func (p *Pipeline) parseDocx(data []byte) (*Document, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx archive: %w", err)
	}

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var paragraphs []string
	var current strings.Builder
	inParagraph := false

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "p" {
				inParagraph = true
				current.Reset()
			}
		case xml.CharData:
			if inParagraph {
				current.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "p" && inParagraph {
				inParagraph = false
				if text := strings.TrimSpace(current.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
			}
		}
	}

	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("no text content found in docx")
	}

	text := strings.Join(paragraphs, "\n\n")
	pageCount := estimateDocxPages(paragraphs)
	p.logger.Debug("parsed docx", "paragraphs", len(paragraphs), "pages", pageCount)
	return &Document{Text: text, PageCount: pageCount}, nil
}

// estimateDocxPages groups paragraphs into ~3000-character pages.
func estimateDocxPages(paragraphs []string) int {
	pages := 0
	current := 0
	for _, para := range paragraphs {
		if current+len(para) > charsPerDocxPage && current > 0 {
			pages++
			current = len(para)
		} else {
			current += len(para)
		}
	}
	if current > 0 {
		pages++
	}
	return pages
}
