// Package ingestion turns uploaded files and job-posting pages into clean
// text, and parses resume text into structured data via the oracle.
package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MaxUploadBytes is the largest uploaded file the server accepts.
const MaxUploadBytes = 10 << 20

// MinContentLength is the minimum cleaned-text length for a usable resume.
// Shorter content usually means a failed extraction, not a short resume.
const MinContentLength = 50

var (
	// ErrUnsupportedType is returned for MIME types we cannot extract.
	ErrUnsupportedType = fmt.Errorf("unsupported file type")
	// ErrFileTooLarge is returned when an upload exceeds MaxUploadBytes.
	ErrFileTooLarge = fmt.Errorf("file exceeds %d bytes", MaxUploadBytes)
	// ErrContentTooShort is returned when extraction yields too little text.
	ErrContentTooShort = fmt.Errorf("extracted content shorter than %d characters", MinContentLength)
)

// ExtractText pulls plain text out of an uploaded resume file and cleans
// it. Accepted types: PDF, DOCX, legacy msword (treated as DOCX), and plain
// text.
func ExtractText(mimeType string, data []byte) (string, error) {
	if len(data) > MaxUploadBytes {
		return "", ErrFileTooLarge
	}

	var (
		raw string
		err error
	)
	switch mimeType {
	case "text/plain":
		raw = string(data)
	case "application/pdf":
		raw, err = extractPDFText(data)
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/msword":
		raw, err = extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	if err != nil {
		return "", err
	}

	cleaned := CleanText(raw)
	if len(cleaned) < MinContentLength {
		return "", ErrContentTooShort
	}
	return cleaned, nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return stripDocumentXML(doc.Editable().GetContent()), nil
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>`)
	xmlTag       = regexp.MustCompile(`<[^>]*>`)
)

// stripDocumentXML flattens WordprocessingML into plain text: paragraph
// ends become newlines, every other tag is dropped, entities are decoded.
func stripDocumentXML(content string) string {
	content = paragraphEnd.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}
