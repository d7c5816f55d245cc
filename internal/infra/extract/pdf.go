package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	domain "github.com/mohramadan911/watsonx-document-processor/internal/domain/classify"
)

// excerptLimit batas ukuran teks yang dikirim ke model
const excerptLimit = 4000

// PDFExtractor is the default text-extraction collaborator: plain-text
// extraction plus the PDF Info dictionary as metadata.
type PDFExtractor struct{}

var _ domain.Extractor = (*PDFExtractor)(nil)

func NewPDFExtractor() *PDFExtractor { return &PDFExtractor{} }

func (e *PDFExtractor) Open(path string) (domain.TextIndex, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var buf bytes.Buffer
	plain, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %w", filepath.Base(path), err)
	}
	if _, err := buf.ReadFrom(plain); err != nil {
		return nil, err
	}

	meta := map[string]string{}
	info := r.Trailer().Key("Info")
	if !info.IsNull() {
		for _, field := range []string{"Title", "Author", "Subject", "Keywords"} {
			if v := info.Key(field).Text(); v != "" {
				meta[strings.ToLower(field)] = v
			}
		}
	}
	if meta["title"] == "" {
		meta["title"] = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &textIndex{text: buf.String(), meta: meta}, nil
}

// textIndex is a naive keyword index over the extracted plain text.
type textIndex struct {
	text string
	meta map[string]string
}

// Search returns lines containing any query term; falls back to the leading
// excerpt when nothing matches, so the classifier always gets content.
func (t *textIndex) Search(query string) (string, error) {
	terms := strings.Fields(strings.ToLower(query))
	var matched []string
	total := 0

	for _, line := range strings.Split(t.text, "\n") {
		lower := strings.ToLower(line)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				matched = append(matched, strings.TrimSpace(line))
				total += len(line)
				break
			}
		}
		if total >= excerptLimit {
			break
		}
	}

	if len(matched) > 0 {
		return strings.Join(matched, "\n"), nil
	}
	if len(t.text) > excerptLimit {
		return t.text[:excerptLimit], nil
	}
	return t.text, nil
}

func (t *textIndex) Metadata() map[string]string {
	return t.meta
}
