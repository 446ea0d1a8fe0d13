package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

const (
	ExtractPlain = "plain"
	ExtractRows  = "rows"
)

// Page breaks come through as form feeds; some producers pad with NULs.
var lineBreaks = regexp.MustCompile(`\x00|\n|\r|\f`)

// ExtractLines turns PDF bytes into the flat line sequence the registry
// parser consumes. Blank lines are kept; dropping them is the normalizer's job.
func ExtractLines(content []byte, mode string) ([]string, error) {
	if mode != "" && mode != ExtractPlain && mode != ExtractRows {
		return nil, fmt.Errorf("unsupported extract mode: %s", mode)
	}
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var text strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		s, err := pageText(p, mode)
		if err != nil {
			continue
		}
		text.WriteString(s)
		text.WriteString("\f")
	}
	return SplitLines(text.String()), nil
}

func pageText(p pdf.Page, mode string) (string, error) {
	switch mode {
	case ExtractRows:
		rows, err := p.GetTextByRow()
		if err != nil {
			return "", err
		}
		var b strings.Builder
		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
			}
			b.WriteString("\n")
		}
		return b.String(), nil
	case ExtractPlain, "":
		return p.GetPlainText(nil)
	default:
		return "", fmt.Errorf("unsupported extract mode: %s", mode)
	}
}

// SplitLines splits extracted text into lines in NFC form.
func SplitLines(text string) []string {
	return lineBreaks.Split(norm.NFC.String(text), -1)
}

// LoadLines reads a registry from a PDF or from a plain-text line dump.
func LoadLines(path, mode string) ([]string, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return ExtractLines(blob, mode)
	case ".txt":
		return SplitLines(string(blob)), nil
	default:
		return nil, fmt.Errorf("unsupported input type: %s", path)
	}
}
