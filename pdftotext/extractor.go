// Package pdftotext extracts document text with the poppler pdftotext CLI.
package pdftotext

import (
	"bytes"
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/openfiscal/munidocs"
)

// MaxPages bounds extraction to the document's front matter. The title page
// and first sections identify the type and year; the remaining hundreds of
// pages of tables add nothing.
const MaxPages = 3

// rulerLine matches decorative separator lines left behind by -layout.
var rulerLine = regexp.MustCompile(`(?m)^[\s._\-=]{4,}$`)

// Ensure Extractor implements munidocs.TextExtractor at compile time.
var _ munidocs.TextExtractor = (*Extractor)(nil)

// Extractor shells out to pdftotext. An empty result with a nil error means
// the document is scanned or image-only.
type Extractor struct {
	binPath string
}

// NewExtractor creates an Extractor. An empty binPath uses "pdftotext" from
// PATH.
func NewExtractor(binPath string) *Extractor {
	if binPath == "" {
		binPath = "pdftotext"
	}
	return &Extractor{binPath: binPath}
}

// ExtractText runs pdftotext -layout over the document's first pages and
// returns up to maxChars of cleaned text.
func (e *Extractor) ExtractText(ctx context.Context, path string, maxChars int) (string, error) {
	cmd := exec.CommandContext(ctx, e.binPath,
		"-layout",
		"-f", "1",
		"-l", strconv.Itoa(MaxPages),
		path, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", munidocs.Errorf(munidocs.EINTERNAL, "pdftotext failed for %s: %v: %s",
			path, err, strings.TrimSpace(stderr.String()))
	}

	text := Clean(stdout.String())
	if maxChars > 0 && len(text) > maxChars {
		text = truncate(text, maxChars)
	}
	return text, nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 rune.
func truncate(s string, n int) string {
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}

// Clean normalizes raw pdftotext output: NUL bytes go, decorative ruler
// lines go, whitespace runs collapse.
func Clean(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = rulerLine.ReplaceAllString(s, "")

	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.String()
}
