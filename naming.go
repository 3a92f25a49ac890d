package munidocs

import (
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"
)

var (
	invalidNameChars    = regexp.MustCompile(`[<>:"/\\|?*]`)
	repeatedUnderscores = regexp.MustCompile(`_+`)
	yearPattern         = regexp.MustCompile(`20[0-9]{2}`)
)

// SanitizeToken makes a name component filesystem-safe: spaces become
// underscores, disallowed characters are stripped, runs of underscores
// collapse, and the result is capped at 100 characters.
func SanitizeToken(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = invalidNameChars.ReplaceAllString(s, "")
	s = repeatedUnderscores.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// SanitizeFilename makes a whole filename filesystem-safe. Unlike
// SanitizeToken, disallowed characters are replaced with underscores to
// preserve the shape of URL-derived names.
func SanitizeFilename(name string) string {
	name = invalidNameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, ". ")
	if len(name) > 200 {
		ext := path.Ext(name)
		name = name[:200-len(ext)] + ext
	}
	return name
}

// CanonicalName builds the standardized filename
// {Entity}_{DocumentType}_{Year} plus the document extension. An empty year
// is omitted.
func CanonicalName(entity, docType, year string) string {
	parts := []string{SanitizeToken(entity), SanitizeToken(docType)}
	if year != "" {
		parts = append(parts, SanitizeToken(year))
	}
	return strings.Join(parts, "_") + DocumentExt
}

// FallbackName is the low-confidence placeholder name used when
// classification fails outright.
func FallbackName(entity string) string {
	return CanonicalName(entity, "Financial Document", "")
}

// UniqueName resolves filename collisions. If candidate is not taken it is
// returned unchanged; otherwise suffixes _1, _2, ... are tried before the
// extension and the first unused name wins.
func UniqueName(candidate string, taken func(string) bool) string {
	if !taken(candidate) {
		return candidate
	}
	ext := path.Ext(candidate)
	base := strings.TrimSuffix(candidate, ext)
	for n := 1; ; n++ {
		name := base + "_" + strconv.Itoa(n) + ext
		if !taken(name) {
			return name
		}
	}
}

// YearFromURL returns the most recent four-digit year (2000-2099) that
// appears anywhere in s, or "" when none is found.
func YearFromURL(s string) string {
	years := yearPattern.FindAllString(s, -1)
	if len(years) == 0 {
		return ""
	}
	latest := years[0]
	for _, y := range years[1:] {
		if y > latest {
			latest = y
		}
	}
	return latest
}

// FilenameFromURL derives the acquisition filename for a document URL: the
// sanitized basename of the URL path, or "{year}_financial_report" plus the
// document extension when the URL has no usable basename.
func FilenameFromURL(rawURL, year string) string {
	var name string
	if u, err := url.Parse(rawURL); err == nil {
		name = path.Base(u.Path)
		if name == "." || name == "/" {
			name = ""
		}
	}
	if name == "" || !strings.HasSuffix(strings.ToLower(name), DocumentExt) {
		prefix := ""
		if year != "" {
			prefix = year + "_"
		}
		name = prefix + "financial_report" + DocumentExt
	}
	name = SanitizeFilename(name)
	if !strings.HasSuffix(strings.ToLower(name), DocumentExt) {
		name += DocumentExt
	}
	return name
}

// IsDocumentURL reports whether the URL's path ends in the document
// extension.
func IsDocumentURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), DocumentExt)
}
