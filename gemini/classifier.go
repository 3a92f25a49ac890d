// Package gemini implements document understanding with Google Gemini: the
// type/year classification behind renaming, and the page analysis that
// pulls document links out of crawled pages.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openfiscal/munidocs"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Classifier implements munidocs.Classifier at compile time.
var _ munidocs.Classifier = (*Classifier)(nil)

// Classifier implements munidocs.Classifier using Google Gemini.
type Classifier struct {
	client *genai.Client
}

// NewClassifier creates a new Classifier.
func NewClassifier(client *genai.Client) *Classifier {
	return &Classifier{client: client}
}

type classificationPayload struct {
	DocumentType string `json:"document_type"`
	Year         string `json:"year"`
	Confidence   string `json:"confidence"`
	Rationale    string `json:"rationale"`
}

type identifiedLink struct {
	URL          string `json:"url"`
	Year         string `json:"year"`
	DocumentType string `json:"document_type"`
	Confidence   string `json:"confidence"`
}

// ClassifyDocument judges a document's type and reporting year from its
// extracted text.
func (c *Classifier) ClassifyDocument(ctx context.Context, text, entityName, filename string) (*munidocs.Classification, error) {
	if strings.TrimSpace(text) == "" {
		return nil, munidocs.Errorf(munidocs.EINVALID, "document text required")
	}

	raw, err := c.generate(ctx, BuildClassifyConfig(), BuildClassifyPrompt(text, entityName, filename))
	if err != nil {
		return nil, err
	}

	var payload classificationPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, munidocs.Errorf(munidocs.EINTERNAL, "malformed classification response: %v", err)
	}
	if payload.DocumentType == "" {
		return nil, munidocs.Errorf(munidocs.EINTERNAL, "classification response missing document type")
	}

	return &munidocs.Classification{
		DocumentType: payload.DocumentType,
		Year:         payload.Year,
		Confidence:   parseConfidence(payload.Confidence),
		Rationale:    payload.Rationale,
	}, nil
}

// IdentifyDocuments scans a crawled page's markdown for financial document
// links.
func (c *Classifier) IdentifyDocuments(ctx context.Context, markdown, pageURL string) ([]munidocs.DiscoveredLink, error) {
	if strings.TrimSpace(markdown) == "" {
		return nil, nil
	}

	raw, err := c.generate(ctx, BuildIdentifyConfig(), BuildIdentifyPrompt(markdown, pageURL))
	if err != nil {
		return nil, err
	}

	var payload []identifiedLink
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, munidocs.Errorf(munidocs.EINTERNAL, "malformed analysis response: %v", err)
	}

	var links []munidocs.DiscoveredLink
	for _, l := range payload {
		// The model occasionally returns landing pages; only document URLs
		// are acted on.
		if l.URL == "" || !munidocs.IsDocumentURL(l.URL) {
			continue
		}
		links = append(links, munidocs.DiscoveredLink{
			URL:        l.URL,
			Kind:       munidocs.LinkDocument,
			Strategy:   munidocs.StrategyAnalysis,
			SourcePage: pageURL,
			Year:       l.Year,
			DocType:    l.DocumentType,
			Confidence: parseConfidence(l.Confidence),
		})
	}
	return links, nil
}

func (c *Classifier) generate(ctx context.Context, config *genai.GenerateContentConfig, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", munidocs.Errorf(munidocs.EINTERNAL, "gemini returned nil result")
	}

	text := strings.TrimSpace(result.Text())
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", munidocs.Errorf(munidocs.EINTERNAL, "gemini returned empty response")
	}
	return text, nil
}

// BuildClassifyConfig returns the GenerateContentConfig for document
// classification calls.
func BuildClassifyConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You classify municipal financial documents. Respond with a single JSON object and nothing else.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildIdentifyConfig returns the GenerateContentConfig for page analysis
// calls.
func BuildIdentifyConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You find links to municipal financial documents in page content. Respond with a single JSON array and nothing else.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildClassifyPrompt builds the classification prompt for one document.
func BuildClassifyPrompt(text, entityName, filename string) string {
	var sb strings.Builder
	sb.WriteString("Classify this municipal financial document.\n\n")
	fmt.Fprintf(&sb, "Municipality: %s\n", entityName)
	fmt.Fprintf(&sb, "Current filename: %s\n\n", filename)
	sb.WriteString("<document_text>\n")
	sb.WriteString(text)
	sb.WriteString("\n</document_text>\n\n")
	sb.WriteString(`Return a JSON object with exactly these fields:
{
  "document_type": concise document type, e.g. "Annual Budget", "Consolidated Financial Statements", "Annual Financial Report",
  "year": the primary reporting year, e.g. "2023"; use a range like "2023-2024" when the document states a fiscal year spanning two calendar years; "" if no year is determinable,
  "confidence": "high", "medium" or "low",
  "rationale": one sentence explaining how you determined the type and year
}

Prefer the year stated inside the document text over any year in the filename.`)
	return sb.String()
}

// BuildIdentifyPrompt builds the page analysis prompt for one crawled page.
func BuildIdentifyPrompt(markdown, pageURL string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "This content was crawled from %s:\n\n", pageURL)
	sb.WriteString("<page_content>\n")
	sb.WriteString(markdown)
	sb.WriteString("\n</page_content>\n\n")
	sb.WriteString(`List every link to a downloadable municipal financial document (budgets, audited financial statements, annual financial reports). Ignore links to other web pages.

Return a JSON array where each element is:
{
  "url": the link target exactly as it appears in the content,
  "year": the document's year if evident, else "",
  "document_type": a concise type label, else "",
  "confidence": "high", "medium" or "low"
}

Return [] when the page links to no financial documents.`)
	return sb.String()
}

func parseConfidence(s string) munidocs.Confidence {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return munidocs.ConfidenceHigh
	case "medium":
		return munidocs.ConfidenceMedium
	default:
		return munidocs.ConfidenceLow
	}
}
