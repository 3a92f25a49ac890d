package gemini_test

import (
	"context"
	"testing"

	"github.com/openfiscal/munidocs"
	"github.com/openfiscal/munidocs/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_ClassifyDocument_RequiresText(t *testing.T) {
	t.Parallel()

	c := gemini.NewClassifier(nil) // nil client ok, validation fails first

	_, err := c.ClassifyDocument(context.Background(), "   ", "Calgary", "budget.pdf")
	require.Error(t, err)
	assert.Equal(t, munidocs.EINVALID, munidocs.ErrorCode(err))
}

func TestClassifier_IdentifyDocuments_EmptyMarkdown(t *testing.T) {
	t.Parallel()

	c := gemini.NewClassifier(nil)

	links, err := c.IdentifyDocuments(context.Background(), "", "https://calgary.ca/finance")
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestBuildClassifyPrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildClassifyPrompt("CITY OF CALGARY 2023 ANNUAL REPORT...", "City of Calgary", "document.pdf")

	assert.Contains(t, prompt, "Municipality: City of Calgary")
	assert.Contains(t, prompt, "Current filename: document.pdf")
	assert.Contains(t, prompt, "CITY OF CALGARY 2023 ANNUAL REPORT")
	assert.Contains(t, prompt, `"document_type"`)
	assert.Contains(t, prompt, `"2023-2024"`)
	assert.Contains(t, prompt, "year stated inside the document text")
}

func TestBuildIdentifyPrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildIdentifyPrompt("[2024 Budget](/docs/budget-2024.pdf)", "https://calgary.ca/finance")

	assert.Contains(t, prompt, "https://calgary.ca/finance")
	assert.Contains(t, prompt, "budget-2024.pdf")
	assert.Contains(t, prompt, "JSON array")
}

func TestBuildClassifyConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildClassifyConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "municipal financial documents")
	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.1, *config.Temperature, 0.001)
}

func TestBuildIdentifyConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildIdentifyConfig()

	require.NotNil(t, config.SystemInstruction)
	assert.Equal(t, "application/json", config.ResponseMIMEType)
}
