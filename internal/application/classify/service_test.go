package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mohramadan911/watsonx-document-processor/internal/domain/classify"
)

// stubModel returns a canned response or error.
type stubModel struct {
	resp string
	err  error
}

func (m stubModel) Generate(ctx context.Context, prompt string) (string, error) {
	return m.resp, m.err
}

func TestClassify_StructuredResponse(t *testing.T) {
	tests := []struct {
		name           string
		resp           string
		wantCategory   domain.Category
		wantConfidence float64
		wantCustom     bool
		wantLabel      string
	}{
		{
			name:           "clean JSON",
			resp:           `{"category": "FINANCIAL", "standard_category": true, "confidence": 0.92, "reasoning": "quarterly report"}`,
			wantCategory:   domain.CategoryFinancial,
			wantConfidence: 0.92,
		},
		{
			name:           "JSON wrapped in prose",
			resp:           "Here is my answer:\n```json\n{\"category\": \"LEGAL\", \"confidence\": 0.85, \"reasoning\": \"contract terms\"}\n```\nDone.",
			wantCategory:   domain.CategoryLegal,
			wantConfidence: 0.85,
		},
		{
			name:           "custom category gets sanitized label",
			resp:           `{"category": "research papers", "standard_category": false, "confidence": 0.7, "reasoning": "academic content"}`,
			wantCategory:   domain.CategoryCustom,
			wantConfidence: 0.7,
			wantCustom:     true,
			wantLabel:      "Research_papers",
		},
		{
			name:           "confidence above 1 is clamped",
			resp:           `{"category": "HR", "confidence": 3.5, "reasoning": "resume"}`,
			wantCategory:   domain.CategoryHR,
			wantConfidence: 1.0,
		},
		{
			name:           "missing confidence defaults to 0.5",
			resp:           `{"category": "MARKETING", "reasoning": "campaign brief"}`,
			wantCategory:   domain.CategoryMarketing,
			wantConfidence: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(stubModel{resp: tt.resp})
			c := svc.Classify(context.Background(), "some content", "doc.pdf", "")

			assert.Equal(t, tt.wantCategory, c.Category)
			assert.InDelta(t, tt.wantConfidence, c.Confidence, 1e-9)
			assert.Equal(t, tt.wantCustom, c.IsCustom)
			assert.Equal(t, tt.wantLabel, c.CustomLabel)
			assert.NotEmpty(t, c.Reasoning)
		})
	}
}

func TestClassify_ModelErrorNeverPropagates(t *testing.T) {
	svc := NewService(stubModel{err: errors.New("connection refused")})
	c := svc.Classify(context.Background(), "anything", "doc.pdf", "")

	assert.Equal(t, domain.CategoryGeneral, c.Category)
	assert.Equal(t, 0.0, c.Confidence)
	assert.Contains(t, c.Reasoning, "Classification error")
	assert.GreaterOrEqual(t, c.Confidence, 0.0)
	assert.LessOrEqual(t, c.Confidence, 1.0)
}

func TestClassify_TextExtractionFallback(t *testing.T) {
	// No parseable JSON, but the response names a category.
	svc := NewService(stubModel{resp: "The document is CLASSIFIED AS LEGAL because it contains contract language."})
	c := svc.Classify(context.Background(), "contract text", "contract.pdf", "")

	assert.Equal(t, domain.CategoryLegal, c.Category)
	assert.InDelta(t, 0.8, c.Confidence, 1e-9)
	assert.Contains(t, c.Reasoning, "extracted from text")
}

func TestClassify_FinancialAnchorInResponse(t *testing.T) {
	svc := NewService(stubModel{resp: "This appears to be a balance sheet with assets and liabilities."})
	c := svc.Classify(context.Background(), "", "report.pdf", "")

	assert.Equal(t, domain.CategoryFinancial, c.Category)
	assert.InDelta(t, 0.8, c.Confidence, 1e-9)
}

func TestClassify_HeuristicsFinancial(t *testing.T) {
	svc := NewService(nil)
	content := "This income statement shows quarterly revenue and balance sheet details for FY2024"
	c := svc.Classify(context.Background(), content, "report.pdf", "")

	require.Equal(t, domain.CategoryFinancial, c.Category)
	assert.GreaterOrEqual(t, c.Confidence, 0.6)
	assert.LessOrEqual(t, c.Confidence, 0.9)
	assert.Contains(t, c.Reasoning, "financial")
}

func TestClassify_HeuristicsTechnical(t *testing.T) {
	svc := NewService(nil)
	content := "The software system exposes an api over the network and stores state in a database"
	c := svc.Classify(context.Background(), content, "notes.pdf", "")

	require.Equal(t, domain.CategoryTechnical, c.Category)
	assert.GreaterOrEqual(t, c.Confidence, 0.6)
}

func TestClassify_HeuristicsFilenameHint(t *testing.T) {
	// Content alone is below threshold, filename tips it over.
	svc := NewService(nil)
	c := svc.Classify(context.Background(), "nothing notable here", "budget-2024.pdf", "")

	assert.Equal(t, domain.CategoryFinancial, c.Category)
	assert.Contains(t, c.Reasoning, "filename")
}

func TestClassify_HeuristicsDefault(t *testing.T) {
	svc := NewService(nil)
	c := svc.Classify(context.Background(), "a short note about nothing in particular", "note.pdf", "")

	assert.Equal(t, domain.CategoryGeneral, c.Category)
	assert.InDelta(t, 0.3, c.Confidence, 1e-9)
	assert.NotEmpty(t, c.Reasoning)
}

func TestClassify_MalformedJSONFallsThrough(t *testing.T) {
	// Broken JSON, no category mention: ends up in heuristics.
	svc := NewService(stubModel{resp: `{"category": "FINANC`})
	content := "employee handbook with hr policy, benefits and training material for personnel"
	c := svc.Classify(context.Background(), content, "handbook.pdf", "")

	assert.Equal(t, domain.CategoryHR, c.Category)
}

func TestSanitizeFolderName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"research papers", "Research_papers"},
		{"  legal/archive  ", "Legal_archive"},
		{"q3-2024", "Q3_2024"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.SanitizeFolderName(tt.in), "input %q", tt.in)
	}
}
