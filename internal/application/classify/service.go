package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	domain "github.com/mohramadan911/watsonx-document-processor/internal/domain/classify"
	"github.com/mohramadan911/watsonx-document-processor/internal/infra/ai/prompt"
)

// Service implements use-case klasifikasi dokumen.
// Classify never fails: tier demi tier dicoba sampai heuristik terakhir,
// jadi caller selalu dapat Classification yang valid.
type Service struct {
	Model domain.Model
}

func NewService(model domain.Model) *Service {
	return &Service{Model: model}
}

// structuredResponse is the JSON shape requested from the model.
type structuredResponse struct {
	Category         string   `json:"category"`
	StandardCategory *bool    `json:"standard_category"`
	Confidence       *float64 `json:"confidence"`
	Reasoning        string   `json:"reasoning"`
}

// Classify turns extracted text + filename + title into a Classification.
// Tier 1: structured JSON from the model. Tier 2: category mentions scraped
// from the raw response. Tier 3: keyword heuristics over the content itself.
func (s *Service) Classify(ctx context.Context, text, filename, title string) domain.Classification {
	if s.Model == nil {
		return s.classifyByHeuristics(text, filename)
	}

	raw, err := s.Model.Generate(ctx, prompt.Classification(filename, title, text))
	if err != nil {
		// Model invocation failure is never propagated; surface it in the result.
		log.Printf("classify: model error for %s: %v", filename, err)
		return domain.Classification{
			Category:   domain.CategoryGeneral,
			Confidence: 0.0,
			Reasoning:  fmt.Sprintf("Classification error: %v", err),
		}
	}

	if c, ok := s.parseStructured(raw); ok {
		return c
	}
	if c, ok := s.extractFromText(raw); ok {
		return c
	}
	return s.classifyByHeuristics(text, filename)
}

// parseStructured trims the response to the first {...} span and decodes it.
func (s *Service) parseStructured(raw string) (domain.Classification, bool) {
	cleaned := strings.TrimSpace(raw)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return domain.Classification{}, false
	}
	cleaned = cleaned[start : end+1]

	var resp structuredResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		log.Printf("classify: malformed JSON from model: %v", err)
		return domain.Classification{}, false
	}

	categoryStr := strings.ToUpper(strings.TrimSpace(resp.Category))
	if categoryStr == "" {
		categoryStr = string(domain.CategoryGeneral)
	}
	confidence := 0.5
	if resp.Confidence != nil {
		confidence = clamp01(*resp.Confidence)
	}
	reasoning := resp.Reasoning
	if reasoning == "" {
		reasoning = "No reasoning provided"
	}

	category := domain.CategoryFromString(categoryStr)
	isCustom := category == domain.CategoryCustom
	if resp.StandardCategory != nil && !*resp.StandardCategory {
		isCustom = true
	}

	if isCustom {
		label := domain.SanitizeFolderName(resp.Category)
		if label == "" {
			// Custom without a usable label degrades to the default category.
			return domain.Classification{
				Category:   domain.CategoryGeneral,
				Confidence: confidence,
				Reasoning:  reasoning,
			}, true
		}
		return domain.Classification{
			Category:    domain.CategoryCustom,
			CustomLabel: label,
			Confidence:  confidence,
			Reasoning:   reasoning,
			IsCustom:    true,
		}, true
	}

	return domain.Classification{
		Category:   category,
		Confidence: confidence,
		Reasoning:  reasoning,
	}, true
}

// financial anchor phrases yang dicek di tier 2
var financialAnchors = []string{"BALANCE SHEET", "INCOME STATEMENT", "FINANCIAL STATEMENT", "CASH FLOW"}

// extractFromText scans the raw model response for explicit category
// mentions when JSON parsing failed. Fixed moderate confidence.
func (s *Service) extractFromText(raw string) (domain.Classification, bool) {
	upper := strings.ToUpper(raw)

	for _, cat := range domain.StandardCategories {
		name := string(cat)
		patterns := []string{
			fmt.Sprintf(`CATEGORY": "%s"`, name),
			fmt.Sprintf(`CATEGORY":"%s"`, name),
			fmt.Sprintf(`"CATEGORY": %s`, name),
			fmt.Sprintf("CATEGORY IS %s", name),
			fmt.Sprintf("CLASSIFIED AS %s", name),
		}
		matched := false
		for _, p := range patterns {
			if strings.Contains(upper, p) {
				matched = true
				break
			}
		}
		if !matched && cat == domain.CategoryFinancial {
			for _, term := range financialAnchors {
				if strings.Contains(upper, term) {
					matched = true
					break
				}
			}
		}
		if matched {
			excerpt := raw
			if len(excerpt) > 100 {
				excerpt = excerpt[:100] + "..."
			}
			return domain.Classification{
				Category:   cat,
				Confidence: 0.8,
				Reasoning:  fmt.Sprintf("Category extracted from text: %s", excerpt),
			}, true
		}
	}
	return domain.Classification{}, false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
