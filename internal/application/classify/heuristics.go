package classify

import (
	"fmt"
	"strings"

	domain "github.com/mohramadan911/watsonx-document-processor/internal/domain/classify"
)

// Keyword lists per kategori untuk tier heuristik. Urutan evaluasi:
// financial dulu (threshold 2), lalu technical dan HR (threshold 3).

var financialTerms = []string{
	"income statement", "balance sheet", "cash flow", "profit and loss",
	"financial statement", "revenue", "earnings", "asset", "liability",
	"equity", "depreciation", "amortization", "fiscal", "dividend",
	"retained earnings", "accounts payable", "accounts receivable",
}

var financialFileHints = []string{"financial", "finance", "account", "budget", "invoice", "statement"}

var technicalTerms = []string{
	"code", "software", "hardware", "system", "network",
	"protocol", "algorithm", "function", "class", "method",
	"api", "interface", "database", "server", "client",
	"programming", "development", "deployment", "architecture",
}

var technicalFileHints = []string{"tech", "code", "api", "system", "program", "software"}

var hrTerms = []string{
	"employee", "resume", "cv", "career", "performance review",
	"benefits", "hr policy", "hiring", "recruitment", "personnel",
	"salary", "compensation", "training", "handbook",
}

var hrFileHints = []string{"hr", "employee", "resume", "cv", "career", "recruitment"}

// classifyByHeuristics is the last tier: score content + filename against
// curated keyword lists. Confidence scales with hit count, capped at 0.9.
func (s *Service) classifyByHeuristics(content, filename string) domain.Classification {
	contentLower := strings.ToLower(content)
	fileLower := strings.ToLower(filename)

	if c, ok := scoreCategory(domain.CategoryFinancial, "financial", contentLower, fileLower, financialTerms, financialFileHints, 2); ok {
		return c
	}
	if c, ok := scoreCategory(domain.CategoryTechnical, "technical", contentLower, fileLower, technicalTerms, technicalFileHints, 3); ok {
		return c
	}
	if c, ok := scoreCategory(domain.CategoryHR, "HR", contentLower, fileLower, hrTerms, hrFileHints, 3); ok {
		return c
	}

	return domain.Classification{
		Category:   domain.CategoryGeneral,
		Confidence: 0.3,
		Reasoning:  "Classification based on fallback heuristics - limited confidence",
	}
}

func scoreCategory(cat domain.Category, label, content, filename string, terms, fileHints []string, minHits int) (domain.Classification, bool) {
	hits := 0
	for _, term := range terms {
		if strings.Contains(content, term) {
			hits++
		}
	}
	fileMatch := false
	for _, hint := range fileHints {
		if strings.Contains(filename, hint) {
			fileMatch = true
			break
		}
	}

	if hits < minHits && !fileMatch {
		return domain.Classification{}, false
	}

	confidence := 0.6 + float64(hits)*0.05
	if confidence > 0.9 {
		confidence = 0.9
	}
	reasoning := fmt.Sprintf("Detected %d %s terms in document content", hits, label)
	if fileMatch {
		reasoning += fmt.Sprintf(" and filename suggests %s content", label)
	}
	return domain.Classification{
		Category:   cat,
		Confidence: confidence,
		Reasoning:  reasoning,
	}, true
}
