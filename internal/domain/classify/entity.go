package classify

import (
	"strings"
	"unicode"
)

// Category enum (department)
type Category string

const (
	CategoryTechnical  Category = "TECHNICAL"
	CategoryFinancial  Category = "FINANCIAL"
	CategoryHR         Category = "HR"
	CategoryLogistics  Category = "LOGISTICS"
	CategoryLegal      Category = "LEGAL"
	CategoryMarketing  Category = "MARKETING"
	CategoryOperations Category = "OPERATIONS"
	CategoryGeneral    Category = "GENERAL"
	CategoryCustom     Category = "CUSTOM"
)

// StandardCategories daftar kategori baku, urut sesuai prompt
var StandardCategories = []Category{
	CategoryTechnical,
	CategoryFinancial,
	CategoryHR,
	CategoryLogistics,
	CategoryLegal,
	CategoryMarketing,
	CategoryOperations,
	CategoryGeneral,
}

// folderNames mapping kategori → nama folder di object store
var folderNames = map[Category]string{
	CategoryTechnical:  "IT",
	CategoryFinancial:  "Financial",
	CategoryHR:         "HR",
	CategoryLogistics:  "Logistics",
	CategoryLegal:      "Legal",
	CategoryMarketing:  "Marketing",
	CategoryOperations: "Operations",
	CategoryGeneral:    "General",
}

// CategoryFromString maps a raw string to a standard category.
// Anything outside the fixed set comes back as CUSTOM.
func CategoryFromString(s string) Category {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := folderNames[c]; ok {
		return c
	}
	return CategoryCustom
}

// StandardFolders returns all standard folder names (used by the planner
// to recognize category segments inside existing keys).
func StandardFolders() []string {
	out := make([]string, 0, len(StandardCategories))
	for _, c := range StandardCategories {
		out = append(out, folderNames[c])
	}
	return out
}

// Classification hasil klasifikasi dokumen.
// Invariant: kalau Category == CUSTOM maka CustomLabel tidak boleh kosong.
type Classification struct {
	Category    Category `json:"category"`
	CustomLabel string   `json:"custom_category,omitempty"`
	Confidence  float64  `json:"confidence"`
	Reasoning   string   `json:"reasoning"`
	IsCustom    bool     `json:"is_custom"`
}

// FolderName resolves the target folder for this classification.
func (c Classification) FolderName() string {
	if c.IsCustom && c.CustomLabel != "" {
		return SanitizeFolderName(c.CustomLabel)
	}
	if name, ok := folderNames[c.Category]; ok {
		return name
	}
	return folderNames[CategoryGeneral]
}

// SanitizeFolderName makes a custom label safe as an object-store folder:
// first letter capitalized, spaces and non-alphanumerics replaced with '_'.
func SanitizeFolderName(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range label {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	out := b.String()
	return strings.ToUpper(out[:1]) + out[1:]
}
