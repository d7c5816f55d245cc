package classify

import "context"

// Model port (interface untuk text-generation model).
// Output is untrusted free text; the caller must tolerate malformed JSON.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TextIndex is a queryable view over an extracted document.
type TextIndex interface {
	Search(query string) (string, error)
	Metadata() map[string]string
}

// Extractor port (interface untuk text-extraction collaborator)
type Extractor interface {
	Open(path string) (TextIndex, error)
}
