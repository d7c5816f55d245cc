package docs

import "time"

// Document identitas (container, key) + cache lokal sementara.
// LocalPath dihapus setelah pipeline selesai (sukses maupun gagal).
type Document struct {
	Container   string `json:"container"`
	Key         string `json:"key"`
	LocalPath   string `json:"-"`
	Size        int64  `json:"size"`
	ContentHash string `json:"content_hash,omitempty"`
}

// ObjectInfo listing entry dari object store
type ObjectInfo struct {
	Key      string    `json:"key"`
	IsFolder bool      `json:"is_folder"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// PlacementDecision where a classified document should live.
// TargetKey == OriginalKey means the document is already filed correctly.
type PlacementDecision struct {
	TargetKey     string `json:"target_key"`
	FolderName    string `json:"folder_name"`
	OriginalKey   string `json:"original_key"`
	FolderCreated bool   `json:"folder_created"`
}

// OrganizationResult outcome of the physical move. A failed delete after a
// successful copy keeps Success=true and surfaces the problem via Warning.
type OrganizationResult struct {
	Success   bool   `json:"success"`
	TargetKey string `json:"target_key,omitempty"`
	Warning   string `json:"warning,omitempty"`
	Error     string `json:"error,omitempty"`
}

// OrganizeOutcome is the full classify-and-organize report returned to callers.
type OrganizeOutcome struct {
	Success        bool    `json:"success"`
	Category       string  `json:"category,omitempty"`
	CustomCategory string  `json:"custom_category,omitempty"`
	Folder         string  `json:"folder,omitempty"`
	Confidence     float64 `json:"confidence,omitempty"`
	Reasoning      string  `json:"reasoning,omitempty"`
	TargetKey      string  `json:"target_key,omitempty"`
	OriginalKey    string  `json:"original_key,omitempty"`
	IsCustom       bool    `json:"is_custom_category,omitempty"`
	Warning        string  `json:"warning,omitempty"`
	Error          string  `json:"error,omitempty"`
}
