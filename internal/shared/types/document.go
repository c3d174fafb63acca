package types

import (
	"encoding/json"
	"strings"
)

// Cell kinds in an nbformat v4 document
const (
	CellMarkdown = "markdown"
	CellCode     = "code"
)

// NBFormat identifies the notebook interchange convention version
const (
	NBFormat      = 4
	NBFormatMinor = 5
)

// SourceText is nbformat cell source: a plain string or a list of line
// fragments. Both decode to the joined text; encoding always emits a string.
type SourceText string

// UnmarshalJSON accepts either a JSON string or an array of strings
func (s *SourceText) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = SourceText(text)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	*s = SourceText(strings.Join(lines, ""))
	return nil
}

// CellState mirrors the window presentation flags persisted per cell
type CellState struct {
	Minimized bool    `json:"minimized"`
	Maximized bool    `json:"maximized"`
	Opacity   float64 `json:"opacity"`
}

// Timestamps carries per-cell modification times as ISO-8601 strings
type Timestamps struct {
	Modified string `json:"modified,omitempty"`
}

// CellMetadata is the window contract attached to an exported cell. Every
// field is independently defaultable on import; only window-bearing cells
// carry a window_type tag.
type CellMetadata struct {
	WindowType     string      `json:"window_type,omitempty"`
	WindowID       *int        `json:"window_id,omitempty"`
	Position       *Position   `json:"position,omitempty"`
	State          *CellState  `json:"state,omitempty"`
	ExportTemplate string      `json:"export_template,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
	Timestamps     *Timestamps `json:"timestamps,omitempty"`
}

// Cell is one unit of a Document. Metadata stays raw so the import engine
// can decode each field independently with its own defaulting.
type Cell struct {
	CellType       string          `json:"cell_type"`
	Source         SourceText      `json:"source"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	Outputs        []interface{}   `json:"outputs,omitempty"`
	ExecutionCount *int            `json:"execution_count,omitempty"`
}

// DocumentMetadata is the top-level export summary
type DocumentMetadata struct {
	ExportDate      string   `json:"export_date,omitempty"`
	TotalWindows    int      `json:"total_windows,omitempty"`
	WindowTypes     []string `json:"window_types,omitempty"`
	ExportTemplates []string `json:"export_templates,omitempty"`
	AllTags         []string `json:"all_tags,omitempty"`
}

// Document is the full persisted cell-array snapshot of a workspace,
// compatible with the nbformat v4 interchange convention
type Document struct {
	Cells         []Cell            `json:"cells"`
	Metadata      *DocumentMetadata `json:"metadata,omitempty"`
	NBFormat      int               `json:"nbformat"`
	NBFormatMinor int               `json:"nbformat_minor"`
}
