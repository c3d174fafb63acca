package types

// CellErrorKind classifies per-cell import failures
type CellErrorKind string

const (
	ErrUnrecognizedType CellErrorKind = "unrecognized_type"
	ErrInvalidField     CellErrorKind = "invalid_field"
)

// CellError records one non-fatal, per-cell decode failure. Cell errors are
// accumulated in-band on the ImportResult; they never abort an import.
type CellError struct {
	CellIndex  int           `json:"cell_index"`
	Kind       CellErrorKind `json:"kind"`
	WindowType string        `json:"window_type,omitempty"`
	Field      string        `json:"field,omitempty"`
	Message    string        `json:"message"`
}

// ImportResult is the outcome of decoding a Document into window records
type ImportResult struct {
	RestoredWindows  []*WindowRecord   `json:"restored_windows"`
	Errors           []CellError       `json:"errors"`
	IDMapping        map[int]int       `json:"id_mapping"`
	OriginalMetadata *DocumentMetadata `json:"original_metadata,omitempty"`
}
