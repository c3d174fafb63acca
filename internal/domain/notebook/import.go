package notebook

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/pulto-app/pulto/backend/internal/domain/window"
	"github.com/pulto-app/pulto/backend/internal/logging"
	"github.com/pulto-app/pulto/backend/internal/shared/types"
)

// Importer decodes documents back into window records
type Importer struct {
	store *window.Store
	log   *logging.Logger
	clock func() time.Time
}

// NewImporter creates an importer committing into the given store
func NewImporter(store *window.Store, log *logging.Logger) *Importer {
	if log == nil {
		log = logging.NewNop()
	}
	return &Importer{
		store: store,
		log:   log,
		clock: time.Now,
	}
}

// WithClock overrides the timestamp source
func (im *Importer) WithClock(clock func() time.Time) *Importer {
	im.clock = clock
	return im
}

// Import parses document bytes and commits all successfully decoded windows
// into the store in a single batch. A *StructuralError aborts the whole
// import with the store untouched; per-cell failures are accumulated on the
// result and never abort.
func (im *Importer) Import(data []byte) (*types.ImportResult, error) {
	var outer struct {
		Cells    json.RawMessage `json:"cells"`
		Metadata json.RawMessage `json:"metadata"`
	}
	if err := sonic.Unmarshal(data, &outer); err != nil {
		return nil, &StructuralError{Reason: fmt.Sprintf("document is not a JSON object: %v", err)}
	}
	if len(outer.Cells) == 0 || string(outer.Cells) == "null" {
		return nil, &StructuralError{Reason: "document has no cells array"}
	}

	var cells []types.Cell
	if err := sonic.Unmarshal(outer.Cells, &cells); err != nil {
		return nil, &StructuralError{Reason: fmt.Sprintf("cells is not a list: %v", err)}
	}

	result := &types.ImportResult{
		RestoredWindows:  []*types.WindowRecord{},
		Errors:           []types.CellError{},
		IDMapping:        map[int]int{},
		OriginalMetadata: decodeDocumentMetadata(outer.Metadata),
	}

	nextID := im.store.MaxID() + 1
	for i, cell := range cells {
		env := decodeCellMetadata(cell.Metadata)
		if env.WindowType == "" {
			// Plain note cell: not a window, not an error
			continue
		}

		windowType, ok := types.ParseWindowType(env.WindowType)
		if !ok {
			result.Errors = append(result.Errors, types.CellError{
				CellIndex:  i,
				Kind:       types.ErrUnrecognizedType,
				WindowType: env.WindowType,
				Message:    fmt.Sprintf("unrecognized window type %q", env.WindowType),
			})
			continue
		}

		// Field-level decode failures are reported but the window survives
		// on defaults
		for _, issue := range env.Issues {
			result.Errors = append(result.Errors, types.CellError{
				CellIndex:  i,
				Kind:       types.ErrInvalidField,
				WindowType: env.WindowType,
				Field:      issue.Field,
				Message:    issue.Message,
			})
		}

		state := types.DefaultWindowState()
		state.Minimized = env.State.Minimized
		state.Maximized = env.State.Maximized
		state.Opacity = env.State.Opacity
		state.ExportTemplate = env.Template
		state.Tags = env.Tags
		state.LastModified = env.Modified
		if state.LastModified.IsZero() {
			state.LastModified = im.clock()
		}
		extractPayload(windowType, string(cell.Source), &state)

		rec := &types.WindowRecord{
			ID:         nextID,
			WindowType: windowType,
			Position:   env.Position,
			State:      state,
		}
		if env.WindowID != nil {
			result.IDMapping[*env.WindowID] = rec.ID
		}
		result.RestoredWindows = append(result.RestoredWindows, rec)
		nextID++
	}

	// Single batch mutation: nothing lands in the store until every cell
	// has been parsed
	im.store.Commit(result.RestoredWindows)

	im.log.Info("imported workspace document",
		zap.Int("cells", len(cells)),
		zap.Int("restored", len(result.RestoredWindows)),
		zap.Int("errors", len(result.Errors)))

	return result, nil
}

// decodeDocumentMetadata best-effort parses the top-level export summary;
// malformed metadata is never fatal
func decodeDocumentMetadata(raw json.RawMessage) *types.DocumentMetadata {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var md types.DocumentMetadata
	if err := sonic.Unmarshal(raw, &md); err != nil {
		return nil
	}
	return &md
}
