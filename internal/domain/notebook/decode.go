package notebook

import (
	"encoding/json"
	"time"

	"github.com/pulto-app/pulto/backend/internal/shared/types"
)

// Cell metadata decoding. Every field decodes independently into a typed
// intermediate record; a field that fails its grammar is reported as an
// issue and replaced by its default, so one bad field never loses the cell.

// fieldIssue records one metadata field that failed to decode
type fieldIssue struct {
	Field   string
	Message string
}

// cellEnvelope is the typed intermediate produced from raw cell metadata,
// with all defaults already applied
type cellEnvelope struct {
	WindowType string
	WindowID   *int
	Position   types.Position
	State      types.CellState
	Template   types.ExportTemplate
	Tags       []string
	Modified   time.Time // zero when absent or unparseable
	Issues     []fieldIssue
}

func defaultEnvelope() cellEnvelope {
	return cellEnvelope{
		Position: types.DefaultPosition(),
		State:    types.CellState{Minimized: false, Maximized: false, Opacity: 1.0},
		Template: types.DefaultTemplate,
		Tags:     []string{},
	}
}

// decodeCellMetadata is total: it always yields a usable envelope
func decodeCellMetadata(raw json.RawMessage) cellEnvelope {
	env := defaultEnvelope()
	if len(raw) == 0 || string(raw) == "null" {
		return env
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		env.Issues = append(env.Issues, fieldIssue{"metadata", "cell metadata is not an object"})
		return env
	}

	if data, ok := fields["window_type"]; ok {
		if err := json.Unmarshal(data, &env.WindowType); err != nil {
			env.Issues = append(env.Issues, fieldIssue{"window_type", "not a string"})
		}
	}

	if data, ok := fields["window_id"]; ok {
		var id int
		if err := json.Unmarshal(data, &id); err != nil {
			env.Issues = append(env.Issues, fieldIssue{"window_id", "not an integer"})
		} else {
			env.WindowID = &id
		}
	}

	if data, ok := fields["position"]; ok {
		env.Position = decodePosition(data, &env.Issues)
	}

	if data, ok := fields["state"]; ok {
		env.State = decodeState(data, &env.Issues)
	}

	if data, ok := fields["export_template"]; ok {
		var tag string
		// Invalid or unrecognized template tags fall back silently
		if json.Unmarshal(data, &tag) == nil {
			env.Template = types.ParseExportTemplate(tag)
		}
	}

	if data, ok := fields["tags"]; ok {
		var tags []string
		if err := json.Unmarshal(data, &tags); err != nil {
			env.Issues = append(env.Issues, fieldIssue{"tags", "not a string array"})
		} else if tags != nil {
			env.Tags = tags
		}
	}

	if data, ok := fields["timestamps"]; ok {
		env.Modified = decodeModified(data)
	}

	return env
}

// decodePosition applies per-axis defaulting: each coordinate is
// independently defaultable
func decodePosition(data json.RawMessage, issues *[]fieldIssue) types.Position {
	pos := types.DefaultPosition()
	var raw struct {
		X      *float64 `json:"x"`
		Y      *float64 `json:"y"`
		Z      *float64 `json:"z"`
		Width  *float64 `json:"width"`
		Height *float64 `json:"height"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		*issues = append(*issues, fieldIssue{"position", "not a position object"})
		return pos
	}
	if raw.X != nil {
		pos.X = *raw.X
	}
	if raw.Y != nil {
		pos.Y = *raw.Y
	}
	if raw.Z != nil {
		pos.Z = *raw.Z
	}
	if raw.Width != nil {
		pos.Width = *raw.Width
	}
	if raw.Height != nil {
		pos.Height = *raw.Height
	}
	return pos
}

func decodeState(data json.RawMessage, issues *[]fieldIssue) types.CellState {
	state := types.CellState{Opacity: 1.0}
	var raw struct {
		Minimized *bool    `json:"minimized"`
		Maximized *bool    `json:"maximized"`
		Opacity   *float64 `json:"opacity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		*issues = append(*issues, fieldIssue{"state", "not a state object"})
		return state
	}
	if raw.Minimized != nil {
		state.Minimized = *raw.Minimized
	}
	if raw.Maximized != nil {
		state.Maximized = *raw.Maximized
	}
	if raw.Opacity != nil {
		state.Opacity = *raw.Opacity
	}
	return state
}

// decodeModified parses the ISO-8601 modification time. Missing or
// unparseable timestamps are ignored; the importer substitutes "now".
func decodeModified(data json.RawMessage) time.Time {
	var raw struct {
		Modified string `json:"modified"`
	}
	if json.Unmarshal(data, &raw) != nil || raw.Modified == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, raw.Modified); err == nil {
			return ts
		}
	}
	return time.Time{}
}
