package types

import "time"

// WindowType identifies the kind of visualization a window presents
type WindowType string

const (
	WindowCharts     WindowType = "charts"
	WindowTable      WindowType = "table"
	WindowPointCloud WindowType = "pointcloud"
	WindowModel3D    WindowType = "model3d"
	WindowVolume     WindowType = "volume"
	WindowSpatial    WindowType = "spatial"
)

// ParseWindowType validates a window type tag against the closed enum
func ParseWindowType(s string) (WindowType, bool) {
	switch WindowType(s) {
	case WindowCharts, WindowTable, WindowPointCloud, WindowModel3D, WindowVolume, WindowSpatial:
		return WindowType(s), true
	}
	return "", false
}

// ExportTemplate selects the fallback-code dialect used when generating cell source
type ExportTemplate string

const (
	TemplateMatplotlib ExportTemplate = "matplotlib"
	TemplatePlotly     ExportTemplate = "plotly"
	TemplateMinimal    ExportTemplate = "minimal"

	// DefaultTemplate is substituted for missing or unrecognized template tags
	DefaultTemplate = TemplateMatplotlib
)

// ParseExportTemplate validates a template tag, falling back to the default
func ParseExportTemplate(s string) ExportTemplate {
	switch ExportTemplate(s) {
	case TemplateMatplotlib, TemplatePlotly, TemplateMinimal:
		return ExportTemplate(s)
	}
	return DefaultTemplate
}

// Position is window placement in the spatial workspace
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultPosition is substituted when a cell carries no usable position
func DefaultPosition() Position {
	return Position{X: 0, Y: 0, Z: 0, Width: 400, Height: 300}
}

// WindowState holds presentation state and the typed payload of a window
type WindowState struct {
	Minimized      bool           `json:"minimized"`
	Maximized      bool           `json:"maximized"`
	Opacity        float64        `json:"opacity"`
	LastModified   time.Time      `json:"last_modified"`
	Content        string         `json:"content,omitempty"`
	ExportTemplate ExportTemplate `json:"export_template"`
	Tags           []string       `json:"tags"`

	// Payload is a one-of; at most one pointer is set, matching the window type
	Chart      *ChartPayload      `json:"chart,omitempty"`
	Table      *TablePayload      `json:"table,omitempty"`
	PointCloud *PointCloudPayload `json:"pointcloud,omitempty"`
	Volume     *VolumePayload     `json:"volume,omitempty"`
	Model3D    *Model3DPayload    `json:"model3d,omitempty"`
}

// DefaultWindowState returns state defaults applied during import
func DefaultWindowState() WindowState {
	return WindowState{
		Minimized:      false,
		Maximized:      false,
		Opacity:        1.0,
		ExportTemplate: DefaultTemplate,
		Tags:           []string{},
	}
}

// WindowRecord represents one typed, independently positioned window
type WindowRecord struct {
	ID         int         `json:"id"`
	WindowType WindowType  `json:"window_type"`
	Position   Position    `json:"position"`
	State      WindowState `json:"state"`
}
