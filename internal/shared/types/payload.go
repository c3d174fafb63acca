package types

// ColumnType is the inferred value type of a table column
type ColumnType string

const (
	ColumnInt    ColumnType = "int"
	ColumnFloat  ColumnType = "float"
	ColumnString ColumnType = "str"
)

// ChartPayload holds 2D chart data and styling
type ChartPayload struct {
	Title     string    `json:"title,omitempty"`
	ChartType string    `json:"chart_type,omitempty"`
	XLabel    string    `json:"x_label,omitempty"`
	YLabel    string    `json:"y_label,omitempty"`
	XData     []float64 `json:"x_data"`
	YData     []float64 `json:"y_data"`
	Color     string    `json:"color,omitempty"`
	Style     string    `json:"style,omitempty"`
}

// TablePayload holds row-major tabular data with per-column types
type TablePayload struct {
	Columns   []string              `json:"columns"`
	Rows      [][]string            `json:"rows"`
	DataTypes map[string]ColumnType `json:"data_types"`
}

// Point is one sample in a point cloud; intensity is optional
type Point struct {
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	Z         float64  `json:"z"`
	Intensity *float64 `json:"intensity,omitempty"`
}

// PointCloudPayload holds 3D scatter data.
// TotalPoints always equals len(Points).
type PointCloudPayload struct {
	Title       string  `json:"title,omitempty"`
	DemoType    string  `json:"demo_type,omitempty"`
	Points      []Point `json:"points"`
	TotalPoints int     `json:"total_points"`
}

// VolumePayload holds volumetric grid parameters
type VolumePayload struct {
	Title   string    `json:"title,omitempty"`
	Dims    []int     `json:"dims"`
	Spacing []float64 `json:"spacing,omitempty"`
	Channel string    `json:"channel,omitempty"`
}

// Model3DPayload references a 3D model asset
type Model3DPayload struct {
	Title     string  `json:"title,omitempty"`
	ModelName string  `json:"model_name"`
	Format    string  `json:"format,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}
