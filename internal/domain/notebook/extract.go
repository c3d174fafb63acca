package notebook

import "github.com/pulto-app/pulto/backend/internal/shared/types"

// Extractors are total: when neither tier finds usable data they synthesize
// a small deterministic payload instead of returning nothing, so restored
// windows are never visually empty. A synthesis is a silent miss, not a
// cell error.

// ExtractChart recovers a chart payload from cell source text
func ExtractChart(source string) *types.ChartPayload {
	if p, ok := chartFromContract(scanContract(source)); ok {
		return p
	}
	if p, ok := chartFromHeuristics(source); ok {
		return p
	}
	return placeholderChart()
}

// ExtractTable recovers a table payload from cell source text
func ExtractTable(source string) *types.TablePayload {
	if p, ok := tableFromContract(scanContract(source)); ok {
		return p
	}
	if p, ok := tableFromHeuristics(source); ok {
		return p
	}
	return placeholderTable()
}

// ExtractPointCloud recovers a point cloud payload from cell source text
func ExtractPointCloud(source string) *types.PointCloudPayload {
	if p, ok := pointCloudFromContract(scanContract(source)); ok {
		return p
	}
	if p, ok := pointCloudFromHeuristics(source); ok {
		return p
	}
	return placeholderPointCloud()
}

// ExtractVolume recovers a volume payload from cell source text
func ExtractVolume(source string) *types.VolumePayload {
	if p, ok := volumeFromContract(scanContract(source)); ok {
		return p
	}
	if p, ok := volumeFromHeuristics(source); ok {
		return p
	}
	return placeholderVolume()
}

// ExtractModel3D recovers a 3D model payload from cell source text
func ExtractModel3D(source string) *types.Model3DPayload {
	if p, ok := model3DFromContract(scanContract(source)); ok {
		return p
	}
	if p, ok := model3DFromHeuristics(source); ok {
		return p
	}
	return placeholderModel3D()
}

// extractPayload dispatches on window type and sets the matching one-of
// pointer on the state. Spatial windows carry no payload; their source
// becomes the content text.
func extractPayload(windowType types.WindowType, source string, state *types.WindowState) {
	switch windowType {
	case types.WindowCharts:
		state.Chart = ExtractChart(source)
	case types.WindowTable:
		state.Table = ExtractTable(source)
	case types.WindowPointCloud:
		state.PointCloud = ExtractPointCloud(source)
	case types.WindowVolume:
		state.Volume = ExtractVolume(source)
	case types.WindowModel3D:
		state.Model3D = ExtractModel3D(source)
	case types.WindowSpatial:
		state.Content = source
	}
}

// --- placeholder synthesis ---

func placeholderChart() *types.ChartPayload {
	return &types.ChartPayload{
		Title:     "Restored Chart",
		ChartType: "line",
		XData:     []float64{1, 2, 3, 4, 5},
		YData:     []float64{1, 4, 9, 16, 25},
	}
}

func placeholderTable() *types.TablePayload {
	return &types.TablePayload{
		Columns:   []string{"value"},
		Rows:      [][]string{{"0"}},
		DataTypes: map[string]types.ColumnType{"value": types.ColumnInt},
	}
}

func placeholderPointCloud() *types.PointCloudPayload {
	intensity := 1.0
	return &types.PointCloudPayload{
		Title:       "Restored Point Cloud",
		DemoType:    "placeholder",
		Points:      []types.Point{{X: 0, Y: 0, Z: 0, Intensity: &intensity}},
		TotalPoints: 1,
	}
}

func placeholderVolume() *types.VolumePayload {
	return &types.VolumePayload{
		Title:   "Restored Volume",
		Dims:    []int{16, 16, 16},
		Spacing: []float64{1, 1, 1},
		Channel: "density",
	}
}

func placeholderModel3D() *types.Model3DPayload {
	return &types.Model3DPayload{
		Title:     "Restored Model",
		ModelName: "placeholder.usdz",
		Format:    "usdz",
		Scale:     1.0,
	}
}
