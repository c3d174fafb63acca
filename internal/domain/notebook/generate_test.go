package notebook

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulto-app/pulto/backend/internal/shared/types"
)

func floatPtr(v float64) *float64 { return &v }

func TestGenerateChartRoundTrip(t *testing.T) {
	payload := &types.ChartPayload{
		ChartType: "scatter",
		Title:     "Sensor Drift",
		XLabel:    "time",
		YLabel:    "offset",
		Color:     "blue",
		Style:     "--",
		XData:     []float64{0, 0.5, 1.0000001},
		YData:     []float64{-3, 1e-9, 42},
	}

	for _, template := range []types.ExportTemplate{
		types.TemplateMatplotlib, types.TemplatePlotly, types.TemplateMinimal,
	} {
		t.Run(string(template), func(t *testing.T) {
			source := GenerateChart(payload, template)
			assert.True(t, strings.HasPrefix(source, contractHeader))

			got := ExtractChart(source)
			assert.Equal(t, payload, got)
		})
	}
}

func TestGenerateChartSkipsEmptyTags(t *testing.T) {
	source := GenerateChart(&types.ChartPayload{
		ChartType: "line",
		XData:     []float64{1},
		YData:     []float64{2},
	}, types.TemplateMatplotlib)

	assert.NotContains(t, source, "# title:")
	assert.NotContains(t, source, "# color:")
	assert.Contains(t, source, "# x: [1]")
}

func TestGenerateTableRoundTrip(t *testing.T) {
	payload := &types.TablePayload{
		Columns: []string{"name", "age", "score"},
		Rows: [][]string{
			{"alice", "30", "9.5"},
			{"bob", "25", "7.25"},
		},
		DataTypes: map[string]types.ColumnType{
			"name":  types.ColumnString,
			"age":   types.ColumnInt,
			"score": types.ColumnFloat,
		},
	}

	got := ExtractTable(GenerateTable(payload))
	assert.Equal(t, payload, got)
}

func TestGenerateTableRoundTripQuotedValues(t *testing.T) {
	payload := &types.TablePayload{
		Columns: []string{`size "large"`, "note"},
		Rows: [][]string{
			{`say "hi"`, `back\slash`},
			{"plain", `mixed "quotes" \ and more`},
		},
		DataTypes: map[string]types.ColumnType{
			`size "large"`: types.ColumnString,
			"note":         types.ColumnString,
		},
	}

	got := ExtractTable(GenerateTable(payload))
	assert.Equal(t, payload, got)
}

func TestGeneratePointCloudRoundTrip(t *testing.T) {
	payload := &types.PointCloudPayload{
		Title:       "Lidar Sweep",
		DemoType:    "sphere",
		TotalPoints: 3,
		Points: []types.Point{
			{X: 0, Y: 0, Z: 0, Intensity: floatPtr(0.25)},
			{X: 1.5, Y: -2, Z: 3},
			{X: 0.1, Y: 0.2, Z: 0.3, Intensity: floatPtr(1)},
		},
	}

	got := ExtractPointCloud(GeneratePointCloud(payload))
	assert.Equal(t, payload, got)
}

func TestGenerateVolumeRoundTrip(t *testing.T) {
	payload := &types.VolumePayload{
		Title:   "CT Scan",
		Dims:    []int{64, 64, 32},
		Spacing: []float64{1, 1, 2.5},
		Channel: "density",
	}

	got := ExtractVolume(GenerateVolume(payload))
	assert.Equal(t, payload, got)
}

func TestGenerateModel3DRoundTrip(t *testing.T) {
	payload := &types.Model3DPayload{
		Title:     "Turbine",
		ModelName: "turbine.usdz",
		Format:    "usdz",
		Scale:     0.75,
	}

	got := ExtractModel3D(GenerateModel3D(payload))
	assert.Equal(t, payload, got)
}

func TestGenerateSpatial(t *testing.T) {
	source := GenerateSpatial("notes about the scene")
	assert.Equal(t, "## Spatial Window\n\nnotes about the scene\n", source)

	assert.Equal(t, "## Spatial Window\n", GenerateSpatial(""))
}

func TestGenerateNilPayloadUsesPlaceholder(t *testing.T) {
	rec := &types.WindowRecord{
		WindowType: types.WindowCharts,
		State:      types.DefaultWindowState(),
	}
	source := Generate(rec)
	require.NotEmpty(t, source)
	assert.Equal(t, placeholderChart(), ExtractChart(source))
}
