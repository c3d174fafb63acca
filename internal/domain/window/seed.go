package window

import (
	"time"

	"github.com/pulto-app/pulto/backend/internal/shared/types"
)

// SeedDemo populates the store with one window of each payload type so a
// fresh workspace has something to export. Returns the assigned ids.
func SeedDemo(store *Store, now time.Time) []int {
	intensity := 0.8

	chartState := demoState(now, "demo", "chart")
	chartState.Chart = &types.ChartPayload{
		Title:     "Monthly Sales Trend",
		ChartType: "line",
		XLabel:    "Month",
		YLabel:    "Sales ($)",
		XData:     []float64{1, 2, 3, 4, 5, 6},
		YData:     []float64{1000, 1200, 1100, 1300, 1500, 1400},
		Color:     "blue",
	}

	tableState := demoState(now, "demo", "table")
	tableState.Table = &types.TablePayload{
		Columns: []string{"month", "sales", "spend"},
		Rows: [][]string{
			{"Jan", "1000", "200.5"},
			{"Feb", "1200", "250.0"},
			{"Mar", "1100", "220.25"},
		},
		DataTypes: map[string]types.ColumnType{
			"month": types.ColumnString,
			"sales": types.ColumnInt,
			"spend": types.ColumnFloat,
		},
	}

	cloudState := demoState(now, "demo", "pointcloud")
	cloudState.PointCloud = &types.PointCloudPayload{
		Title:    "Unit Axes",
		DemoType: "axes",
		Points: []types.Point{
			{X: 0, Y: 0, Z: 0, Intensity: &intensity},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
		TotalPoints: 4,
	}

	volumeState := demoState(now, "demo", "volume")
	volumeState.Volume = &types.VolumePayload{
		Title:   "Density Grid",
		Dims:    []int{32, 32, 16},
		Spacing: []float64{1, 1, 2},
		Channel: "density",
	}

	modelState := demoState(now, "demo", "model")
	modelState.Model3D = &types.Model3DPayload{
		Title:     "Teapot",
		ModelName: "teapot.usdz",
		Format:    "usdz",
		Scale:     1.5,
	}

	notesState := demoState(now, "demo", "notes")
	notesState.Content = "Demo workspace seeded for export testing."

	demos := []*types.WindowRecord{
		{
			WindowType: types.WindowCharts,
			Position:   types.Position{X: -200, Y: 100, Z: 0, Width: 480, Height: 360},
			State:      chartState,
		},
		{
			WindowType: types.WindowTable,
			Position:   types.Position{X: 320, Y: 100, Z: 0, Width: 520, Height: 300},
			State:      tableState,
		},
		{
			WindowType: types.WindowPointCloud,
			Position:   types.Position{X: 0, Y: 400, Z: -100, Width: 600, Height: 600},
			State:      cloudState,
		},
		{
			WindowType: types.WindowVolume,
			Position:   types.Position{X: -400, Y: 400, Z: -200, Width: 500, Height: 500},
			State:      volumeState,
		},
		{
			WindowType: types.WindowModel3D,
			Position:   types.Position{X: 400, Y: 400, Z: -200, Width: 400, Height: 400},
			State:      modelState,
		},
		{
			WindowType: types.WindowSpatial,
			Position:   types.Position{X: 0, Y: 800, Z: 0, Width: 400, Height: 200},
			State:      notesState,
		},
	}

	ids := make([]int, 0, len(demos))
	for _, rec := range demos {
		ids = append(ids, store.Add(rec))
	}
	return ids
}

func demoState(now time.Time, tags ...string) types.WindowState {
	state := types.DefaultWindowState()
	state.LastModified = now
	state.Tags = tags
	return state
}
