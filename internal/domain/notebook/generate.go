package notebook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pulto-app/pulto/backend/internal/shared/types"
)

// Content generators: pure payload -> source text, one per window type.
// Output is the structured contract (the authoritative round-trip path)
// followed by a fallback body of plotting-style code meant for display and
// secondary extraction.

const contractHeader = "# --- workspace contract ---"

// Generate produces cell source text for a window record
func Generate(rec *types.WindowRecord) string {
	switch rec.WindowType {
	case types.WindowCharts:
		return GenerateChart(rec.State.Chart, rec.State.ExportTemplate)
	case types.WindowTable:
		return GenerateTable(rec.State.Table)
	case types.WindowPointCloud:
		return GeneratePointCloud(rec.State.PointCloud)
	case types.WindowVolume:
		return GenerateVolume(rec.State.Volume)
	case types.WindowModel3D:
		return GenerateModel3D(rec.State.Model3D)
	case types.WindowSpatial:
		return GenerateSpatial(rec.State.Content)
	}
	return ""
}

// GenerateChart serializes a chart payload
func GenerateChart(p *types.ChartPayload, template types.ExportTemplate) string {
	if p == nil {
		p = placeholderChart()
	}

	var b strings.Builder
	b.WriteString(contractHeader + "\n")
	writeTag(&b, "type", p.ChartType)
	writeTag(&b, "title", p.Title)
	writeTag(&b, "xlabel", p.XLabel)
	writeTag(&b, "ylabel", p.YLabel)
	writeTag(&b, "color", p.Color)
	writeTag(&b, "style", p.Style)
	writeTag(&b, "x", formatNumberList(p.XData))
	writeTag(&b, "y", formatNumberList(p.YData))
	b.WriteString("\n")

	switch template {
	case types.TemplatePlotly:
		writeChartPlotly(&b, p)
	case types.TemplateMinimal:
		fmt.Fprintf(&b, "x = %s\ny = %s\n", formatNumberList(p.XData), formatNumberList(p.YData))
	default:
		writeChartMatplotlib(&b, p)
	}
	return b.String()
}

func writeChartMatplotlib(b *strings.Builder, p *types.ChartPayload) {
	b.WriteString("import matplotlib.pyplot as plt\n\n")
	fmt.Fprintf(b, "x = %s\n", formatNumberList(p.XData))
	fmt.Fprintf(b, "y = %s\n", formatNumberList(p.YData))

	call := "plot"
	switch p.ChartType {
	case "scatter":
		call = "scatter"
	case "bar":
		call = "bar"
	}
	args := "x, y"
	if p.Color != "" {
		args += fmt.Sprintf(", color='%s'", p.Color)
	}
	if p.Style != "" && call == "plot" {
		args += fmt.Sprintf(", linestyle='%s'", p.Style)
	}
	fmt.Fprintf(b, "plt.%s(%s)\n", call, args)
	if p.Title != "" {
		fmt.Fprintf(b, "plt.title('%s')\n", p.Title)
	}
	if p.XLabel != "" {
		fmt.Fprintf(b, "plt.xlabel('%s')\n", p.XLabel)
	}
	if p.YLabel != "" {
		fmt.Fprintf(b, "plt.ylabel('%s')\n", p.YLabel)
	}
	b.WriteString("plt.show()\n")
}

func writeChartPlotly(b *strings.Builder, p *types.ChartPayload) {
	b.WriteString("import plotly.graph_objects as go\n\n")
	mode := "lines"
	if p.ChartType == "scatter" {
		mode = "markers"
	}
	fmt.Fprintf(b, "fig = go.Figure(go.Scatter(x=%s, y=%s, mode='%s'))\n",
		formatNumberList(p.XData), formatNumberList(p.YData), mode)
	fmt.Fprintf(b, "fig.update_layout(title='%s', xaxis_title='%s', yaxis_title='%s')\n",
		p.Title, p.XLabel, p.YLabel)
	b.WriteString("fig.show()\n")
}

// GenerateTable serializes a table payload
func GenerateTable(p *types.TablePayload) string {
	if p == nil {
		p = placeholderTable()
	}

	var b strings.Builder
	b.WriteString(contractHeader + "\n")
	writeTag(&b, "columns", formatStringList(p.Columns))
	writeTag(&b, "dtypes", formatTypeMap(p.Columns, p.DataTypes))
	writeTag(&b, "rows", formatRowList(p.Rows))
	b.WriteString("\n")

	b.WriteString("import pandas as pd\n\n")
	fmt.Fprintf(&b, "data = %s\n", formatColumnDict(p))
	b.WriteString("df = pd.DataFrame(data)\ndf\n")
	return b.String()
}

// GeneratePointCloud serializes a point cloud payload
func GeneratePointCloud(p *types.PointCloudPayload) string {
	if p == nil {
		p = placeholderPointCloud()
	}

	var b strings.Builder
	b.WriteString(contractHeader + "\n")
	writeTag(&b, "title", p.Title)
	writeTag(&b, "demo", p.DemoType)
	writeTag(&b, "total", strconv.Itoa(len(p.Points)))
	writeTag(&b, "points", formatPointList(p.Points))
	b.WriteString("\n")

	b.WriteString("import numpy as np\nimport matplotlib.pyplot as plt\n\n")
	fmt.Fprintf(&b, "pts = np.array(%s)\n", formatPointList(p.Points))
	b.WriteString("fig = plt.figure()\n")
	b.WriteString("ax = fig.add_subplot(projection='3d')\n")
	b.WriteString("ax.scatter(pts[:, 0], pts[:, 1], pts[:, 2])\n")
	if p.Title != "" {
		fmt.Fprintf(&b, "ax.set_title('%s')\n", p.Title)
	}
	b.WriteString("plt.show()\n")
	return b.String()
}

// GenerateVolume serializes a volume payload
func GenerateVolume(p *types.VolumePayload) string {
	if p == nil {
		p = placeholderVolume()
	}

	var b strings.Builder
	b.WriteString(contractHeader + "\n")
	writeTag(&b, "title", p.Title)
	writeTag(&b, "dims", formatIntList(p.Dims))
	writeTag(&b, "spacing", formatNumberList(p.Spacing))
	writeTag(&b, "channel", p.Channel)
	b.WriteString("\n")

	b.WriteString("import numpy as np\n\n")
	shape := make([]string, len(p.Dims))
	for i, d := range p.Dims {
		shape[i] = strconv.Itoa(d)
	}
	fmt.Fprintf(&b, "volume = np.zeros((%s))\n", strings.Join(shape, ", "))
	fmt.Fprintf(&b, "print('volume', volume.shape, '%s')\n", p.Channel)
	return b.String()
}

// GenerateModel3D serializes a 3D model payload
func GenerateModel3D(p *types.Model3DPayload) string {
	if p == nil {
		p = placeholderModel3D()
	}

	var b strings.Builder
	b.WriteString(contractHeader + "\n")
	writeTag(&b, "title", p.Title)
	writeTag(&b, "model", p.ModelName)
	writeTag(&b, "format", p.Format)
	writeTag(&b, "scale", formatFloat(p.Scale))
	b.WriteString("\n")

	fmt.Fprintf(&b, "print('3D model: %s (%s), scale %s')\n",
		p.ModelName, p.Format, formatFloat(p.Scale))
	return b.String()
}

// GenerateSpatial renders a spatial window as markdown
func GenerateSpatial(content string) string {
	var b strings.Builder
	b.WriteString("## Spatial Window\n")
	if content != "" {
		b.WriteString("\n" + content + "\n")
	}
	return b.String()
}

// --- formatting helpers ---

// writeTag emits one contract line, skipping empty values
func writeTag(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "# %s: %s\n", key, value)
}

// formatFloat round-trips exactly through parseNumber
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatNumberList(values []float64) string {
	if values == nil {
		return ""
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatFloat(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatIntList(values []int) string {
	if values == nil {
		return ""
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatStringList(values []string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = `"` + escapeQuoted(v) + `"`
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// escapeQuoted protects backslashes and double quotes inside a quoted
// contract value; unquote reverses it
func escapeQuoted(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

func formatRowList(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	parts := make([]string, len(rows))
	for i, row := range rows {
		parts[i] = formatStringList(row)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatPointList(points []types.Point) string {
	parts := make([]string, len(points))
	for i, pt := range points {
		coords := []string{formatFloat(pt.X), formatFloat(pt.Y), formatFloat(pt.Z)}
		if pt.Intensity != nil {
			coords = append(coords, formatFloat(*pt.Intensity))
		}
		parts[i] = "[" + strings.Join(coords, ", ") + "]"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatTypeMap emits "col:type" pairs in column order
func formatTypeMap(columns []string, dtypes map[string]types.ColumnType) string {
	if len(dtypes) == 0 {
		return ""
	}
	var parts []string
	for _, col := range columns {
		if kind, ok := dtypes[col]; ok {
			parts = append(parts, col+":"+string(kind))
		}
	}
	return strings.Join(parts, ", ")
}

// formatColumnDict renders the fallback dict-of-columns literal; numeric
// columns keep bare literals so the heuristic table decoder can infer types
func formatColumnDict(p *types.TablePayload) string {
	var parts []string
	for i, col := range p.Columns {
		values := make([]string, len(p.Rows))
		for r, row := range p.Rows {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			switch p.DataTypes[col] {
			case types.ColumnInt, types.ColumnFloat:
				values[r] = v
			default:
				values[r] = "'" + v + "'"
			}
		}
		parts = append(parts, fmt.Sprintf("'%s': [%s]", col, strings.Join(values, ", ")))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
