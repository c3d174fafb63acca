package notebook

import (
	"strconv"
	"strings"

	"github.com/pulto-app/pulto/backend/internal/shared/types"
)

// Tier 1: deterministic, single-pass, line-oriented scan of the structured
// contract. Each recognized key has a small fixed grammar for its value and
// decodes independently; unrecognized lines are ignored. Contract lines are
// emitted as "# key: value" comments but decode identically without the
// leading "#".

// contractKeys is the closed set of recognized contract tags
var contractKeys = map[string]bool{
	"type": true, "title": true, "xlabel": true, "ylabel": true,
	"color": true, "style": true, "x": true, "y": true,
	"columns": true, "dtypes": true, "rows": true,
	"demo": true, "total": true, "points": true,
	"dims": true, "spacing": true, "channel": true,
	"model": true, "format": true, "scale": true,
}

// contractFields maps contract keys to their raw (untrimmed-grammar) values
type contractFields map[string]string

// scanContract collects contract tags from source text. First occurrence of
// a key wins; everything else is ignored.
func scanContract(source string) contractFields {
	fields := make(contractFields)
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimLeft(line, "#"))
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if !contractKeys[key] {
			continue
		}
		if _, seen := fields[key]; seen {
			continue
		}
		fields[key] = strings.TrimSpace(value)
	}
	return fields
}

// chartFromContract requires both series; all other fields are optional
func chartFromContract(f contractFields) (*types.ChartPayload, bool) {
	xs, okX := parseNumberList(f["x"])
	ys, okY := parseNumberList(f["y"])
	if !okX || !okY {
		return nil, false
	}
	return &types.ChartPayload{
		Title:     f["title"],
		ChartType: f["type"],
		XLabel:    f["xlabel"],
		YLabel:    f["ylabel"],
		XData:     xs,
		YData:     ys,
		Color:     f["color"],
		Style:     f["style"],
	}, true
}

// tableFromContract requires the column list
func tableFromContract(f contractFields) (*types.TablePayload, bool) {
	columns, ok := parseStringList(f["columns"])
	if !ok {
		return nil, false
	}
	rows, _ := parseRowList(f["rows"])
	if rows == nil {
		rows = [][]string{}
	}
	dtypes, _ := parseTypeMap(f["dtypes"])
	if dtypes == nil {
		dtypes = inferColumnTypes(columns, rows)
	}
	return &types.TablePayload{Columns: columns, Rows: rows, DataTypes: dtypes}, true
}

// pointCloudFromContract requires the point list; totalPoints is recomputed
// from the decoded list so the length invariant always holds
func pointCloudFromContract(f contractFields) (*types.PointCloudPayload, bool) {
	points, ok := parsePointList(f["points"])
	if !ok {
		return nil, false
	}
	return &types.PointCloudPayload{
		Title:       f["title"],
		DemoType:    f["demo"],
		Points:      points,
		TotalPoints: len(points),
	}, true
}

// volumeFromContract requires the grid dimensions
func volumeFromContract(f contractFields) (*types.VolumePayload, bool) {
	dims, ok := parseIntList(f["dims"])
	if !ok || len(dims) == 0 {
		return nil, false
	}
	spacing, _ := parseNumberList(f["spacing"])
	return &types.VolumePayload{
		Title:   f["title"],
		Dims:    dims,
		Spacing: spacing,
		Channel: f["channel"],
	}, true
}

// model3DFromContract requires the model name
func model3DFromContract(f contractFields) (*types.Model3DPayload, bool) {
	model := f["model"]
	if model == "" {
		return nil, false
	}
	scale, ok := parseNumber(f["scale"])
	if !ok {
		scale = 1.0
	}
	return &types.Model3DPayload{
		Title:     f["title"],
		ModelName: model,
		Format:    f["format"],
		Scale:     scale,
	}, true
}

// --- value grammars ---

// splitBracketList splits "[a, b, [c, d]]" into its top-level elements,
// respecting nested brackets and quoted strings
func splitBracketList(s string) ([]string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, false
	}
	inner := s[1 : len(s)-1]
	if strings.TrimSpace(inner) == "" {
		return []string{}, true
	}

	var elems []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++ // escaped character, never a closing quote
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth < 0 {
				return nil, false
			}
		case c == ',' && depth == 0:
			elems = append(elems, strings.TrimSpace(inner[start:i]))
			start = i + 1
		}
	}
	if depth != 0 || quote != 0 {
		return nil, false
	}
	elems = append(elems, strings.TrimSpace(inner[start:]))
	return elems, true
}

// parseNumber decodes a single decimal literal
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseNumberList decodes "[1, 2.5, 3]"
func parseNumberList(s string) ([]float64, bool) {
	elems, ok := splitBracketList(s)
	if !ok {
		return nil, false
	}
	values := make([]float64, 0, len(elems))
	for _, e := range elems {
		v, ok := parseNumber(e)
		if !ok {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}

// parseIntList decodes "[64, 64, 32]"
func parseIntList(s string) ([]int, bool) {
	values, ok := parseNumberList(s)
	if !ok {
		return nil, false
	}
	ints := make([]int, len(values))
	for i, v := range values {
		ints[i] = int(v)
	}
	return ints, true
}

// unquote strips one layer of matching single or double quotes and reverses
// the escaping applied by the generators
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return unescapeQuoted(s[1 : len(s)-1])
		}
	}
	return s
}

func unescapeQuoted(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// parseStringList decodes `["a", "b"]` (single or double quoted)
func parseStringList(s string) ([]string, bool) {
	elems, ok := splitBracketList(s)
	if !ok {
		return nil, false
	}
	values := make([]string, 0, len(elems))
	for _, e := range elems {
		values = append(values, unquote(e))
	}
	return values, true
}

// parseRowList decodes `[["a", "1"], ["b", "2"]]` into row-major tuples
func parseRowList(s string) ([][]string, bool) {
	elems, ok := splitBracketList(s)
	if !ok {
		return nil, false
	}
	rows := make([][]string, 0, len(elems))
	for _, e := range elems {
		row, ok := parseStringList(e)
		if !ok {
			return nil, false
		}
		rows = append(rows, row)
	}
	return rows, true
}

// parsePointList decodes `[[x, y, z], [x, y, z, intensity], ...]`
func parsePointList(s string) ([]types.Point, bool) {
	elems, ok := splitBracketList(s)
	if !ok {
		return nil, false
	}
	points := make([]types.Point, 0, len(elems))
	for _, e := range elems {
		coords, ok := parseNumberList(e)
		if !ok || len(coords) < 3 {
			return nil, false
		}
		pt := types.Point{X: coords[0], Y: coords[1], Z: coords[2]}
		if len(coords) >= 4 {
			intensity := coords[3]
			pt.Intensity = &intensity
		}
		points = append(points, pt)
	}
	return points, true
}

// parseTypeMap decodes "name:str, age:int" into a column type mapping
func parseTypeMap(s string) (map[string]types.ColumnType, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	dtypes := make(map[string]types.ColumnType)
	for _, pair := range strings.Split(s, ",") {
		name, kind, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, false
		}
		name = unquote(strings.TrimSpace(name))
		switch types.ColumnType(strings.TrimSpace(kind)) {
		case types.ColumnInt:
			dtypes[name] = types.ColumnInt
		case types.ColumnFloat:
			dtypes[name] = types.ColumnFloat
		case types.ColumnString:
			dtypes[name] = types.ColumnString
		default:
			return nil, false
		}
	}
	return dtypes, true
}

// inferColumnTypes samples all values of each column: integer if every value
// parses as an integer, float if every value parses as a number, string
// otherwise
func inferColumnTypes(columns []string, rows [][]string) map[string]types.ColumnType {
	dtypes := make(map[string]types.ColumnType, len(columns))
	for i, col := range columns {
		allInt, allFloat := true, true
		sampled := false
		for _, row := range rows {
			if i >= len(row) {
				continue
			}
			sampled = true
			v := strings.TrimSpace(row[i])
			if _, err := strconv.Atoi(v); err != nil {
				allInt = false
			}
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				allFloat = false
			}
		}
		switch {
		case sampled && allInt:
			dtypes[col] = types.ColumnInt
		case sampled && allFloat:
			dtypes[col] = types.ColumnFloat
		default:
			dtypes[col] = types.ColumnString
		}
	}
	return dtypes
}
