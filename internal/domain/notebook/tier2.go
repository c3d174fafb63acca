package notebook

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pulto-app/pulto/backend/internal/shared/types"
)

// Tier 2: narrow heuristic pattern matcher, used only when the structured
// contract is missing. It recognizes a fixed set of literal forms: a
// bracketed numeric list assigned to a variable, a call-like token followed
// by comma-separated bracketed-list arguments, and quoted color/style
// keyword arguments. The first two bracketed numeric lists found become the
// two chart series.

var (
	listAssignPattern = regexp.MustCompile(`(?m)^\s*[A-Za-z_][A-Za-z0-9_]*\s*=\s*(\[[^\[\]]*\])`)
	callArgsPattern   = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_.]*\s*\(\s*(\[[^\[\]]*\])\s*,\s*(\[[^\[\]]*\])`)
	kwargPattern      = regexp.MustCompile(`(color|linestyle|linewidth|style)\s*=\s*['"]([^'"]*)['"]`)
	nestedListPattern = regexp.MustCompile(`\[\s*\[[^\[\]]*\](?:\s*,\s*\[[^\[\]]*\])*\s*\]`)
	dictEntryPattern  = regexp.MustCompile(`['"]([^'"]+)['"]\s*:\s*(\[[^\[\]]*\])`)
	shapeTuplePattern = regexp.MustCompile(`\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)`)
	modelFilePattern  = regexp.MustCompile(`['"]([\w./ -]+)\.(usdz|usd|obj|stl|glb|gltf)['"]`)
)

// numericListsInOrder returns every bracketed numeric list that appears as
// an assignment value or a call argument, in source order
func numericListsInOrder(source string) [][]float64 {
	type match struct {
		pos  int
		text string
	}
	var found []match
	for _, idx := range listAssignPattern.FindAllStringSubmatchIndex(source, -1) {
		found = append(found, match{idx[2], source[idx[2]:idx[3]]})
	}
	for _, idx := range callArgsPattern.FindAllStringSubmatchIndex(source, -1) {
		found = append(found, match{idx[2], source[idx[2]:idx[3]]})
		found = append(found, match{idx[4], source[idx[4]:idx[5]]})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].pos < found[j].pos })

	var lists [][]float64
	seen := make(map[int]bool)
	for _, m := range found {
		if seen[m.pos] {
			continue
		}
		seen[m.pos] = true
		if values, ok := parseNumberList(m.text); ok && len(values) > 0 {
			lists = append(lists, values)
		}
	}
	return lists
}

// chartFromHeuristics recovers a chart from plotting-style code
func chartFromHeuristics(source string) (*types.ChartPayload, bool) {
	lists := numericListsInOrder(source)
	if len(lists) < 2 {
		return nil, false
	}

	payload := &types.ChartPayload{
		XData:     lists[0],
		YData:     lists[1],
		ChartType: "line",
	}
	if strings.Contains(source, "scatter(") {
		payload.ChartType = "scatter"
	} else if strings.Contains(source, "bar(") {
		payload.ChartType = "bar"
	}

	for _, kw := range kwargPattern.FindAllStringSubmatch(source, -1) {
		switch kw[1] {
		case "color":
			if payload.Color == "" {
				payload.Color = kw[2]
			}
		case "linestyle", "style":
			if payload.Style == "" {
				payload.Style = kw[2]
			}
		}
	}
	return payload, true
}

// tableFromHeuristics decodes a dictionary-of-columns literal
// (column name -> bracketed value list) into row-major form
func tableFromHeuristics(source string) (*types.TablePayload, bool) {
	entries := dictEntryPattern.FindAllStringSubmatch(source, -1)
	if len(entries) == 0 {
		return nil, false
	}

	var columns []string
	var columnValues [][]string
	rowCount := 0
	for _, entry := range entries {
		elems, ok := splitBracketList(entry[2])
		if !ok {
			continue
		}
		values := make([]string, len(elems))
		for i, e := range elems {
			values[i] = unquote(e)
		}
		columns = append(columns, entry[1])
		columnValues = append(columnValues, values)
		if len(values) > rowCount {
			rowCount = len(values)
		}
	}
	if len(columns) == 0 {
		return nil, false
	}

	rows := make([][]string, rowCount)
	for r := range rows {
		row := make([]string, len(columns))
		for c := range columns {
			if r < len(columnValues[c]) {
				row[c] = columnValues[c][r]
			}
		}
		rows[r] = row
	}

	return &types.TablePayload{
		Columns:   columns,
		Rows:      rows,
		DataTypes: inferColumnTypes(columns, rows),
	}, true
}

// pointCloudFromHeuristics recovers points from the first nested numeric
// list literal with at least three coordinates per row
func pointCloudFromHeuristics(source string) (*types.PointCloudPayload, bool) {
	for _, literal := range nestedListPattern.FindAllString(source, -1) {
		points, ok := parsePointList(literal)
		if !ok || len(points) == 0 {
			continue
		}
		return &types.PointCloudPayload{
			Points:      points,
			TotalPoints: len(points),
		}, true
	}
	return nil, false
}

// volumeFromHeuristics recovers grid dimensions from a 3-element shape tuple
func volumeFromHeuristics(source string) (*types.VolumePayload, bool) {
	m := shapeTuplePattern.FindStringSubmatch(source)
	if m == nil {
		return nil, false
	}
	dims, ok := parseIntList("[" + m[1] + ", " + m[2] + ", " + m[3] + "]")
	if !ok {
		return nil, false
	}
	return &types.VolumePayload{Dims: dims}, true
}

// model3DFromHeuristics recovers a model reference from a quoted asset path
func model3DFromHeuristics(source string) (*types.Model3DPayload, bool) {
	m := modelFilePattern.FindStringSubmatch(source)
	if m == nil {
		return nil, false
	}
	return &types.Model3DPayload{
		ModelName: m[1] + "." + m[2],
		Format:    m[2],
		Scale:     1.0,
	}, true
}
