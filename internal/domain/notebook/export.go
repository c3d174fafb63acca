package notebook

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/pulto-app/pulto/backend/internal/domain/window"
	"github.com/pulto-app/pulto/backend/internal/logging"
	"github.com/pulto-app/pulto/backend/internal/shared/types"
)

// FileWriter is the collaborator used for the optional companion debug log.
// Write failures propagate to the caller unmodified.
type FileWriter interface {
	WriteFile(name string, data []byte) error
}

// ExportOptions controls document assembly
type ExportOptions struct {
	IncludeDebugInfo     bool
	IncludeWindowMetrics bool
	AppVersion           string
	DeviceInfo           string
	ExportDate           time.Time // zero means "now"
}

// Exporter serializes the window store into a document
type Exporter struct {
	store *window.Store
	debug FileWriter // optional
	log   *logging.Logger
	clock func() time.Time
}

// NewExporter creates an exporter over the given store
func NewExporter(store *window.Store, log *logging.Logger) *Exporter {
	if log == nil {
		log = logging.NewNop()
	}
	return &Exporter{
		store: store,
		log:   log,
		clock: time.Now,
	}
}

// WithDebugWriter sets the collaborator receiving companion debug logs
func (ex *Exporter) WithDebugWriter(w FileWriter) *Exporter {
	ex.debug = w
	return ex
}

// WithClock overrides the timestamp source
func (ex *Exporter) WithClock(clock func() time.Time) *Exporter {
	ex.clock = clock
	return ex
}

// Export assembles a document from the full store. It only fails when the
// optional debug log write fails; document assembly itself is total.
func (ex *Exporter) Export(opts ExportOptions) (*types.Document, error) {
	exportDate := opts.ExportDate
	if exportDate.IsZero() {
		exportDate = ex.clock()
	}
	windows := ex.store.List()

	doc := &types.Document{
		Cells:         []types.Cell{ex.summaryCell(windows, exportDate, opts)},
		NBFormat:      types.NBFormat,
		NBFormatMinor: types.NBFormatMinor,
	}

	exportID := uuid.New().String()
	if opts.IncludeDebugInfo {
		doc.Cells = append(doc.Cells, ex.debugCell(windows, exportID, exportDate))
	}

	for _, rec := range windows {
		doc.Cells = append(doc.Cells, ex.windowCell(rec, opts))
	}
	doc.Metadata = buildDocumentMetadata(windows, exportDate)

	if opts.IncludeDebugInfo && ex.debug != nil {
		if err := ex.writeDebugLog(windows, exportID, exportDate, opts); err != nil {
			return nil, fmt.Errorf("failed to write debug log: %w", err)
		}
	}

	ex.log.Info("exported workspace",
		zap.Int("windows", len(windows)),
		zap.String("export_id", exportID))

	return doc, nil
}

// ExportBytes marshals the exported document to JSON
func (ex *Exporter) ExportBytes(opts ExportOptions) ([]byte, error) {
	doc, err := ex.Export(opts)
	if err != nil {
		return nil, err
	}
	data, err := sonic.MarshalIndent(doc, "", " ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}

// summaryCell is the leading markdown note with window-type counts
func (ex *Exporter) summaryCell(windows []*types.WindowRecord, exportDate time.Time, opts ExportOptions) types.Cell {
	counts := make(map[types.WindowType]int)
	for _, rec := range windows {
		counts[rec.WindowType]++
	}
	kinds := make([]string, 0, len(counts))
	for wt := range counts {
		kinds = append(kinds, string(wt))
	}
	sort.Strings(kinds)

	var b strings.Builder
	b.WriteString("# Workspace Export\n\n")
	fmt.Fprintf(&b, "Exported %d windows on %s\n\n", len(windows), exportDate.Format(time.RFC3339))
	b.WriteString("| Window Type | Count |\n| --- | --- |\n")
	for _, wt := range kinds {
		fmt.Fprintf(&b, "| %s | %d |\n", wt, counts[types.WindowType(wt)])
	}
	if opts.AppVersion != "" || opts.DeviceInfo != "" {
		fmt.Fprintf(&b, "\n_%s_\n", strings.TrimSpace(opts.AppVersion+" "+opts.DeviceInfo))
	}

	return types.Cell{CellType: types.CellMarkdown, Source: types.SourceText(b.String())}
}

// debugCell carries a machine-readable metrics summary. It has no window
// metadata, so importers skip it.
func (ex *Exporter) debugCell(windows []*types.WindowRecord, exportID string, exportDate time.Time) types.Cell {
	var sampleCounts []float64
	var opacities []float64
	for _, rec := range windows {
		sampleCounts = append(sampleCounts, float64(sampleCount(rec)))
		opacities = append(opacities, rec.State.Opacity)
	}

	summary := map[string]interface{}{
		"export_id":    exportID,
		"export_date":  exportDate.Format(time.RFC3339),
		"window_count": len(windows),
	}
	if len(windows) > 0 {
		summary["samples_mean"] = stat.Mean(sampleCounts, nil)
		summary["samples_stddev"] = stat.StdDev(sampleCounts, nil)
		summary["opacity_mean"] = stat.Mean(opacities, nil)
	}

	data, _ := sonic.MarshalIndent(summary, "", " ")
	source := "# workspace debug info\ndebug = " + string(data) + "\n"
	return types.Cell{CellType: types.CellCode, Source: types.SourceText(source)}
}

// sampleCount approximates how much data a window carries
func sampleCount(rec *types.WindowRecord) int {
	switch {
	case rec.State.Chart != nil:
		return len(rec.State.Chart.XData) + len(rec.State.Chart.YData)
	case rec.State.Table != nil:
		return len(rec.State.Table.Rows)
	case rec.State.PointCloud != nil:
		return rec.State.PointCloud.TotalPoints
	case rec.State.Volume != nil:
		n := 1
		for _, d := range rec.State.Volume.Dims {
			n *= d
		}
		return n
	}
	return 0
}

// windowCell serializes one window into a content cell
func (ex *Exporter) windowCell(rec *types.WindowRecord, opts ExportOptions) types.Cell {
	source := Generate(rec)
	if opts.IncludeWindowMetrics {
		source = metricsPreamble(rec) + source
	}

	cellType := types.CellCode
	if rec.WindowType == types.WindowSpatial {
		cellType = types.CellMarkdown
	}

	windowID := rec.ID
	md := types.CellMetadata{
		WindowType: string(rec.WindowType),
		WindowID:   &windowID,
		Position:   &rec.Position,
		State: &types.CellState{
			Minimized: rec.State.Minimized,
			Maximized: rec.State.Maximized,
			Opacity:   rec.State.Opacity,
		},
		ExportTemplate: string(rec.State.ExportTemplate),
		Tags:           rec.State.Tags,
	}
	if !rec.State.LastModified.IsZero() {
		md.Timestamps = &types.Timestamps{Modified: rec.State.LastModified.Format(time.RFC3339)}
	}
	raw, _ := sonic.Marshal(md)

	return types.Cell{
		CellType: cellType,
		Source:   types.SourceText(source),
		Metadata: raw,
	}
}

// metricsPreamble emits human-readable window metrics as comment lines;
// none of its keys are contract tags
func metricsPreamble(rec *types.WindowRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# window %d metrics\n", rec.ID)
	fmt.Fprintf(&b, "# position (%s, %s, %s)\n",
		formatFloat(rec.Position.X), formatFloat(rec.Position.Y), formatFloat(rec.Position.Z))
	fmt.Fprintf(&b, "# size %sx%s\n",
		formatFloat(rec.Position.Width), formatFloat(rec.Position.Height))
	if !rec.State.LastModified.IsZero() {
		fmt.Fprintf(&b, "# modified %s\n", rec.State.LastModified.Format(time.RFC3339))
	}
	return b.String()
}

// buildDocumentMetadata assembles the top-level export summary
func buildDocumentMetadata(windows []*types.WindowRecord, exportDate time.Time) *types.DocumentMetadata {
	kinds := make(map[string]bool)
	templates := make(map[string]bool)
	tags := make(map[string]bool)
	for _, rec := range windows {
		kinds[string(rec.WindowType)] = true
		templates[string(rec.State.ExportTemplate)] = true
		for _, tag := range rec.State.Tags {
			tags[tag] = true
		}
	}

	return &types.DocumentMetadata{
		ExportDate:      exportDate.Format(time.RFC3339),
		TotalWindows:    len(windows),
		WindowTypes:     sortedKeys(kinds),
		ExportTemplates: sortedKeys(templates),
		AllTags:         sortedKeys(tags),
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// writeDebugLog emits the companion plain-text log through the collaborator
func (ex *Exporter) writeDebugLog(windows []*types.WindowRecord, exportID string, exportDate time.Time, opts ExportOptions) error {
	var b strings.Builder
	fmt.Fprintf(&b, "export %s\n", exportID)
	fmt.Fprintf(&b, "date %s\n", exportDate.Format(time.RFC3339))
	if opts.AppVersion != "" {
		fmt.Fprintf(&b, "app %s\n", opts.AppVersion)
	}
	if opts.DeviceInfo != "" {
		fmt.Fprintf(&b, "device %s\n", opts.DeviceInfo)
	}
	for _, rec := range windows {
		fmt.Fprintf(&b, "window %d type=%s pos=(%s, %s, %s) size=%sx%s tags=%s\n",
			rec.ID, rec.WindowType,
			formatFloat(rec.Position.X), formatFloat(rec.Position.Y), formatFloat(rec.Position.Z),
			formatFloat(rec.Position.Width), formatFloat(rec.Position.Height),
			strings.Join(rec.State.Tags, ","))
	}

	name := fmt.Sprintf("export-%s.log", exportDate.Format("20060102-150405"))
	return ex.debug.WriteFile(name, []byte(b.String()))
}
