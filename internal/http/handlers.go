// Package http exposes the workspace codec over REST.
package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/pulto-app/pulto/backend/internal/domain/notebook"
	"github.com/pulto-app/pulto/backend/internal/domain/restore"
	"github.com/pulto-app/pulto/backend/internal/domain/window"
	"github.com/pulto-app/pulto/backend/internal/infrastructure/monitoring"
	"github.com/pulto-app/pulto/backend/internal/logging"
	"github.com/pulto-app/pulto/backend/internal/shared/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	store        *window.Store
	exporter     *notebook.Exporter
	importer     *notebook.Importer
	orchestrator *restore.Orchestrator
	metrics      *monitoring.Metrics
	log          *logging.Logger

	appVersion string
	deviceInfo string
}

// NewHandlers creates a new handler set
func NewHandlers(
	store *window.Store,
	exporter *notebook.Exporter,
	importer *notebook.Importer,
	orchestrator *restore.Orchestrator,
	metrics *monitoring.Metrics,
	log *logging.Logger,
	appVersion, deviceInfo string,
) *Handlers {
	return &Handlers{
		store:        store,
		exporter:     exporter,
		importer:     importer,
		orchestrator: orchestrator,
		metrics:      metrics,
		log:          log,
		appVersion:   appVersion,
		deviceInfo:   deviceInfo,
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Spatial Workspace Service",
		"version": h.appVersion,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"windows": h.store.Count(),
		"next_id": h.store.NextID(),
	})
}

// ListWindows lists all workspace windows
func (h *Handlers) ListWindows(c *gin.Context) {
	windows := h.store.List()
	c.JSON(http.StatusOK, gin.H{
		"windows": windows,
		"count":   len(windows),
	})
}

// GetWindow returns one window by id
func (h *Handlers) GetWindow(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "window id must be an integer"})
		return
	}

	rec, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "window not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DeleteWindow removes one window by id
func (h *Handlers) DeleteWindow(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "window id must be an integer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   h.store.Remove(id),
		"window_id": id,
	})
}

// ClearWindows removes every window
func (h *Handlers) ClearWindows(c *gin.Context) {
	h.store.Clear()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SeedDemoWindows populates a demo workspace
func (h *Handlers) SeedDemoWindows(c *gin.Context) {
	ids := window.SeedDemo(h.store, time.Now())
	c.JSON(http.StatusOK, gin.H{
		"seeded": ids,
		"count":  len(ids),
	})
}

// exportRequest selects export options
type exportRequest struct {
	IncludeDebugInfo     bool   `json:"include_debug_info"`
	IncludeWindowMetrics bool   `json:"include_window_metrics"`
	AppVersion           string `json:"app_version"`
	DeviceInfo           string `json:"device_info"`
}

// ExportWorkspace serializes the workspace into a notebook document
func (h *Handlers) ExportWorkspace(c *gin.Context) {
	var req exportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.AppVersion == "" {
		req.AppVersion = h.appVersion
	}
	if req.DeviceInfo == "" {
		req.DeviceInfo = h.deviceInfo
	}

	data, err := h.exporter.ExportBytes(notebook.ExportOptions{
		IncludeDebugInfo:     req.IncludeDebugInfo,
		IncludeWindowMetrics: req.IncludeWindowMetrics,
		AppVersion:           req.AppVersion,
		DeviceInfo:           req.DeviceInfo,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.metrics.DocumentsExported.Inc()
	h.metrics.WindowsExported.Add(float64(h.store.Count()))

	if c.Query("compress") != "" {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := zw.Close(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="workspace.ipynb.gz"`)
		c.Data(http.StatusOK, "application/gzip", buf.Bytes())
		return
	}
	if c.Query("download") != "" {
		c.Header("Content-Disposition", `attachment; filename="workspace.ipynb"`)
	}
	c.Data(http.StatusOK, "application/json", data)
}

// ImportWorkspace decodes a notebook document into the workspace
func (h *Handlers) ImportWorkspace(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.importWithMetrics(data)
	if err != nil {
		var structural *notebook.StructuralError
		if errors.As(err, &structural) {
			c.JSON(http.StatusBadRequest, gin.H{"error": structural.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// RestoreWorkspace imports a document and sequences window opens, streaming
// progress to websocket subscribers
func (h *Handlers) RestoreWorkspace(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.importWithMetrics(data)
	if err != nil {
		var structural *notebook.StructuralError
		if errors.As(err, &structural) {
			c.JSON(http.StatusBadRequest, gin.H{"error": structural.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.metrics.RestoresTotal.Inc()
	restored := h.orchestrator.Restore(c.Request.Context(), result)
	h.metrics.WindowsRestored.Add(float64(restored.TotalRestored))

	h.log.Info("workspace restore finished", zap.String("summary", restored.Summary))
	c.JSON(http.StatusOK, gin.H{
		"restore": restored,
		"errors":  result.Errors,
	})
}

func (h *Handlers) importWithMetrics(data []byte) (*types.ImportResult, error) {
	result, err := h.importer.Import(data)
	if err != nil {
		return nil, err
	}
	h.metrics.DocumentsImported.Inc()
	h.metrics.WindowsImported.Add(float64(len(result.RestoredWindows)))
	h.metrics.ImportCellErrors.Add(float64(len(result.Errors)))
	return result, nil
}

// AnalyzeNotebook inspects a document without importing it
func (h *Handlers) AnalyzeNotebook(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var doc struct {
		Cells []types.Cell `json:"cells"`
	}
	if err := sonic.Unmarshal(data, &doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document is not valid notebook JSON"})
		return
	}

	codeCells, markdownCells := 0, 0
	windowCounts := make(map[string]int)
	for _, cell := range doc.Cells {
		switch cell.CellType {
		case types.CellCode:
			codeCells++
		case types.CellMarkdown:
			markdownCells++
		}

		var md types.CellMetadata
		if len(cell.Metadata) > 0 && sonic.Unmarshal(cell.Metadata, &md) == nil && md.WindowType != "" {
			windowCounts[md.WindowType]++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_cells":    len(doc.Cells),
		"code_cells":     codeCells,
		"markdown_cells": markdownCells,
		"window_counts":  windowCounts,
	})
}
