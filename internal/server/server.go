// Package server wires the workspace codec, store, and transports together.
package server

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pulto-app/pulto/backend/internal/domain/notebook"
	"github.com/pulto-app/pulto/backend/internal/domain/restore"
	"github.com/pulto-app/pulto/backend/internal/domain/window"
	httphandlers "github.com/pulto-app/pulto/backend/internal/http"
	"github.com/pulto-app/pulto/backend/internal/infrastructure/config"
	"github.com/pulto-app/pulto/backend/internal/infrastructure/monitoring"
	"github.com/pulto-app/pulto/backend/internal/infrastructure/storage"
	"github.com/pulto-app/pulto/backend/internal/logging"
	"github.com/pulto-app/pulto/backend/internal/ws"
)

// Server wraps the HTTP server and its dependencies
type Server struct {
	router *gin.Engine
	store  *window.Store
	hub    *ws.Hub
	log    *logging.Logger
}

// New builds a fully wired server from configuration
func New(cfg *config.Config, log *logging.Logger) *Server {
	if log == nil {
		log = logging.NewDefault()
	}

	store := window.NewStore()
	metrics := monitoring.NewMetrics()
	hub := ws.NewHub(log)

	exporter := notebook.NewExporter(store, log).
		WithDebugWriter(storage.NewDirWriter(cfg.Storage.DebugLogDir))
	importer := notebook.NewImporter(store, log)

	// Restored windows are announced to websocket subscribers; the actual
	// window chrome lives in the client.
	orchestrator := restore.NewOrchestrator(func(ctx context.Context, id int) error {
		hub.Broadcast(map[string]interface{}{
			"type":      "window_opened",
			"window_id": id,
		})
		return nil
	}, log).WithInterval(time.Duration(cfg.Restore.IntervalMS) * time.Millisecond)

	handlers := httphandlers.NewHandlers(
		store, exporter, importer, orchestrator, metrics, log,
		cfg.Export.AppVersion, cfg.Export.DeviceInfo,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(metrics.Middleware())

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", metrics.Handler())

	// Window store
	router.GET("/windows", handlers.ListWindows)
	router.GET("/windows/:id", handlers.GetWindow)
	router.DELETE("/windows/:id", handlers.DeleteWindow)
	router.DELETE("/windows", handlers.ClearWindows)
	router.POST("/windows/demo", handlers.SeedDemoWindows)

	// Workspace codec
	router.POST("/workspace/export", handlers.ExportWorkspace)
	router.POST("/workspace/import", handlers.ImportWorkspace)
	router.POST("/workspace/restore", handlers.RestoreWorkspace)
	router.POST("/notebooks/analyze", handlers.AnalyzeNotebook)

	// Restore progress stream
	router.GET("/stream", hub.HandleConnection)

	return &Server{
		router: router,
		store:  store,
		hub:    hub,
		log:    log,
	}
}

// Run starts the server
func (s *Server) Run(addr string) error {
	s.log.Info("starting workspace service", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}
