package modules

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PanelServer exposes the panel to a browser: read state, edit fields,
// start/stop, and a websocket feed of panel events.
type PanelServer struct {
	panel      *Panel
	controller *Controller
	hub        *WsHub
	addr       string
	logger     *logrus.Logger
}

func NewPanelServer(panel *Panel, controller *Controller, hub *WsHub, addr string, logger *logrus.Logger) *PanelServer {
	if logger == nil {
		logger = logrus.New()
	}
	return &PanelServer{
		panel:      panel,
		controller: controller,
		hub:        hub,
		addr:       addr,
		logger:     logger,
	}
}

func (s *PanelServer) Router() *gin.Engine {
	route := gin.Default()

	route.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := route.Group("/api/panel")
	api.GET("/state", s.state)
	api.PUT("/config", s.updateConfig)
	api.POST("/start", s.start)
	api.POST("/stop", s.stop)

	if s.hub != nil {
		route.GET("/ws", gin.WrapF(s.hub.Handle))
	}

	return route
}

func (s *PanelServer) Serve() error {
	return s.Router().Run(s.addr)
}

// state returns the whole panel view. Secrets never leave the process.
func (s *PanelServer) state(ctx *gin.Context) {
	cfg := s.panel.Config()
	cfg.ApiKey = redact(cfg.ApiKey)
	cfg.SecretKey = redact(cfg.SecretKey)

	ctx.JSON(http.StatusOK, gin.H{
		"config":    cfg,
		"status":    s.panel.Status(),
		"logs":      s.panel.Logs(),
		"in_flight": s.panel.InFlight(),
	})
}

func (s *PanelServer) updateConfig(ctx *gin.Context) {
	var r struct {
		Field string `json:"field" binding:"required"`
		Value string `json:"value"`
	}
	if err := ctx.BindJSON(&r); err != nil {
		return
	}

	if LookupField(r.Field) == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": "unknown field " + r.Field})
		return
	}

	s.panel.UpdateConfig(r.Field, r.Value)
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *PanelServer) start(ctx *gin.Context) {
	s.commandResult(ctx, s.controller.Start())
}

func (s *PanelServer) stop(ctx *gin.Context) {
	s.commandResult(ctx, s.controller.Stop())
}

func (s *PanelServer) commandResult(ctx *gin.Context, err error) {
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, gin.H{"ok": true})
	case errors.Is(err, ErrBusy):
		ctx.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
	case errors.Is(err, ErrNotSubmittable):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
	default:
		// remote rejection or transport failure; already in the event log
		ctx.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
	}
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "***"
}
