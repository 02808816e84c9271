package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/linguachat/linguachat-server/internal/auth"
	"github.com/linguachat/linguachat-server/internal/config"
	"github.com/linguachat/linguachat-server/internal/core"
	"github.com/linguachat/linguachat-server/internal/translate"
)

// NewServer builds the HTTP server hosting the websocket relay and the
// REST API.
func NewServer(hub *core.Hub, translator *translate.Router, verifier *auth.Verifier, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(LoggerMiddleware(logger), gin.Recovery())

	engine.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})
	engine.GET("/ws", gin.WrapH(NewWSHandler(hub, translator, verifier, logger)))

	h := NewAPIHandlers(hub, translator, logger)
	api := engine.Group("/api")
	if verifier != nil {
		api.Use(AuthMiddleware(verifier, logger))
	}
	api.POST("/translate", h.Translate)
	api.POST("/translate/batch", h.TranslateBatch)
	api.POST("/detect", h.Detect)
	api.GET("/online", h.Online)
	api.GET("/rooms/:room/history", h.History)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
