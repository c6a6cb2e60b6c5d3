// Package server exposes the chat web service: the embedded chat page, the
// JSON history API, the streaming chat endpoint, transcript download, and
// health reporting.
package server

import (
	"html/template"

	"github.com/gin-gonic/gin"

	charmlog "github.com/charmbracelet/log"

	"yechat/internal/history"
	"yechat/internal/logger"
	"yechat/pkg/chattypes"
)

// Server wires the history store, the reply generator, and the active
// persona behind a gin engine.
type Server struct {
	store     history.Store
	generator chattypes.Generator
	persona   chattypes.Persona
	logger    *charmlog.Logger
	engine    *gin.Engine
	indexTmpl *template.Template
}

// New creates a Server with its routes registered. Callers pick the gin
// mode before constructing; the serve command uses release mode.
func New(store history.Store, generator chattypes.Generator, p chattypes.Persona) *Server {
	s := &Server{
		store:     store,
		generator: generator,
		persona:   p,
		logger:    logger.NewStyledLogger("Server"),
		indexTmpl: template.Must(template.New("index").Parse(indexPageHTML)),
	}

	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.registerRoutes(s.engine)

	return s
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/", s.handleIndex)
	router.GET("/static/app.js", s.handleAppJS)
	router.GET("/static/style.css", s.handleStyleCSS)
	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	{
		api.GET("/history", s.handleHistory)
		api.POST("/chat", s.handleChat)
		api.GET("/transcript", s.handleTranscript)
	}
}

// Router exposes the configured engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server on addr and blocks until it exits.
func (s *Server) Run(addr string) error {
	s.logger.Info("Server listening", "addr", addr, "provider", s.generator.Name())
	return s.engine.Run(addr)
}
