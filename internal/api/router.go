package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/scouterhq/scouter-host/internal/store"
	"github.com/scouterhq/scouter-host/pkg/models"
)

// Broker is the permission and source negotiation surface the channel
// exposes. Satisfied by *broker.Broker; tests substitute fakes.
type Broker interface {
	CheckPermission(ctx context.Context) models.PermissionState
	RequestPermission(ctx context.Context) (bool, error)
	EnumerateSources(ctx context.Context) ([]models.CaptureSource, error)
	ResolveSource(ctx context.Context, sourceID string) (string, error)
	SaveRecording(ctx context.Context, data []byte, suggestedName string) (string, error)
	ShowError(title, message string)
}

type Server struct {
	router  *gin.Engine
	broker  Broker
	store   store.Store
	changes <-chan struct{}
	log     zerolog.Logger
}

type ServerConfig struct {
	Broker Broker
	Store  store.Store

	// Changes, when non-nil, feeds assets-changed notifications to channel
	// clients.
	Changes <-chan struct{}

	Logger zerolog.Logger
}

func NewServer(cfg ServerConfig) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	s := &Server{
		router:  router,
		broker:  cfg.Broker,
		store:   cfg.Store,
		changes: cfg.Changes,
		log:     cfg.Logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/platform", s.getPlatform)
	s.router.GET("/channel", s.handleChannel)

	videos := s.router.Group("/videos")
	{
		videos.GET("", s.listVideos)
		videos.POST("", s.persistVideo)
		videos.DELETE("/:id", s.deleteVideo)
		videos.POST("/:id/share", s.shareVideo)
	}
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

func (s *Server) getPlatform(c *gin.Context) {
	c.JSON(200, s.store.PlatformInfo())
}
