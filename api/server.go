package api

import (
	"github.com/banachtech/painted-wolf/config"
	"github.com/banachtech/painted-wolf/mc"
	"github.com/gin-gonic/gin"
)

// Server serves HTTP requests for the option pricing service.
type Server struct {
	cfg    config.Config
	engine mc.Valuer
	router *gin.Engine
}

// NewServer creates a new HTTP server and sets up routing.
func NewServer(cfg config.Config, engine mc.Valuer) *Server {
	server := &Server{cfg: cfg, engine: engine}

	server.setupRouter()
	return server
}

func (server *Server) setupRouter() {
	router := gin.Default()

	authRoutes := router.Group("/v1").Use(server.Authentication)
	authRoutes.POST("/price", server.price)
	authRoutes.POST("/greeks", server.greeks)
	authRoutes.POST("/grid", server.grid)
	server.router = router
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	return server.router.Run(address)
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}
