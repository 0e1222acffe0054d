// Package server wires the HTTP surface: router, CORS, health check and
// graceful shutdown.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"recipebox/internal/api"
	"recipebox/internal/store"
)

// Server is the HTTP server over a recipe store.
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New builds the router and binds it to addr.
func New(addr string, s store.Store) *Server {
	router := NewRouter(s)
	return &Server{
		router: router,
		http: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter configures the routes without binding a listener, which is what
// the handler tests use.
func NewRouter(s store.Store) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Unhandled verbs on a known path answer 405, not 404.
	router.HandleMethodNotAllowed = true

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	recipeHandler := api.NewRecipeHandler(s)
	recipeHandler.RegisterRoutes(router.Group("/api"))

	return router
}

// Start blocks serving requests until Shutdown is called or the listener
// fails.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
