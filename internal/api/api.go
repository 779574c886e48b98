package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"task-planner/internal/auth"
	"task-planner/internal/config"
	"task-planner/internal/services"
)

// Authenticator identifies callers and exposes their raw credential for logout
type Authenticator interface {
	auth.Provider
	Token(r *http.Request) string
}

// Server is the HTTP front end over the service container
type Server struct {
	services   *services.ServiceContainer
	auth       Authenticator
	cookieName string
	router     *gin.Engine
	cfg        config.ServerConfig
}

// New creates a Server and registers every route
func New(container *services.ServiceContainer, authenticator Authenticator, cfg *config.Config) *Server {
	router := gin.New()
	router.Use(requestID(), accessLog(), recovery())

	s := &Server{
		services:   container,
		auth:       authenticator,
		cookieName: cfg.Auth.CookieName,
		router:     router,
		cfg:        cfg.Server,
	}

	router.GET("/healthz", s.health)

	api := router.Group("/api", requireUser(authenticator))
	{
		api.POST("/generate-subtasks", s.generateSubtasks)
		api.POST("/session/logout", s.logout)

		api.POST("/projects", s.createProject)
		api.GET("/projects", s.listProjects)
		api.POST("/projects/:projectID/members", s.addMember)
		api.GET("/projects/:projectID/members", s.listMembers)
		api.POST("/projects/:projectID/tasks", s.createTask)
		api.GET("/projects/:projectID/tasks/:taskID/subtasks", s.listSubtasks)
		api.POST("/projects/:projectID/tasks/:taskID/subtasks/confirm", s.confirmSubtasks)
		api.PATCH("/projects/:projectID/tasks/:taskID/status", s.updateStatus)
	}

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	const op = "api.Run"

	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{"operation": op, "addr": s.cfg.Addr}).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.WithField("operation", op).Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
