// Package httpapi serves the diet API over HTTP with echo.
package httpapi

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// ToolCaller runs MCP tool calls posted to /mcp.
type ToolCaller interface {
	Call(req *protocol.CallToolRequest) (*protocol.CallToolResult, error)
}

type Option func(*Server)

// WithTools mounts POST /mcp.
func WithTools(tools ToolCaller) Option {
	return func(s *Server) { s.tools = tools }
}

// WithClock overrides time.Now for date defaults.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

type Server struct {
	db    *sql.DB
	log   *zap.Logger
	tools ToolCaller
	now   func() time.Time
	echo  *echo.Echo
	http  *http.Server
}

func New(db *sql.DB, log *zap.Logger, opts ...Option) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{db: db, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(s.requestLogger())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "status": "ok"})
	})
	if s.tools != nil {
		e.POST("/mcp", s.callTool)
	}
	s.registerDietRoutes(e.Group("/api/client/diet", s.requireUser))

	s.echo = e
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.echo,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("http server listening", zap.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) callTool(c echo.Context) error {
	var req protocol.CallToolRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tool name is required")
	}
	result, err := s.tools.Call(&req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
