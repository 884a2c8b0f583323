package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/a3health/a3diet/internal/mcpserver"
	"github.com/a3health/a3diet/internal/model"
	"github.com/a3health/a3diet/internal/planner"
	"github.com/a3health/a3diet/internal/service"
)

const (
	headerUserID = "X-User-ID"
	userKey      = "user"
)

// requireUser resolves X-User-ID (numeric id or external UUID) to a user.
func (s *Server) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ref := strings.TrimSpace(c.Request().Header.Get(headerUserID))
		if ref == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing "+headerUserID+" header")
		}
		u, err := service.ResolveUser(s.db, ref)
		if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrInvalidInput) {
			return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
		}
		if err != nil {
			return err
		}
		c.Set(userKey, u)
		return next(c)
	}
}

func currentUser(c echo.Context) model.User {
	u, _ := c.Get(userKey).(model.User)
	return u
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			if v.Status >= http.StatusInternalServerError {
				s.log.Error("request", fields...)
				return nil
			}
			s.log.Info("request", fields...)
			return nil
		},
	})
}

// handleError renders every failure as {"success": false, "error": ...}.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, echo.Map{"success": false, "error": msg})
}

func errorStatus(err error) (int, string) {
	var verr *planner.ValidationError
	var herr *echo.HTTPError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, mcpserver.ErrUnknownTool):
		return http.StatusNotFound, err.Error()
	case errors.As(err, &herr):
		if msg, ok := herr.Message.(string); ok {
			return herr.Code, msg
		}
		return herr.Code, http.StatusText(herr.Code)
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
