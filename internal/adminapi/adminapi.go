// Package adminapi exposes the live shelf over HTTP: listing, adding and
// removing products, simulating them and advancing the shelf by a day.
package adminapi

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/talkincode/supermarkt/internal/app"
)

const (
	apiPrefix       = "/api/v1"
	appContextKey   = "appctx"
	shutdownTimeout = 5 * time.Second
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Response is the JSON envelope of every API reply.
type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
	Details interface{} `json:"details,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Code: "OK", Data: data})
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, Response{Code: code, Message: message, Details: details})
}

// GetAppContext returns the application the server was built over.
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(appContextKey).(app.AppContext)
}

// NewServer builds the admin API over appCtx.
func NewServer(appCtx app.AppContext) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Debug("admin api request",
				zap.String("namespace", "adminapi"),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(appContextKey, appCtx)
			return next(c)
		}
	})

	api := e.Group(apiPrefix)
	registerProductRoutes(api)
	registerShelfRoutes(api)
	return e
}

// ListenAndServe serves e on addr until ctx is done, then shuts it down.
func ListenAndServe(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(addr)
	}()
	zap.L().Info("admin api listening", zap.String("namespace", "adminapi"), zap.String("addr", addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "admin api")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "admin api shutdown")
	}
	return nil
}

// jsonSerializer encodes echo replies with jsoniter.
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := json.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}
