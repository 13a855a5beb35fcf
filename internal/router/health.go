package router

import (
	"net/http"

	"github.com/eaudeweb/lawkit/pkg/server"
	"github.com/labstack/echo/v4"
)

// HealthRouter reports readiness of the backing systems.
type HealthRouter struct {
	e        *echo.Echo
	checkers map[string]server.HealthChecker
}

func NewHealthRouter(e *echo.Echo, checkers map[string]server.HealthChecker) *HealthRouter {
	return &HealthRouter{
		e:        e,
		checkers: checkers,
	}
}

func (r *HealthRouter) Bind() {
	r.e.GET("/healthz", r.healthHandler)
}

func (r *HealthRouter) healthHandler(c echo.Context) error {
	ctx := c.Request().Context()

	status := http.StatusOK
	systems := make(map[string]string, len(r.checkers))
	for name, checker := range r.checkers {
		if checker.Healthy(ctx) {
			systems[name] = "up"
		} else {
			systems[name] = "down"
			status = http.StatusServiceUnavailable
		}
	}

	return c.JSON(status, map[string]any{
		"status":  http.StatusText(status),
		"systems": systems,
	})
}
