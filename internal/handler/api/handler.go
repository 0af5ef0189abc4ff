package api

import (
	"github.com/labstack/echo/v4"
)

// Composite fans RegisterRoutes out to every handler it holds.
type Composite struct {
	Metrics     *MetricsEchoHandler
	Calculators *CalculatorsEchoHandler
}

func (c *Composite) RegisterRoutes(e *echo.Echo) {
	c.Metrics.RegisterRoutes(e)
	c.Calculators.RegisterRoutes(e)
}
