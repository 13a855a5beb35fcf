package router

import (
	"context"
	"net/http"

	"github.com/eaudeweb/lawkit/internal/dto"
	"github.com/eaudeweb/lawkit/internal/explorer"
	"github.com/eaudeweb/lawkit/pkg/pagination"
	"github.com/labstack/echo/v4"
)

// Explorer is the search pipeline the router fronts.
type Explorer interface {
	Explore(ctx context.Context, req *explorer.Request) (*pagination.Page[explorer.LawResult], error)
}

type LegislationRouter struct {
	e        *echo.Echo
	explorer Explorer
}

func NewLegislationRouter(e *echo.Echo, explorer Explorer) *LegislationRouter {
	return &LegislationRouter{
		e:        e,
		explorer: explorer,
	}
}

func (r *LegislationRouter) Bind() {
	r.e.GET("/api/legislation", r.searchHandler)
}

func (r *LegislationRouter) searchHandler(c echo.Context) error {
	req, err := dto.ParseSearchRequest(c)
	if err != nil {
		return err
	}

	page, err := r.explorer.Explore(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewSearchResponse(page))
}
