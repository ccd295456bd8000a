package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hirshagarwal/airport-traffic/airports"
	"github.com/hirshagarwal/airport-traffic/business/predict"
)

type estimateHandlerEstimator interface {
	Estimate(ctx context.Context, code string) (predict.Result, error)
}

type EstimateHandler struct {
	estimator estimateHandlerEstimator
}

func NewEstimateHandler(estimator estimateHandlerEstimator) *EstimateHandler {
	return &EstimateHandler{estimator: estimator}
}

func (eh *EstimateHandler) Estimate(c echo.Context) error {
	code := strings.ToUpper(c.Param("airport"))

	result, err := eh.estimator.Estimate(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, airports.ErrUnknownAirport) {
			return NewHTTPError(http.StatusBadRequest, WithCause(err), WithUnmaskedCause())
		}

		return err
	}

	noCache(c)
	return c.JSON(http.StatusOK, result)
}
