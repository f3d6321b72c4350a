package api

import (
    models "CycleSense/internal/domain/models"
    domrepo "CycleSense/internal/domain/repository"
    "CycleSense/internal/usecase"
    xhttp "CycleSense/pkg/http"
    xlogger "CycleSense/pkg/logger"

    "github.com/labstack/echo/v4"
)

// InsightsEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type InsightsEchoHandler struct {
	logger *xlogger.Logger
	agg    *usecase.InsightAggregator
	bundle *usecase.InsightsBundleUseCase
}

func NewInsightsEchoHandler(logger *xlogger.Logger, agg *usecase.InsightAggregator, bundle *usecase.InsightsBundleUseCase) *InsightsEchoHandler {
	return &InsightsEchoHandler{logger: logger, agg: agg, bundle: bundle}
}

func (h *InsightsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/insights")
	g.GET("/prediction", h.Prediction)
	g.GET("/anomalies", h.Anomalies)
	g.GET("/correlations", h.Correlations)
	g.GET("/hormonal", h.Hormonal)
	g.GET("/health", h.Health)
	g.GET("/summary", h.Summary)
}

func (h *InsightsEchoHandler) Prediction(c echo.Context) error {
	req := &models.InsightsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	w := domrepo.NormalizeWindow(req.Window)

	res, err := h.agg.Prediction(c.Request().Context(), req.UserID, w)
	if err != nil {
		h.logger.Error("prediction usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsEchoHandler) Anomalies(c echo.Context) error {
	req := &models.InsightsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	w := domrepo.NormalizeWindow(req.Window)

	res, err := h.agg.Anomalies(c.Request().Context(), req.UserID, w)
	if err != nil {
		h.logger.Error("anomalies usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsEchoHandler) Correlations(c echo.Context) error {
	req := &models.InsightsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	w := domrepo.NormalizeWindow(req.Window)

	res, err := h.agg.Correlations(c.Request().Context(), req.UserID, w)
	if err != nil {
		h.logger.Error("correlations usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsEchoHandler) Hormonal(c echo.Context) error {
	req := &models.InsightsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	w := domrepo.NormalizeWindow(req.Window)

	res, err := h.agg.Hormonal(c.Request().Context(), req.UserID, w)
	if err != nil {
		h.logger.Error("hormonal usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsEchoHandler) Health(c echo.Context) error {
	req := &models.InsightsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	w := domrepo.NormalizeWindow(req.Window)

	res, err := h.agg.Health(c.Request().Context(), req.UserID, w)
	if err != nil {
		h.logger.Error("health usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsEchoHandler) Summary(c echo.Context) error {
	req := &models.InsightsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.bundle.GetInsights(c.Request().Context(), usecase.GetInsightsParams{
		UserID: req.UserID,
		Window: domrepo.NormalizeWindow(req.Window),
	})
	if err != nil {
		h.logger.Error("summary usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, res)
}
