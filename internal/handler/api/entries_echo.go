package api

import (
    "time"

    models "CycleSense/internal/domain/models"
    domrepo "CycleSense/internal/domain/repository"
    "CycleSense/internal/usecase"
    xhttp "CycleSense/pkg/http"
    xlogger "CycleSense/pkg/logger"
    "CycleSense/pkg/queue"
    "CycleSense/pkg/util"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"
)

// EntriesEchoHandler implements Echo-based handlers for logging and
// reading cycle records and symptom observations.
type EntriesEchoHandler struct {
	logger  *xlogger.Logger
	proc    *usecase.EntryProcessor
	records *usecase.RecordsUseCase
	jobs    queue.QueueService
}

func NewEntriesEchoHandler(logger *xlogger.Logger, proc *usecase.EntryProcessor, records *usecase.RecordsUseCase) *EntriesEchoHandler {
	return &EntriesEchoHandler{logger: logger, proc: proc, records: records}
}

// SetJobQueue enables async insight recomputes after ingestion.
func (h *EntriesEchoHandler) SetJobQueue(q queue.QueueService) { h.jobs = q }

func (h *EntriesEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/cycles", h.CreateCycle)
	g.POST("/symptoms", h.CreateSymptom)
	g.GET("/cycles", h.ListCycles)
	g.GET("/symptoms", h.ListSymptoms)
}

func (h *EntriesEchoHandler) CreateCycle(c echo.Context) error {
	req := &models.CycleCreateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	start, ok := util.ParseDate(req.StartDate)
	if !ok {
		return xhttp.BadRequestResponse(c, xhttp.BadRequestError("startDate must be a calendar date"))
	}
	record := &models.CycleRecord{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		StartDate: start,
		Flow:      models.FlowIntensity(req.Flow),
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}
	if req.EndDate != "" {
		end, ok := util.ParseDate(req.EndDate)
		if !ok {
			return xhttp.BadRequestResponse(c, xhttp.BadRequestError("endDate must be a calendar date"))
		}
		if end.Before(start) {
			return xhttp.BadRequestResponse(c, xhttp.BadRequestError("endDate must not precede startDate"))
		}
		record.EndDate = &end
	}

	entry := &models.Entry{
		Kind:       models.EntryKindCycle,
		UserID:     req.UserID,
		Cycle:      record,
		ReceivedAt: time.Now(),
	}
	if err := h.proc.Process(c.Request().Context(), entry); err != nil {
		h.logger.Error("create cycle error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	h.scheduleRecompute(c, req.UserID)
	return xhttp.CreatedResponse(c, record)
}

func (h *EntriesEchoHandler) CreateSymptom(c echo.Context) error {
	req := &models.SymptomCreateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	day, ok := util.ParseDate(req.Date)
	if !ok {
		return xhttp.BadRequestResponse(c, xhttp.BadRequestError("date must be a calendar date"))
	}
	observation := &models.SymptomObservation{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Date:      day,
		Type:      req.Type,
		Severity:  models.Severity(req.Severity),
		Note:      req.Note,
		CreatedAt: time.Now(),
	}

	entry := &models.Entry{
		Kind:       models.EntryKindSymptom,
		UserID:     req.UserID,
		Symptom:    observation,
		ReceivedAt: time.Now(),
	}
	if err := h.proc.Process(c.Request().Context(), entry); err != nil {
		h.logger.Error("create symptom error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	h.scheduleRecompute(c, req.UserID)
	return xhttp.CreatedResponse(c, observation)
}

func (h *EntriesEchoHandler) ListCycles(c echo.Context) error {
	req := &models.RecordsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.records.GetCycles(c.Request().Context(), usecase.GetRecordsParams{
		UserID: req.UserID,
		Window: domrepo.NormalizeWindow(req.Window),
		Limit:  req.Limit,
	})
	if err != nil {
		h.logger.Error("list cycles error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *EntriesEchoHandler) ListSymptoms(c echo.Context) error {
	req := &models.RecordsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.records.GetSymptoms(c.Request().Context(), usecase.GetRecordsParams{
		UserID: req.UserID,
		Window: domrepo.NormalizeWindow(req.Window),
		Limit:  req.Limit,
	})
	if err != nil {
		h.logger.Error("list symptoms error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *EntriesEchoHandler) scheduleRecompute(c echo.Context, userID string) {
	if h.jobs == nil {
		return
	}
	payload := usecase.RecomputePayload{UserID: userID}
	if err := h.jobs.PublishMessage(c.Request().Context(), usecase.RecomputeMessageType, payload); err != nil {
		h.logger.Warn("recompute enqueue error", xlogger.Error(err))
	}
}
