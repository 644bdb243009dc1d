package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/api/handlers"
	"github.com/max-tl-2000/red-sub012/internal/domain"
	getSlots "github.com/max-tl-2000/red-sub012/internal/usecase/get_available_slots"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта"
	msgInvalidTeamID     = "некорректный ID команды"
	msgInvalidFromDate   = "некорректная дата, ожидается YYYY-MM-DD"
	msgInvalidDays       = "некорректное количество дней"
	msgWindowTooLarge    = "запрошено слишком много дней"
	msgPropertyNotFound  = "объект не найден"
	msgTeamNotFound      = "команда не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/self-service/slots?propertyId=...&teamId=...&from=YYYY-MM-DD&days=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	propertyID, err := uuid.Parse(query.Get("propertyId"))
	if err != nil {
		h.logger.Warn("GET /self-service/slots - Invalid propertyId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	teamID, err := uuid.Parse(query.Get("teamId"))
	if err != nil {
		h.logger.Warn("GET /self-service/slots - Invalid teamId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeamID)
		return
	}

	fromDate, err := time.Parse(domain.DateFormat, query.Get("from"))
	if err != nil {
		h.logger.Warn("GET /self-service/slots - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFromDate)
		return
	}

	days := 0
	if raw := query.Get("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /self-service/slots - Invalid days: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getSlots.Request{
		PropertyID: propertyID,
		TeamID:     teamID,
		FromDate:   fromDate,
		Days:       days,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrWindowTooLarge):
			handlers.RespondBadRequest(w, msgWindowTooLarge)

		case errors.Is(err, getSlots.ErrIncorrectDate), errors.Is(err, getSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidFromDate)

		case errors.Is(err, getSlots.ErrPropertyNotFound):
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, getSlots.ErrTeamNotFound):
			handlers.RespondNotFound(w, msgTeamNotFound)

		default:
			h.logger.Error("GET /self-service/slots - Failed: property=%s, team=%s, error=%v",
				propertyID, teamID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /self-service/slots - %d slots: property=%s, team=%s",
		len(result.Slots), propertyID, teamID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
