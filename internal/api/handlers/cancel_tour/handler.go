package cancel_tour

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/max-tl-2000/red-sub012/internal/api/handlers"
	cancelTour "github.com/max-tl-2000/red-sub012/internal/usecase/cancel_tour"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgAppointmentNotFound  = "запись не найдена"
	msgNotParticipant       = "запись принадлежит другому гостю"
	msgAlreadyCanceled      = "запись уже отменена"
)

type Handler struct {
	useCase CancelTourUseCase
	logger  Logger
}

func NewHandler(useCase CancelTourUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/self-service/tours/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["appointmentId"])
	if err != nil {
		h.logger.Warn("POST /self-service/tours/{id}/cancel - Invalid appointment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req CancelTourRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /self-service/tours/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID))
	if err != nil {
		switch {
		case errors.Is(err, cancelTour.ErrAppointmentNotFound):
			h.logger.Warn("POST /self-service/tours/{id}/cancel - Not found: appointment=%s", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, cancelTour.ErrNotParticipant):
			h.logger.Warn("POST /self-service/tours/{id}/cancel - Not a participant: appointment=%s", appointmentID)
			handlers.RespondError(w, http.StatusForbidden, msgNotParticipant)

		case errors.Is(err, cancelTour.ErrAlreadyCanceled):
			h.logger.Warn("POST /self-service/tours/{id}/cancel - Already canceled: appointment=%s", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCanceled)

		case errors.Is(err, cancelTour.ErrInvalidInput):
			h.logger.Warn("POST /self-service/tours/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /self-service/tours/{id}/cancel - Failed: appointment=%s, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /self-service/tours/{id}/cancel - Canceled: appointment=%s", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
