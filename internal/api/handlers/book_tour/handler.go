package book_tour

import (
	"errors"
	"net/http"

	"github.com/max-tl-2000/red-sub012/internal/api/handlers"
	bookTour "github.com/max-tl-2000/red-sub012/internal/usecase/book_tour"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgIncorrectDate      = "некорректная дата слота"
	msgIncorrectStartDate = "начало слота не совпадает с сеткой слотов"
	msgIncorrectTourType  = "недопустимый тип тура"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgDuplicate          = "вы уже записаны на этот слот"
	msgPropertyNotFound   = "объект не найден"
	msgTeamNotFound       = "команда не найдена"
)

// Машинные коды ошибок для веб-формы самозаписи
const (
	codeIncorrectDate        = "IncorrectDate"
	codeIncorrectStartDate   = "IncorrectStartDate"
	codeIncorrectTourType    = "IncorrectTourType"
	codeSlotNotAvailable     = "SlotNotAvailable"
	codeDuplicateAppointment = "DuplicateAppointment"
)

type Handler struct {
	useCase BookTourUseCase
	logger  Logger
}

func NewHandler(useCase BookTourUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/self-service/tours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookTourRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /self-service/tours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /self-service/tours - Failed to parse request: %v", err)
		handlers.RespondErrorCode(w, http.StatusBadRequest, codeIncorrectDate, msgIncorrectDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookTour.ErrIncorrectDate):
			h.logger.Warn("POST /self-service/tours - Incorrect date: property=%s, start=%s", req.PropertyID, req.StartDate)
			handlers.RespondErrorCode(w, http.StatusBadRequest, codeIncorrectDate, msgIncorrectDate)

		case errors.Is(err, bookTour.ErrIncorrectStartDate):
			h.logger.Warn("POST /self-service/tours - Slot not aligned: property=%s, start=%s", req.PropertyID, req.StartDate)
			handlers.RespondErrorCode(w, http.StatusBadRequest, codeIncorrectStartDate, msgIncorrectStartDate)

		case errors.Is(err, bookTour.ErrIncorrectTourType):
			h.logger.Warn("POST /self-service/tours - Incorrect tour type: property=%s, tourType=%q", req.PropertyID, req.TourType)
			handlers.RespondErrorCode(w, http.StatusBadRequest, codeIncorrectTourType, msgIncorrectTourType)

		case errors.Is(err, bookTour.ErrInvalidInput):
			h.logger.Warn("POST /self-service/tours - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, bookTour.ErrSlotNotAvailable):
			h.logger.Warn("POST /self-service/tours - Slot not available: team=%s, start=%s", req.TeamID, req.StartDate)
			handlers.RespondErrorCode(w, http.StatusPreconditionFailed, codeSlotNotAvailable, msgSlotNotAvailable)

		case errors.Is(err, bookTour.ErrDuplicateAppointment):
			h.logger.Warn("POST /self-service/tours - Duplicate appointment: team=%s, start=%s", req.TeamID, req.StartDate)
			handlers.RespondErrorCode(w, http.StatusPreconditionFailed, codeDuplicateAppointment, msgDuplicate)

		case errors.Is(err, bookTour.ErrPropertyNotFound):
			h.logger.Warn("POST /self-service/tours - Property not found: property=%s", req.PropertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, bookTour.ErrTeamNotFound):
			h.logger.Warn("POST /self-service/tours - Team not found: team=%s", req.TeamID)
			handlers.RespondNotFound(w, msgTeamNotFound)

		default:
			h.logger.Error("POST /self-service/tours - Failed to book tour: property=%s, team=%s, error=%v",
				req.PropertyID, req.TeamID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /self-service/tours - Tour booked: appointment=%s, staff=%s, outcome=%s",
		response.AppointmentID, response.StaffID, response.Outcome)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
