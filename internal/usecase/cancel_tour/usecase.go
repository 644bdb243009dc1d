package cancel_tour

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/domain"
	apptRepo "github.com/max-tl-2000/red-sub012/internal/infra/storage/appointment"
)

// UseCase use case самостоятельной отмены тура
type UseCase struct {
	apptRepo     AppointmentRepository
	partyService PartyServiceClient
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointments AppointmentRepository,
	partyService PartyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     appointments,
		partyService: partyService,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case отмены тура
// Гость может отменить только запись, в которой сам участвует
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelTour: appointment=%s", req.AppointmentID)

	// 1. Валидация входных данных
	if req.AppointmentID == uuid.Nil {
		return nil, fmt.Errorf("%w: appointmentID is required", ErrInvalidInput)
	}
	if !req.Contact.HasContact() {
		return nil, fmt.Errorf("%w: email or phone is required", ErrInvalidInput)
	}

	// 2. Сопоставляем гостя с персоной
	requester, err := uc.partyService.ResolveRequester(ctx, req.Contact)
	if err != nil {
		uc.logger.Error("CancelTour: failed to resolve requester: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve requester: %v", ErrInternal, err)
	}

	// 3. Читаем запись и отменяем в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := uc.apptRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CancelTour: failed to get appointment %s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if !participates(appt, requester.PersonID) {
			uc.logger.Warn("CancelTour: person %s is not a participant of appointment %s",
				requester.PersonID, req.AppointmentID)
			return ErrNotParticipant
		}

		if appt.IsCanceled() {
			return ErrAlreadyCanceled
		}

		if err := uc.apptRepo.UpdateState(txCtx, appt.ID, domain.StateCanceled); err != nil {
			uc.logger.Error("CancelTour: failed to cancel appointment %s: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelTour: appointment %s canceled", req.AppointmentID)

	return &Response{
		AppointmentID: req.AppointmentID,
		State:         string(domain.StateCanceled),
	}, nil
}

// participates проверяет, что персона входит в участников записи
func participates(appt *domain.Appointment, personID uuid.UUID) bool {
	for _, p := range appt.ParticipantRefs {
		if p == personID {
			return true
		}
	}
	return false
}
