package cancel_tour

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись о туре не найдена
	ErrAppointmentNotFound = errors.New("cancel_tour: appointment not found")

	// ErrNotParticipant возвращается, когда гость не участвует в этой записи
	ErrNotParticipant = errors.New("cancel_tour: requester is not a participant of this appointment")

	// ErrAlreadyCanceled возвращается при повторной отмене
	ErrAlreadyCanceled = errors.New("cancel_tour: appointment is already canceled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_tour: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_tour: internal error")
)
