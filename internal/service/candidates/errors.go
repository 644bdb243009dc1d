package candidates

import "errors"

var (
	// ErrSlotNotAvailable возвращается, когда ни один агент пула не свободен в слоте
	ErrSlotNotAvailable = errors.New("candidates: slot not available")

	// ErrEmptyPool возвращается, когда у команды нет ни одного подходящего агента
	ErrEmptyPool = errors.New("candidates: candidate pool is empty")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("candidates: internal error")
)
