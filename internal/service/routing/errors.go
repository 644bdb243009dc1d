package routing

import "errors"

var (
	// ErrNoAssignableStaff возвращается, когда в команде нет ни агентов, ни диспетчера
	ErrNoAssignableStaff = errors.New("routing: no assignable staff in team")

	// ErrUnknownStrategy возвращается при неизвестной стратегии маршрутизации
	ErrUnknownStrategy = errors.New("routing: unknown routing strategy")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("routing: internal error")
)
