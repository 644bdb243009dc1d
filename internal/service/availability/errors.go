package availability

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках сервиса доступности
	ErrInternal = errors.New("availability: internal error")
)
