package get_available_slots

import "errors"

var (
	// ErrIncorrectDate возвращается при некорректной дате начала окна
	ErrIncorrectDate = errors.New("get_available_slots: incorrect date")

	// ErrWindowTooLarge возвращается, когда запрошено слишком много дней
	ErrWindowTooLarge = errors.New("get_available_slots: requested window is too large")

	// ErrPropertyNotFound возвращается, когда объект не найден
	ErrPropertyNotFound = errors.New("get_available_slots: property not found")

	// ErrTeamNotFound возвращается, когда команда не найдена
	ErrTeamNotFound = errors.New("get_available_slots: team not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
