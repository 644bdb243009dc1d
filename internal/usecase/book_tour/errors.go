package book_tour

import "errors"

var (
	// ErrIncorrectDate возвращается, когда дата слота не парсится или в прошлом
	ErrIncorrectDate = errors.New("book_tour: incorrect date")

	// ErrIncorrectStartDate возвращается, когда начало слота не выровнено по сетке слотов
	ErrIncorrectStartDate = errors.New("book_tour: incorrect start date")

	// ErrIncorrectTourType возвращается, когда тип тура неизвестен или недоступен на объекте
	ErrIncorrectTourType = errors.New("book_tour: incorrect tour type")

	// ErrSlotNotAvailable возвращается, когда в слоте нет ни одного свободного агента
	ErrSlotNotAvailable = errors.New("book_tour: slot is not available")

	// ErrDuplicateAppointment возвращается, когда гость уже записан на этот же слот
	ErrDuplicateAppointment = errors.New("book_tour: duplicate appointment")

	// ErrPropertyNotFound возвращается, когда объект не найден
	ErrPropertyNotFound = errors.New("book_tour: property not found")

	// ErrTeamNotFound возвращается, когда команда не найдена
	ErrTeamNotFound = errors.New("book_tour: team not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_tour: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_tour: internal error")
)
