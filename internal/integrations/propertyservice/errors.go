package propertyservice

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда объект не найден
	ErrPropertyNotFound = errors.New("propertyservice: property not found")

	// ErrTeamNotFound возвращается, когда команда не найдена
	ErrTeamNotFound = errors.New("propertyservice: team not found")

	// ErrRequestFailed возвращается при сетевых ошибках и ошибках сервиса
	ErrRequestFailed = errors.New("propertyservice: request failed")

	// ErrUnexpectedStatus возвращается при неожиданном HTTP статусе ответа
	ErrUnexpectedStatus = errors.New("propertyservice: unexpected response status")
)
