package partyservice

import "errors"

var (
	// ErrRequesterNotResolved возвращается, когда гостя не удалось сопоставить с персоной
	ErrRequesterNotResolved = errors.New("partyservice: requester not resolved")

	// ErrPartyNotFound возвращается, когда у гостя нет активной партии
	ErrPartyNotFound = errors.New("partyservice: party not found")

	// ErrRequestFailed возвращается при сетевых ошибках и ошибках сервиса
	ErrRequestFailed = errors.New("partyservice: request failed")

	// ErrUnexpectedStatus возвращается при неожиданном HTTP статусе ответа
	ErrUnexpectedStatus = errors.New("partyservice: unexpected response status")
)
