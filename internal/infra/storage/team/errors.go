package team

import "errors"

var (
	// ErrTeamNotFound возвращается, когда команда не найдена
	ErrTeamNotFound = errors.New("team.repository: team not found")

	// ErrDispatcherNotFound возвращается, когда у команды нет диспетчера
	ErrDispatcherNotFound = errors.New("team.repository: dispatcher not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("team.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("team.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("team.repository: failed to scan row")
)
