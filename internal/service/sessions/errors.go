package sessions

import "errors"

var (
	// ErrSessionNotFound сессия отсутствует, отозвана или истекла
	ErrSessionNotFound = errors.New("sessions.service: session not found")

	// ErrStore ошибка хранилища сессий
	ErrStore = errors.New("sessions.service: store failure")
)
