package eventservice

import "errors"

var (
	// ErrEventNotFound возвращается, когда мероприятие не найдено
	ErrEventNotFound = errors.New("eventservice client: event not found")

	// ErrPostingNotFound возвращается, когда вакансия не найдена
	ErrPostingNotFound = errors.New("eventservice client: posting not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("eventservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("eventservice client: invalid response")
)
