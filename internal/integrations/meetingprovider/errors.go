package meetingprovider

import "errors"

var (
	// ErrUnavailable возвращается, когда провайдер недоступен (сеть, таймаут, 5xx)
	ErrUnavailable = errors.New("meetingprovider client: provider unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("meetingprovider client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("meetingprovider client: internal error")
)
