package notifier

import "errors"

var (
	// ErrPublish возвращается, когда backend не смог отправить уведомление
	ErrPublish = errors.New("notifier: failed to publish notification")

	// ErrMarshal возвращается при ошибке сериализации уведомления
	ErrMarshal = errors.New("notifier: failed to marshal notification")

	// ErrUnknownBackend возвращается для неизвестного backend в конфигурации
	ErrUnknownBackend = errors.New("notifier: unknown backend")
)
