package notifier

import "errors"

var (
	// ErrMarshal возвращается, когда событие не удалось сериализовать
	ErrMarshal = errors.New("notifier: failed to marshal event")

	// ErrPublish возвращается при ошибке публикации в Redis
	ErrPublish = errors.New("notifier: failed to publish event")
)
