package notifier

import "errors"

var (
	// ErrPublish возвращается, когда событие не удалось записать в поток
	ErrPublish = errors.New("notifier: failed to publish event")
)
