package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Notifier публикует события о бронированиях в канал Redis Pub/Sub.
// Ошибки уведомлений не влияют на результат операции над бронированием.
type Notifier struct {
	publisher Publisher
	channel   string
	timeout   time.Duration
	failures  FailureRecorder
	log       Logger
	wg        sync.WaitGroup
}

// NewNotifier создает notifier. failures может быть nil.
func NewNotifier(publisher Publisher, channel string, timeout time.Duration, failures FailureRecorder, log Logger) *Notifier {
	return &Notifier{
		publisher: publisher,
		channel:   channel,
		timeout:   timeout,
		failures:  failures,
		log:       log,
	}
}

// Notify синхронно публикует событие
func (n *Notifier) Notify(ctx context.Context, evt ReservationEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	if err := n.publisher.Publish(ctx, n.channel, data).Err(); err != nil {
		return fmt.Errorf("%w: channel=%s: %v", ErrPublish, n.channel, err)
	}

	return nil
}

// NotifyAsync публикует событие в отдельной горутине с собственным таймаутом.
// Контекст запроса не используется: он отменяется сразу после ответа клиенту.
func (n *Notifier) NotifyAsync(evt ReservationEvent) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		if err := n.Notify(ctx, evt); err != nil {
			n.log.Error("Notifier: failed to publish %s for reservation=%s: %v", evt.Type, evt.ReservationID, err)
			if n.failures != nil {
				n.failures.IncNotificationFailure(string(evt.Type))
			}
			return
		}

		n.log.Info("Notifier: published %s for reservation=%s", evt.Type, evt.ReservationID)
	}()
}

// Wait дожидается завершения отправленных уведомлений (при остановке сервиса)
func (n *Notifier) Wait() {
	n.wg.Wait()
}

// Noop notifier для запуска без Redis
type Noop struct{}

func (Noop) NotifyAsync(ReservationEvent) {}

func (Noop) Wait() {}
