package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultHandlerTimeout = time.Minute

// Event представляет собой любое событие в системе.
type Event interface {
	Name() string
}

// Listener - это обработчик (слушатель) событий.
type Listener func(ctx context.Context, event Event) error

// Bus - шина событий. Слушатели вызываются асинхронно.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	inflight  sync.WaitGroup
	timeout   time.Duration
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		timeout:   defaultHandlerTimeout,
		logger:    logger,
	}
}

// Subscribe подписывает слушателя на определенное событие.
func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish не ждёт слушателей: каждый получает свой контекст с таймаутом,
// не связанный с HTTP-запросом, который уже может завершиться.
func (b *Bus) Publish(_ context.Context, event Event) {
	b.mu.RLock()
	listeners := append([]Listener(nil), b.listeners[event.Name()]...)
	b.mu.RUnlock()

	for _, listener := range listeners {
		b.inflight.Add(1)
		go func(l Listener) {
			defer b.inflight.Done()
			ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
			defer cancel()

			if err := l(ctx, event); err != nil {
				b.logger.Error("Erreur dans le gestionnaire d'événement",
					zap.String("event", event.Name()),
					zap.Error(err),
				)
			}
		}(listener)
	}
}

// Wait ждёт завершения всех запущенных слушателей (для остановки сервера и тестов).
func (b *Bus) Wait() {
	b.inflight.Wait()
}
