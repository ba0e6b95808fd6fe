// Package faulty оборачивает репозиторий искусственными задержками и отказами.
// Нужен только для проверки устойчивости клиентов, по умолчанию выключен.
package faulty

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"todo-service/internal/model"
	"todo-service/internal/repository"
)

// ErrInjected возвращается вместо результата операции при искусственном отказе
var ErrInjected = errors.New("injected fault")

// Operation - имя операции репозитория
type Operation string

const (
	OpList   Operation = "list"
	OpGet    Operation = "get"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Config настройки внедрения отказов
type Config struct {
	// FailureRate - вероятность отказа в диапазоне [0, 1]
	FailureRate float64
	// Delays - задержка перед каждой операцией
	Delays map[Operation]time.Duration
}

// DefaultConfig: 5% отказов и задержки 600-1000 мс
func DefaultConfig() Config {
	return Config{
		FailureRate: 0.05,
		Delays: map[Operation]time.Duration{
			OpList:   800 * time.Millisecond,
			OpGet:    800 * time.Millisecond,
			OpCreate: 1000 * time.Millisecond,
			OpUpdate: 800 * time.Millisecond,
			OpDelete: 600 * time.Millisecond,
		},
	}
}

var _ repository.TodoRepository = (*repo)(nil)

type repo struct {
	next  repository.TodoRepository
	cfg   Config
	roll  func() float64
	sleep func(ctx context.Context, d time.Duration) error
}

// Option настраивает обертку
type Option func(*repo)

// WithRand подменяет источник случайных чисел в [0, 1)
func WithRand(roll func() float64) Option {
	return func(r *repo) {
		r.roll = roll
	}
}

// WithSleep подменяет ожидание (для тестов)
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(r *repo) {
		r.sleep = sleep
	}
}

// NewRepository оборачивает next. Реальное хранилище ничего не знает об обертке.
func NewRepository(next repository.TodoRepository, cfg Config, opts ...Option) repository.TodoRepository {
	if cfg.FailureRate < 0 {
		cfg.FailureRate = 0
	}
	if cfg.FailureRate > 1 {
		cfg.FailureRate = 1
	}
	r := &repo{
		next:  next,
		cfg:   cfg,
		roll:  rand.Float64,
		sleep: sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// inject выполняет задержку и решает, отказать ли операции
func (r *repo) inject(ctx context.Context, op Operation) error {
	if err := r.sleep(ctx, r.cfg.Delays[op]); err != nil {
		return err
	}
	if r.cfg.FailureRate > 0 && r.roll() < r.cfg.FailureRate {
		return fmt.Errorf("%s: %w", op, ErrInjected)
	}
	return nil
}

// Unwrap возвращает обернутый репозиторий
func (r *repo) Unwrap() repository.TodoRepository {
	return r.next
}

func (r *repo) Create(ctx context.Context, in model.CreateInput) (model.Todo, error) {
	if err := r.inject(ctx, OpCreate); err != nil {
		return model.Todo{}, err
	}
	return r.next.Create(ctx, in)
}

func (r *repo) GetByID(ctx context.Context, id string) (model.Todo, bool, error) {
	if err := r.inject(ctx, OpGet); err != nil {
		return model.Todo{}, false, err
	}
	return r.next.GetByID(ctx, id)
}

func (r *repo) List(ctx context.Context) ([]model.Todo, error) {
	if err := r.inject(ctx, OpList); err != nil {
		return nil, err
	}
	return r.next.List(ctx)
}

func (r *repo) Update(ctx context.Context, id string, patch model.UpdateInput) (model.Todo, error) {
	if err := r.inject(ctx, OpUpdate); err != nil {
		return model.Todo{}, err
	}
	return r.next.Update(ctx, id, patch)
}

func (r *repo) Delete(ctx context.Context, id string) (model.Todo, error) {
	if err := r.inject(ctx, OpDelete); err != nil {
		return model.Todo{}, err
	}
	return r.next.Delete(ctx, id)
}
