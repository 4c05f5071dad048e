package toast

import (
	"context"

	"github.com/nikolayk812/morpho-cart/internal/domain"
)

// Message derives toast text from the outcome of an operation.
type Message[V any] func(V) string

// Text is a Message that ignores the outcome.
func Text[V any](s string) Message[V] {
	return func(V) string {
		return s
	}
}

type PromiseMessages[T any] struct {
	Loading string
	Success Message[T]
	Error   Message[error]
}

// Promise shows a loading toast, runs fn, and turns the same toast into a
// success or error toast with a fresh default duration. fn's results are
// returned unchanged.
func Promise[T any](ctx context.Context, s *Store, fn func(context.Context) (T, error), msgs PromiseMessages[T]) (T, error) {
	id := s.Loading(msgs.Loading)

	v, err := fn(ctx)
	if err != nil {
		text := err.Error()
		if msgs.Error != nil {
			text = msgs.Error(err)
		}

		s.Update(id,
			WithType(domain.ToastError),
			WithMessage(text),
			WithDuration(s.DefaultDuration()))

		return v, err
	}

	text := "Done"
	if msgs.Success != nil {
		text = msgs.Success(v)
	}

	s.Update(id,
		WithType(domain.ToastSuccess),
		WithMessage(text),
		WithDuration(s.DefaultDuration()))

	return v, nil
}
