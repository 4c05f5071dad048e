package toast

import (
	"time"

	"github.com/nikolayk812/morpho-cart/internal/domain"
)

// Field sets one attribute of a toast, on creation or in Store.Update.
type Field func(*domain.Toast)

// WithID fixes the id of a new toast. Store.Update ignores it.
func WithID(id string) Field {
	return func(t *domain.Toast) {
		t.ID = id
	}
}

func WithMessage(message string) Field {
	return func(t *domain.Toast) {
		t.Message = message
	}
}

func WithDescription(description string) Field {
	return func(t *domain.Toast) {
		t.Description = description
	}
}

func WithType(typ domain.ToastType) Field {
	return func(t *domain.Toast) {
		t.Type = typ
	}
}

func WithDuration(d time.Duration) Field {
	return func(t *domain.Toast) {
		t.Duration = d
	}
}

func WithAction(label string, onClick func()) Field {
	return func(t *domain.Toast) {
		t.Action = &domain.ToastAction{Label: label, OnClick: onClick}
	}
}
