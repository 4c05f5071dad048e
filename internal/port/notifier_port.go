package port

import (
	"github.com/nikolayk812/morpho-cart/internal/domain"
)

// Notifier accepts toasts and returns the id assigned to them.
type Notifier interface {
	Add(t domain.Toast) string
}
