package domain

import "time"

type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastWarning ToastType = "warning"
	ToastInfo    ToastType = "info"
	ToastLoading ToastType = "loading"
	ToastCart    ToastType = "cart"
)

// IsTerminal reports whether toasts of this type auto-dismiss.
func (t ToastType) IsTerminal() bool {
	return t != ToastLoading
}

func (t ToastType) String() string {
	return string(t)
}

// ToastAction is a single button on a toast. Invoking it also dismisses the toast.
type ToastAction struct {
	Label   string
	OnClick func()
}

type Toast struct {
	ID          string
	Message     string
	Description string
	Type        ToastType
	// Duration is the auto-dismiss delay. It is meaningless while Type is ToastLoading.
	Duration time.Duration
	Action   *ToastAction

	CreatedAt time.Time
}
