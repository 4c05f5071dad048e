package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikolayk812/morpho-cart/internal/domain"
)

func TestPriceText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      domain.PriceText
		wantError bool
	}{
		{name: "persian string: ok", input: `"۴۵,۰۰۰"`, want: "۴۵,۰۰۰"},
		{name: "integer: ok", input: `45000`, want: "45000"},
		{name: "null: empty", input: `null`, want: ""},
		{name: "bool: error", input: `true`, wantError: true},
		{name: "object: error", input: `{}`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.PriceText
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewCartLineItem(t *testing.T) {
	p := domain.Product{ID: 7, Name: "Latte", Description: "double shot", Image: "/img/latte.jpg", Category: "coffee", Price: "۵۰,۰۰۰", Rating: 4.8}

	item := domain.NewCartLineItem(p)

	assert.Equal(t, domain.CartLineItem{
		ID: 7, Name: "Latte", Description: "double shot", Image: "/img/latte.jpg",
		Category: "coffee", Price: "۵۰,۰۰۰", Rating: 4.8, Quantity: 1,
	}, item)
}

func TestToastType_IsTerminal(t *testing.T) {
	for _, typ := range []domain.ToastType{domain.ToastSuccess, domain.ToastError, domain.ToastWarning, domain.ToastInfo, domain.ToastCart} {
		assert.True(t, typ.IsTerminal(), typ)
	}
	assert.False(t, domain.ToastLoading.IsTerminal())
}
