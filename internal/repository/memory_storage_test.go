package repository_test

import (
	"testing"

	"github.com/nikolayk812/morpho-cart/internal/repository"
)

func TestMemoryStorage(t *testing.T) {
	testStorage(t, repository.NewMemoryStorage())
}
