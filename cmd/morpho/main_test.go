package main

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Setenv("MORPHO_STORAGE", "memory")
	t.Setenv("MORPHO_LOCALE", "en")
	t.Setenv("MORPHO_LOG_LEVEL", "error")

	script := strings.Join([]string{
		"menu",
		"add 7",
		"add ۷",
		"add 1",
		"dec 1",
		"cart",
		"open",
		"hover 1",
		"close-toast 1",
		"add 999",
		"rm x",
		"bogus",
		"quit",
	}, "\n")

	var out bytes.Buffer
	err := run(t.Context(), strings.NewReader(script), &out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Latte added to cart")
	assert.Contains(t, got, "Latte quantity increased")
	assert.Contains(t, got, "Espresso added to cart")
	assert.Contains(t, got, "x2")
	assert.Contains(t, got, "items: 2  total: 100,000 IRR")
	assert.Contains(t, got, "cart panel open: true")
	assert.Contains(t, got, "no product 999 on the menu")
	assert.Contains(t, got, "id[x] is not a number")
	assert.Contains(t, got, "Invalid command")
	assert.Contains(t, got, "Goodbye!")
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func TestRun_ExpiringToasts(t *testing.T) {
	t.Setenv("MORPHO_STORAGE", "memory")
	t.Setenv("MORPHO_LOCALE", "en")
	t.Setenv("MORPHO_LOG_LEVEL", "error")
	t.Setenv("MORPHO_TOAST_DURATION", "1ms")

	in, feed := io.Pipe()
	var out lockedBuffer

	done := make(chan error, 1)
	go func() {
		done <- run(t.Context(), in, &out)
	}()

	_, err := io.WriteString(feed, "add 7\nadd 1\n")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "[toasts: 0]")
	}, time.Second, 5*time.Millisecond)

	_, err = io.WriteString(feed, "toasts\nquit\n")
	require.NoError(t, err)
	require.NoError(t, feed.Close())

	require.NoError(t, <-done)

	got := out.String()
	assert.Contains(t, got, "Latte added to cart")
	assert.Contains(t, got, "Espresso added to cart")
	assert.Contains(t, got, "Goodbye!")
}
