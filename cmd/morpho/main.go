package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nikolayk812/morpho-cart/internal/cart"
	"github.com/nikolayk812/morpho-cart/internal/config"
	"github.com/nikolayk812/morpho-cart/internal/domain"
	"github.com/nikolayk812/morpho-cart/internal/port"
	"github.com/nikolayk812/morpho-cart/internal/price"
	"github.com/nikolayk812/morpho-cart/internal/repository"
	"github.com/nikolayk812/morpho-cart/internal/toast"
)

var menu = []domain.Product{
	{ID: 1, Name: "Espresso", Category: "coffee", Price: "۴۵,۰۰۰", Image: "/img/espresso.jpg", Rating: 4.7},
	{ID: 7, Name: "Latte", Category: "coffee", Price: "۵۰,۰۰۰", Image: "/img/latte.jpg", Rating: 4.8},
	{ID: 12, Name: "Saffron Tea", Category: "tea", Price: "۳۸,۰۰۰", Image: "/img/saffron-tea.jpg", Rating: 4.6},
	{ID: 21, Name: "Croissant", Category: "pastry", Price: "۶۵,۰۰۰", Image: "/img/croissant.jpg", Rating: 4.5},
	{ID: 24, Name: "Pistachio Tart", Category: "pastry", Price: "۹۲,۰۰۰", Image: "/img/tart.jpg", Rating: 4.9},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout); err != nil {
		logrus.WithError(err).Fatal("morpho failed")
	}
}

// syncWriter serializes writes from the REPL and from toast listeners,
// which run on dismiss timer goroutines.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.w.Write(p)
}

func run(ctx context.Context, in io.Reader, w io.Writer) error {
	out := &syncWriter{w: w}

	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log := logrus.New()
	level, _ := cfg.Level()
	log.SetLevel(level)

	storage, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("openStorage: %w", err)
	}
	defer closeStorage()

	tag, _ := cfg.Language()
	unit, _ := cfg.CurrencyUnit()
	formatter := price.NewFormatter(tag, cfg.NativeDigits)

	toasts := toast.NewStore(
		toast.WithMaxToasts(cfg.MaxToasts),
		toast.WithDefaultDuration(cfg.ToastDuration),
		toast.WithLogger(log),
	)
	dismisser := toast.NewDismisser(toasts)
	defer dismisser.Close()

	unsubscribe := toasts.Subscribe(func(list []domain.Toast) {
		printToasts(out, list)
	})
	defer unsubscribe()

	store := cart.New(ctx, storage, toasts,
		cart.WithStorageKey(cfg.CartKey),
		cart.WithCurrency(unit),
		cart.WithFormatter(formatter),
		cart.WithLogger(log),
	)

	log.WithFields(logrus.Fields{
		"storage": cfg.Storage,
		"items":   store.ItemCount(),
		"total":   store.Total().String(),
	}).Info("cart ready")

	return repl(ctx, in, out, store, toasts, dismisser, formatter)
}

func openStorage(ctx context.Context, cfg config.Config) (port.Storage, func(), error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("pool.Ping: %w", err)
		}
		return repository.NewStorage(pool), pool.Close, nil

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("client.Ping: %w", err)
		}
		return repository.NewRedisStorage(client), func() { _ = client.Close() }, nil

	default:
		return repository.NewMemoryStorage(), func() {}, nil
	}
}

func repl(ctx context.Context, in io.Reader, out io.Writer, store *cart.Store, toasts *toast.Store, dismisser *toast.Dismisser, formatter *price.Formatter) error {
	fmt.Fprintln(out, "=== Morpho Café ===")
	fmt.Fprintln(out, "Commands: menu, add <id>, inc <id>, dec <id>, rm <id>, cart, open, close, clear,")
	fmt.Fprintln(out, "          toasts, hover <n>, leave <n>, close-toast <n>, act <n>, quit")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch cmd := fields[0]; cmd {
		case "menu":
			for _, p := range menu {
				fmt.Fprintf(out, "%3d  %-16s %10s  (%s)\n", p.ID, p.Name, formatter.Format(p.Price), p.Category)
			}

		case "add":
			id, ok := argID(out, fields)
			if !ok {
				continue
			}
			p, found := findProduct(id)
			if !found {
				fmt.Fprintf(out, "no product %d on the menu\n", id)
				continue
			}
			store.AddItem(ctx, p)

		case "inc", "dec":
			id, ok := argID(out, fields)
			if !ok {
				continue
			}
			delta := 1
			if cmd == "dec" {
				delta = -1
			}
			store.UpdateQuantity(ctx, id, delta)
			printCart(out, store)

		case "rm":
			id, ok := argID(out, fields)
			if !ok {
				continue
			}
			store.RemoveItem(ctx, id)

		case "cart":
			printCart(out, store)

		case "open", "close":
			store.SetOpen(cmd == "open")
			fmt.Fprintf(out, "cart panel open: %t\n", store.IsOpen())

		case "clear":
			store.ClearCart(ctx)
			printCart(out, store)

		case "toasts":
			printToasts(out, toasts.Toasts())

		case "hover", "leave", "close-toast", "act":
			id, ok := toastAt(out, toasts, fields)
			if !ok {
				continue
			}
			switch cmd {
			case "hover":
				dismisser.Pause(id)
			case "leave":
				dismisser.Resume(id)
			case "close-toast":
				dismisser.Dismiss(id)
			case "act":
				if !dismisser.Act(id) {
					fmt.Fprintln(out, "toast has no action")
				}
			}

		case "q", "quit", "exit":
			fmt.Fprintln(out, "Goodbye!")
			return nil

		default:
			fmt.Fprintln(out, "Invalid command. Please try again.")
		}
	}
}

func argID(out io.Writer, fields []string) (int64, bool) {
	if len(fields) < 2 {
		fmt.Fprintf(out, "usage: %s <id>\n", fields[0])
		return 0, false
	}
	id, err := strconv.ParseInt(price.NormalizeDigits(fields[1]), 10, 64)
	if err != nil {
		fmt.Fprintf(out, "id[%s] is not a number\n", fields[1])
		return 0, false
	}
	return id, true
}

// toastAt resolves the 1-based position shown by printToasts.
func toastAt(out io.Writer, toasts *toast.Store, fields []string) (string, bool) {
	n, ok := argID(out, fields)
	if !ok {
		return "", false
	}
	list := toasts.Toasts()
	if n < 1 || int(n) > len(list) {
		fmt.Fprintf(out, "no toast #%d\n", n)
		return "", false
	}
	return list[n-1].ID, true
}

func findProduct(id int64) (domain.Product, bool) {
	for _, p := range menu {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func printCart(out io.Writer, store *cart.Store) {
	items := store.Items()
	if len(items) == 0 {
		fmt.Fprintln(out, "cart is empty")
		return
	}
	for _, item := range items {
		fmt.Fprintf(out, "%3d  %-16s x%d  %s\n", item.ID, item.Name, item.Quantity, item.Price)
	}
	total := store.Total()
	fmt.Fprintf(out, "items: %d  total: %s %s\n", store.ItemCount(), store.FormattedTotal(), total.Currency)
}

// printToasts writes the list in a single Write so listener output is not
// interleaved with the prompt.
func printToasts(out io.Writer, list []domain.Toast) {
	var b strings.Builder
	fmt.Fprintf(&b, "\n[toasts: %d]\n", len(list))
	for i, t := range list {
		fmt.Fprintf(&b, "  #%d %-7s %s", i+1, t.Type, t.Message)
		if t.Description != "" {
			b.WriteString(" - " + t.Description)
		}
		b.WriteByte('\n')
	}
	_, _ = io.WriteString(out, b.String())
}
