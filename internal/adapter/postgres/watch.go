package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Change is one row-level mutation reported by the database.
// The payload format is fixed by the notify_row_change trigger:
// "<table>:<op>:<id>" with op in insert/update/delete.
type Change struct {
	Table string
	Op    string
	ID    uuid.UUID
}

// Watcher listens on the row_changes notification channel and fans
// incoming changes out to subscribers. One dedicated connection is held
// while Run is active; on connection loss the watcher reconnects after
// the configured retry interval.
type Watcher struct {
	pool  *pgxpool.Pool
	log   *slog.Logger
	retry time.Duration

	mu     sync.Mutex
	subs   map[int]chan Change
	nextID int
}

// NewWatcher creates a watcher over the given pool.
func NewWatcher(pool *pgxpool.Pool, log *slog.Logger, retry time.Duration) *Watcher {
	if retry <= 0 {
		retry = 5 * time.Second
	}
	return &Watcher{
		pool:  pool,
		log:   log.With("component", "pg_watcher"),
		retry: retry,
		subs:  make(map[int]chan Change),
	}
}

// Subscribe registers a new change channel. Slow subscribers drop
// changes rather than blocking delivery. The returned cancel func
// closes the channel and removes the subscription.
func (w *Watcher) Subscribe(buffer int) (<-chan Change, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Change, buffer)

	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = ch
	w.mu.Unlock()

	cancel := func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if sub, ok := w.subs[id]; ok {
			delete(w.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Run blocks listening for notifications until ctx is cancelled.
// Listen errors are logged and retried; only context cancellation
// terminates the loop.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		err := w.listen(ctx)
		if ctx.Err() != nil {
			w.closeAll()
			return ctx.Err()
		}
		w.log.ErrorContext(ctx, "listen failed, retrying",
			"error", err, "retry_in", w.retry)

		select {
		case <-time.After(w.retry):
		case <-ctx.Done():
			w.closeAll()
			return ctx.Err()
		}
	}
}

func (w *Watcher) listen(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `LISTEN row_changes`); err != nil {
		return fmt.Errorf("listen row_changes: %w", err)
	}
	w.log.InfoContext(ctx, "listening for row changes")

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		change, err := parseChange(n.Payload)
		if err != nil {
			w.log.WarnContext(ctx, "discarding malformed notification",
				"payload", n.Payload, "error", err)
			continue
		}
		w.dispatch(change)
	}
}

func (w *Watcher) dispatch(c Change) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ch := range w.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

func (w *Watcher) closeAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id, ch := range w.subs {
		delete(w.subs, id)
		close(ch)
	}
}

func parseChange(payload string) (Change, error) {
	parts := strings.SplitN(payload, ":", 3)
	if len(parts) != 3 {
		return Change{}, errors.New("expected table:op:id")
	}
	id, err := uuid.Parse(parts[2])
	if err != nil {
		return Change{}, fmt.Errorf("parse id: %w", err)
	}
	return Change{Table: parts[0], Op: parts[1], ID: id}, nil
}
