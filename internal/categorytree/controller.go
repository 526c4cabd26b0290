// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package categorytree

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Fetcher loads the authoritative category tree.
type Fetcher interface {
	FetchTree(ctx context.Context) (Tree, error)
}

// Gateway persists a complete reorder batch. Implementations must apply the
// whole batch or nothing, and classify failures with ErrNetwork or
// ErrServerRejected.
type Gateway interface {
	SubmitOrder(ctx context.Context, items []OrderItem) (updated int, err error)
}

// invalidator is implemented by fetchers that keep a cached copy of the tree.
// The controller drops the cache whenever the server copy changes or must
// be re-read.
type invalidator interface {
	Invalidate(ctx context.Context)
}

// State is the phase of the controller's reorder cycle.
type State int

const (
	// Idle means no reorder has completed since the last load.
	Idle State = iota
	// Mutating means a moved tree is displayed and the gateway call is in flight.
	Mutating
	// Confirmed means the last reorder was accepted by the gateway.
	Confirmed
	// Failed means the last reorder was refused and the tree was reloaded.
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Mutating:
		return "mutating"
	case Confirmed:
		return "confirmed"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// EventKind identifies a controller notification.
type EventKind string

const (
	EventConfirmed EventKind = "confirmed"
	EventRejected  EventKind = "rejected"
	EventInvalid   EventKind = "invalid"
)

// Event is delivered to the notifier after every move attempt.
type Event struct {
	Kind     EventKind
	Actor    string
	DragID   string
	DropID   string
	Position DropPosition
	Items    int
	Err      error
}

// MessageKey is the console translation key of the notification shown
// for the event.
func (e Event) MessageKey() string {
	switch e.Kind {
	case EventConfirmed:
		return "category.tree.reorderSuccess"
	case EventInvalid:
		return "category.tree.invalidMove"
	}
	return "category.tree.reorderError"
}

type actorKey struct{}

// WithActor tags ctx with the person performing a move; it is copied into
// the resulting Event.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor set by WithActor.
func ActorFromContext(ctx context.Context) string {
	a, _ := ctx.Value(actorKey{}).(string)
	return a
}

// Result describes the outcome of Controller.Move.
type Result struct {
	Tree    Tree
	State   State
	Updated int
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier registers a callback invoked after every move attempt.
// It runs synchronously on the caller's goroutine, outside the lock.
func WithNotifier(fn func(Event)) Option {
	return func(c *Controller) { c.notify = fn }
}

// Controller owns the confirmed category tree and runs the optimistic
// reorder cycle: apply the move locally, submit the full ordering, then
// keep the new tree or reload the authoritative one.
type Controller struct {
	fetcher Fetcher
	gateway Gateway
	notify  func(Event)

	mu        sync.Mutex
	state     State
	shown     Tree
	confirmed Tree
	// gen counts writes to confirmed. A fetch started under an older
	// generation is discarded.
	gen uint64
}

// NewController returns a controller with an empty tree. Call Load before
// the first Move.
func NewController(fetcher Fetcher, gateway Gateway, opts ...Option) *Controller {
	c := &Controller{
		fetcher: fetcher,
		gateway: gateway,
		notify:  func(Event) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the tree currently displayed and the controller state.
// While a move is in flight this is the optimistic tree.
func (c *Controller) Snapshot() (Tree, State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shown, c.state
}

// Load replaces the confirmed tree with a fresh copy from the fetcher. If a
// move settles while the fetch is in flight, the fetched copy predates it
// and the current tree is returned instead.
func (c *Controller) Load(ctx context.Context) (Tree, error) {
	c.mu.Lock()
	if c.state == Mutating {
		c.mu.Unlock()
		return Tree{}, ErrBusy
	}
	gen := c.gen
	c.mu.Unlock()

	t, err := c.fetch(ctx)
	if err != nil {
		return Tree{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Mutating {
		return Tree{}, ErrBusy
	}
	if c.gen != gen {
		slog.Debug("discarding stale category tree fetch")
		return c.shown, nil
	}
	c.gen++
	c.confirmed, c.shown, c.state = t, t, Idle
	return t, nil
}

// Reload drops any cached copy and loads the tree straight from the server.
func (c *Controller) Reload(ctx context.Context) (Tree, error) {
	c.mu.Lock()
	busy := c.state == Mutating
	c.mu.Unlock()
	if busy {
		return Tree{}, ErrBusy
	}
	c.invalidate(ctx)
	return c.Load(ctx)
}

// Move applies a drag-and-drop gesture to the confirmed tree and persists
// the resulting order. An invalid move returns ErrInvalidMove without any
// network call. A gateway failure reloads the tree from the fetcher and
// returns the gateway error together with the reloaded tree.
func (c *Controller) Move(ctx context.Context, dragID, dropID string, pos DropPosition) (Result, error) {
	c.mu.Lock()
	if c.state == Mutating {
		c.mu.Unlock()
		return Result{}, ErrBusy
	}
	base := c.confirmed
	next, err := Move(base, dragID, dropID, pos)
	if err == nil {
		err = Validate(next)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrInvalidMove, err)
		}
	}
	if err != nil {
		state := c.state
		c.mu.Unlock()
		c.notify(Event{Kind: EventInvalid, Actor: ActorFromContext(ctx), DragID: dragID, DropID: dropID, Position: pos, Err: err})
		return Result{Tree: base, State: state}, err
	}
	c.shown, c.state = next, Mutating
	c.mu.Unlock()

	items := Flatten(next)
	updated, submitErr := c.gateway.SubmitOrder(ctx, items)
	if submitErr == nil {
		c.mu.Lock()
		c.gen++
		c.confirmed, c.shown, c.state = next, next, Confirmed
		c.mu.Unlock()
		c.invalidate(context.WithoutCancel(ctx))

		slog.Info("category order saved", "drag", dragID, "drop", dropID, "position", pos, "items", len(items), "updated", updated)
		c.notify(Event{Kind: EventConfirmed, Actor: ActorFromContext(ctx), DragID: dragID, DropID: dropID, Position: pos, Items: len(items)})
		return Result{Tree: next, State: Confirmed, Updated: updated}, nil
	}

	slog.Warn("category reorder rejected, reloading tree", "drag", dragID, "drop", dropID, "error", submitErr)
	restored := c.rollback(context.WithoutCancel(ctx), base)
	c.notify(Event{Kind: EventRejected, Actor: ActorFromContext(ctx), DragID: dragID, DropID: dropID, Position: pos, Items: len(items), Err: submitErr})
	return Result{Tree: restored, State: Failed}, fmt.Errorf("submit category order: %w", submitErr)
}

// rollback discards the optimistic tree and reloads the authoritative one.
// If the reload fails too, the last confirmed tree is shown again.
func (c *Controller) rollback(ctx context.Context, base Tree) Tree {
	c.invalidate(ctx)
	t, err := c.fetch(ctx)
	if err != nil {
		slog.Error("reload category tree failed", "error", err)
		t = base
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.confirmed, c.shown, c.state = t, t, Failed
	return t
}

func (c *Controller) invalidate(ctx context.Context) {
	if inv, ok := c.fetcher.(invalidator); ok {
		inv.Invalidate(ctx)
	}
}

func (c *Controller) fetch(ctx context.Context) (Tree, error) {
	t, err := c.fetcher.FetchTree(ctx)
	if err != nil {
		return Tree{}, fmt.Errorf("fetch category tree: %w", err)
	}
	if err := Validate(t); err != nil {
		return Tree{}, fmt.Errorf("fetch category tree: %w", err)
	}
	return t, nil
}

// IsGatewayError reports whether err came from the gateway rather than
// from the move itself.
func IsGatewayError(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrServerRejected)
}
