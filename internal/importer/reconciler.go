// Package importer reconciles a list received through a share link with the
// list the user already has.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/idilsaglam/listlist/internal/codec"
	"github.com/idilsaglam/listlist/internal/liststore"
	"github.com/idilsaglam/listlist/internal/model"
)

// Param is the query parameter that carries a share string.
const Param = "import"

// State of a reconciliation.
type State int

const (
	NoConflict State = iota
	PendingConflict
	Resolved
)

func (s State) String() string {
	switch s {
	case NoConflict:
		return "no-conflict"
	case PendingConflict:
		return "pending-conflict"
	case Resolved:
		return "resolved"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Resolution is the user's answer to an import conflict.
type Resolution int

const (
	Merge Resolution = iota
	Overwrite
	Cancel
)

// Resolutions lists every choice, in the order a prompt should offer them.
var Resolutions = []Resolution{Merge, Overwrite, Cancel}

func (r Resolution) String() string {
	switch r {
	case Merge:
		return "merge"
	case Overwrite:
		return "overwrite"
	case Cancel:
		return "cancel"
	}
	return fmt.Sprintf("Resolution(%d)", int(r))
}

// ParseResolution accepts the names returned by String.
func ParseResolution(s string) (Resolution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "merge":
		return Merge, nil
	case "overwrite":
		return Overwrite, nil
	case "cancel":
		return Cancel, nil
	}
	return 0, fmt.Errorf("unknown resolution %q (want merge|overwrite|cancel)", s)
}

var (
	ErrNoConflict = errors.New("no import conflict pending")
)

// Reconciler walks NoConflict -> (PendingConflict ->) Resolved for one
// share string taken from the environment.
type Reconciler struct {
	store *liststore.Store
	env   Environment
	log   *slog.Logger

	state    State
	incoming model.List
	cleared  bool
}

type Option func(*Reconciler)

func WithLogger(l *slog.Logger) Option { return func(r *Reconciler) { r.log = l } }

func New(store *liststore.Store, env Environment, opts ...Option) *Reconciler {
	r := &Reconciler{
		store: store,
		env:   env,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Check looks for a share string in the environment. An empty current list
// adopts the incoming items right away; otherwise the conflict is left
// pending for Resolve. A missing or malformed share string leaves the
// reconciler in NoConflict.
func (r *Reconciler) Check(ctx context.Context) (State, error) {
	if r.state != NoConflict {
		return r.state, nil
	}
	raw, ok := r.env.Param(Param)
	if !ok || strings.TrimSpace(raw) == "" {
		return r.state, nil
	}
	incoming, err := codec.Decode(raw)
	if err != nil {
		r.log.Warn("ignoring share string", "err", err)
		return r.state, nil
	}
	if len(incoming) == 0 {
		return r.state, nil
	}

	if r.store.Len() == 0 {
		if _, err := r.store.Replace(ctx, incoming); err != nil {
			return r.state, fmt.Errorf("adopt import: %w", err)
		}
		r.log.Info("import adopted", "items", len(incoming))
		r.state = Resolved
		return r.state, r.clearMarker()
	}

	r.incoming = incoming
	r.state = PendingConflict
	r.log.Info("import conflict", "incoming", len(incoming), "current", r.store.Len())
	return r.state, nil
}

// Resolve commits the chosen resolution and then clears the import marker.
// A failed commit leaves the conflict pending and the marker in place.
func (r *Reconciler) Resolve(ctx context.Context, res Resolution) (model.List, error) {
	if r.state != PendingConflict {
		return r.store.Items(), ErrNoConflict
	}
	var (
		list model.List
		err  error
	)
	switch res {
	case Merge:
		list, err = r.store.Append(ctx, r.incoming)
	case Overwrite:
		list, err = r.store.Replace(ctx, r.incoming)
	case Cancel:
		list, err = r.store.Commit(ctx)
	default:
		return r.store.Items(), fmt.Errorf("resolve import: unknown resolution %v", res)
	}
	if err != nil {
		return list, fmt.Errorf("resolve import (%s): %w", res, err)
	}
	r.log.Info("import resolved", "resolution", res.String(), "items", len(list))
	r.state = Resolved
	r.incoming = nil
	return list, r.clearMarker()
}

func (r *Reconciler) State() State { return r.state }

// ClearMarker retries clearing the import marker after Check or Resolve
// reported a failure doing so. It is a no-op once the marker is gone or
// while nothing has been resolved.
func (r *Reconciler) ClearMarker() error {
	if r.state != Resolved {
		return nil
	}
	return r.clearMarker()
}

// Incoming returns a copy of the pending incoming list.
func (r *Reconciler) Incoming() model.List { return r.incoming.Clone() }

func (r *Reconciler) clearMarker() error {
	if r.cleared {
		return nil
	}
	if err := r.env.ClearParams(); err != nil {
		return fmt.Errorf("clear import marker: %w", err)
	}
	r.cleared = true
	return nil
}
