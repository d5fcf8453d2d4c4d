// Package service holds the directory's business rules: the read-only
// views over venues, artists and shows, and the mutations with their
// duplicate-name admission and unit-of-work semantics.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/venue-directory/internal/metrics"
	"github.com/iliyamo/venue-directory/internal/model"
	"github.com/iliyamo/venue-directory/internal/queue"
	"github.com/iliyamo/venue-directory/internal/repository"
)

// EventPublisher delivers directory events after a mutation commits.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.DirectoryEvent) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, queue.DirectoryEvent) error { return nil }

// publishTimeout bounds how long a committed mutation waits on the
// broker before giving up on its event.
const publishTimeout = 2 * time.Second

// Directory is the entry point for reads and writes.  It holds no
// mutable state of its own; every call works on its own transaction or
// query against the store.
type Directory struct {
	db      *sql.DB
	venues  *repository.VenueRepo
	artists *repository.ArtistRepo
	shows   *repository.ShowRepo
	events  EventPublisher
	log     *zap.Logger
	now     func() time.Time
}

// Option customises a Directory.
type Option func(*Directory)

// WithClock replaces time.Now, which decides past versus upcoming.
func WithClock(now func() time.Time) Option {
	return func(d *Directory) { d.now = now }
}

// WithPublisher sets where committed mutations announce themselves.
func WithPublisher(p EventPublisher) Option {
	return func(d *Directory) {
		if p != nil {
			d.events = p
		}
	}
}

// WithLogger sets the logger used for store and broker failures.
func WithLogger(l *zap.Logger) Option {
	return func(d *Directory) {
		if l != nil {
			d.log = l
		}
	}
}

// NewDirectory builds a Directory over db.  It panics when db is nil.
func NewDirectory(db *sql.DB, opts ...Option) *Directory {
	if db == nil {
		panic("nil db passed to NewDirectory")
	}
	d := &Directory{
		db:      db,
		venues:  repository.NewVenueRepo(db),
		artists: repository.NewArtistRepo(db),
		shows:   repository.NewShowRepo(db),
		events:  nopPublisher{},
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// instant is "now" at the store's precision.
func (d *Directory) instant() time.Time {
	return d.now().UTC().Truncate(time.Second)
}

// storeFailure logs the cause and hides it from the caller.
func (d *Directory) storeFailure(op, subject string, err error) error {
	d.log.Error("store operation failed",
		zap.String("op", op),
		zap.String("subject", subject),
		zap.Error(err),
	)
	return fmt.Errorf("%s: %w", op, ErrStoreUnavailable)
}

// finish records the outcome metric and returns res and err unchanged.
func (d *Directory) finish(entity string, res model.Result, err error) (model.Result, error) {
	metrics.ObserveMutation(entity, string(res.Outcome))
	return res, err
}

// publish hands ev to the broker.  Failures are logged only: the
// mutation has already committed.
func (d *Directory) publish(ctx context.Context, ev queue.DirectoryEvent) {
	ev = queue.Stamp(ev, d.now())
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := d.events.Publish(pctx, ev); err != nil {
		d.log.Warn("publish directory event failed",
			zap.String("type", ev.Type),
			zap.Int64("entity_id", ev.EntityID),
			zap.Error(err),
		)
	}
}
