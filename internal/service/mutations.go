package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/venue-directory/internal/database"
	"github.com/iliyamo/venue-directory/internal/model"
	"github.com/iliyamo/venue-directory/internal/queue"
	"github.com/iliyamo/venue-directory/internal/repository"
)

const (
	entityVenue  = "venue"
	entityArtist = "artist"
	entityShow   = "show"
)

// CreateVenue lists a new venue.  When a venue with the identical name
// already exists nothing is written and the outcome is Rejected with a
// nil error.  The name check runs inside the same transaction as the
// insert and the store's unique constraint settles concurrent creates.
func (d *Directory) CreateVenue(ctx context.Context, f model.VenueFields) (model.Result, error) {
	f, err := normalizeVenue(f)
	res := model.Result{Subject: f.Name}
	if err != nil {
		res.Outcome = model.OutcomeInvalid
		return d.finish(entityVenue, res, err)
	}

	v := &model.Venue{}
	f.Apply(v)
	err = database.WithTx(ctx, d.db, func(tx *sql.Tx) error {
		venues := d.venues.WithTx(tx)
		n, err := venues.CountByName(ctx, v.Name)
		if err != nil {
			return err
		}
		if n > 0 {
			return repository.ErrDuplicateName
		}
		return venues.Create(ctx, v)
	})
	switch {
	case err == nil:
		res.Outcome, res.ID = model.OutcomeCreated, v.ID
		d.publish(ctx, queue.DirectoryEvent{Type: queue.EventVenueCreated, Entity: entityVenue, EntityID: v.ID, Name: v.Name})
		return d.finish(entityVenue, res, nil)
	case errors.Is(err, repository.ErrDuplicateName):
		res.Outcome = model.OutcomeRejected
		return d.finish(entityVenue, res, nil)
	default:
		res.Outcome = model.OutcomeStoreUnavailable
		return d.finish(entityVenue, res, d.storeFailure("create venue", v.Name, err))
	}
}

// UpdateVenue replaces every mutable field of venue id.  A missing id
// yields NotFound; renaming onto another venue's name yields Rejected.
func (d *Directory) UpdateVenue(ctx context.Context, id int64, f model.VenueFields) (model.Result, error) {
	f, err := normalizeVenue(f)
	res := model.Result{ID: id, Subject: f.Name}
	if err != nil {
		res.Outcome = model.OutcomeInvalid
		return d.finish(entityVenue, res, err)
	}

	err = database.WithTx(ctx, d.db, func(tx *sql.Tx) error {
		venues := d.venues.WithTx(tx)
		v, err := venues.GetByID(ctx, id)
		if err != nil {
			return err
		}
		f.Apply(v)
		return venues.Update(ctx, v)
	})
	switch {
	case err == nil:
		res.Outcome = model.OutcomeUpdated
		return d.finish(entityVenue, res, nil)
	case errors.Is(err, repository.ErrVenueNotFound):
		res.Outcome = model.OutcomeNotFound
		return d.finish(entityVenue, res, ErrNotFound)
	case errors.Is(err, repository.ErrDuplicateName):
		res.Outcome = model.OutcomeRejected
		return d.finish(entityVenue, res, nil)
	default:
		res.Outcome = model.OutcomeStoreUnavailable
		return d.finish(entityVenue, res, d.storeFailure("update venue", f.Name, err))
	}
}

// DeleteVenue removes the venue's shows and then the venue in one unit
// of work.  A missing venue yields NotFound and writes nothing.
func (d *Directory) DeleteVenue(ctx context.Context, id int64) (model.Result, error) {
	res := model.Result{ID: id}
	var removed int64
	err := database.WithTx(ctx, d.db, func(tx *sql.Tx) error {
		venues := d.venues.WithTx(tx)
		v, err := venues.GetByID(ctx, id)
		if err != nil {
			return err
		}
		res.Subject = v.Name
		if removed, err = d.shows.WithTx(tx).DeleteByVenue(ctx, id); err != nil {
			return err
		}
		return venues.Delete(ctx, id)
	})
	switch {
	case err == nil:
		res.Outcome = model.OutcomeDeleted
		d.publish(ctx, queue.DirectoryEvent{Type: queue.EventVenueDeleted, Entity: entityVenue, EntityID: id, Name: res.Subject, ShowsRemoved: removed})
		return d.finish(entityVenue, res, nil)
	case errors.Is(err, repository.ErrVenueNotFound):
		res.Outcome = model.OutcomeNotFound
		return d.finish(entityVenue, res, ErrNotFound)
	default:
		res.Outcome = model.OutcomeStoreUnavailable
		return d.finish(entityVenue, res, d.storeFailure("delete venue", res.Subject, err))
	}
}

// CreateArtist lists a new artist with the same admission rule as
// CreateVenue.
func (d *Directory) CreateArtist(ctx context.Context, f model.ArtistFields) (model.Result, error) {
	f, err := normalizeArtist(f)
	res := model.Result{Subject: f.Name}
	if err != nil {
		res.Outcome = model.OutcomeInvalid
		return d.finish(entityArtist, res, err)
	}

	a := &model.Artist{}
	f.Apply(a)
	err = database.WithTx(ctx, d.db, func(tx *sql.Tx) error {
		artists := d.artists.WithTx(tx)
		n, err := artists.CountByName(ctx, a.Name)
		if err != nil {
			return err
		}
		if n > 0 {
			return repository.ErrDuplicateName
		}
		return artists.Create(ctx, a)
	})
	switch {
	case err == nil:
		res.Outcome, res.ID = model.OutcomeCreated, a.ID
		d.publish(ctx, queue.DirectoryEvent{Type: queue.EventArtistCreated, Entity: entityArtist, EntityID: a.ID, Name: a.Name})
		return d.finish(entityArtist, res, nil)
	case errors.Is(err, repository.ErrDuplicateName):
		res.Outcome = model.OutcomeRejected
		return d.finish(entityArtist, res, nil)
	default:
		res.Outcome = model.OutcomeStoreUnavailable
		return d.finish(entityArtist, res, d.storeFailure("create artist", a.Name, err))
	}
}

// UpdateArtist replaces every mutable field of artist id.
func (d *Directory) UpdateArtist(ctx context.Context, id int64, f model.ArtistFields) (model.Result, error) {
	f, err := normalizeArtist(f)
	res := model.Result{ID: id, Subject: f.Name}
	if err != nil {
		res.Outcome = model.OutcomeInvalid
		return d.finish(entityArtist, res, err)
	}

	err = database.WithTx(ctx, d.db, func(tx *sql.Tx) error {
		artists := d.artists.WithTx(tx)
		a, err := artists.GetByID(ctx, id)
		if err != nil {
			return err
		}
		f.Apply(a)
		return artists.Update(ctx, a)
	})
	switch {
	case err == nil:
		res.Outcome = model.OutcomeUpdated
		return d.finish(entityArtist, res, nil)
	case errors.Is(err, repository.ErrArtistNotFound):
		res.Outcome = model.OutcomeNotFound
		return d.finish(entityArtist, res, ErrNotFound)
	case errors.Is(err, repository.ErrDuplicateName):
		res.Outcome = model.OutcomeRejected
		return d.finish(entityArtist, res, nil)
	default:
		res.Outcome = model.OutcomeStoreUnavailable
		return d.finish(entityArtist, res, d.storeFailure("update artist", f.Name, err))
	}
}

// DeleteArtist removes the artist's shows and then the artist, mirroring
// DeleteVenue.
func (d *Directory) DeleteArtist(ctx context.Context, id int64) (model.Result, error) {
	res := model.Result{ID: id}
	var removed int64
	err := database.WithTx(ctx, d.db, func(tx *sql.Tx) error {
		artists := d.artists.WithTx(tx)
		a, err := artists.GetByID(ctx, id)
		if err != nil {
			return err
		}
		res.Subject = a.Name
		if removed, err = d.shows.WithTx(tx).DeleteByArtist(ctx, id); err != nil {
			return err
		}
		return artists.Delete(ctx, id)
	})
	switch {
	case err == nil:
		res.Outcome = model.OutcomeDeleted
		d.publish(ctx, queue.DirectoryEvent{Type: queue.EventArtistDeleted, Entity: entityArtist, EntityID: id, Name: res.Subject, ShowsRemoved: removed})
		return d.finish(entityArtist, res, nil)
	case errors.Is(err, repository.ErrArtistNotFound):
		res.Outcome = model.OutcomeNotFound
		return d.finish(entityArtist, res, ErrNotFound)
	default:
		res.Outcome = model.OutcomeStoreUnavailable
		return d.finish(entityArtist, res, d.storeFailure("delete artist", res.Subject, err))
	}
}

// CreateShow books an artist at a venue.  Both must exist; otherwise
// the outcome is ReferentialError and nothing is written.
func (d *Directory) CreateShow(ctx context.Context, f model.ShowFields) (model.Result, error) {
	res := model.Result{}
	if err := validateShow(f); err != nil {
		res.Outcome = model.OutcomeInvalid
		return d.finish(entityShow, res, err)
	}

	s := &model.Show{VenueID: f.VenueID, ArtistID: f.ArtistID, StartTime: f.StartTime}
	var venueName string
	err := database.WithTx(ctx, d.db, func(tx *sql.Tx) error {
		v, err := d.venues.WithTx(tx).GetByID(ctx, f.VenueID)
		if err != nil {
			return err
		}
		a, err := d.artists.WithTx(tx).GetByID(ctx, f.ArtistID)
		if err != nil {
			return err
		}
		venueName, res.Subject = v.Name, a.Name
		return d.shows.WithTx(tx).Create(ctx, s)
	})
	switch {
	case err == nil:
		res.Outcome, res.ID = model.OutcomeCreated, s.ID
		d.publish(ctx, queue.DirectoryEvent{
			Type:       queue.EventShowBooked,
			Entity:     entityShow,
			EntityID:   s.ID,
			Name:       res.Subject,
			VenueID:    s.VenueID,
			VenueName:  venueName,
			ArtistID:   s.ArtistID,
			ArtistName: res.Subject,
			StartTime:  s.StartTime.Format(queue.TimeLayout),
		})
		return d.finish(entityShow, res, nil)
	case errors.Is(err, repository.ErrVenueNotFound):
		res.Outcome = model.OutcomeReferentialError
		return d.finish(entityShow, res, fmt.Errorf("%w: venue %d", ErrReferential, f.VenueID))
	case errors.Is(err, repository.ErrArtistNotFound):
		res.Outcome = model.OutcomeReferentialError
		return d.finish(entityShow, res, fmt.Errorf("%w: artist %d", ErrReferential, f.ArtistID))
	case errors.Is(err, repository.ErrMissingReference):
		// Parent row vanished between the check and the insert.
		res.Outcome = model.OutcomeReferentialError
		return d.finish(entityShow, res, ErrReferential)
	default:
		res.Outcome = model.OutcomeStoreUnavailable
		return d.finish(entityShow, res, d.storeFailure("create show", res.Subject, err))
	}
}

// DeleteShow cancels a single show.
func (d *Directory) DeleteShow(ctx context.Context, id int64) (model.Result, error) {
	res := model.Result{ID: id}
	err := database.WithTx(ctx, d.db, func(tx *sql.Tx) error {
		return d.shows.WithTx(tx).Delete(ctx, id)
	})
	switch {
	case err == nil:
		res.Outcome = model.OutcomeDeleted
		return d.finish(entityShow, res, nil)
	case errors.Is(err, repository.ErrShowNotFound):
		res.Outcome = model.OutcomeNotFound
		return d.finish(entityShow, res, ErrNotFound)
	default:
		res.Outcome = model.OutcomeStoreUnavailable
		return d.finish(entityShow, res, d.storeFailure("delete show", "", err))
	}
}
