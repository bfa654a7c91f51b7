package currency

import (
	"context"
	"errors"
	"log/slog"

	"github.com/surveyguy/surveykit/pkg/logger"
)

// LocateFunc reports the visitor's country as an ISO code or English name.
type LocateFunc func(ctx context.Context) (string, error)

// Detector resolves a visitor's currency from their location, falling back to
// a stored preference and finally to USD. A manual choice always wins over
// the location.
type Detector struct {
	store PreferenceStore
	log   *slog.Logger
}

// NewDetector returns a Detector. A nil store means preferences are not remembered.
func NewDetector(store PreferenceStore, log *slog.Logger) *Detector {
	if log == nil {
		log = slog.Default()
	}
	return &Detector{store: store, log: log.With(logger.Component("currency"))}
}

// Detect locates the visitor identified by key. On success the currency of
// the reported country is used (USD if unmapped), marked detected, and
// remembered. On failure the stored preference is used, or USD/US.
// A stored preference stays detected unless it was chosen manually.
func (d *Detector) Detect(ctx context.Context, key string, locate LocateFunc) Context {
	country, err := d.locate(ctx, locate)
	if err == nil {
		code, _ := ForCountry(country)
		c := NewContext(code, country, true)
		d.save(ctx, key, c, false)
		return c
	}
	d.log.DebugContext(ctx, "location lookup failed, using stored preference", logger.Error(err))

	if pref, ok := d.load(ctx, key); ok {
		return pref.context()
	}
	return Default()
}

// Select switches to code, remembers the choice, and returns the new Context.
func (d *Detector) Select(ctx context.Context, key string, current Context, code string) (Context, error) {
	next, err := current.WithCurrency(code)
	if err != nil {
		return current, err
	}
	d.save(ctx, key, next, true)
	return next, nil
}

// Current returns the stored preference for key without locating, or USD/US.
func (d *Detector) Current(ctx context.Context, key string) Context {
	if pref, ok := d.load(ctx, key); ok {
		return pref.context()
	}
	return Default()
}

// Resolve returns the manual choice for key when there is one and detects
// the currency otherwise.
func (d *Detector) Resolve(ctx context.Context, key string, locate LocateFunc) Context {
	if pref, ok := d.load(ctx, key); ok && pref.Manual {
		return pref.context()
	}
	return d.Detect(ctx, key, locate)
}

func (d *Detector) locate(ctx context.Context, locate LocateFunc) (string, error) {
	if locate == nil {
		return "", ErrLocationUnavailable
	}
	country, err := locate(ctx)
	if err != nil {
		return "", errors.Join(ErrLocationUnavailable, err)
	}
	if country == "" {
		return "", ErrLocationUnavailable
	}
	return country, nil
}

func (d *Detector) load(ctx context.Context, key string) (Preference, bool) {
	if d.store == nil || key == "" {
		return Preference{}, false
	}
	pref, ok, err := d.store.Load(ctx, key)
	if err != nil {
		d.log.WarnContext(ctx, "failed to load currency preference", logger.Error(err))
		return Preference{}, false
	}
	return pref, ok
}

func (p Preference) context() Context {
	return NewContext(p.Currency, p.Country, !p.Manual)
}

func (d *Detector) save(ctx context.Context, key string, c Context, manual bool) {
	if d.store == nil || key == "" {
		return
	}
	pref := Preference{Currency: c.Currency(), Country: c.Country(), Manual: manual}
	if err := d.store.Save(ctx, key, pref); err != nil {
		d.log.WarnContext(ctx, "failed to save currency preference",
			logger.Currency(pref.Currency),
			logger.Error(err),
		)
	}
}
