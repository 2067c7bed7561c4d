// Package mapview places directory entities on a map surface by resolving their
// addresses and turning every hit into a marker. Resolution is best effort: an
// address that fails or resolves to nothing simply gets no marker.
package mapview

import (
	"context"
	"errors"
	"sync"

	"clientmap-api/internal/marker"
	"clientmap-api/internal/models"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// ErrAlreadyDisplayed is returned by Display on a view that is no longer uninitialized.
var ErrAlreadyDisplayed = errors.New("mapview: view already displayed")

const (
	DefaultZoom        = 10
	DefaultTileURL     = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

// DefaultCenter is Montevideo.
var DefaultCenter = models.Coordinates{Latitude: -34.7011, Longitude: -56.1915}

// State is the lifecycle stage of a View.
type State int

const (
	StateUninitialized State = iota
	StateActive
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Options fixes the viewport and base layer of the surface a view creates.
type Options struct {
	Center      models.Coordinates
	Zoom        int
	ZoomControl bool
	TileURL     string
	Attribution string
}

// DefaultOptions returns the OpenStreetMap layer centred on DefaultCenter.
func DefaultOptions() Options {
	return Options{
		Center:      DefaultCenter,
		Zoom:        DefaultZoom,
		TileURL:     DefaultTileURL,
		Attribution: DefaultAttribution,
	}
}

// Geocoder resolves an address. Any error, including "nothing found", means no marker.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// MarkerFactory builds a marker and attaches it to the surface it is handed.
type MarkerFactory interface {
	Create(surface marker.Surface, at models.Coordinates, entity models.Entity) (*marker.Marker, bool)
}

// View owns one map surface and the markers placed on it.
type View struct {
	geocoder Geocoder
	factory  MarkerFactory
	opts     Options
	logger   zerolog.Logger

	mu      sync.Mutex
	state   State
	surface *Surface
}

// New creates an uninitialized view.
func New(geocoder Geocoder, factory MarkerFactory, opts Options, logger zerolog.Logger) *View {
	return &View{
		geocoder: geocoder,
		factory:  factory,
		opts:     opts,
		logger:   logger.With().Str("component", "mapview").Logger(),
	}
}

// State reports the lifecycle stage of the view.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Surface returns the active surface, or nil before Display.
func (v *View) Surface() *Surface {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.surface
}

// Display activates the view and submits every headquarters and branch of clients
// for resolution.
func (v *View) Display(ctx context.Context, clients ...models.Client) (*Batch, error) {
	var entities []models.Entity
	for _, c := range clients {
		entities = append(entities, c.Entities()...)
	}
	return v.DisplayEntities(ctx, entities...)
}

// DisplayEntities activates the view and starts one independent resolution per entity.
// It does not wait for them; use the returned Batch to do so.
func (v *View) DisplayEntities(ctx context.Context, entities ...models.Entity) (*Batch, error) {
	v.mu.Lock()
	if v.state != StateUninitialized {
		v.mu.Unlock()
		return nil, ErrAlreadyDisplayed
	}
	surface := newSurface(v.opts)
	v.surface = surface
	v.state = StateActive
	v.mu.Unlock()

	v.logger.Debug().
		Float64("lat", surface.center.Latitude).
		Float64("lon", surface.center.Longitude).
		Int("zoom", surface.zoom).
		Int("entities", len(entities)).
		Msg("map surface activated")

	b := &Batch{submitted: len(entities), done: make(chan struct{})}
	for _, e := range entities {
		b.wg.Go(func() {
			var pc panics.Catcher
			pc.Try(func() { v.place(ctx, surface, e) })
			if r := pc.Recovered(); r != nil {
				v.logger.Error().Str("address", e.Address).Str("panic", r.String()).Msg("marker placement panicked")
			}
		})
	}
	go func() {
		b.wg.Wait()
		close(b.done)
	}()

	return b, nil
}

func (v *View) place(ctx context.Context, surface *Surface, e models.Entity) {
	at, err := v.geocoder.Geocode(ctx, e.Address)
	if err != nil {
		v.logger.Warn().Err(err).Str("title", e.Title).Str("address", e.Address).Msg("could not resolve address")
		return
	}
	if at == nil {
		return
	}

	if _, attached := v.factory.Create(surface, *at, e); !attached {
		v.logger.Debug().Str("address", e.Address).Msg("surface closed before marker arrived")
	}
}

// Close tears the view down. Resolutions still in flight are discarded on arrival.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.surface != nil {
		v.surface.dispose()
	}
	v.state = StateClosed
}

// Batch tracks the resolutions started by one Display call.
type Batch struct {
	wg        conc.WaitGroup
	submitted int
	done      chan struct{}
}

// Submitted is the number of entities handed to the geocoder.
func (b *Batch) Submitted() int { return b.submitted }

// Done is closed once every resolution has finished.
func (b *Batch) Done() <-chan struct{} { return b.done }

// Wait blocks until every resolution has finished or ctx is done.
func (b *Batch) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
