package service

import (
	"context"
	"fmt"

	"clientmap-api/internal/mapview"
	"clientmap-api/internal/models"

	"github.com/rs/zerolog"
)

// MapService renders directory clients as a map surface
type MapService struct {
	clients  *ClientService
	geocoder mapview.Geocoder
	factory  mapview.MarkerFactory
	opts     mapview.Options
	logger   zerolog.Logger
}

// NewMapService creates a new map service
func NewMapService(clients *ClientService, g mapview.Geocoder, f mapview.MarkerFactory, opts mapview.Options, logger zerolog.Logger) *MapService {
	return &MapService{clients: clients, geocoder: g, factory: f, opts: opts, logger: logger}
}

// PageMap places every client of the requested page, and its branches, on a fresh map
func (s *MapService) PageMap(ctx context.Context, page, perPage int) (*mapview.Snapshot, error) {
	page, perPage = normalizePage(page, perPage)

	clients, err := s.clients.repo.ListClients(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list clients: %w", err)
	}

	return s.render(ctx, clients...)
}

// ClientMap places one client and its branches on a fresh map
func (s *MapService) ClientMap(ctx context.Context, id int64) (*mapview.Snapshot, error) {
	client, err := s.clients.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.render(ctx, *client)
}

// render waits for every resolution; markers still missing when ctx ends are left out.
func (s *MapService) render(ctx context.Context, clients ...models.Client) (*mapview.Snapshot, error) {
	view := mapview.New(s.geocoder, s.factory, s.opts, s.logger)
	defer view.Close()

	batch, err := view.Display(ctx, clients...)
	if err != nil {
		return nil, fmt.Errorf("service: failed to display map: %w", err)
	}

	if err := batch.Wait(ctx); err != nil {
		s.logger.Warn().Err(err).Int("submitted", batch.Submitted()).Msg("map rendered before every address resolved")
	}

	snapshot := view.Surface().Snapshot()
	s.logger.Info().
		Int("submitted", batch.Submitted()).
		Int("markers", len(snapshot.Markers)).
		Msg("map rendered")

	return &snapshot, nil
}
