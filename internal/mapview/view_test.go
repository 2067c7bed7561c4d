package mapview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"clientmap-api/internal/geocoder"
	"clientmap-api/internal/marker"
	"clientmap-api/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nominatimStub answers /search with a canned body per address; unknown addresses get "[]".
func nominatimStub(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Query().Get("q")]
		if !ok {
			body = `[]`
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestView(t *testing.T, g Geocoder) *View {
	t.Helper()
	return New(g, marker.NewFactory(marker.NoCell), DefaultOptions(), zerolog.Nop())
}

func waitFor(t *testing.T, b *Batch) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, b.Wait(ctx))
}

func titles(markers []*marker.Marker) []string {
	out := make([]string, 0, len(markers))
	for _, m := range markers {
		out = append(out, m.Title())
	}
	sort.Strings(out)
	return out
}

func TestView_SingleEntityResolved(t *testing.T) {
	srv := nominatimStub(t, map[string]string{
		"Plaza Independencia, Montevideo": `[{"lat":"-34.9011","lon":"-56.1915"}]`,
	})
	view := newTestView(t, geocoder.New(srv.URL))

	batch, err := view.Display(context.Background(), models.Client{
		Name:           "Veterinaria Centro",
		CentralAddress: "Plaza Independencia, Montevideo",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, batch.Submitted())
	waitFor(t, batch)

	markers := view.Surface().Markers()
	require.Len(t, markers, 1)
	assert.Equal(t, models.Coordinates{Latitude: -34.9011, Longitude: -56.1915}, markers[0].Position())
	assert.Equal(t, "Veterinaria Centro", markers[0].Title())
	assert.Contains(t, markers[0].Popup().Content, "Veterinaria Centro")
	assert.Contains(t, markers[0].Popup().Content, "Plaza Independencia, Montevideo")
}

func TestView_PartialFailure(t *testing.T) {
	srv := nominatimStub(t, map[string]string{
		"Av. 18 de Julio 1000": `[{"lat":"-34.905","lon":"-56.186"}]`,
		"Rambla 2500":          `[{"lat":"-34.918","lon":"-56.155"}]`,
		"Calle Inexistente 0":  `[]`,
	})
	view := newTestView(t, geocoder.New(srv.URL))

	batch, err := view.Display(context.Background(), models.Client{
		Name:           "Clínica Sur",
		CentralAddress: "Av. 18 de Julio 1000",
		Branches: []models.Branch{
			{Address: "Rambla 2500", ContactFirstname: "Ana"},
			{Address: "Calle Inexistente 0", ContactFirstname: "Luis"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, batch.Submitted())
	waitFor(t, batch)

	markers := view.Surface().Markers()
	assert.Len(t, markers, 2)
	assert.Equal(t, []string{"Ana", "Clínica Sur"}, titles(markers))
}

func TestView_NetworkErrorDoesNotStopOthers(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		if r.URL.Query().Get("q") == "broken" {
			hj, ok := w.(http.Hijacker)
			if !assert.True(t, ok) {
				return
			}
			conn, _, err := hj.Hijack()
			if !assert.NoError(t, err) {
				return
			}
			conn.Close()
			return
		}
		w.Write([]byte(`[{"lat":"-34.9","lon":"-56.2"}]`))
	}))
	defer srv.Close()

	view := newTestView(t, geocoder.New(srv.URL))
	batch, err := view.DisplayEntities(context.Background(),
		models.Entity{Title: "a", Address: "broken"},
		models.Entity{Title: "b", Address: "fine"},
		models.Entity{Title: "c", Address: "also fine"},
	)
	require.NoError(t, err)
	waitFor(t, batch)

	mu.Lock()
	assert.GreaterOrEqual(t, calls, 3)
	mu.Unlock()
	assert.Equal(t, []string{"b", "c"}, titles(view.Surface().Markers()))
}

type geocoderFunc func(ctx context.Context, address string) (*models.Coordinates, error)

func (f geocoderFunc) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	return f(ctx, address)
}

func TestView_PanicInOneResolutionIsContained(t *testing.T) {
	g := geocoderFunc(func(_ context.Context, address string) (*models.Coordinates, error) {
		if address == "boom" {
			panic("unexpected payload")
		}
		return &models.Coordinates{Latitude: 1, Longitude: 2}, nil
	})
	view := newTestView(t, g)

	batch, err := view.DisplayEntities(context.Background(),
		models.Entity{Title: "a", Address: "boom"},
		models.Entity{Title: "b", Address: "ok"},
	)
	require.NoError(t, err)
	waitFor(t, batch)

	assert.Equal(t, []string{"b"}, titles(view.Surface().Markers()))
}

func TestView_SurfaceInitializedBeforeMarkers(t *testing.T) {
	release := make(chan struct{})
	g := geocoderFunc(func(context.Context, string) (*models.Coordinates, error) {
		<-release
		return &models.Coordinates{Latitude: -34.9, Longitude: -56.2}, nil
	})
	view := newTestView(t, g)
	assert.Equal(t, StateUninitialized, view.State())
	assert.Nil(t, view.Surface())

	entities := make([]models.Entity, 25)
	for i := range entities {
		entities[i] = models.Entity{Title: "e", Address: "somewhere"}
	}
	batch, err := view.DisplayEntities(context.Background(), entities...)
	require.NoError(t, err)

	surface := view.Surface()
	require.NotNil(t, surface)
	assert.Equal(t, StateActive, view.State())
	assert.Equal(t, DefaultCenter, surface.Center())
	assert.Equal(t, DefaultZoom, surface.Zoom())
	assert.False(t, surface.ZoomControl())
	assert.Equal(t, DefaultTileURL, surface.TileLayer().URLTemplate)
	assert.Empty(t, surface.Markers())

	close(release)
	waitFor(t, batch)
	assert.Len(t, surface.Markers(), 25)
}

func TestView_MarkerCountNeverExceedsEntities(t *testing.T) {
	g := geocoderFunc(func(_ context.Context, address string) (*models.Coordinates, error) {
		if len(address)%2 == 0 {
			return nil, geocoder.ErrNoResult
		}
		return &models.Coordinates{}, nil
	})

	for _, n := range []int{0, 1, 7, 40} {
		view := newTestView(t, g)
		entities := make([]models.Entity, n)
		for i := range entities {
			entities[i] = models.Entity{Title: "t", Address: string(make([]byte, i))}
		}
		batch, err := view.DisplayEntities(context.Background(), entities...)
		require.NoError(t, err)
		waitFor(t, batch)
		assert.LessOrEqual(t, len(view.Surface().Markers()), n)
	}
}

func TestView_DisplayOnlyOnce(t *testing.T) {
	view := newTestView(t, geocoderFunc(func(context.Context, string) (*models.Coordinates, error) {
		return nil, geocoder.ErrNoResult
	}))

	batch, err := view.Display(context.Background())
	require.NoError(t, err)
	waitFor(t, batch)

	_, err = view.Display(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyDisplayed)
}

func TestView_CloseDiscardsLateResults(t *testing.T) {
	release := make(chan struct{})
	g := geocoderFunc(func(context.Context, string) (*models.Coordinates, error) {
		<-release
		return &models.Coordinates{Latitude: 1, Longitude: 1}, nil
	})
	view := newTestView(t, g)

	batch, err := view.DisplayEntities(context.Background(), models.Entity{Title: "late", Address: "x"})
	require.NoError(t, err)
	surface := view.Surface()

	view.Close()
	close(release)
	waitFor(t, batch)

	assert.Equal(t, StateClosed, view.State())
	assert.Empty(t, surface.Markers())

	_, err = view.Display(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyDisplayed)
}

func TestBatch_WaitHonoursContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	view := newTestView(t, geocoderFunc(func(context.Context, string) (*models.Coordinates, error) {
		<-block
		return nil, geocoder.ErrNoResult
	}))

	batch, err := view.DisplayEntities(context.Background(), models.Entity{Address: "hung"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, batch.Wait(ctx), context.DeadlineExceeded)
}

func TestSurface_Snapshot(t *testing.T) {
	s := newSurface(DefaultOptions())
	snap := s.Snapshot()
	assert.NotNil(t, snap.Markers)
	assert.Empty(t, snap.Markers)
	assert.Equal(t, DefaultAttribution, snap.TileLayer.Attribution)
}
