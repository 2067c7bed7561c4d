package mapview

import (
	"sync"

	"clientmap-api/internal/marker"
	"clientmap-api/internal/models"
)

// TileLayer is the base layer drawn under the markers.
type TileLayer struct {
	URLTemplate string `json:"url_template"`
	Attribution string `json:"attribution"`
}

// Surface is the map a view draws on: a fixed viewport plus the markers placed so far.
type Surface struct {
	center      models.Coordinates
	zoom        int
	zoomControl bool
	tiles       TileLayer

	mu       sync.Mutex
	markers  []*marker.Marker
	disposed bool
}

func newSurface(opts Options) *Surface {
	return &Surface{
		center:      opts.Center,
		zoom:        opts.Zoom,
		zoomControl: opts.ZoomControl,
		tiles:       TileLayer{URLTemplate: opts.TileURL, Attribution: opts.Attribution},
	}
}

func (s *Surface) Center() models.Coordinates { return s.center }
func (s *Surface) Zoom() int                  { return s.zoom }
func (s *Surface) ZoomControl() bool          { return s.zoomControl }
func (s *Surface) TileLayer() TileLayer       { return s.tiles }

// AddMarker implements marker.Surface. Markers arriving after disposal are dropped.
func (s *Surface) AddMarker(m *marker.Marker) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return false
	}
	s.markers = append(s.markers, m)
	return true
}

// Markers returns the markers placed so far, in placement order.
func (s *Surface) Markers() []*marker.Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*marker.Marker(nil), s.markers...)
}

func (s *Surface) dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
	s.markers = nil
}

// Snapshot is the serialisable state of a surface.
type Snapshot struct {
	Center      models.Coordinates `json:"center"`
	Zoom        int                `json:"zoom"`
	ZoomControl bool               `json:"zoom_control"`
	TileLayer   TileLayer          `json:"tile_layer"`
	Markers     []*marker.Marker   `json:"markers"`
}

// Snapshot captures the surface as it is now.
func (s *Surface) Snapshot() Snapshot {
	markers := s.Markers()
	if markers == nil {
		markers = []*marker.Marker{}
	}
	return Snapshot{
		Center:      s.center,
		Zoom:        s.zoom,
		ZoomControl: s.zoomControl,
		TileLayer:   s.tiles,
		Markers:     markers,
	}
}
