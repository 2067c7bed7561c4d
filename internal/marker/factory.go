package marker

import (
	"fmt"
	"html"

	"clientmap-api/internal/models"

	"github.com/uber/h3-go/v4"
)

// NoCell disables H3 cell tagging on created markers.
const NoCell = -1

const pinSVG = `<svg width="30" height="30" viewBox="0 0 24 24" fill="none" xmlns="http://www.w3.org/2000/svg">` +
	`<path fill-rule="evenodd" clip-rule="evenodd" d="M16.2721 10.2721C16.2721 12.4813 14.4813 14.2721 12.2721 14.2721C10.063 14.2721 8.27214 12.4813 8.27214 10.2721C8.27214 8.06298 10.063 6.27212 12.2721 6.27212C14.4813 6.27212 16.2721 8.06298 16.2721 10.2721ZM14.2721 10.2721C14.2721 11.3767 13.3767 12.2721 12.2721 12.2721C11.1676 12.2721 10.2721 11.3767 10.2721 10.2721C10.2721 9.16755 11.1676 8.27212 12.2721 8.27212C13.3767 8.27212 14.2721 9.16755 14.2721 10.2721Z" fill="black"/>` +
	`<path fill-rule="evenodd" clip-rule="evenodd" d="M5.79417 16.5183C2.19424 13.0909 2.05438 7.39409 5.48178 3.79417C8.90918 0.194243 14.6059 0.054383 18.2059 3.48178C21.8058 6.90918 21.9457 12.6059 18.5183 16.2059L12.3124 22.7241L5.79417 16.5183ZM17.0698 14.8268L12.243 19.8965L7.17324 15.0698C4.3733 12.404 4.26452 7.97318 6.93028 5.17324C9.59603 2.3733 14.0268 2.26452 16.8268 4.93028C19.6267 7.59603 19.7355 12.0268 17.0698 14.8268Z" fill="black"/>` +
	`</svg>`

// PinIcon is the pin every marker is drawn with.
var PinIcon = Icon{ClassName: "custom-icon", HTML: pinSVG, Width: 30, Height: 30}

// Surface is the map a marker gets attached to.
type Surface interface {
	// AddMarker attaches m and reports whether the surface accepted it.
	AddMarker(m *Marker) bool
}

// Factory builds markers for resolved entities.
type Factory struct {
	cellResolution int
}

// NewFactory creates a factory tagging markers with their H3 cell at the given
// resolution (0-15), or NoCell to skip tagging.
func NewFactory(cellResolution int) *Factory {
	return &Factory{cellResolution: cellResolution}
}

// Create builds a marker for entity at the given position and attaches it to surface.
// The returned bool is false when the surface refused the marker.
func (f *Factory) Create(surface Surface, at models.Coordinates, entity models.Entity) (*Marker, bool) {
	m := &Marker{
		position:  at,
		title:     entity.Title,
		address:   entity.Address,
		kind:      entity.Kind,
		cell:      f.cellFor(at),
		icon:      PinIcon,
		draggable: true,
		keyboard:  true,
		popup: Popup{
			Content: fmt.Sprintf("<p>%s</p><p>%s</p>", html.EscapeString(entity.Title), html.EscapeString(entity.Address)),
		},
		tooltip: Tooltip{
			Content:   html.EscapeString(entity.Title),
			Direction: "top",
			Permanent: false,
			ClassName: "custom-tooltip",
		},
	}

	m.On(EventClick, (*Marker).OpenPopup)
	m.On(EventMouseOver, (*Marker).OpenTooltip)
	m.On(EventMouseOut, (*Marker).CloseTooltip)

	return m, surface.AddMarker(m)
}

func (f *Factory) cellFor(at models.Coordinates) string {
	if f.cellResolution < 0 || f.cellResolution > 15 {
		return ""
	}
	cell, err := h3.LatLngToCell(h3.NewLatLng(at.Latitude, at.Longitude), f.cellResolution)
	if err != nil {
		return ""
	}
	return cell.String()
}
