package marker

import (
	"encoding/json"
	"sync"

	"clientmap-api/internal/models"
)

// Event names a user interaction a marker reacts to.
type Event string

const (
	EventClick     Event = "click"
	EventMouseOver Event = "mouseover"
	EventMouseOut  Event = "mouseout"
)

// Handler reacts to an event on the marker it is registered on.
type Handler func(m *Marker)

// Icon is an HTML icon drawn in place of the default pin.
type Icon struct {
	ClassName string `json:"class_name"`
	HTML      string `json:"html"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// Popup is the click-activated bubble of a marker.
type Popup struct {
	Content string `json:"content"`
	Open    bool   `json:"open"`
}

// Tooltip is the hover label of a marker.
type Tooltip struct {
	Content   string `json:"content"`
	Direction string `json:"direction"`
	Permanent bool   `json:"permanent"`
	ClassName string `json:"class_name"`
	Open      bool   `json:"open"`
}

// Marker is a map pin for one resolved entity.
type Marker struct {
	mu sync.Mutex

	position  models.Coordinates
	title     string
	address   string
	kind      models.EntityKind
	cell      string
	icon      Icon
	draggable bool
	keyboard  bool
	popup     Popup
	tooltip   Tooltip

	handlers map[Event][]Handler
}

func (m *Marker) Position() models.Coordinates { return m.position }
func (m *Marker) Title() string                { return m.title }
func (m *Marker) Address() string              { return m.address }
func (m *Marker) Kind() models.EntityKind      { return m.kind }
func (m *Marker) Cell() string                 { return m.cell }
func (m *Marker) Icon() Icon                   { return m.icon }
func (m *Marker) Draggable() bool              { return m.draggable }
func (m *Marker) Keyboard() bool               { return m.keyboard }

// Popup returns the current popup state.
func (m *Marker) Popup() Popup {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.popup
}

// Tooltip returns the current tooltip state.
func (m *Marker) Tooltip() Tooltip {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tooltip
}

// On registers h to run whenever e is fired on the marker.
func (m *Marker) On(e Event, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handlers == nil {
		m.handlers = make(map[Event][]Handler)
	}
	m.handlers[e] = append(m.handlers[e], h)
}

// Fire runs the handlers registered for e, in registration order.
func (m *Marker) Fire(e Event) {
	m.mu.Lock()
	handlers := append([]Handler(nil), m.handlers[e]...)
	m.mu.Unlock()

	for _, h := range handlers {
		h(m)
	}
}

func (m *Marker) OpenPopup() {
	m.mu.Lock()
	m.popup.Open = true
	m.mu.Unlock()
}

func (m *Marker) ClosePopup() {
	m.mu.Lock()
	m.popup.Open = false
	m.mu.Unlock()
}

func (m *Marker) OpenTooltip() {
	m.mu.Lock()
	m.tooltip.Open = true
	m.mu.Unlock()
}

func (m *Marker) CloseTooltip() {
	m.mu.Lock()
	m.tooltip.Open = false
	m.mu.Unlock()
}

// MarshalJSON renders the marker in the shape the browser map consumes.
func (m *Marker) MarshalJSON() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	events := make([]Event, 0, len(m.handlers))
	for _, e := range []Event{EventClick, EventMouseOver, EventMouseOut} {
		if len(m.handlers[e]) > 0 {
			events = append(events, e)
		}
	}

	return json.Marshal(struct {
		Position  models.Coordinates `json:"position"`
		Title     string             `json:"title"`
		Address   string             `json:"address"`
		Kind      models.EntityKind  `json:"kind"`
		Cell      string             `json:"cell,omitempty"`
		Icon      Icon               `json:"icon"`
		Draggable bool               `json:"draggable"`
		Keyboard  bool               `json:"keyboard"`
		Popup     Popup              `json:"popup"`
		Tooltip   Tooltip            `json:"tooltip"`
		Events    []Event            `json:"events"`
	}{
		Position:  m.position,
		Title:     m.title,
		Address:   m.address,
		Kind:      m.kind,
		Cell:      m.cell,
		Icon:      m.icon,
		Draggable: m.draggable,
		Keyboard:  m.keyboard,
		Popup:     m.popup,
		Tooltip:   m.tooltip,
		Events:    events,
	})
}
