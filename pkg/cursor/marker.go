package cursor

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ganttsh/ganttsh/pkg/axis"
)

var ErrNotDragging = errors.New("marker is not being dragged")

type State int

const (
	Idle State = iota
	Placed
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Placed:
		return "placed"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Position is where the marker stands. Date and Label always describe X.
type Position struct {
	X     axis.Coordinate
	Date  time.Time
	Label string
}

// Snapshot is a consistent copy of the marker.
type Snapshot struct {
	State    State
	Position Position
}

// Marker is the single measuring line of a chart. It is safe for concurrent use.
type Marker struct {
	mu    sync.Mutex
	state State
	pos   Position
}

func NewMarker() *Marker {
	return &Marker{}
}

// Press replaces any previous marker with a new one at x and starts dragging it.
func (m *Marker) Press(x axis.Coordinate) (Snapshot, error) {
	pos, err := positionAt(x)
	if err != nil {
		return Snapshot{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Dragging
	m.pos = pos
	return m.snapshot(), nil
}

// Drag moves the marker being dragged. A marker that is not being dragged is left alone.
func (m *Marker) Drag(x axis.Coordinate) (Snapshot, error) {
	pos, err := positionAt(x)
	if err != nil {
		return Snapshot{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Dragging {
		return m.snapshot(), fmt.Errorf("%w: marker is %s", ErrNotDragging, m.state)
	}
	m.pos = pos
	return m.snapshot(), nil
}

// Release fixes a dragged marker in place. Releasing in any other state is a no-op.
func (m *Marker) Release() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Dragging {
		m.state = Placed
	}
	return m.snapshot()
}

func (m *Marker) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Idle
	m.pos = Position{}
}

func (m *Marker) Current() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

func (m *Marker) snapshot() Snapshot {
	return Snapshot{State: m.state, Position: m.pos}
}

func positionAt(x axis.Coordinate) (Position, error) {
	date, label, err := Locate(x)
	if err != nil {
		return Position{}, err
	}
	return Position{X: x, Date: date, Label: label}, nil
}
