// Package input turns SDL2 events into per-frame mouse, button and key state.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/cubetac/pkg/math"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	WheelY int
}

// ButtonInfo tracks one mouse button across a frame.
type ButtonInfo struct {
	Down bool // went from released to pressed
	Up   bool // went from pressed to released
	Hold bool // is pressed
}

func (b *ButtonInfo) press() {
	b.Down = true
	b.Hold = true
}

func (b *ButtonInfo) release() {
	b.Up = true
	b.Hold = false
}

// Input accumulates events between processed frames.
type Input struct {
	Mouse      math.Vec2 // window points, origin top left
	Left       ButtonInfo
	Middle     ButtonInfo
	Right      ButtonInfo
	WheelUp    int
	WheelDown  int
	Resized    bool
	Width      int // window points, same unit as Mouse
	Height     int
	QuitWanted bool

	events  []Event
	pressed map[sdl.Scancode]bool
}

// New creates a new input handler for a window of the given size.
func New(width, height int) *Input {
	return &Input{
		Width:   width,
		Height:  height,
		events:  make([]Event, 0, 16),
		pressed: make(map[sdl.Scancode]bool),
	}
}

// Poll drains the SDL event queue. Returns true if the game should quit.
func (i *Input) Poll() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := translate(event); ok {
			i.Apply(e)
		}
	}
	return i.QuitWanted
}

func translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return Event{}, false
		}
		if e.Type == sdl.KEYDOWN {
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		}
		return Event{Type: EventKeyUp, Key: e.Keysym.Scancode}, true

	case *sdl.MouseMotionEvent:
		return Event{Type: EventMouseMove, MouseX: int(e.X), MouseY: int(e.Y)}, true

	case *sdl.MouseButtonEvent:
		t := EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = EventMouseDown
		}
		return Event{Type: t, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}, true

	case *sdl.MouseWheelEvent:
		y := int(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			y = -y
		}
		return Event{Type: EventMouseWheel, WheelY: y}, true
	}
	return Event{}, false
}

// Apply folds one event into the frame state.
func (i *Input) Apply(e Event) {
	i.events = append(i.events, e)

	switch e.Type {
	case EventQuit:
		i.QuitWanted = true
	case EventWindowResize:
		i.Resized = true
		i.Width = e.Width
		i.Height = e.Height
	case EventKeyDown:
		i.pressed[e.Key] = true
	case EventMouseMove:
		i.Mouse = math.Vec2{X: float32(e.MouseX), Y: float32(e.MouseY)}
	case EventMouseDown, EventMouseUp:
		i.Mouse = math.Vec2{X: float32(e.MouseX), Y: float32(e.MouseY)}
		b := i.button(e.Button)
		if b == nil {
			return
		}
		if e.Type == EventMouseDown {
			b.press()
		} else {
			b.release()
		}
	case EventMouseWheel:
		if e.WheelY > 0 {
			i.WheelUp += e.WheelY
		} else {
			i.WheelDown -= e.WheelY
		}
	}
}

func (i *Input) button(b uint8) *ButtonInfo {
	switch b {
	case sdl.BUTTON_LEFT:
		return &i.Left
	case sdl.BUTTON_MIDDLE:
		return &i.Middle
	case sdl.BUTTON_RIGHT:
		return &i.Right
	default:
		return nil
	}
}

// Reset clears edges, wheel steps and key presses. Call it after each
// processed frame.
func (i *Input) Reset() {
	for _, b := range []*ButtonInfo{&i.Left, &i.Middle, &i.Right} {
		b.Down = false
		b.Up = false
	}
	i.WheelUp = 0
	i.WheelDown = 0
	i.Resized = false
	i.events = i.events[:0]
	clear(i.pressed)
}

// Events returns the events since the last Reset.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed since the last Reset.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	return i.pressed[scancode]
}

// Normalized returns the mouse position in screen-height units: x in
// [0, aspect] and y in [0, 1] from the bottom.
func (i *Input) Normalized() math.Vec2 {
	return Normalize(i.Mouse, i.Height)
}

// Normalize converts a pixel position to screen-height units.
func Normalize(pixel math.Vec2, height int) math.Vec2 {
	if height <= 0 {
		return math.Vec2{}
	}
	h := float32(height)
	return math.Vec2{X: pixel.X / h, Y: 1 - pixel.Y/h}
}
