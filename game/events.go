package game

// EventKind identifies an input event.
type EventKind int

const (
	EventTap EventKind = iota
	EventKeyDown
	EventKeyUp
	EventOverlayClick
	EventResize
)

// Event is one platform input event waiting to be handled.
type Event struct {
	Kind EventKind

	At     Point  // tap position in screen coordinates
	Code   string // named key code, e.g. "Space"
	Target string // overlay key of a clicked element

	Width, Height int // new viewport size
}

func Tap(x, y float64) Event           { return Event{Kind: EventTap, At: Point{X: x, Y: y}} }
func KeyDown(code string) Event        { return Event{Kind: EventKeyDown, Code: code} }
func KeyUp(code string) Event          { return Event{Kind: EventKeyUp, Code: code} }
func OverlayClick(target string) Event { return Event{Kind: EventOverlayClick, Target: target} }
func Resize(width, height int) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}

// EventQueue buffers input between ticks. It is not safe for concurrent use;
// events are pushed and drained on the game goroutine.
type EventQueue struct {
	events []Event
}

// Push appends an event.
func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Drain returns the queued events in arrival order and empties the queue.
func (q *EventQueue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.events)
}
