package word2pdf

import "time"

// EventKind identifies a progress notification.
type EventKind int

const (
	// EventPlanned is sent once before any work, carrying the total.
	EventPlanned EventKind = iota
	// EventStarted is sent when an item begins.
	EventStarted
	// EventStage is sent when a session enters a new stage.
	EventStage
	// EventSucceeded is sent when an item produced its PDF.
	EventSucceeded
	// EventFailed is sent when an item failed. Err is set.
	EventFailed
	// EventFinished is the last event of a run. Report is set for batches.
	EventFinished
)

var eventKindNames = [...]string{
	EventPlanned:   "planned",
	EventStarted:   "started",
	EventStage:     "stage",
	EventSucceeded: "succeeded",
	EventFailed:    "failed",
	EventFinished:  "finished",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return "unknown"
	}
	return eventKindNames[k]
}

// Stage names a step of a conversion session.
type Stage string

// Session stages, in order.
const (
	StageLaunch  Stage = "launching engine"
	StageOpen    Stage = "opening document"
	StageExport  Stage = "exporting"
	StageCleanup Stage = "cleaning up"
)

// Event is an immutable progress notification.
// Index is zero-based; Total is the number of planned items.
type Event struct {
	Kind        EventKind
	Index       int
	Total       int
	Source      string
	Destination string
	Stage       Stage
	Result      *Result
	Err         error
	Report      *BatchReport
	Time        time.Time
}

// emitter sends events to an optional channel.
// A nil channel drops every event.
type emitter struct {
	ch    chan<- Event
	total int
	now   func() time.Time
}

func newEmitter(ch chan<- Event, total int) *emitter {
	return &emitter{ch: ch, total: total, now: time.Now}
}

func (e *emitter) send(ev Event) {
	if e == nil || e.ch == nil {
		return
	}
	ev.Total = e.total
	ev.Time = e.now()
	e.ch <- ev
}

// stageFunc returns a callback reporting session stages for one item.
func (e *emitter) stageFunc(index int, req Request) func(Stage) {
	return func(s Stage) {
		e.send(Event{Kind: EventStage, Index: index, Source: req.Source, Destination: req.Destination, Stage: s})
	}
}

// outcome sends the terminal event of one item.
func (e *emitter) outcome(item ItemResult) {
	ev := Event{
		Index:       item.Index,
		Source:      item.Request.Source,
		Destination: item.Request.Destination,
		Result:      item.Result,
		Err:         item.Err,
	}
	if item.Err != nil {
		ev.Kind = EventFailed
	} else {
		ev.Kind = EventSucceeded
		ev.Destination = item.Result.Destination
	}
	e.send(ev)
}
