package word2pdf

import (
	"context"
	"sync"
	"sync/atomic"
)

// eventBuffer lets a run progress while the consumer is briefly away.
const eventBuffer = 64

// BackgroundConverter runs conversions on a worker goroutine and streams
// progress over a channel, so an interactive front end never blocks on
// the engine. Only one run may be active at a time.
type BackgroundConverter struct {
	conv *Converter
	busy atomic.Bool
	wg   sync.WaitGroup
}

// NewBackgroundConverter wraps conv.
func NewBackgroundConverter(conv *Converter) *BackgroundConverter {
	return &BackgroundConverter{conv: conv}
}

// Busy reports whether a run is in progress.
func (b *BackgroundConverter) Busy() bool {
	return b.busy.Load()
}

// Start converts req in the background.
// The returned channel carries EventStarted, stage events, EventSucceeded
// or EventFailed, then EventFinished, and is closed afterwards.
// Returns ErrBusy if a run is already active.
func (b *BackgroundConverter) Start(ctx context.Context, req Request) (<-chan Event, error) {
	return b.run(1, func(em *emitter) {
		em.send(Event{Kind: EventPlanned})
		item := b.conv.convertItem(ctx, 0, req, em)
		ev := Event{Kind: EventFinished, Source: req.Source, Result: item.Result, Err: item.Err}
		em.send(ev)
	})
}

// StartBatch runs plan in the background with the same event stream as
// ConvertBatch. The channel is closed after EventFinished.
// Returns ErrBusy if a run is already active.
func (b *BackgroundConverter) StartBatch(ctx context.Context, plan *BatchPlan) (<-chan Event, error) {
	total := 0
	if plan != nil {
		total = len(plan.Requests)
	}
	return b.run(total, func(em *emitter) {
		b.conv.ConvertBatch(ctx, plan, em.ch)
	})
}

// Wait blocks until the active run, if any, has finished.
func (b *BackgroundConverter) Wait() {
	b.wg.Wait()
}

func (b *BackgroundConverter) run(total int, work func(*emitter)) (<-chan Event, error) {
	if !b.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	ch := make(chan Event, eventBuffer)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer close(ch)
		defer b.busy.Store(false)
		work(newEmitter(ch, total))
	}()
	return ch, nil
}
