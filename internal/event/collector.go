package event

// Raiser is the aggregate-side contract: anything that accumulates events
// during a unit of work and hands them over when collected.
type Raiser interface {
	PendingEvents() []Event
	ClearPendingEvents()
}

// Recorder is an embeddable pending-event list giving a type the Raiser
// contract. It is owned by the unit of work that created the aggregate and is
// not safe for concurrent use; nothing here needs to be.
type Recorder struct {
	pending []Event
}

func (r *Recorder) Raise(e Event) {
	r.pending = append(r.pending, e)
}

func (r *Recorder) PendingEvents() []Event {
	return r.pending
}

func (r *Recorder) ClearPendingEvents() {
	r.pending = nil
}

// Collector gathers events from aggregates after their unit of work has
// committed. CollectFrom must only be called once the commit is known to have
// succeeded; events for rolled-back work must never reach the dispatcher.
// The buffer is volatile and owned by a single goroutine, giving at-most-once
// delivery within this process.
type Collector struct {
	buffer []Event
}

func NewCollector() *Collector {
	return &Collector{}
}

// CollectFrom moves each raiser's pending events into the buffer and clears
// the raiser, so no event can be collected twice.
func (c *Collector) CollectFrom(raisers ...Raiser) {
	for _, r := range raisers {
		c.buffer = append(c.buffer, r.PendingEvents()...)
		r.ClearPendingEvents()
	}
}

// DequeueAll drains the buffer, returning every collected event in raise
// order and leaving the collector empty.
func (c *Collector) DequeueAll() []Event {
	events := c.buffer
	c.buffer = nil

	return events
}
