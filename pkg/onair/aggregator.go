package onair

func NewAggregator() *Aggregator {
	return &Aggregator{
		sources: make(map[string]Payload),
	}
}

// Aggregator folds the per-source states into the combined on-air state of the
// whole room.
//
// Sources are remembered until the process ends; a source which goes away
// keeps contributing its last reported state. This is intentional: eviction
// would silently change what every listener in the room displays.
//
// An Aggregator has exactly one logical owner and is not safe for concurrent
// use; callers serialize Update (see App.Listen).
type Aggregator struct {
	sources map[string]Payload
	last    Combined
}

// Update records the given source state and returns the resulting combined
// state together with whether it differs from the previously returned one.
//
// A payload identical to what is already stored for its source is reported as
// unchanged, and so is any update which leaves the combined state untouched.
// As a consequence an equal combined state is never reported as changed twice
// in a row, no matter how often the transport re-delivers a message. This is
// what keeps the indicator from blinking on duplicates.
func (this *Aggregator) Update(p Payload) (Combined, bool, error) {
	if err := p.Validate(); err != nil {
		return this.last, false, err
	}

	if existing, ok := this.sources[p.Source]; ok && existing.EqualState(p) {
		return this.last, false, nil
	}
	this.sources[p.Source] = p

	next := this.combine()
	if next == this.last {
		return this.last, false, nil
	}
	this.last = next
	return next, true, nil
}

// Combined returns the most recently computed combined state.
func (this *Aggregator) Combined() Combined {
	return this.last
}

// Len returns the number of distinct sources seen so far.
func (this *Aggregator) Len() int {
	return len(this.sources)
}

func (this *Aggregator) combine() (result Combined) {
	for _, s := range this.sources {
		if s.Audio {
			result.Audio = true
		}
		if s.Video {
			result.Video = true
		}
	}
	return
}
