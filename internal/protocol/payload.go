package protocol

import (
	"math/rand/v2"
	"sort"
	"time"
)

// Payload is a work item. Each variant implements Process (perform the
// work) and IsProcessed (report whether the work has already been done).
// Concrete variants are plain structs satisfying this interface; the codec
// package dispatches on Kind with a type switch rather than virtual calls.
type Payload interface {
	// Process performs the payload's work, blocking the calling goroutine
	// until done.
	Process()
	// IsProcessed reports whether the payload's work has been completed.
	IsProcessed() bool
	// Kind identifies the payload variant for codec dispatch.
	Kind() PayloadKind
}

// PayloadKind tags which Payload variant a CommandContainer carries, so the
// codec can decode into the right concrete type.
type PayloadKind int

const (
	// KindNone marks the absence of a payload.
	KindNone PayloadKind = iota
	// KindRandomContainer tags a RandomContainer payload.
	KindRandomContainer
	// KindSleep tags a Sleep payload.
	KindSleep
)

// RandomContainer holds an ordered sequence of floating-point values.
// Process sorts Data ascending; IsProcessed reports whether Data is
// already sorted.
type RandomContainer struct {
	Data []float64
}

// NewRandomContainer fabricates a RandomContainer of size elements drawn
// from a standard-normal distribution (mean 0, stddev 1), using rng as the
// source of randomness.
func NewRandomContainer(size int, rng *rand.Rand) *RandomContainer {
	data := make([]float64, size)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return &RandomContainer{Data: data}
}

// Process sorts Data ascending.
func (r *RandomContainer) Process() {
	sort.Float64s(r.Data)
}

// IsProcessed reports whether Data is sorted ascending.
func (r *RandomContainer) IsProcessed() bool {
	return sort.Float64sAreSorted(r.Data)
}

// Kind identifies this variant for codec dispatch.
func (r *RandomContainer) Kind() PayloadKind { return KindRandomContainer }

// Sleep is a work item whose Process blocks the caller for Duration.
type Sleep struct {
	Duration time.Duration
}

// NewSleep builds a Sleep payload for the given number of seconds.
func NewSleep(seconds float64) *Sleep {
	return &Sleep{Duration: time.Duration(seconds * float64(time.Second))}
}

// Process blocks for Duration.
func (s *Sleep) Process() {
	time.Sleep(s.Duration)
}

// IsProcessed always returns true: a Sleep payload is considered done the
// instant Process returns, and there is no observable partial state.
func (s *Sleep) IsProcessed() bool { return true }

// Kind identifies this variant for codec dispatch.
func (s *Sleep) Kind() PayloadKind { return KindSleep }
