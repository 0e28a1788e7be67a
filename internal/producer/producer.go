// Package producer runs the server's payload-fabrication goroutines: N
// workers that build RandomContainer or Sleep payloads and push them onto
// the shared work queue, backing off when it's full. Each goroutine owns
// its own math/rand/v2 source so producers never contend on RNG state.
package producer

import (
	"math/rand/v2"
	"time"

	"github.com/rberlich/workdispatch/internal/protocol"
	"github.com/rberlich/workdispatch/internal/queue"
)

// PayloadType selects which kind of payload a Pool fabricates. The server
// rejects any other value at configuration time.
type PayloadType int

const (
	// Container fabricates RandomContainer payloads.
	Container PayloadType = iota
	// SleepType fabricates Sleep payloads.
	SleepType
)

// Config holds the parameters a Pool needs to fabricate payloads and back
// off under queue pressure.
type Config struct {
	PayloadType      PayloadType
	ContainerSize    int
	SleepSeconds     float64
	NumThreads       int
	FullQueueSleepMs int
}

// Pool runs Config.NumThreads fabrication goroutines against a shared
// queue until Stopped reports true.
type Pool struct {
	cfg     Config
	queue   *queue.Queue[protocol.Payload]
	stopped func() bool
}

// New creates a producer pool. stopped is polled by each goroutine after a
// failed push, so a pool never outlives the server's shutdown signal.
func New(cfg Config, q *queue.Queue[protocol.Payload], stopped func() bool) *Pool {
	return &Pool{cfg: cfg, queue: q, stopped: stopped}
}

// Run starts all fabrication goroutines and blocks until every one of
// them has observed the stop signal and exited.
func (p *Pool) Run() {
	done := make(chan struct{}, p.cfg.NumThreads)
	for i := 0; i < p.cfg.NumThreads; i++ {
		go func(seed uint64) {
			p.runOne(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
			done <- struct{}{}
		}(nondeterministicSeed())
	}
	for i := 0; i < p.cfg.NumThreads; i++ {
		<-done
	}
}

// runOne fabricates payloads and offers them to the queue until the pool is
// told to stop. A failed push never discards the fabricated item — the same
// item is re-offered on the next iteration rather than replaced, so a full
// queue never costs a producer the work it already built.
func (p *Pool) runOne(rng *rand.Rand) {
	backoff := time.Duration(p.cfg.FullQueueSleepMs) * time.Millisecond

	var item protocol.Payload
	needNewItem := true
	for {
		if needNewItem {
			item = p.fabricate(rng)
		}
		if p.queue.TryPush(item) {
			needNewItem = true
			continue
		}
		if p.stopped() {
			return
		}
		needNewItem = false
		time.Sleep(backoff)
	}
}

func (p *Pool) fabricate(rng *rand.Rand) protocol.Payload {
	switch p.cfg.PayloadType {
	case SleepType:
		return protocol.NewSleep(p.cfg.SleepSeconds)
	default:
		return protocol.NewRandomContainer(p.cfg.ContainerSize, rng)
	}
}
