package producer

import (
	"crypto/rand"
	"encoding/binary"
)

// nondeterministicSeed returns a seed drawn from the OS's entropy source so
// each producer goroutine starts its own independent random stream.
func nondeterministicSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand.Read on a supported platform does not fail in
		// practice; if it ever does, a time-derived fallback still keeps
		// producer threads from sharing identical streams.
		return uint64(nowNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}
