// Package codec serializes and deserializes protocol.CommandContainer
// values for the wire. Exactly one wire format is linked into any given
// build, selected by a Go build tag: no tag builds the XML codec,
// "codec_text" builds the JSON-based text codec, "codec_binary" builds the
// gob-based binary codec.
package codec

import "github.com/rberlich/workdispatch/internal/protocol"

// Format identifies a wire format for diagnostics and logging.
type Format string

const (
	FormatXML    Format = "xml"
	FormatText   Format = "text"
	FormatBinary Format = "binary"
)

// Codec serializes and deserializes CommandContainer values.
type Codec interface {
	// Encode serializes a container to bytes.
	Encode(*protocol.CommandContainer) ([]byte, error)
	// Decode deserializes bytes into a fresh container.
	Decode([]byte) (*protocol.CommandContainer, error)
	// Format identifies which wire format this codec implements.
	Format() Format
}

// CodecError wraps a malformed-input failure. It is never recoverable
// within a session: the session that encounters one closes.
type CodecError struct {
	Op  string
	Err error
}

func (e *CodecError) Error() string { return "codec: " + e.Op + ": " + e.Err.Error() }
func (e *CodecError) Unwrap() error { return e.Err }

// wireContainer is the intermediate, format-agnostic representation of a
// CommandContainer used by the XML and text codecs. protocol.Payload is
// an interface, which neither encoding/xml nor encoding/json can encode
// directly — this struct carries an explicit Kind tag plus one field per
// payload variant, exactly one of which is populated. The binary codec
// does not use it: gob encodes the container itself.
type wireContainer struct {
	Command PayloadCommand `xml:"Command" json:"command"`
	Kind    PayloadKindTag `xml:"Kind" json:"kind"`

	RandomData []float64 `xml:"RandomData>Value" json:"random_data,omitempty"`
	SleepSecs  float64   `xml:"SleepSecs,omitempty" json:"sleep_secs,omitempty"`
}

// PayloadCommand and PayloadKindTag are integer aliases of the protocol
// package's enums, kept distinct here so the wire struct's field tags
// don't leak protocol-package import requirements into every codec.
type PayloadCommand int
type PayloadKindTag int

func toWire(c *protocol.CommandContainer) (*wireContainer, error) {
	w := &wireContainer{Command: PayloadCommand(c.Command)}
	if c.Payload == nil {
		w.Kind = PayloadKindTag(protocol.KindNone)
		return w, nil
	}

	switch p := c.Payload.(type) {
	case *protocol.RandomContainer:
		w.Kind = PayloadKindTag(protocol.KindRandomContainer)
		w.RandomData = p.Data
	case *protocol.Sleep:
		w.Kind = PayloadKindTag(protocol.KindSleep)
		w.SleepSecs = p.Duration.Seconds()
	default:
		return nil, &CodecError{Op: "encode", Err: errUnknownPayloadKind}
	}
	return w, nil
}

func fromWire(w *wireContainer) (*protocol.CommandContainer, error) {
	c := &protocol.CommandContainer{Command: protocol.PayloadCommand(w.Command)}

	switch protocol.PayloadKind(w.Kind) {
	case protocol.KindNone:
		// no payload
	case protocol.KindRandomContainer:
		c.Payload = &protocol.RandomContainer{Data: w.RandomData}
	case protocol.KindSleep:
		c.Payload = protocol.NewSleep(w.SleepSecs)
	default:
		return nil, &CodecError{Op: "decode", Err: errUnknownPayloadKind}
	}
	return c, nil
}
