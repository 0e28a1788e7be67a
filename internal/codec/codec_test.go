package codec

import (
	"math"
	"testing"
	"time"

	"github.com/rberlich/workdispatch/internal/protocol"
)

// TestRoundTripDefaultCodec exercises whichever codec is linked into this
// build (xml_codec.go, text_codec.go, or binary_codec.go — selected by the
// codec_text/codec_binary build tags). It runs unconditionally so every
// build variant gets at least this coverage.
func TestRoundTripDefaultCodec(t *testing.T) {
	c := Default()

	cases := []struct {
		name      string
		container *protocol.CommandContainer
	}{
		{"getdata", protocol.NewCommandContainer(protocol.GetData, nil)},
		{"nodata", protocol.NewCommandContainer(protocol.NoData, nil)},
		{"error", protocol.NewCommandContainer(protocol.Error, nil)},
		{"compute-random", protocol.NewCommandContainer(protocol.Compute, &protocol.RandomContainer{Data: []float64{3, 1, 2}})},
		{"result-sleep", protocol.NewCommandContainer(protocol.Result, protocol.NewSleep(1.5))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := c.Encode(tc.container)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := c.Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got.Command != tc.container.Command {
				t.Errorf("Command = %v, want %v", got.Command, tc.container.Command)
			}
			assertPayloadEqual(t, tc.container.Payload, got.Payload)
		})
	}
}

func TestRoundTripLargeRandomContainer(t *testing.T) {
	c := Default()

	data := make([]float64, 1000)
	for i := range data {
		data[i] = math.Sin(float64(i)) * 1e6
	}
	container := protocol.NewCommandContainer(protocol.Compute, &protocol.RandomContainer{Data: data})

	encoded, err := c.Encode(container)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := c.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	assertPayloadEqual(t, container.Payload, decoded.Payload)
}

func TestDecodeMalformedInputFails(t *testing.T) {
	c := Default()
	if _, err := c.Decode([]byte("not a valid frame at all }{")); err == nil {
		t.Fatalf("expected an error decoding malformed input")
	}
}

func assertPayloadEqual(t *testing.T, want, got protocol.Payload) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Errorf("expected no payload, got %#v", got)
		}
		return
	}
	if got == nil {
		t.Fatalf("expected a payload, got none")
	}

	switch w := want.(type) {
	case *protocol.RandomContainer:
		g, ok := got.(*protocol.RandomContainer)
		if !ok {
			t.Fatalf("got payload of type %T, want *RandomContainer", got)
		}
		if len(g.Data) != len(w.Data) {
			t.Fatalf("Data length = %d, want %d", len(g.Data), len(w.Data))
		}
		for i := range w.Data {
			if math.Abs(g.Data[i]-w.Data[i]) > 1e-12 {
				t.Errorf("Data[%d] = %v, want %v", i, g.Data[i], w.Data[i])
			}
		}
	case *protocol.Sleep:
		g, ok := got.(*protocol.Sleep)
		if !ok {
			t.Fatalf("got payload of type %T, want *Sleep", got)
		}
		if d := g.Duration - w.Duration; d > time.Microsecond || d < -time.Microsecond {
			t.Errorf("Duration = %v, want %v", g.Duration, w.Duration)
		}
	default:
		t.Fatalf("unhandled payload type %T in test", want)
	}
}
