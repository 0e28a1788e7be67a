//go:build codec_binary

package codec

import (
	"bytes"
	"encoding/gob"

	"github.com/rberlich/workdispatch/internal/protocol"
)

// BinaryCodec is the compact wire format, built when the codec_binary tag
// is set. Unlike the XML/text codecs, which go through the format-agnostic
// wireContainer, gob can encode the CommandContainer's Payload interface
// field directly once its concrete variants are registered below — so this
// codec carries the container itself across the wire rather than the wire
// struct.
type BinaryCodec struct{}

func init() {
	gob.Register(&protocol.RandomContainer{})
	gob.Register(&protocol.Sleep{})
}

// Default returns the codec linked into this build.
func Default() Codec { return BinaryCodec{} }

func (BinaryCodec) Format() Format { return FormatBinary }

func (BinaryCodec) Encode(c *protocol.CommandContainer) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(c); err != nil {
		return nil, &CodecError{Op: "binary encode", Err: err}
	}
	return buf.Bytes(), nil
}

func (BinaryCodec) Decode(data []byte) (*protocol.CommandContainer, error) {
	var c protocol.CommandContainer
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&c); err != nil {
		return nil, &CodecError{Op: "binary decode", Err: err}
	}
	return &c, nil
}
