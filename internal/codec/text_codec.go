//go:build codec_text

package codec

import (
	"encoding/json"

	"github.com/rberlich/workdispatch/internal/protocol"
)

// TextCodec is a human-readable wire format, built when the codec_text tag
// is set: textual, but not intended to be pretty.
type TextCodec struct{}

// Default returns the codec linked into this build.
func Default() Codec { return TextCodec{} }

func (TextCodec) Format() Format { return FormatText }

func (TextCodec) Encode(c *protocol.CommandContainer) ([]byte, error) {
	w, err := toWire(c)
	if err != nil {
		return nil, &CodecError{Op: "text encode", Err: err}
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, &CodecError{Op: "text encode", Err: err}
	}
	return data, nil
}

func (TextCodec) Decode(data []byte) (*protocol.CommandContainer, error) {
	var w wireContainer
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, &CodecError{Op: "text decode", Err: err}
	}
	c, err := fromWire(&w)
	if err != nil {
		return nil, &CodecError{Op: "text decode", Err: err}
	}
	return c, nil
}
