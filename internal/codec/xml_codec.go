//go:build !codec_text && !codec_binary

package codec

import (
	"encoding/xml"

	"github.com/rberlich/workdispatch/internal/protocol"
)

// XMLCodec is the default wire format, linked in when neither codec_text
// nor codec_binary is set at build time.
type XMLCodec struct{}

// Default returns the codec linked into this build. Exactly one of
// xml_codec.go, text_codec.go, binary_codec.go is compiled per build tag.
func Default() Codec { return XMLCodec{} }

func (XMLCodec) Format() Format { return FormatXML }

func (XMLCodec) Encode(c *protocol.CommandContainer) ([]byte, error) {
	w, err := toWire(c)
	if err != nil {
		return nil, &CodecError{Op: "xml encode", Err: err}
	}
	data, err := xml.Marshal(struct {
		XMLName xml.Name `xml:"CommandContainer"`
		wireContainer
	}{wireContainer: *w})
	if err != nil {
		return nil, &CodecError{Op: "xml encode", Err: err}
	}
	return data, nil
}

func (XMLCodec) Decode(data []byte) (*protocol.CommandContainer, error) {
	var wrapped struct {
		XMLName xml.Name `xml:"CommandContainer"`
		wireContainer
	}
	if err := xml.Unmarshal(data, &wrapped); err != nil {
		return nil, &CodecError{Op: "xml decode", Err: err}
	}
	c, err := fromWire(&wrapped.wireContainer)
	if err != nil {
		return nil, &CodecError{Op: "xml decode", Err: err}
	}
	return c, nil
}
