package codec

import "errors"

var errUnknownPayloadKind = errors.New("unknown payload kind")
