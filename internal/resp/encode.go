package resp

import (
	"strconv"
)

// Encode serializes a Frame to its RESP wire form. Encode is a pure
// left-inverse of Decode on canonical frames: Decode(Encode(f)) reproduces
// f and consumes the whole buffer.
func Encode(f Frame) []byte {
	var buf []byte
	return appendFrame(buf, f)
}

func appendFrame(buf []byte, f Frame) []byte {
	switch f.Kind {
	case KindSimpleString:
		buf = append(buf, '+')
		buf = append(buf, f.Str...)
		return append(buf, '\r', '\n')
	case KindError:
		buf = append(buf, '-')
		buf = append(buf, f.Str...)
		return append(buf, '\r', '\n')
	case KindInteger:
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, f.Int, 10)
		return append(buf, '\r', '\n')
	case KindBulk:
		if f.BulkNull {
			return append(buf, '$', '-', '1', '\r', '\n')
		}
		buf = append(buf, '$')
		buf = strconv.AppendInt(buf, int64(len(f.Bytes)), 10)
		buf = append(buf, '\r', '\n')
		buf = append(buf, f.Bytes...)
		return append(buf, '\r', '\n')
	case KindArray:
		if f.ArrayNull {
			return append(buf, '*', '-', '1', '\r', '\n')
		}
		buf = append(buf, '*')
		buf = strconv.AppendInt(buf, int64(len(f.Items)), 10)
		buf = append(buf, '\r', '\n')
		for _, item := range f.Items {
			buf = appendFrame(buf, item)
		}
		return buf
	default:
		panic("resp: unknown frame kind")
	}
}
