package dispatch

import (
	"strconv"
	"strings"

	"respkv/internal/resp"
)

func wrongArgs(name string) resp.Frame {
	return resp.Errorf("ERR wrong number of arguments for '%s' command", strings.ToLower(name))
}

func syntaxError() resp.Frame {
	return resp.ErrorFrame("ERR syntax error")
}

func notInteger() resp.Frame {
	return resp.ErrorFrame("ERR value is not an integer or out of range")
}

func parseInt(s string) (int64, bool) {
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err == nil
}

// storeErr converts a store-layer sentinel error into its reply frame. It
// panics on nil, matching its only intended use: inside a non-nil-err
// branch.
func storeErr(err error) resp.Frame {
	return resp.ErrorFrame(err.Error())
}

// bulkOrNull renders an optional value as Bulk/NullBulk.
func bulkOrNull(v []byte, ok bool) resp.Frame {
	if !ok {
		return resp.NullBulk()
	}
	return resp.Bulk(v)
}

// bulkArrayOptional renders a []( []byte or nil) slice as an Array of
// Bulk/NullBulk, the shape MGET/HMGET use for "value or missing" lists.
func bulkArrayOptional(values [][]byte) resp.Frame {
	items := make([]resp.Frame, len(values))
	for i, v := range values {
		if v == nil {
			items[i] = resp.NullBulk()
		} else {
			items[i] = resp.Bulk(v)
		}
	}
	return resp.Array(items)
}

func toByteSlices(args []string) [][]byte {
	out := make([][]byte, len(args))
	for i, a := range args {
		out[i] = []byte(a)
	}
	return out
}
