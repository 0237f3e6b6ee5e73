package resp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRoundTrip(t *testing.T) {
	cases := []Frame{
		SimpleString("OK"),
		ErrorFrame("ERR bad thing"),
		Integer(42),
		Integer(-7),
		BulkString("hello"),
		Bulk([]byte{}),
		NullBulk(),
		Array([]Frame{BulkString("SET"), BulkString("k"), BulkString("v")}),
		NullArray(),
		Array([]Frame{}),
	}

	for _, f := range cases {
		wire := Encode(f)
		got, n, err := Decode(wire)
		require.NoError(t, err)
		assert.Equal(t, len(wire), n)
		assert.Equal(t, f, got)
	}
}

func TestDecodeIncompleteThenComplete(t *testing.T) {
	full := Encode(Array([]Frame{BulkString("GET"), BulkString("key")}))

	for i := 0; i < len(full); i++ {
		_, _, err := Decode(full[:i])
		assert.ErrorIs(t, err, ErrIncomplete, "prefix length %d should be incomplete", i)
	}

	got, n, err := Decode(full)
	require.NoError(t, err)
	assert.Equal(t, len(full), n)
	assert.Equal(t, Array([]Frame{BulkString("GET"), BulkString("key")}), got)
}

func TestDecodePrefixDeterminism(t *testing.T) {
	full := Encode(Array([]Frame{BulkString("MSET"), BulkString("a"), BulkString("1"), BulkString("b"), BulkString("2")}))
	trailer := []byte("garbage-that-is-not-parsed-yet")

	gotFull, nFull, errFull := Decode(full)
	require.NoError(t, errFull)

	gotWithTrailer, nWithTrailer, errWithTrailer := Decode(append(append([]byte{}, full...), trailer...))
	require.NoError(t, errWithTrailer)

	assert.Equal(t, nFull, nWithTrailer)
	assert.Equal(t, gotFull, gotWithTrailer)
}

func TestDecodeNullBulk(t *testing.T) {
	f, n, err := Decode([]byte("$-1\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, NullBulk(), f)
}

func TestDecodeNullArray(t *testing.T) {
	f, n, err := Decode([]byte("*-1\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, NullArray(), f)
}

func TestDecodeMalformedBulkLength(t *testing.T) {
	_, _, err := Decode([]byte("$abc\r\n"))
	var pe *ProtocolError
	assert.ErrorAs(t, err, &pe)
}

func TestDecodeMalformedBulkMissingTerminator(t *testing.T) {
	_, _, err := Decode([]byte("$3\r\nabcXX"))
	var pe *ProtocolError
	assert.ErrorAs(t, err, &pe)
}

func TestDecodeMalformedIntegerFrame(t *testing.T) {
	_, _, err := Decode([]byte(":notanumber\r\n"))
	var pe *ProtocolError
	assert.ErrorAs(t, err, &pe)
}

func TestDecodeIncompleteEmptyBuffer(t *testing.T) {
	_, _, err := Decode(nil)
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestDecodeInlinePing(t *testing.T) {
	f, n, err := Decode([]byte("PING\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, SimpleString("PING"), f)
}

func TestDecodeInlineIncomplete(t *testing.T) {
	_, _, err := Decode([]byte("PIN"))
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestDecodeNestedArray(t *testing.T) {
	inner := Array([]Frame{BulkString("a"), BulkString("b")})
	outer := Array([]Frame{inner, Integer(3)})
	wire := Encode(outer)
	got, n, err := Decode(wire)
	require.NoError(t, err)
	assert.Equal(t, len(wire), n)
	assert.Equal(t, outer, got)
}

func TestDecodeArrayPropagatesChildMalformed(t *testing.T) {
	_, _, err := Decode([]byte("*1\r\n$abc\r\n"))
	var pe *ProtocolError
	assert.ErrorAs(t, err, &pe)
}

func TestDecodeArrayPropagatesChildIncomplete(t *testing.T) {
	_, _, err := Decode([]byte("*2\r\n$3\r\nfoo\r\n$3\r\nba"))
	assert.ErrorIs(t, err, ErrIncomplete)
}
