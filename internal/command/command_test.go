package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"respkv/internal/resp"
)

func TestFromFrameArray(t *testing.T) {
	f := resp.Array([]resp.Frame{resp.BulkString("set"), resp.BulkString("k"), resp.BulkString("v")})
	cmd, err := FromFrame(f)
	require.NoError(t, err)
	assert.Equal(t, "SET", cmd.Name)
	assert.Equal(t, []string{"k", "v"}, cmd.Args)
}

func TestFromFrameInline(t *testing.T) {
	f := resp.SimpleString("ping hello")
	cmd, err := FromFrame(f)
	require.NoError(t, err)
	assert.Equal(t, "PING", cmd.Name)
	assert.Equal(t, []string{"hello"}, cmd.Args)
}

func TestFromFrameEmptyArray(t *testing.T) {
	_, err := FromFrame(resp.Array(nil))
	assert.Error(t, err)
}

func TestFromFrameNullArray(t *testing.T) {
	_, err := FromFrame(resp.NullArray())
	assert.Error(t, err)
}

func TestFromFrameEmptyInline(t *testing.T) {
	_, err := FromFrame(resp.SimpleString("   "))
	assert.Error(t, err)
}

func TestFromFrameArrayWithNonBulkElement(t *testing.T) {
	f := resp.Array([]resp.Frame{resp.Integer(1)})
	_, err := FromFrame(f)
	assert.Error(t, err)
}

func TestFromFrameArrayWithNullBulkElement(t *testing.T) {
	f := resp.Array([]resp.Frame{resp.NullBulk()})
	_, err := FromFrame(f)
	assert.Error(t, err)
}

func TestFromFrameUnsupportedKind(t *testing.T) {
	_, err := FromFrame(resp.Integer(5))
	assert.Error(t, err)
}
