package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetString(t *testing.T) {
	s := New()
	_, _, wrote := s.SetString("k", []byte("v"), SetOptions{})
	assert.True(t, wrote)

	v, ok := s.GetString("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)
}

func TestSetClearsTTLWithoutOptions(t *testing.T) {
	s := New()
	at := time.Now().Add(time.Hour)
	s.SetWithExpiry("k", []byte("v"), at)

	s.SetString("k", []byte("v2"), SetOptions{})
	assert.Equal(t, int64(-1), s.TTL("k"))
}

func TestSetKeepTTLPreservesExpiry(t *testing.T) {
	s := New()
	s.SetWithExpiry("k", []byte("v"), time.Now().Add(time.Hour))

	s.SetString("k", []byte("v2"), SetOptions{KeepTTL: true})
	assert.Greater(t, s.TTL("k"), int64(0))
}

func TestSetNXAndXX(t *testing.T) {
	s := New()
	_, _, wrote := s.SetString("k", []byte("v"), SetOptions{XX: true})
	assert.False(t, wrote, "XX against absent key must not write")

	_, _, wrote = s.SetString("k", []byte("v"), SetOptions{NX: true})
	assert.True(t, wrote)

	_, _, wrote = s.SetString("k", []byte("v2"), SetOptions{NX: true})
	assert.False(t, wrote, "NX against present key must not write")
}

// P3: a TTL'd key reads as absent at or after its expiry instant.
func TestTTLExpiryMakesKeyAbsent(t *testing.T) {
	s := New()
	s.SetWithExpiry("k", []byte("v"), time.Now().Add(20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	_, ok := s.GetString("k")
	assert.False(t, ok)
	assert.Equal(t, int64(-2), s.TTL("k"))
}

// P4: TYPE after a successful write returns the written type; after DEL
// returns "none".
func TestTypeAfterWriteAndDelete(t *testing.T) {
	s := New()
	s.SetString("k", []byte("v"), SetOptions{})
	assert.Equal(t, "string", s.Type("k"))

	s.Del([]string{"k"})
	assert.Equal(t, "none", s.Type("k"))
}

// P5: LRANGE k 0 -1 returns the full logical order.
func TestListRangeFullSequence(t *testing.T) {
	s := New()
	_, err := s.RPush("L", [][]byte{[]byte("a"), []byte("b"), []byte("c")})
	require.NoError(t, err)

	vals, err := s.LRange("L", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, vals)
}

func TestListNegativeRangeAndIndex(t *testing.T) {
	s := New()
	s.RPush("L", [][]byte{[]byte("a"), []byte("b"), []byte("c")})

	vals, err := s.LRange("L", -2, -1)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("b"), []byte("c")}, vals)

	v, ok, err := s.LIndex("L", -1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("c"), v)
}

func TestLSetOutOfRange(t *testing.T) {
	s := New()
	s.RPush("L", [][]byte{[]byte("a")})
	err := s.LSet("L", 10, []byte("z"))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestLSetNoSuchKey(t *testing.T) {
	s := New()
	err := s.LSet("missing", 0, []byte("z"))
	assert.ErrorIs(t, err, ErrNoSuchKey)
}

// P6: INCRBY returns v+d and stores the decimal text, failing on 64-bit
// overflow rather than wrapping.
func TestIncrByStoresDecimalText(t *testing.T) {
	s := New()
	s.SetString("c", []byte("10"), SetOptions{})

	v, err := s.IncrBy("c", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(15), v)

	got, ok := s.GetString("c")
	require.True(t, ok)
	assert.Equal(t, "15", string(got))
}

func TestIncrByOverflow(t *testing.T) {
	s := New()
	s.SetString("c", []byte("9223372036854775807"), SetOptions{})
	_, err := s.IncrBy("c", 1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestIncrByNonIntegerValue(t *testing.T) {
	s := New()
	s.SetString("c", []byte("notanint"), SetOptions{})
	_, err := s.IncrBy("c", 1)
	assert.ErrorIs(t, err, ErrNotInteger)
}

func TestIncrByWrongType(t *testing.T) {
	s := New()
	s.RPush("L", [][]byte{[]byte("a")})
	_, err := s.IncrBy("L", 1)
	assert.ErrorIs(t, err, ErrWrongType)
}

// P8: concurrent INCRBY of the same key from N sessions by +1 each
// converges to exactly +N.
func TestConcurrentIncrByConverges(t *testing.T) {
	s := New()
	s.SetString("c", []byte("0"), SetOptions{})

	const n = 200
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := s.IncrBy("c", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, _ := s.GetString("c")
	assert.Equal(t, "200", string(got))
}

func TestSetMembersCardAndIsMember(t *testing.T) {
	s := New()
	added, err := s.SAdd("s", [][]byte{[]byte("a"), []byte("b"), []byte("a")})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	card, err := s.SCard("s")
	require.NoError(t, err)
	assert.Equal(t, 2, card)

	isMember, err := s.SIsMember("s", []byte("a"))
	require.NoError(t, err)
	assert.True(t, isMember)

	isMember, err = s.SIsMember("s", []byte("z"))
	require.NoError(t, err)
	assert.False(t, isMember)
}

func TestHashSetGetIncr(t *testing.T) {
	s := New()
	created, err := s.HSet("h", [][2][]byte{{[]byte("f1"), []byte("v1")}, {[]byte("f2"), []byte("v2")}})
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = s.HSet("h", [][2][]byte{{[]byte("f1"), []byte("v1b")}})
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	v, ok, err := s.HGet("h", []byte("f1"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v1b"), v)

	n, err := s.HIncrBy("h", []byte("n"), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestRenameMovesTTL(t *testing.T) {
	s := New()
	s.SetWithExpiry("old", []byte("v"), time.Now().Add(time.Hour))
	err := s.Rename("old", "new")
	require.NoError(t, err)

	assert.Equal(t, "none", s.Type("old"))
	assert.Greater(t, s.TTL("new"), int64(0))
}

func TestRenameNXFailsIfTargetExists(t *testing.T) {
	s := New()
	s.SetString("old", []byte("v"), SetOptions{})
	s.SetString("new", []byte("v2"), SetOptions{})

	n, err := s.RenameNX("old", "new")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRunExpiryCleanupRemovesExpiredEntries(t *testing.T) {
	s := New()
	s.SetWithExpiry("k", []byte("v"), time.Now().Add(-time.Second))
	s.RunExpiryCleanup()

	s.mu.RLock()
	_, stillPresent := s.data["k"]
	s.mu.RUnlock()
	assert.False(t, stillPresent)
}

func TestKeysGlobMatch(t *testing.T) {
	s := New()
	s.SetString("foo", []byte("1"), SetOptions{})
	s.SetString("foobar", []byte("1"), SetOptions{})
	s.SetString("baz", []byte("1"), SetOptions{})

	matches := s.Keys("foo*")
	assert.ElementsMatch(t, []string{"foo", "foobar"}, matches)
}

func TestDBSizeExcludesExpired(t *testing.T) {
	s := New()
	s.SetString("a", []byte("1"), SetOptions{})
	s.SetWithExpiry("b", []byte("1"), time.Now().Add(-time.Second))
	assert.Equal(t, 1, s.DBSize())
}
