// Package store implements the tagged-value keyspace: a concurrent map
// from byte-string keys to typed entries with lazy, absolute-instant
// expiration and a periodic sweeper for physical reclamation.
package store

import (
	"strconv"
	"sync"
	"time"
)

// Store is the shared keyspace. A single reader-writer lock guards the
// whole map: every dispatched command runs as if it held an exclusive
// lock over the keys it touches, which a single coarse lock gives for
// free and keeps multi-key commands (MSET, MGET, DEL, EXISTS, RENAME,
// RENAMENX) trivially atomic.
type Store struct {
	mu   sync.RWMutex
	data map[string]*Entry
}

// New returns an empty Store.
func New() *Store {
	return &Store{data: make(map[string]*Entry)}
}

// lookup returns the entry for key if present and not logically expired.
// Callers must hold mu (read or write).
func (s *Store) lookup(key string) (*Entry, bool) {
	e, ok := s.data[key]
	if !ok {
		return nil, false
	}
	if e.isExpired(time.Now()) {
		return nil, false
	}
	return e, true
}

// --- Expiration family ---

// Expire sets an absolute expiry duration from now on an existing,
// non-expired key. Returns 1 if applied, 0 if the key is absent.
func (s *Store) Expire(key string, d time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(key)
	if !ok {
		return 0
	}
	at := time.Now().Add(d)
	e.ExpiresAt = &at
	return 1
}

// TTL returns remaining seconds (truncated toward zero), -1 if present
// with no TTL, or -2 if missing/expired.
func (s *Store) TTL(key string) int64 {
	ms := s.PTTL(key)
	if ms < 0 {
		return ms
	}
	return ms / 1000
}

// PTTL returns remaining milliseconds, -1 if present with no TTL, or -2
// if missing/expired.
func (s *Store) PTTL(key string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.lookup(key)
	if !ok {
		return -2
	}
	if e.ExpiresAt == nil {
		return -1
	}
	remaining := time.Until(*e.ExpiresAt)
	if remaining < 0 {
		return -2
	}
	return remaining.Milliseconds()
}

// Persist clears an existing TTL. Returns 1 iff the key was present, not
// expired, and had a TTL; 0 otherwise.
func (s *Store) Persist(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(key)
	if !ok || e.ExpiresAt == nil {
		return 0
	}
	e.ExpiresAt = nil
	return 1
}

// --- String family ---

// SetOptions carries SET's optional clauses, already validated and
// numerically resolved by the dispatcher.
type SetOptions struct {
	ExpiresAt *time.Time // nil unless EX/PX was given
	KeepTTL   bool
	NX        bool
	XX        bool
	Get       bool
}

// SetString implements SET. prev/hadPrev are populated only when
// opts.Get is true, and report the prior string value (hadPrev false if
// absent or non-string, matching GET's forgiving read semantics). wrote
// reports whether the write actually happened (false when skipped by
// NX/XX).
func (s *Store) SetString(key string, value []byte, opts SetOptions) (prev []byte, hadPrev bool, wrote bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.lookup(key)
	if opts.Get && exists && e.Value.Kind == KindString {
		prev, hadPrev = e.Value.Str, true
	}

	if (opts.NX && exists) || (opts.XX && !exists) {
		return prev, hadPrev, false
	}

	var expiresAt *time.Time
	switch {
	case opts.ExpiresAt != nil:
		expiresAt = opts.ExpiresAt
	case opts.KeepTTL && exists:
		expiresAt = e.ExpiresAt
	default:
		expiresAt = nil
	}

	s.data[key] = &Entry{Value: Value{Kind: KindString, Str: value}, ExpiresAt: expiresAt}
	return prev, hadPrev, true
}

// GetString returns the string value, or ok=false if absent, expired, or
// the key holds a non-string value (GET never surfaces WRONGTYPE).
func (s *Store) GetString(key string) (value []byte, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, exists := s.lookup(key)
	if !exists || e.Value.Kind != KindString {
		return nil, false
	}
	return e.Value.Str, true
}

// SetNX atomically sets key=value only if absent/expired. Returns true if
// inserted.
func (s *Store) SetNX(key string, value []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.lookup(key); exists {
		return false
	}
	s.data[key] = &Entry{Value: Value{Kind: KindString, Str: value}}
	return true
}

// SetWithExpiry implements SETEX/PSETEX: unconditional set with an
// absolute expiry.
func (s *Store) SetWithExpiry(key string, value []byte, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = &Entry{Value: Value{Kind: KindString, Str: value}, ExpiresAt: &expiresAt}
}

// GetSet returns the prior string value (hadPrev false if absent or
// non-string) and installs the new value with no TTL.
func (s *Store) GetSet(key string, value []byte) (prev []byte, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, exists := s.lookup(key); exists && e.Value.Kind == KindString {
		prev, hadPrev = e.Value.Str, true
	}
	s.data[key] = &Entry{Value: Value{Kind: KindString, Str: value}}
	return prev, hadPrev
}

// MSet atomically installs every pair, clearing TTL, all or nothing at
// the keyspace-lock level.
func (s *Store) MSet(pairs [][2][]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, kv := range pairs {
		s.data[string(kv[0])] = &Entry{Value: Value{Kind: KindString, Str: kv[1]}}
	}
}

// MGet returns one slot per key: the string value, or nil for
// absent/expired/non-string keys.
func (s *Store) MGet(keys []string) [][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][]byte, len(keys))
	for i, k := range keys {
		if e, ok := s.lookup(k); ok && e.Value.Kind == KindString {
			out[i] = e.Value.Str
		}
	}
	return out
}

// IncrBy parses the current string value as a signed 64-bit integer
// (absent/expired treated as 0), adds delta with overflow checking, and
// stores the decimal result with TTL cleared.
func (s *Store) IncrBy(key string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current int64
	e, exists := s.lookup(key)
	if exists {
		if e.Value.Kind != KindString {
			return 0, ErrWrongType
		}
		v, err := strconv.ParseInt(string(e.Value.Str), 10, 64)
		if err != nil {
			return 0, ErrNotInteger
		}
		current = v
	}

	result, overflow := addOverflows(current, delta)
	if overflow {
		return 0, ErrOverflow
	}

	s.data[key] = &Entry{Value: Value{Kind: KindString, Str: []byte(strconv.FormatInt(result, 10))}}
	return result, nil
}

// Append concatenates suffix onto the existing string value (stores it
// verbatim if absent/expired) and returns the new byte length.
func (s *Store) Append(key string, suffix []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.lookup(key)
	if !exists {
		s.data[key] = &Entry{Value: Value{Kind: KindString, Str: append([]byte{}, suffix...)}}
		return len(suffix), nil
	}
	if e.Value.Kind != KindString {
		return 0, ErrWrongType
	}
	e.Value.Str = append(e.Value.Str, suffix...)
	return len(e.Value.Str), nil
}

// StrLen returns the byte length of a string value, 0 if absent/expired.
func (s *Store) StrLen(key string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, exists := s.lookup(key)
	if !exists {
		return 0, nil
	}
	if e.Value.Kind != KindString {
		return 0, ErrWrongType
	}
	return len(e.Value.Str), nil
}

// addOverflows reports whether a+b overflows int64, and the result when it
// does not.
func addOverflows(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, true
	}
	return sum, false
}

// --- List family ---

func (s *Store) listFor(key string, createIfAbsent bool) (*List, bool, error) {
	e, exists := s.lookup(key)
	if !exists {
		if !createIfAbsent {
			return nil, false, nil
		}
		l := newList()
		s.data[key] = &Entry{Value: Value{Kind: KindList, List: l}}
		return l, true, nil
	}
	if e.Value.Kind != KindList {
		return nil, false, ErrWrongType
	}
	return e.Value.List, true, nil
}

// LPush/RPush push each value in argument order, auto-creating the key,
// and return the new length.
func (s *Store) LPush(key string, values [][]byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, _, err := s.listFor(key, true)
	if err != nil {
		return 0, err
	}
	for _, v := range values {
		l.LeftPush(v)
	}
	return l.Len(), nil
}

func (s *Store) RPush(key string, values [][]byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, _, err := s.listFor(key, true)
	if err != nil {
		return 0, err
	}
	for _, v := range values {
		l.RightPush(v)
	}
	return l.Len(), nil
}

// LPop/RPop pop one element. ok is false if the key is absent or empty.
func (s *Store) LPop(key string) (value []byte, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, exists, err := s.listFor(key, false)
	if err != nil || !exists {
		return nil, false, err
	}
	value, ok = l.LeftPop()
	return value, ok, nil
}

func (s *Store) RPop(key string) (value []byte, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, exists, err := s.listFor(key, false)
	if err != nil || !exists {
		return nil, false, err
	}
	value, ok = l.RightPop()
	return value, ok, nil
}

// LLen returns list length, 0 if absent.
func (s *Store) LLen(key string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, exists, err := s.listFor(key, false)
	if err != nil || !exists {
		return 0, err
	}
	return l.Len(), nil
}

// LRange returns the inclusive, negative-index-aware, clamped range.
func (s *Store) LRange(key string, start, stop int) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, exists, err := s.listFor(key, false)
	if err != nil {
		return nil, err
	}
	if !exists {
		return [][]byte{}, nil
	}
	return l.Range(start, stop), nil
}

// LIndex returns the value at a negative-index-aware position.
func (s *Store) LIndex(key string, i int) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, exists, err := s.listFor(key, false)
	if err != nil || !exists {
		return nil, false, err
	}
	v, ok := l.Index(i)
	return v, ok, nil
}

// LSet overwrites the value at a negative-index-aware position.
func (s *Store) LSet(key string, i int, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, exists, err := s.listFor(key, false)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNoSuchKey
	}
	if !l.Set(i, value) {
		return ErrIndexOutOfRange
	}
	return nil
}

// --- Set family ---

func (s *Store) setFor(key string, createIfAbsent bool) (*Set, bool, error) {
	e, exists := s.lookup(key)
	if !exists {
		if !createIfAbsent {
			return nil, false, nil
		}
		set := newSet()
		s.data[key] = &Entry{Value: Value{Kind: KindSet, Set: set}}
		return set, true, nil
	}
	if e.Value.Kind != KindSet {
		return nil, false, ErrWrongType
	}
	return e.Value.Set, true, nil
}

// SAdd inserts members, auto-creating the key, and returns the count
// newly inserted.
func (s *Store) SAdd(key string, members [][]byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, _, err := s.setFor(key, true)
	if err != nil {
		return 0, err
	}
	return set.Add(members...), nil
}

// SRem removes members, returning the count actually removed; 0 if the
// key is absent.
func (s *Store) SRem(key string, members [][]byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, exists, err := s.setFor(key, false)
	if err != nil || !exists {
		return 0, err
	}
	return set.Remove(members...), nil
}

// SMembers returns all members in unspecified order, empty if absent.
func (s *Store) SMembers(key string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, exists, err := s.setFor(key, false)
	if err != nil {
		return nil, err
	}
	if !exists {
		return [][]byte{}, nil
	}
	return set.Members(), nil
}

// SIsMember reports membership.
func (s *Store) SIsMember(key string, member []byte) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, exists, err := s.setFor(key, false)
	if err != nil || !exists {
		return false, err
	}
	return set.IsMember(member), nil
}

// SCard returns cardinality, 0 if absent.
func (s *Store) SCard(key string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, exists, err := s.setFor(key, false)
	if err != nil || !exists {
		return 0, err
	}
	return set.Card(), nil
}

// --- Hash family ---

func (s *Store) hashFor(key string, createIfAbsent bool) (*Hash, bool, error) {
	e, exists := s.lookup(key)
	if !exists {
		if !createIfAbsent {
			return nil, false, nil
		}
		h := newHash()
		s.data[key] = &Entry{Value: Value{Kind: KindHash, Hash: h}}
		return h, true, nil
	}
	if e.Value.Kind != KindHash {
		return nil, false, ErrWrongType
	}
	return e.Value.Hash, true, nil
}

// HSet stores each field=value pair, auto-creating the key, and returns
// the count of newly created fields.
func (s *Store) HSet(key string, pairs [][2][]byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, _, err := s.hashFor(key, true)
	if err != nil {
		return 0, err
	}
	created := 0
	for _, kv := range pairs {
		if h.Set(kv[0], kv[1]) {
			created++
		}
	}
	return created, nil
}

// HGet returns a field's value.
func (s *Store) HGet(key string, field []byte) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, exists, err := s.hashFor(key, false)
	if err != nil || !exists {
		return nil, false, err
	}
	v, ok := h.Get(field)
	return v, ok, nil
}

// HMGet returns one slot per field: the value, or nil if missing.
func (s *Store) HMGet(key string, fields [][]byte) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, exists, err := s.hashFor(key, false)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(fields))
	if !exists {
		return out, nil
	}
	for i, f := range fields {
		if v, ok := h.Get(f); ok {
			out[i] = v
		}
	}
	return out, nil
}

// HGetAll returns a flat field/value pairing, empty if absent.
func (s *Store) HGetAll(key string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, exists, err := s.hashFor(key, false)
	if err != nil {
		return nil, err
	}
	if !exists {
		return [][]byte{}, nil
	}
	return h.GetAll(), nil
}

// HDel removes fields, returning the count removed.
func (s *Store) HDel(key string, fields [][]byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, exists, err := s.hashFor(key, false)
	if err != nil || !exists {
		return 0, err
	}
	return h.Del(fields...), nil
}

// HExists reports field presence.
func (s *Store) HExists(key string, field []byte) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, exists, err := s.hashFor(key, false)
	if err != nil || !exists {
		return false, err
	}
	return h.Exists(field), nil
}

// HLen returns field count, 0 if absent.
func (s *Store) HLen(key string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, exists, err := s.hashFor(key, false)
	if err != nil || !exists {
		return 0, err
	}
	return h.Len(), nil
}

// HKeys/HVals return field names or values, empty if absent.
func (s *Store) HKeys(key string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, exists, err := s.hashFor(key, false)
	if err != nil {
		return nil, err
	}
	if !exists {
		return [][]byte{}, nil
	}
	return h.Keys(), nil
}

func (s *Store) HVals(key string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, exists, err := s.hashFor(key, false)
	if err != nil {
		return nil, err
	}
	if !exists {
		return [][]byte{}, nil
	}
	return h.Values(), nil
}

// HIncrBy parses a field as a signed 64-bit integer (missing treated as
// 0), adds delta with overflow checking.
func (s *Store) HIncrBy(key string, field []byte, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, _, err := s.hashFor(key, true)
	if err != nil {
		return 0, err
	}

	var current int64
	if v, ok := h.Get(field); ok {
		parsed, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return 0, ErrHashNotInteger
		}
		current = parsed
	}

	result, overflow := addOverflows(current, delta)
	if overflow {
		return 0, ErrOverflow
	}
	h.Set(field, []byte(strconv.FormatInt(result, 10)))
	return result, nil
}

// --- Key-admin family ---

// Del removes keys, returning the count actually removed.
func (s *Store) Del(keys []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for _, k := range keys {
		if _, ok := s.lookup(k); ok {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}

// Exists returns the count of keys present (duplicates count per
// occurrence).
func (s *Store) Exists(keys []string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, k := range keys {
		if _, ok := s.lookup(k); ok {
			count++
		}
	}
	return count
}

// Keys glob-matches pattern against every non-expired key.
func (s *Store) Keys(pattern string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := time.Now()
	out := make([]string, 0)
	for k, e := range s.data {
		if e.isExpired(now) {
			continue
		}
		if matchPattern(pattern, k) {
			out = append(out, k)
		}
	}
	return out
}

// Type reports the value kind, or "none" if absent/expired.
func (s *Store) Type(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.lookup(key)
	if !ok {
		return "none"
	}
	return e.Value.Kind.TypeName()
}

// Rename moves old's entry (including TTL) onto new, overwriting new
// unconditionally.
func (s *Store) Rename(oldKey, newKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(oldKey)
	if !ok {
		return ErrNoSuchKey
	}
	delete(s.data, oldKey)
	s.data[newKey] = e
	return nil
}

// RenameNX is Rename but fails (returns 0) if new already exists.
func (s *Store) RenameNX(oldKey, newKey string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(oldKey)
	if !ok {
		return 0, ErrNoSuchKey
	}
	if _, exists := s.lookup(newKey); exists {
		return 0, nil
	}
	delete(s.data, oldKey)
	s.data[newKey] = e
	return 1, nil
}

// DBSize returns the count of non-expired keys.
func (s *Store) DBSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := time.Now()
	count := 0
	for _, e := range s.data {
		if !e.isExpired(now) {
			count++
		}
	}
	return count
}

// FlushDB removes every entry.
func (s *Store) FlushDB() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]*Entry)
}

// RunExpiryCleanup scans the keyspace and physically removes every
// logically expired entry. Idempotent, safe at any cadence; a memory
// optimization only, never a correctness mechanism since every read path
// above already rechecks expiry on its own.
func (s *Store) RunExpiryCleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for k, e := range s.data {
		if e.isExpired(now) {
			delete(s.data, k)
		}
	}
}
