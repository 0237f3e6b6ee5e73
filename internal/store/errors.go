package store

import "errors"

// Sentinel errors returned by Store operations. Their text already carries
// the wire error-prefix the dispatcher is required to forward verbatim.
var (
	ErrWrongType       = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")
	ErrNoSuchKey       = errors.New("ERR no such key")
	ErrIndexOutOfRange = errors.New("ERR index out of range")
	ErrNotInteger      = errors.New("ERR value is not an integer or out of range")
	ErrOverflow        = errors.New("ERR increment or decrement would overflow")
	ErrHashNotInteger  = errors.New("ERR hash value is not an integer")
)
