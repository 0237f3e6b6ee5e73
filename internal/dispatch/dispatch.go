// Package dispatch maps normalized commands onto keyspace calls and shapes
// their results into reply frames.
package dispatch

import (
	"strings"
	"time"

	"respkv/internal/command"
	"respkv/internal/resp"
	"respkv/internal/store"
)

// ServerInfo carries the fixed facts the INFO stub reports about the
// running process; it is set once at startup.
type ServerInfo struct {
	Version string
	Port    int
}

// Dispatcher is a thin, mostly-stateless router from (name, args) to a
// reply frame. It is cheap to construct per session: the only per-session
// state it carries is identity used by the CLIENT stubs.
type Dispatcher struct {
	store      *store.Store
	info       ServerInfo
	startedAt  time.Time
	connID     string
	remoteAddr string
}

// New returns a Dispatcher bound to the shared store and this session's
// identity.
func New(s *store.Store, info ServerInfo, startedAt time.Time, connID, remoteAddr string) *Dispatcher {
	return &Dispatcher{store: s, info: info, startedAt: startedAt, connID: connID, remoteAddr: remoteAddr}
}

// Dispatch executes cmd and returns its reply frame. quit reports whether
// the session loop must transition to Closing after writing the reply
// (true only for QUIT).
func (d *Dispatcher) Dispatch(cmd command.Command) (frame resp.Frame, quit bool) {
	switch cmd.Name {
	// administrative stubs
	case "PING":
		return d.ping(cmd.Args), false
	case "ECHO":
		return d.echo(cmd.Args), false
	case "COMMAND":
		return d.commandStub(cmd.Args), false
	case "CONFIG":
		return d.configStub(cmd.Args), false
	case "CLIENT":
		return d.clientStub(cmd.Args), false
	case "INFO":
		return d.infoStub(cmd.Args), false
	case "QUIT":
		return resp.SimpleString("OK"), true

	// expiration family
	case "EXPIRE":
		return d.expire(cmd.Args, time.Second), false
	case "PEXPIRE":
		return d.expire(cmd.Args, time.Millisecond), false
	case "TTL":
		return d.ttl(cmd.Args), false
	case "PTTL":
		return d.pttl(cmd.Args), false
	case "PERSIST":
		return d.persist(cmd.Args), false

	// string family
	case "SET":
		return d.set(cmd.Args), false
	case "GET":
		return d.get(cmd.Args), false
	case "SETNX":
		return d.setnx(cmd.Args), false
	case "SETEX":
		return d.setex(cmd.Args, time.Second), false
	case "PSETEX":
		return d.setex(cmd.Args, time.Millisecond), false
	case "GETSET":
		return d.getset(cmd.Args), false
	case "MSET":
		return d.mset(cmd.Args), false
	case "MGET":
		return d.mget(cmd.Args), false
	case "INCR":
		return d.incrDecr(cmd.Args, 1, "incr"), false
	case "DECR":
		return d.incrDecr(cmd.Args, -1, "decr"), false
	case "INCRBY":
		return d.incrDecrBy(cmd.Args, 1, "incrby"), false
	case "DECRBY":
		return d.incrDecrBy(cmd.Args, -1, "decrby"), false
	case "APPEND":
		return d.appendCmd(cmd.Args), false
	case "STRLEN":
		return d.strlen(cmd.Args), false

	// list family
	case "LPUSH":
		return d.push(cmd.Args, "lpush", d.store.LPush), false
	case "RPUSH":
		return d.push(cmd.Args, "rpush", d.store.RPush), false
	case "LPOP":
		return d.pop(cmd.Args, "lpop", d.store.LPop), false
	case "RPOP":
		return d.pop(cmd.Args, "rpop", d.store.RPop), false
	case "LLEN":
		return d.llen(cmd.Args), false
	case "LRANGE":
		return d.lrange(cmd.Args), false
	case "LINDEX":
		return d.lindex(cmd.Args), false
	case "LSET":
		return d.lset(cmd.Args), false

	// set family
	case "SADD":
		return d.sadd(cmd.Args), false
	case "SREM":
		return d.srem(cmd.Args), false
	case "SMEMBERS":
		return d.smembers(cmd.Args), false
	case "SISMEMBER":
		return d.sismember(cmd.Args), false
	case "SCARD":
		return d.scard(cmd.Args), false

	// hash family
	case "HSET":
		return d.hset(cmd.Args, "hset", false), false
	case "HMSET":
		return d.hset(cmd.Args, "hmset", true), false
	case "HGET":
		return d.hget(cmd.Args), false
	case "HMGET":
		return d.hmget(cmd.Args), false
	case "HGETALL":
		return d.hgetall(cmd.Args), false
	case "HDEL":
		return d.hdel(cmd.Args), false
	case "HEXISTS":
		return d.hexists(cmd.Args), false
	case "HLEN":
		return d.hlen(cmd.Args), false
	case "HKEYS":
		return d.hkeys(cmd.Args), false
	case "HVALS":
		return d.hvals(cmd.Args), false
	case "HINCRBY":
		return d.hincrby(cmd.Args), false

	// key-admin family
	case "DEL":
		return d.del(cmd.Args), false
	case "EXISTS":
		return d.exists(cmd.Args), false
	case "KEYS":
		return d.keys(cmd.Args), false
	case "TYPE":
		return d.typeCmd(cmd.Args), false
	case "RENAME":
		return d.rename(cmd.Args), false
	case "RENAMENX":
		return d.renamenx(cmd.Args), false
	case "DBSIZE":
		return d.dbsize(cmd.Args), false
	case "FLUSHDB", "FLUSHALL":
		return d.flush(cmd.Args), false

	default:
		return resp.Errorf("ERR unknown command '%s'", strings.ToLower(cmd.Name)), false
	}
}
