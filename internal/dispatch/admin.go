package dispatch

import (
	"fmt"
	"runtime"
	"strings"

	"respkv/internal/resp"
)

func (d *Dispatcher) ping(args []string) resp.Frame {
	switch len(args) {
	case 0:
		return resp.SimpleString("PONG")
	case 1:
		return resp.BulkString(args[0])
	default:
		return wrongArgs("ping")
	}
}

func (d *Dispatcher) echo(args []string) resp.Frame {
	if len(args) != 1 {
		return wrongArgs("echo")
	}
	return resp.BulkString(args[0])
}

func (d *Dispatcher) commandStub(args []string) resp.Frame {
	if len(args) == 1 && strings.EqualFold(args[0], "COUNT") {
		return resp.Integer(42)
	}
	// COMMAND and COMMAND DOCS both reply with an empty array; a full
	// command table is outside this server's introspection scope.
	return resp.Array(nil)
}

func (d *Dispatcher) configStub(args []string) resp.Frame {
	if len(args) == 0 {
		return wrongArgs("config")
	}
	switch strings.ToUpper(args[0]) {
	case "GET":
		if len(args) == 2 && (args[1] == "save" || args[1] == "*") {
			return resp.StringArray([]string{"save", ""})
		}
		return resp.Array(nil)
	case "SET":
		return resp.SimpleString("OK")
	default:
		return resp.SimpleString("OK")
	}
}

func (d *Dispatcher) clientStub(args []string) resp.Frame {
	if len(args) == 0 {
		return wrongArgs("client")
	}
	switch strings.ToUpper(args[0]) {
	case "SETINFO", "SETNAME":
		return resp.SimpleString("OK")
	case "GETNAME":
		return resp.NullBulk()
	case "LIST":
		line := fmt.Sprintf("id=%s addr=%s fd=1 name= db=0\n", d.connID, d.remoteAddr)
		return resp.BulkString(line)
	case "ID":
		return resp.Integer(int64(connIDHash(d.connID)))
	default:
		return resp.SimpleString("OK")
	}
}

// connIDHash turns the session's UUID connection id into a small positive
// integer for the CLIENT ID reply, which the wire contract only requires
// to be an Integer.
func connIDHash(id string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(id); i++ {
		h ^= uint32(id[i])
		h *= 16777619
	}
	return h & 0x7fffffff
}

func (d *Dispatcher) infoStub(args []string) resp.Frame {
	var b strings.Builder
	b.WriteString("# Server\r\n")
	fmt.Fprintf(&b, "redis_version:%s\r\n", d.info.Version)
	b.WriteString("redis_mode:standalone\r\n")
	fmt.Fprintf(&b, "os:%s\r\n", runtime.GOOS)
	fmt.Fprintf(&b, "arch_bits:%d\r\n", 32<<(^uint(0)>>63))
	fmt.Fprintf(&b, "tcp_port:%d\r\n", d.info.Port)

	if n := d.store.DBSize(); n > 0 {
		b.WriteString("# Keyspace\r\n")
		fmt.Fprintf(&b, "db0:keys=%d,expires=0,avg_ttl=0\r\n", n)
	}

	return resp.BulkString(b.String())
}
