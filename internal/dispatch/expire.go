package dispatch

import (
	"time"

	"respkv/internal/resp"
)

func (d *Dispatcher) expire(args []string, unit time.Duration) resp.Frame {
	if len(args) != 2 {
		return wrongArgs("expire")
	}
	n, ok := parseInt(args[1])
	if !ok {
		return notInteger()
	}
	return resp.Integer(int64(d.store.Expire(args[0], time.Duration(n)*unit)))
}

func (d *Dispatcher) ttl(args []string) resp.Frame {
	if len(args) != 1 {
		return wrongArgs("ttl")
	}
	return resp.Integer(d.store.TTL(args[0]))
}

func (d *Dispatcher) pttl(args []string) resp.Frame {
	if len(args) != 1 {
		return wrongArgs("pttl")
	}
	return resp.Integer(d.store.PTTL(args[0]))
}

func (d *Dispatcher) persist(args []string) resp.Frame {
	if len(args) != 1 {
		return wrongArgs("persist")
	}
	return resp.Integer(int64(d.store.Persist(args[0])))
}
