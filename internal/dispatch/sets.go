package dispatch

import (
	"respkv/internal/resp"
)

func (d *Dispatcher) sadd(args []string) resp.Frame {
	if len(args) < 2 {
		return wrongArgs("sadd")
	}
	n, err := d.store.SAdd(args[0], toByteSlices(args[1:]))
	if err != nil {
		return storeErr(err)
	}
	return resp.Integer(int64(n))
}

func (d *Dispatcher) srem(args []string) resp.Frame {
	if len(args) < 2 {
		return wrongArgs("srem")
	}
	n, err := d.store.SRem(args[0], toByteSlices(args[1:]))
	if err != nil {
		return storeErr(err)
	}
	return resp.Integer(int64(n))
}

func (d *Dispatcher) smembers(args []string) resp.Frame {
	if len(args) != 1 {
		return wrongArgs("smembers")
	}
	members, err := d.store.SMembers(args[0])
	if err != nil {
		return storeErr(err)
	}
	return resp.BulkArray(members)
}

func (d *Dispatcher) sismember(args []string) resp.Frame {
	if len(args) != 2 {
		return wrongArgs("sismember")
	}
	ok, err := d.store.SIsMember(args[0], []byte(args[1]))
	if err != nil {
		return storeErr(err)
	}
	if ok {
		return resp.Integer(1)
	}
	return resp.Integer(0)
}

func (d *Dispatcher) scard(args []string) resp.Frame {
	if len(args) != 1 {
		return wrongArgs("scard")
	}
	n, err := d.store.SCard(args[0])
	if err != nil {
		return storeErr(err)
	}
	return resp.Integer(int64(n))
}
