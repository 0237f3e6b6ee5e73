package dispatch

import (
	"respkv/internal/resp"
)

func (d *Dispatcher) push(args []string, name string, op func(string, [][]byte) (int, error)) resp.Frame {
	if len(args) < 2 {
		return wrongArgs(name)
	}
	n, err := op(args[0], toByteSlices(args[1:]))
	if err != nil {
		return storeErr(err)
	}
	return resp.Integer(int64(n))
}

func (d *Dispatcher) pop(args []string, name string, op func(string) ([]byte, bool, error)) resp.Frame {
	if len(args) != 1 {
		return wrongArgs(name)
	}
	v, ok, err := op(args[0])
	if err != nil {
		return storeErr(err)
	}
	return bulkOrNull(v, ok)
}

func (d *Dispatcher) llen(args []string) resp.Frame {
	if len(args) != 1 {
		return wrongArgs("llen")
	}
	n, err := d.store.LLen(args[0])
	if err != nil {
		return storeErr(err)
	}
	return resp.Integer(int64(n))
}

func (d *Dispatcher) lrange(args []string) resp.Frame {
	if len(args) != 3 {
		return wrongArgs("lrange")
	}
	start, ok := parseInt(args[1])
	if !ok {
		return notInteger()
	}
	stop, ok := parseInt(args[2])
	if !ok {
		return notInteger()
	}
	vals, err := d.store.LRange(args[0], int(start), int(stop))
	if err != nil {
		return storeErr(err)
	}
	return resp.BulkArray(vals)
}

func (d *Dispatcher) lindex(args []string) resp.Frame {
	if len(args) != 2 {
		return wrongArgs("lindex")
	}
	i, ok := parseInt(args[1])
	if !ok {
		return notInteger()
	}
	v, found, err := d.store.LIndex(args[0], int(i))
	if err != nil {
		return storeErr(err)
	}
	return bulkOrNull(v, found)
}

func (d *Dispatcher) lset(args []string) resp.Frame {
	if len(args) != 3 {
		return wrongArgs("lset")
	}
	i, ok := parseInt(args[1])
	if !ok {
		return notInteger()
	}
	if err := d.store.LSet(args[0], int(i), []byte(args[2])); err != nil {
		return storeErr(err)
	}
	return resp.SimpleString("OK")
}
