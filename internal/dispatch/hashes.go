package dispatch

import (
	"respkv/internal/resp"
)

func (d *Dispatcher) hset(args []string, name string, replyOK bool) resp.Frame {
	if len(args) < 3 || len(args[1:])%2 != 0 {
		return wrongArgs(name)
	}
	pairs := make([][2][]byte, 0, (len(args)-1)/2)
	for i := 1; i < len(args); i += 2 {
		pairs = append(pairs, [2][]byte{[]byte(args[i]), []byte(args[i+1])})
	}
	created, err := d.store.HSet(args[0], pairs)
	if err != nil {
		return storeErr(err)
	}
	if replyOK {
		return resp.SimpleString("OK")
	}
	return resp.Integer(int64(created))
}

func (d *Dispatcher) hget(args []string) resp.Frame {
	if len(args) != 2 {
		return wrongArgs("hget")
	}
	v, ok, err := d.store.HGet(args[0], []byte(args[1]))
	if err != nil {
		return storeErr(err)
	}
	return bulkOrNull(v, ok)
}

func (d *Dispatcher) hmget(args []string) resp.Frame {
	if len(args) < 2 {
		return wrongArgs("hmget")
	}
	vals, err := d.store.HMGet(args[0], toByteSlices(args[1:]))
	if err != nil {
		return storeErr(err)
	}
	return bulkArrayOptional(vals)
}

func (d *Dispatcher) hgetall(args []string) resp.Frame {
	if len(args) != 1 {
		return wrongArgs("hgetall")
	}
	vals, err := d.store.HGetAll(args[0])
	if err != nil {
		return storeErr(err)
	}
	return resp.BulkArray(vals)
}

func (d *Dispatcher) hdel(args []string) resp.Frame {
	if len(args) < 2 {
		return wrongArgs("hdel")
	}
	n, err := d.store.HDel(args[0], toByteSlices(args[1:]))
	if err != nil {
		return storeErr(err)
	}
	return resp.Integer(int64(n))
}

func (d *Dispatcher) hexists(args []string) resp.Frame {
	if len(args) != 2 {
		return wrongArgs("hexists")
	}
	ok, err := d.store.HExists(args[0], []byte(args[1]))
	if err != nil {
		return storeErr(err)
	}
	if ok {
		return resp.Integer(1)
	}
	return resp.Integer(0)
}

func (d *Dispatcher) hlen(args []string) resp.Frame {
	if len(args) != 1 {
		return wrongArgs("hlen")
	}
	n, err := d.store.HLen(args[0])
	if err != nil {
		return storeErr(err)
	}
	return resp.Integer(int64(n))
}

func (d *Dispatcher) hkeys(args []string) resp.Frame {
	if len(args) != 1 {
		return wrongArgs("hkeys")
	}
	vals, err := d.store.HKeys(args[0])
	if err != nil {
		return storeErr(err)
	}
	return resp.BulkArray(vals)
}

func (d *Dispatcher) hvals(args []string) resp.Frame {
	if len(args) != 1 {
		return wrongArgs("hvals")
	}
	vals, err := d.store.HVals(args[0])
	if err != nil {
		return storeErr(err)
	}
	return resp.BulkArray(vals)
}

func (d *Dispatcher) hincrby(args []string) resp.Frame {
	if len(args) != 3 {
		return wrongArgs("hincrby")
	}
	delta, ok := parseInt(args[2])
	if !ok {
		return notInteger()
	}
	v, err := d.store.HIncrBy(args[0], []byte(args[1]), delta)
	if err != nil {
		return storeErr(err)
	}
	return resp.Integer(v)
}
