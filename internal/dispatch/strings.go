package dispatch

import (
	"strings"
	"time"

	"respkv/internal/resp"
	"respkv/internal/store"
)

func (d *Dispatcher) set(args []string) resp.Frame {
	if len(args) < 2 {
		return wrongArgs("set")
	}
	key, value := args[0], args[1]

	var opts store.SetOptions
	haveExpiry := false

	for i := 2; i < len(args); i++ {
		switch strings.ToUpper(args[i]) {
		case "EX", "PX":
			if haveExpiry || opts.KeepTTL {
				return syntaxError()
			}
			if i+1 >= len(args) {
				return syntaxError()
			}
			n, ok := parseInt(args[i+1])
			if !ok {
				return notInteger()
			}
			unit := time.Second
			if strings.ToUpper(args[i]) == "PX" {
				unit = time.Millisecond
			}
			at := time.Now().Add(time.Duration(n) * unit)
			opts.ExpiresAt = &at
			haveExpiry = true
			i++
		case "NX":
			if opts.XX {
				return syntaxError()
			}
			opts.NX = true
		case "XX":
			if opts.NX {
				return syntaxError()
			}
			opts.XX = true
		case "GET":
			opts.Get = true
		case "KEEPTTL":
			if haveExpiry {
				return syntaxError()
			}
			opts.KeepTTL = true
		default:
			return syntaxError()
		}
	}

	prev, hadPrev, wrote := d.store.SetString(key, []byte(value), opts)

	if opts.Get {
		return bulkOrNull(prev, hadPrev)
	}
	if !wrote {
		return resp.NullBulk()
	}
	return resp.SimpleString("OK")
}

func (d *Dispatcher) get(args []string) resp.Frame {
	if len(args) != 1 {
		return wrongArgs("get")
	}
	v, ok := d.store.GetString(args[0])
	return bulkOrNull(v, ok)
}

func (d *Dispatcher) setnx(args []string) resp.Frame {
	if len(args) != 2 {
		return wrongArgs("setnx")
	}
	if d.store.SetNX(args[0], []byte(args[1])) {
		return resp.Integer(1)
	}
	return resp.Integer(0)
}

func (d *Dispatcher) setex(args []string, unit time.Duration) resp.Frame {
	if len(args) != 3 {
		return wrongArgs("setex")
	}
	n, ok := parseInt(args[1])
	if !ok {
		return notInteger()
	}
	d.store.SetWithExpiry(args[0], []byte(args[2]), time.Now().Add(time.Duration(n)*unit))
	return resp.SimpleString("OK")
}

func (d *Dispatcher) getset(args []string) resp.Frame {
	if len(args) != 2 {
		return wrongArgs("getset")
	}
	prev, hadPrev := d.store.GetSet(args[0], []byte(args[1]))
	return bulkOrNull(prev, hadPrev)
}

func (d *Dispatcher) mset(args []string) resp.Frame {
	if len(args) == 0 || len(args)%2 != 0 {
		return wrongArgs("mset")
	}
	pairs := make([][2][]byte, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		pairs = append(pairs, [2][]byte{[]byte(args[i]), []byte(args[i+1])})
	}
	d.store.MSet(pairs)
	return resp.SimpleString("OK")
}

func (d *Dispatcher) mget(args []string) resp.Frame {
	if len(args) == 0 {
		return wrongArgs("mget")
	}
	return bulkArrayOptional(d.store.MGet(args))
}

func (d *Dispatcher) incrDecr(args []string, sign int64, name string) resp.Frame {
	if len(args) != 1 {
		return wrongArgs(name)
	}
	v, err := d.store.IncrBy(args[0], sign)
	if err != nil {
		return storeErr(err)
	}
	return resp.Integer(v)
}

func (d *Dispatcher) incrDecrBy(args []string, sign int64, name string) resp.Frame {
	if len(args) != 2 {
		return wrongArgs(name)
	}
	n, ok := parseInt(args[1])
	if !ok {
		return notInteger()
	}
	v, err := d.store.IncrBy(args[0], sign*n)
	if err != nil {
		return storeErr(err)
	}
	return resp.Integer(v)
}

func (d *Dispatcher) appendCmd(args []string) resp.Frame {
	if len(args) != 2 {
		return wrongArgs("append")
	}
	n, err := d.store.Append(args[0], []byte(args[1]))
	if err != nil {
		return storeErr(err)
	}
	return resp.Integer(int64(n))
}

func (d *Dispatcher) strlen(args []string) resp.Frame {
	if len(args) != 1 {
		return wrongArgs("strlen")
	}
	n, err := d.store.StrLen(args[0])
	if err != nil {
		return storeErr(err)
	}
	return resp.Integer(int64(n))
}
