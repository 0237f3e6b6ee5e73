package dispatch

import (
	"respkv/internal/resp"
)

func (d *Dispatcher) del(args []string) resp.Frame {
	if len(args) == 0 {
		return wrongArgs("del")
	}
	return resp.Integer(int64(d.store.Del(args)))
}

func (d *Dispatcher) exists(args []string) resp.Frame {
	if len(args) == 0 {
		return wrongArgs("exists")
	}
	return resp.Integer(int64(d.store.Exists(args)))
}

func (d *Dispatcher) keys(args []string) resp.Frame {
	if len(args) != 1 {
		return wrongArgs("keys")
	}
	return resp.StringArray(d.store.Keys(args[0]))
}

func (d *Dispatcher) typeCmd(args []string) resp.Frame {
	if len(args) != 1 {
		return wrongArgs("type")
	}
	return resp.SimpleString(d.store.Type(args[0]))
}

func (d *Dispatcher) rename(args []string) resp.Frame {
	if len(args) != 2 {
		return wrongArgs("rename")
	}
	if err := d.store.Rename(args[0], args[1]); err != nil {
		return storeErr(err)
	}
	return resp.SimpleString("OK")
}

func (d *Dispatcher) renamenx(args []string) resp.Frame {
	if len(args) != 2 {
		return wrongArgs("renamenx")
	}
	n, err := d.store.RenameNX(args[0], args[1])
	if err != nil {
		return storeErr(err)
	}
	return resp.Integer(int64(n))
}

func (d *Dispatcher) dbsize(args []string) resp.Frame {
	if len(args) != 0 {
		return wrongArgs("dbsize")
	}
	return resp.Integer(int64(d.store.DBSize()))
}

func (d *Dispatcher) flush(args []string) resp.Frame {
	if len(args) != 0 {
		return wrongArgs("flushdb")
	}
	d.store.FlushDB()
	return resp.SimpleString("OK")
}
