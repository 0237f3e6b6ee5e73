// Package command normalizes a decoded RESP frame into the (name, args)
// shape the dispatcher operates on.
package command

import (
	"fmt"
	"strings"

	"respkv/internal/resp"
)

// Command is a request ready for dispatch: an upper-cased command name and
// its raw argument strings.
type Command struct {
	Name string
	Args []string
}

// FromFrame normalizes a decoded frame into a Command. Two shapes are
// accepted:
//
//   - Array of Bulk: the canonical request form clients are expected to
//     send. Every element must be a non-null Bulk.
//   - SimpleString: the inline form (see internal/resp's decodeInline),
//     split on whitespace.
//
// Any other frame shape, an empty array, or an empty inline line is
// rejected.
func FromFrame(f resp.Frame) (Command, error) {
	switch f.Kind {
	case resp.KindArray:
		return fromArray(f)
	case resp.KindSimpleString:
		return fromInline(f.Str)
	default:
		return Command{}, fmt.Errorf("ERR invalid command format")
	}
}

func fromArray(f resp.Frame) (Command, error) {
	if f.ArrayNull || len(f.Items) == 0 {
		return Command{}, fmt.Errorf("ERR empty command")
	}
	args := make([]string, 0, len(f.Items))
	for _, item := range f.Items {
		if item.Kind != resp.KindBulk || item.BulkNull {
			return Command{}, fmt.Errorf("ERR invalid command format")
		}
		args = append(args, string(item.Bytes))
	}
	return Command{Name: strings.ToUpper(args[0]), Args: args[1:]}, nil
}

func fromInline(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("ERR empty command")
	}
	return Command{Name: strings.ToUpper(fields[0]), Args: fields[1:]}, nil
}
