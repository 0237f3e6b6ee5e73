package server

import (
	"bufio"
	"io"
	"log"
	"net"

	"respkv/internal/bytepool"
	"respkv/internal/command"
	"respkv/internal/dispatch"
	"respkv/internal/resp"
)

const readChunkSize = 4096

// session implements the per-connection Reading/Closing state machine: an
// append-only accumulation buffer is fed from the socket, and every
// frame decodable from its head is normalized, dispatched, and replied to
// before the next read.
type session struct {
	id         string
	conn       net.Conn
	writer     *bufio.Writer
	dispatcher *dispatch.Dispatcher
	stats      *Stats
	pool       *bytepool.Pool
	buf        []byte
}

func newSession(id string, conn net.Conn, d *dispatch.Dispatcher, stats *Stats, pool *bytepool.Pool) *session {
	return &session{
		id:         id,
		conn:       conn,
		writer:     bufio.NewWriter(conn),
		dispatcher: d,
		stats:      stats,
		pool:       pool,
	}
}

// run drives the Reading/Closing loop until the connection closes, EOF,
// an I/O error, a protocol error, or QUIT.
func (sess *session) run() {
	defer sess.conn.Close()

	chunk := sess.pool.Get(readChunkSize)
	defer sess.pool.Put(chunk)

	for {
		n, err := sess.conn.Read(chunk)
		if n > 0 {
			sess.buf = append(sess.buf, chunk[:n]...)
			sess.stats.recordBytes(n, 0)
		}
		if n == 0 && err == nil {
			return
		}

		if decodeErr := sess.drainDecodable(); decodeErr != nil {
			return
		}

		if err != nil {
			if err != io.EOF {
				log.Printf("respkv: session %s read error: %v", sess.id, err)
			}
			return
		}
	}
}

// drainDecodable repeatedly decodes, dispatches, and replies to frames at
// the head of the buffer until it hits Incomplete, a protocol error, or a
// QUIT. It returns non-nil only when the session must close.
func (sess *session) drainDecodable() (closeErr error) {
	wroteAny := false
	defer func() {
		if wroteAny {
			if err := sess.writer.Flush(); err != nil {
				log.Printf("respkv: session %s write error: %v", sess.id, err)
				if closeErr == nil {
					closeErr = err
				}
			}
		}
	}()

	for {
		frame, consumed, err := resp.Decode(sess.buf)
		if err == resp.ErrIncomplete {
			return nil
		}
		if err != nil {
			sess.writeFrame(resp.Errorf("ERR %s", err.Error()))
			wroteAny = true
			return err
		}

		sess.buf = sess.buf[consumed:]

		cmd, cmdErr := command.FromFrame(frame)
		var reply resp.Frame
		quit := false
		if cmdErr != nil {
			reply = resp.ErrorFrame(cmdErr.Error())
		} else {
			sess.stats.incrementCommand(cmd.Name)
			reply, quit = sess.dispatcher.Dispatch(cmd)
		}

		sess.writeFrame(reply)
		wroteAny = true

		if quit {
			if err := sess.writer.Flush(); err != nil {
				log.Printf("respkv: session %s write error: %v", sess.id, err)
			}
			wroteAny = false
			return errSessionClosed
		}
	}
}

func (sess *session) writeFrame(f resp.Frame) {
	wire := resp.Encode(f)
	n, err := sess.writer.Write(wire)
	if err != nil {
		log.Printf("respkv: session %s write error: %v", sess.id, err)
		return
	}
	sess.stats.recordBytes(0, n)
}

var errSessionClosed = &sessionClosedError{}

type sessionClosedError struct{}

func (*sessionClosedError) Error() string { return "session closed by QUIT" }
