package server

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"respkv/internal/config"
)

func startTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Port = 0
	cfg.MetricsAddr = "127.0.0.1:0"
	s := New(cfg)

	go func() {
		_ = s.Start()
	}()

	require.Eventually(t, func() bool {
		return s.Addr() != nil
	}, 2*time.Second, 5*time.Millisecond)

	t.Cleanup(s.Stop)
	return s
}

func TestServerHandlesSetAndGet(t *testing.T) {
	s := startTestServer(t)

	conn, err := net.Dial("tcp", s.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$1\r\nv\r\n"))
	require.NoError(t, err)

	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "+OK\r\n", line)

	_, err = conn.Write([]byte("*2\r\n$3\r\nGET\r\n$1\r\nk\r\n"))
	require.NoError(t, err)

	header, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "$1\r\n", header)
	body := make([]byte, 3)
	_, err = reader.Read(body)
	require.NoError(t, err)
	assert.Equal(t, "v\r\n", string(body))
}

func TestServerPipelinedRepliesPreserveOrder(t *testing.T) {
	s := startTestServer(t)

	conn, err := net.Dial("tcp", s.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	req := "*3\r\n$3\r\nSET\r\n$1\r\na\r\n$1\r\n1\r\n" +
		"*3\r\n$3\r\nSET\r\n$1\r\nb\r\n$1\r\n2\r\n" +
		"*2\r\n$3\r\nGET\r\n$1\r\na\r\n" +
		"*2\r\n$3\r\nGET\r\n$1\r\nb\r\n"
	_, err = conn.Write([]byte(req))
	require.NoError(t, err)

	reader := bufio.NewReader(conn)
	expectLine(t, reader, "+OK\r\n")
	expectLine(t, reader, "+OK\r\n")
	expectLine(t, reader, "$1\r\n")
	expectLine(t, reader, "1\r\n")
	expectLine(t, reader, "$1\r\n")
	expectLine(t, reader, "2\r\n")
}

func expectLine(t *testing.T, r *bufio.Reader, want string) {
	t.Helper()
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, want, line)
}

func TestServerQuitClosesConnection(t *testing.T) {
	s := startTestServer(t)

	conn, err := net.Dial("tcp", s.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("*1\r\n$4\r\nQUIT\r\n"))
	require.NoError(t, err)

	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "+OK\r\n", line)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 16)
	n, err := conn.Read(buf)
	assert.Equal(t, 0, n)
	assert.Error(t, err)
}
