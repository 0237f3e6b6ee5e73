// Package server wires the accept loop, per-connection session state
// machine, periodic TTL sweep, and the admin HTTP surface together around
// a shared keyspace.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"respkv/internal/bytepool"
	"respkv/internal/config"
	"respkv/internal/dispatch"
	"respkv/internal/store"
)

const serverVersion = "1.0.0"

// Server owns the TCP listener, the shared keyspace, the sweeper, and the
// admin HTTP surface.
type Server struct {
	cfg   *config.Config
	store *store.Store
	stats *Stats
	pool  *bytepool.Pool

	listener   net.Listener
	httpServer *http.Server
	scheduler  gocron.Scheduler

	startedAt time.Time

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup
}

// New returns a Server ready to Start against cfg.
func New(cfg *config.Config) *Server {
	return &Server{
		cfg:   cfg,
		store: store.New(),
		stats: &Stats{},
		pool:  bytepool.New(readChunkSize),
	}
}

// Start binds the listener, starts the sweeper and the admin HTTP
// surface, and begins accepting connections. It returns an error at once
// if the listener cannot be bound or the sweeper cannot start; otherwise
// it blocks until Stop is called and every open session has ended. Accept
// errors while running are logged and do not end the loop.
func (s *Server) Start() error {
	address := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("respkv: failed to listen on %s: %w", address, err)
	}
	s.startedAt = time.Now()

	s.mu.Lock()
	s.listener = listener
	s.running = true
	s.mu.Unlock()

	if err := s.startSweeper(); err != nil {
		return fmt.Errorf("respkv: failed to start sweeper: %w", err)
	}
	s.startAdminHTTP()

	log.Printf("respkv server listening on %s", address)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.mu.Lock()
			running := s.running
			s.mu.Unlock()
			if !running {
				break
			}
			log.Printf("respkv: accept error: %v", err)
			continue
		}

		if s.cfg.TCPKeepAlive {
			if tc, ok := conn.(*net.TCPConn); ok {
				_ = tc.SetKeepAlive(true)
			}
		}

		s.stats.recordConnection()
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}

	s.wg.Wait()
	return nil
}

func (s *Server) handleConnection(conn net.Conn) {
	id := uuid.NewString()
	info := dispatch.ServerInfo{Version: serverVersion, Port: s.cfg.Port}
	d := dispatch.New(s.store, info, s.startedAt, id, conn.RemoteAddr().String())
	sess := newSession(id, conn, d, s.stats, s.pool)
	sess.run()
}

func (s *Server) startSweeper() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	_, err = sched.NewJob(
		gocron.DurationJob(s.cfg.SweepInterval),
		gocron.NewTask(s.store.RunExpiryCleanup),
	)
	if err != nil {
		return err
	}
	s.scheduler = sched
	sched.Start()
	return nil
}

// startAdminHTTP starts the side-channel health/stats HTTP surface in the
// background. A bind failure here is logged, not fatal: the RESP wire
// protocol is the server's primary interface.
func (s *Server) startAdminHTTP() {
	router := newAdminRouter(s)
	s.httpServer = &http.Server{
		Addr:    s.cfg.MetricsAddr,
		Handler: router,
	}
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("respkv: admin http server error: %v", err)
		}
	}()
}

// Addr returns the listener's bound address, or nil before Start has
// bound it. Useful for tests that bind to port 0.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop gracefully shuts the server down: closes the listener (unblocking
// Accept), stops the sweeper, and shuts down the admin HTTP surface.
func (s *Server) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	if s.scheduler != nil {
		_ = s.scheduler.Shutdown()
	}
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(ctx)
	}
}
