package server

import "sync"

// Stats tracks coarse server-wide operation counters, snapshotted for the
// admin HTTP surface's /stats endpoint.
type Stats struct {
	mu sync.RWMutex

	TotalOps     uint64
	GetOps       uint64
	SetOps       uint64
	DelOps       uint64
	Connections  uint64
	BytesRead    uint64
	BytesWritten uint64
}

func (s *Stats) incrementCommand(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.TotalOps++
	switch name {
	case "GET", "MGET", "HGET", "HMGET", "HGETALL":
		s.GetOps++
	case "SET", "SETNX", "SETEX", "PSETEX", "MSET", "HSET", "HMSET":
		s.SetOps++
	case "DEL", "HDEL":
		s.DelOps++
	}
}

func (s *Stats) recordConnection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Connections++
}

func (s *Stats) recordBytes(read, written int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.BytesRead += uint64(read)
	s.BytesWritten += uint64(written)
}

// StatsSnapshot is a point-in-time, lock-free copy of Stats.
type StatsSnapshot struct {
	TotalOps     uint64 `json:"total_ops"`
	GetOps       uint64 `json:"get_ops"`
	SetOps       uint64 `json:"set_ops"`
	DelOps       uint64 `json:"del_ops"`
	Connections  uint64 `json:"connections"`
	BytesRead    uint64 `json:"bytes_read"`
	BytesWritten uint64 `json:"bytes_written"`
	Keys         int    `json:"keys"`
}

// Snapshot returns a point-in-time copy safe to read without the lock.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StatsSnapshot{
		TotalOps:     s.TotalOps,
		GetOps:       s.GetOps,
		SetOps:       s.SetOps,
		DelOps:       s.DelOps,
		Connections:  s.Connections,
		BytesRead:    s.BytesRead,
		BytesWritten: s.BytesWritten,
	}
}
