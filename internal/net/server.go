package net

import (
	"fmt"
	"net"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/tsugo/server/internal/config"
)

// Server accepts connections and hands sessions to the game loop
// through NewConns; closed sessions report back through DeadCh.
type Server struct {
	cfg      config.NetworkConfig
	log      *zap.Logger
	listener net.Listener
	nextID   atomic.Uint64

	NewConns chan *Session
	DeadCh   chan uint64
}

func NewServer(cfg config.NetworkConfig, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", cfg.BindAddress)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", cfg.BindAddress, err)
	}
	return &Server{
		cfg:      cfg,
		log:      log,
		listener: ln,
		NewConns: make(chan *Session, 32),
		DeadCh:   make(chan uint64, 64),
	}, nil
}

func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// AcceptLoop runs until the listener is closed.
func (s *Server) AcceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.log.Info("accept loop stopped", zap.Error(err))
			return
		}
		id := s.nextID.Add(1)
		sess := NewSession(id, conn, s.log,
			s.cfg.InQueueSize, s.cfg.OutQueueSize,
			s.cfg.PacketsPerSecond, s.cfg.WriteTimeout, s.DeadCh)
		go sess.readLoop()
		go sess.writeLoop()
		select {
		case s.NewConns <- sess:
		default:
			s.log.Warn("new connection queue full, rejecting",
				zap.String("remote", conn.RemoteAddr().String()))
			sess.Close()
		}
	}
}

func (s *Server) Close() error {
	return s.listener.Close()
}
