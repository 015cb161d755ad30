package net

import (
	"bufio"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tsugo/server/internal/net/packet"
)

// Session is one TCP connection. The reader and writer goroutines own
// the socket; everything in the game-loop section is accessed only
// from the game loop goroutine, so no locks are needed there.
type Session struct {
	ID   uint64
	conn net.Conn
	log  *zap.Logger

	// InQueue carries decoded inbound messages to the game loop.
	// OutQueue carries encoded frames to the writer goroutine.
	InQueue  chan packet.Message
	OutQueue chan []byte

	closeCh   chan struct{}
	closeOnce sync.Once
	deadCh    chan<- uint64

	writeTimeout time.Duration

	// Inbound rate limiting, touched only by the reader goroutine.
	pktPerSec  int
	pktWindow  time.Time
	pktCounted int

	// Game-loop state.
	State  packet.SessionState
	Client any // *world.Client once identified

	// outBuf accumulates frames during a tick; the output system
	// moves it onto OutQueue in one batch.
	outBuf [][]byte
}

func NewSession(id uint64, conn net.Conn, log *zap.Logger,
	inSize, outSize, pktPerSec int, writeTimeout time.Duration,
	deadCh chan<- uint64) *Session {
	return &Session{
		ID:           id,
		conn:         conn,
		log:          log.With(zap.Uint64("session", id)),
		InQueue:      make(chan packet.Message, inSize),
		OutQueue:     make(chan []byte, outSize),
		closeCh:      make(chan struct{}),
		deadCh:       deadCh,
		writeTimeout: writeTimeout,
		pktPerSec:    pktPerSec,
		State:        packet.StateHandshake,
	}
}

func (s *Session) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}

// Send encodes a message and buffers it for this tick's flush. It
// satisfies the connection interface the world package expects.
func (s *Session) Send(cmd string, args ...string) {
	s.outBuf = append(s.outBuf, packet.Build(cmd, args...))
}

// FlushOutput moves the tick's buffered frames onto the writer queue.
// Called by the output system only.
func (s *Session) FlushOutput() {
	for _, frame := range s.outBuf {
		select {
		case s.OutQueue <- frame:
		default:
			// Writer queue full means a stalled client.
			s.log.Warn("output queue full, dropping session")
			s.Close()
			s.outBuf = s.outBuf[:0]
			return
		}
	}
	s.outBuf = s.outBuf[:0]
}

// Close tears the session down. Safe to call from any goroutine and
// more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
		s.conn.Close()
		select {
		case s.deadCh <- s.ID:
		default:
		}
	})
}

func (s *Session) Closed() bool {
	select {
	case <-s.closeCh:
		return true
	default:
		return false
	}
}

func (s *Session) readLoop() {
	defer s.Close()
	r := bufio.NewReader(s.conn)
	for {
		msg, err := readFrame(r)
		if err != nil {
			return
		}
		if !s.allowPacket() {
			s.log.Warn("inbound rate limit exceeded")
			return
		}
		select {
		case s.InQueue <- msg:
		case <-s.closeCh:
			return
		default:
			// Game loop is behind for this client; shed it.
			s.log.Warn("input queue full, dropping session")
			return
		}
	}
}

func (s *Session) allowPacket() bool {
	if s.pktPerSec <= 0 {
		return true
	}
	now := time.Now()
	if now.Sub(s.pktWindow) >= time.Second {
		s.pktWindow = now
		s.pktCounted = 0
	}
	s.pktCounted++
	return s.pktCounted <= s.pktPerSec
}

func (s *Session) writeLoop() {
	defer s.Close()
	for {
		select {
		case frame := <-s.OutQueue:
			if s.writeTimeout > 0 {
				s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
			}
			if err := writeFrame(s.conn, frame); err != nil {
				return
			}
		case <-s.closeCh:
			return
		}
	}
}
