package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/netip"
	"sync"
	"time"

	"github.com/jroosing/hydrasink/internal/dns"
	"github.com/jroosing/hydrasink/internal/pool"
)

// readBufferSize leaves one spare octet so oversize datagrams are seen as
// oversize instead of silently truncated to the limit.
const readBufferSize = dns.MaxUDPMessageSize + 1

// readPollInterval bounds each read so the loop notices cancellation.
const readPollInterval = time.Second

var bufferPool = pool.NewBuffers(readBufferSize)

// UDPServer serves sinkhole queries over UDP.
//
// Datagrams are handled strictly one at a time: each is read, dispatched
// and answered before the next read.
type UDPServer struct {
	Logger     *slog.Logger
	Dispatcher *Dispatcher

	mu   sync.Mutex
	conn *net.UDPConn
	done chan struct{}
}

// Run binds addr and serves until ctx is canceled or Stop is called.
func (s *UDPServer) Run(ctx context.Context, addr string) error {
	conn, err := listenUDP(ctx, addr)
	if err != nil {
		return err
	}
	return s.RunOnConn(ctx, conn)
}

// RunOnConn serves on an existing socket and closes it on return.
func (s *UDPServer) RunOnConn(ctx context.Context, conn *net.UDPConn) error {
	done := make(chan struct{})
	s.mu.Lock()
	s.conn = conn
	s.done = done
	s.mu.Unlock()

	defer close(done)
	defer conn.Close()

	bp := bufferPool.Get()
	defer bufferPool.Put(bp)
	buf := (*bp)[:readBufferSize]

	for ctx.Err() == nil {
		_ = conn.SetReadDeadline(time.Now().Add(readPollInterval))
		n, peer, err := conn.ReadFromUDPAddrPort(buf)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger().WarnContext(ctx, "udp read failed", "err", err)
			continue
		}

		s.Dispatcher.Dispatch(ctx, replyWriter{conn: conn, peer: peer}, buf[:n])
	}
	return nil
}

// Addr returns the bound address, or nil before the server is running.
func (s *UDPServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	return s.conn.LocalAddr()
}

// Stop closes the socket and waits up to timeout for the loop to finish
// the datagram it is handling. A non-positive timeout waits indefinitely.
func (s *UDPServer) Stop(timeout time.Duration) error {
	s.mu.Lock()
	conn, done := s.conn, s.done
	s.mu.Unlock()
	if conn == nil {
		return nil
	}
	_ = conn.Close()

	if timeout <= 0 {
		<-done
		return nil
	}
	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return errors.New("udp server: timeout waiting for the serving loop to exit")
	}
}

func (s *UDPServer) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// replyWriter sends one reply datagram to the querying peer.
type replyWriter struct {
	conn *net.UDPConn
	peer netip.AddrPort
}

func (w replyWriter) Write(p []byte) (int, error) {
	return w.conn.WriteToUDPAddrPort(p, w.peer)
}

func (w replyWriter) Peer() netip.AddrPort {
	return w.peer
}
