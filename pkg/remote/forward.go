package remote

import (
	"context"
	"io"
	"net"
	"sync"

	"github.com/rs/zerolog/log"
)

// Forward listens on localAddr and tunnels every accepted connection to
// remoteAddr through the session. It blocks until ctx is cancelled, then
// closes the listener and waits for in-flight tunnels to drain.
func (s *Session) Forward(ctx context.Context, localAddr, remoteAddr string) error {
	listener, err := net.Listen("tcp", localAddr)
	if err != nil {
		return &SessionError{Op: "forward", Err: err}
	}

	log.Info().
		Str("local", listener.Addr().String()).
		Str("remote", remoteAddr).
		Msg("port forwarding started")

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	var wg sync.WaitGroup
	for {
		conn, err := listener.Accept()
		if err != nil {
			wg.Wait()
			if ctx.Err() != nil {
				log.Info().Msg("port forwarding stopped")
				return nil
			}
			return &SessionError{Op: "forward", Err: err, IsTemporary: true}
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.tunnel(conn, remoteAddr)
		}()
	}
}

// tunnel copies bytes both ways between conn and a fresh channel to
// remoteAddr, closing both ends when either direction finishes.
func (s *Session) tunnel(conn net.Conn, remoteAddr string) {
	defer conn.Close()

	remote, err := s.client.Dial("tcp", remoteAddr)
	if err != nil {
		log.Warn().Err(err).Str("remote", remoteAddr).Msg("tunnel dial failed")
		return
	}
	defer remote.Close()

	done := make(chan struct{}, 2)
	go func() {
		_, _ = io.Copy(remote, conn)
		done <- struct{}{}
	}()
	go func() {
		_, _ = io.Copy(conn, remote)
		done <- struct{}{}
	}()
	<-done
}
