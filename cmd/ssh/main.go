package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/playground/internal/config"
	"github.com/tomz197/playground/internal/draw"
	"github.com/tomz197/playground/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultIdleTimeout = "5m"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if level, err := log.ParseLevel(config.GetEnv("LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(level)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	idleTimeout, err := time.ParseDuration(config.GetEnv("SSH_IDLE_TIMEOUT", defaultIdleTimeout))
	if err != nil {
		logger.Fatal("invalid SSH_IDLE_TIMEOUT", "err", err)
	}
	tuning, err := config.LoadOrDefault(config.GetEnv("PLAYGROUND_CONFIG", ""))
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "idle", idleTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions := &sessionGroup{}
	handler := playgroundMiddleware(ctx, sessions, tuning, idleTimeout, logger)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			handler,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.DebugLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "sessions", sessions.count())

	// Ending the context stops every playground, which restores each terminal.
	cancel()
	if !sessions.wait(15 * time.Second) {
		logger.Warn("sessions still open after grace period")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// playgroundMiddleware runs one private playground per SSH session.
func playgroundMiddleware(ctx context.Context, sessions *sessionGroup, tuning config.Tuning, idle time.Duration, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}
			sessions.add()
			defer sessions.done()

			sessLogger := logger.With("user", sess.User())
			sessLogger.Info("new session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

			// Listen for window size changes in a goroutine
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			runCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			go func() {
				select {
				case <-sess.Context().Done():
					cancel()
				case <-runCtx.Done():
				}
			}()

			err := loop.Run(runCtx, bufio.NewReader(sess), sess, loop.Options{
				Tuning:       tuning,
				TermSizeFunc: sizeTracker.getSize,
				Logger:       sessLogger,
				IdleTimeout:  idle,
			})
			if err != nil {
				sessLogger.Error("playground error", "err", err)
			}

			sessLogger.Info("session ended")
			next(sess)
		}
	}
}

// sessionGroup counts running sessions so shutdown can wait for them.
type sessionGroup struct {
	wg sync.WaitGroup
	mu sync.Mutex
	n  int
}

func (g *sessionGroup) add() {
	g.mu.Lock()
	g.n++
	g.mu.Unlock()
	g.wg.Add(1)
}

func (g *sessionGroup) done() {
	g.mu.Lock()
	g.n--
	g.mu.Unlock()
	g.wg.Done()
}

func (g *sessionGroup) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

// wait reports whether every session ended within timeout.
func (g *sessionGroup) wait(timeout time.Duration) bool {
	finished := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return true
	case <-time.After(timeout):
		return false
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
