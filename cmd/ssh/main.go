package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/collide/internal/config"
	"github.com/tomz197/collide/internal/physics"
	"github.com/tomz197/collide/internal/report"
	"github.com/tomz197/collide/internal/scene"
)

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", config.DefaultSSHHost)
	port := config.GetEnv("SSH_PORT", config.DefaultSSHPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", config.DefaultHostKeyPath)
	scenePath := config.GetEnv("SCENE_PATH", config.DefaultScenePath)
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "scene", scenePath)

	// One world shared by every session; queries only take its read lock.
	s, err := scene.LoadFile(scenePath)
	if err != nil {
		logger.Fatal("failed to load scene", "err", err)
	}
	world, err := s.Build()
	if err != nil {
		logger.Fatal("failed to build scene", "err", err)
	}
	logger.Info("scene loaded", "bodies", world.Len())

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			reportMiddleware(world, logger),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	srv, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// reportMiddleware runs a contact query for each session and writes the
// rendered report sized to the session's terminal.
func reportMiddleware(world *physics.World, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, _, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			ctx, cancel := context.WithTimeout(sess.Context(), config.QueryTimeout)
			defer cancel()
			contacts, err := world.Contacts(ctx)
			if err != nil {
				logger.Error("contact query failed", "user", sess.User(), "err", err)
				wish.Fatalln(sess, "contact query failed:", err)
				return
			}
			rep, err := report.Build(world, contacts)
			if err != nil {
				logger.Error("report failed", "user", sess.User(), "err", err)
				wish.Fatalln(sess, "report failed:", err)
				return
			}

			logger.Info("report served", "user", sess.User(), "contacts", len(rep.Contacts), "width", pty.Window.Width)
			wish.Print(sess, report.Render(lipgloss.NewRenderer(sess), pty.Window.Width, rep))
			next(sess)
		}
	}
}
