package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/tomz197/collide/internal/config"
	"github.com/tomz197/collide/internal/physics"
	"github.com/tomz197/collide/internal/report"
	"github.com/tomz197/collide/internal/scene"
)

const usage = `POST a YAML scene to /contacts to get its colliding pairs as JSON.

bodies:
  - name: bot
    position: [0, 0]
    collider: {name: Circle, radius: 10}
`

func main() {
	logger := config.NewLogger(os.Stderr, "web")

	host := config.GetEnv("WEB_HOST", config.DefaultWebHost)
	port := config.GetEnv("WEB_PORT", config.DefaultWebPort)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, usage)
	})
	mux.Handle("POST /contacts", contactsHandler(logger))

	srv := &http.Server{Addr: net.JoinHostPort(host, port), Handler: mux}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting web server", "addr", "http://"+srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// contactsHandler builds a world from the posted scene and answers with its
// report. Scene errors are the client's fault; geometry errors are not.
func contactsHandler(logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := http.MaxBytesReader(w, r.Body, config.MaxSceneBytes)
		s, err := scene.Load(body)
		if err != nil {
			httpError(w, http.StatusBadRequest, err)
			return
		}
		world, err := s.Build()
		if err != nil {
			httpError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), config.QueryTimeout)
		defer cancel()
		contacts, err := world.Contacts(ctx)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, physics.ErrDegenerateGeometry) {
				status = http.StatusUnprocessableEntity
			}
			logger.Warn("contact query failed", "remote", r.RemoteAddr, "err", err)
			httpError(w, status, err)
			return
		}
		rep, err := report.Build(world, contacts)
		if err != nil {
			httpError(w, http.StatusInternalServerError, err)
			return
		}

		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(rep); err != nil {
			logger.Error("encode report", "remote", r.RemoteAddr, "err", err)
			httpError(w, http.StatusInternalServerError, fmt.Errorf("encode report: %w", err))
			return
		}
		logger.Debug("contacts served", "remote", r.RemoteAddr, "bodies", len(rep.Bodies), "contacts", len(rep.Contacts))
		w.Header().Set("Content-Type", "application/json")
		if _, err := buf.WriteTo(w); err != nil {
			logger.Warn("write report", "remote", r.RemoteAddr, "err", err)
		}
	})
}

func httpError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
