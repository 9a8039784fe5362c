package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/dashboard"
	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/energy"
	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/table"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svc, err := dashboard.New(cfg)
		if err != nil {
			return err
		}

		r := chi.NewRouter()
		r.Use(requestLogger)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Get("/api/election/map", func(w http.ResponseWriter, r *http.Request) {
			spec, err := svc.CountyMarginMap(r.Context())
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, spec)
		})

		r.Get("/api/election/shift", func(w http.ResponseWriter, r *http.Request) {
			spec, err := svc.MarginShift(r.Context())
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, spec)
		})

		r.Get("/api/energy/mix", func(w http.ResponseWriter, r *http.Request) {
			country := r.URL.Query().Get("country")
			if country == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "country is required"})
				return
			}
			spec, err := svc.ElectricityMix(r.Context(), country)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, spec)
		})

		r.Get("/api/energy/top", func(w http.ResponseWriter, r *http.Request) {
			source := r.URL.Query().Get("source")
			year, errYear := strconv.Atoi(r.URL.Query().Get("year"))
			n, errN := strconv.Atoi(r.URL.Query().Get("n"))
			if source == "" || errYear != nil || errN != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{
					"error": "source, year, and n are required",
				})
				return
			}
			spec, err := svc.TopProducers(r.Context(), source, year, n)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, spec)
		})

		r.Get("/api/energy/countries", func(w http.ResponseWriter, r *http.Request) {
			countries, err := svc.Countries(r.Context())
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"countries": countries})
		})

		r.Get("/api/energy/panel", func(w http.ResponseWriter, r *http.Request) {
			panel, err := svc.Panel(r.Context())
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"rows":    panel.NumRows(),
				"records": panel.Records(),
			})
		})

		r.Get("/api/energy/sources", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"sources": svc.Sources()})
		})

		r.Post("/api/cache/flush", func(w http.ResponseWriter, r *http.Request) {
			svc.FlushCache()
			writeJSON(w, http.StatusOK, map[string]string{"status": "flushed"})
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// requestLogger tags each request with an id and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		zap.L().Info("request",
			zap.String("request_id", reqID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP statuses: unresolvable columns are a
// client data problem, empty selections are not-found, and feed failures are
// gateway errors.
func writeError(w http.ResponseWriter, err error) {
	var missing *table.MissingColumnError
	var upstream *dashboard.UpstreamError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &missing):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, energy.ErrNoData):
		status = http.StatusNotFound
	case errors.As(err, &upstream):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
	} else {
		zap.L().Warn("request rejected", zap.Int("status", status), zap.Error(err))
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
