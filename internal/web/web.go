// Package web exposes the keepalive endpoint the hosting platform
// probes to keep the bot process alive
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Serve starts the liveness endpoint in the background. Failures are
// logged, never fatal: the bot can live without its keepalive
func Serve(addr string) {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("SweeperLeader is sweeping"))
	})

	go func() {
		log.Info().Str("addr", addr).Msg("Keepalive endpoint listening")
		if err := http.ListenAndServe(addr, router); err != nil {
			log.Error().Err(err).Msg("Keepalive endpoint stopped")
		}
	}()
}
