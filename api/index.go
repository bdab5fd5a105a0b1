// Package api is the serverless entry point. Platforms that invoke a plain
// net/http handler per request call Handler; it serves the same fiber app as
// the long-running server.
package api

import (
	"net/http"
	"os"
	"sync"

	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/bigexperiment/youtube-transcript-Api/config"
	"github.com/bigexperiment/youtube-transcript-Api/router"
)

var (
	once    sync.Once
	handler http.Handler
)

func build() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		handler = unavailable(err)
		return
	}
	logger := config.InitLogger(cfg.LogLevel, cfg.LogFormat)

	app, err := router.NewApp(cfg, logger, "serverless")
	if err != nil {
		logger.WithError(err).Error("Failed to build application")
		handler = unavailable(err)
		return
	}
	handler = adaptor.FiberApp(app)
}

func unavailable(err error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"service misconfigured"}`))
		config.Log.WithError(err).Error("Rejected request, configuration invalid")
	})
}

// Handler serves one request.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(build)
	handler.ServeHTTP(w, r)
}
