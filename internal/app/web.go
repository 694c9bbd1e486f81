package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/relabs-tech/novatel_gps/internal/config"
	"github.com/relabs-tech/novatel_gps/internal/metrics"
)

const webVersion = "0.1.0"

// RunWeb mirrors the GPS topics into an HTTP API and a websocket stream.
func RunWeb() error {
	cfg := config.Get()
	if cfg == nil {
		return errors.New("config not initialised")
	}

	state := newGPSState()
	hub := newStreamHub()

	client, err := connectMQTT(cfg.MQTT.Broker, cfg.MQTT.ClientIDWeb)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	topics := map[string]string{
		kindPosition: cfg.Topics.Position,
		kindStatus:   cfg.Topics.Status,
		kindVelocity: cfg.Topics.Velocity,
		kindDropped:  cfg.Topics.Dropped,
	}
	for kind, topic := range topics {
		kind := kind
		err := subscribe(client, topic, cfg.MQTT.QoS, func(payload []byte) {
			if err := state.apply(kind, payload); err != nil {
				log.Warn().Err(err).Msg("MQTT payload unmarshal error")
				return
			}
			hub.broadcast(kind, payload)
		})
		if err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              cfg.Web.Addr,
		Handler:           newWebRouter(state, hub, cfg.Web.CORSOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.Web.Addr).Msg("web server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

func newWebRouter(state *gpsState, hub *streamHub, corsOrigins []string) *gin.Engine {
	metrics.RegisterMetrics()
	started := time.Now()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log.Logger))
	r.Use(requestMetrics())
	r.Use(cors.New(corsConfig(corsOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(started).String(),
			"service": "novatel-web",
			"version": webVersion,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/gps")
	api.GET("/position", func(c *gin.Context) {
		fix, ok := state.Position()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no data yet"})
			return
		}
		c.JSON(http.StatusOK, fix)
	})
	api.GET("/velocity", func(c *gin.Context) {
		tw, ok := state.Velocity()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no data yet"})
			return
		}
		c.JSON(http.StatusOK, tw)
	})
	api.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, state.Status())
	})

	r.GET("/ws/gps", func(c *gin.Context) {
		serveStream(hub, state, c.Writer, c.Request)
	})
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowOrigins: normalizeOrigins(origins),
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			cfg.AllowOrigins = nil
			cfg.AllowAllOrigins = true
			break
		}
	}
	return cfg
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := logger.Debug()
		if status >= 500 {
			event = logger.Error()
		} else if status >= 400 {
			event = logger.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", routePath(c)).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.RecordHTTPRequest(c.Request.Method, routePath(c), c.Writer.Status(), time.Since(start))
	}
}

func routePath(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}
