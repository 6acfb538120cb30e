package harail

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/harail/harail/config"
	"github.com/harail/harail/timetable"
)

// Server serves the routing API over one loaded timetable. The timetable is
// immutable, so handlers share it without locking.
type Server struct {
	tt      *timetable.Timetable
	metrics *Collector
	http    *http.Server
}

// NewServer wires the routes and metrics for a timetable.
func NewServer(tt *timetable.Timetable) *Server {
	s := &Server{tt: tt, metrics: NewCollector()}
	s.metrics.StationsLoaded.Set(float64(len(tt.Stations())))
	s.metrics.TrainsLoaded.Set(float64(len(tt.Trains())))

	origins := config.Config.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(requestLogger)

	r.Get("/harail/stations", s.handleListStations)
	r.Get("/harail/trains/{id}/stops", s.handleTrainStops)
	r.Get("/harail/routes/find", s.handleFindRoute)
	r.Get("/api/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	addr := fmt.Sprintf(":%d", config.Config.Server.Port)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Start listens in the background; failures other than a clean shutdown are
// fatal.
func (s *Server) Start() {
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", s.http.Addr)
}

// HandleGracefulShutdown blocks until SIGINT/SIGTERM and drains the server.
func (s *Server) HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	} else {
		log.Printf("server shut down successfully")
	}
}

// requestLogger tags each request with an id and logs its outcome timing.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		started := time.Now()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s (%s)", id[:8], r.Method, r.URL.Path, time.Since(started))
	})
}
