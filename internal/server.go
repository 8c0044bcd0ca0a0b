package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/vstanisic/fittrack/internal/config"
	"github.com/vstanisic/fittrack/internal/kvstore"
	"github.com/vstanisic/fittrack/internal/middleware"
	"github.com/vstanisic/fittrack/internal/profile"
	"github.com/vstanisic/fittrack/internal/settings"
	"github.com/vstanisic/fittrack/internal/telemetry/metrics"
	"github.com/vstanisic/fittrack/internal/tracking"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config *config.Config
	store  kvstore.Store

	calories *tracking.CalorieTracker
	cycling  *tracking.CyclingTracker
	workouts *tracking.WorkoutTracker
	goals    *tracking.GoalStore
	timer    *tracking.Timer

	profileRepo     *profile.Repo
	settingsService *settings.Service

	redisClient *redis.Client

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
}

type NewServerParams struct {
	Config        *config.Config
	RedisPassword string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("fittrack", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, strconv.Itoa(params.Config.RedisPort)),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	log.Debugf("redis ping: %s", rdbStatus.Val())

	store := kvstore.NewRedisStore(rdb)

	calories := tracking.NewCalorieTracker(store, metricsManager)
	cycling := tracking.NewCyclingTracker(store, metricsManager)
	workouts := tracking.NewWorkoutTracker(store, metricsManager)
	goals := tracking.NewGoalStore(store)

	calories.Load(ctx)
	cycling.Load(ctx)
	workouts.Load(ctx)
	goals.Load(ctx)

	s := &Server{
		config: params.Config,
		store:  store,

		calories: calories,
		cycling:  cycling,
		workouts: workouts,
		goals:    goals,
		timer:    tracking.NewTimer(workouts),

		profileRepo:     profile.NewRepo(store),
		settingsService: settings.NewService(store, metricsManager),

		redisClient: rdb,

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()

	trackingHandler := tracking.NewHandler(
		s.calories, s.cycling, s.workouts,
		s.goals, s.timer,
		s.metricsManager,
	)
	trackingHandler.SetupRoutes(r)

	overviewHandler := tracking.NewOverviewHandler(
		s.calories, s.cycling, s.workouts,
		s.goals, s.store,
	)
	overviewHandler.SetupRoutes(r)

	profileHandler := profile.NewHandler(s.profileRepo)
	profileHandler.SetupRoutes(r)

	settingsHandler := settings.NewHandler(s.settingsService, func(ctx context.Context) {
		// reload from the wiped store so memory matches storage
		s.calories.Load(ctx)
		s.cycling.Load(ctx)
		s.workouts.Load(ctx)
		s.goals.Load(ctx)
	})
	settingsHandler.SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(middleware.RateLimit(
		redis_rate.NewLimiter(s.redisClient),
		"fittrack-main",
		s.config.RateLimitAllowedPerMin,
		s.metricsManager,
	))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, strconv.Itoa(s.config.PrometheusMetricsPort))
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	// stop the workout timer without recording a half-done workout
	s.timer.Close()

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
