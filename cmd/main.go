package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/mairie-chartrettes/SalleReservationService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/mairie-chartrettes/SalleReservationService/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/mairie-chartrettes/SalleReservationService/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/mairie-chartrettes/SalleReservationService/internal/api/handlers/get_reservation"
	getRoomReservationsHandler "github.com/mairie-chartrettes/SalleReservationService/internal/api/handlers/get_room_reservations"
	getRoomsHandler "github.com/mairie-chartrettes/SalleReservationService/internal/api/handlers/get_rooms"
	getUserReservationsHandler "github.com/mairie-chartrettes/SalleReservationService/internal/api/handlers/get_user_reservations"
	quoteReservationHandler "github.com/mairie-chartrettes/SalleReservationService/internal/api/handlers/quote_reservation"
	updateReservationStatusHandler "github.com/mairie-chartrettes/SalleReservationService/internal/api/handlers/update_reservation_status"
	"github.com/mairie-chartrettes/SalleReservationService/internal/api/middleware"
	"github.com/mairie-chartrettes/SalleReservationService/internal/config"
	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
	associationRepo "github.com/mairie-chartrettes/SalleReservationService/internal/infra/storage/association"
	reservationRepo "github.com/mairie-chartrettes/SalleReservationService/internal/infra/storage/reservation"
	roomRepo "github.com/mairie-chartrettes/SalleReservationService/internal/infra/storage/room"
	userRepo "github.com/mairie-chartrettes/SalleReservationService/internal/infra/storage/user"
	"github.com/mairie-chartrettes/SalleReservationService/internal/integrations/mailer"
	availabilityService "github.com/mairie-chartrettes/SalleReservationService/internal/service/availability"
	pricingService "github.com/mairie-chartrettes/SalleReservationService/internal/service/pricing"
	reservationsService "github.com/mairie-chartrettes/SalleReservationService/internal/service/reservations"
	roomsService "github.com/mairie-chartrettes/SalleReservationService/internal/service/rooms"
	createReservationUC "github.com/mairie-chartrettes/SalleReservationService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/mairie-chartrettes/SalleReservationService/internal/usecase/get_available_slots"
	quoteReservationUC "github.com/mairie-chartrettes/SalleReservationService/internal/usecase/quote_reservation"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/dbmetrics"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/logger"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/metrics"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/simpletxmanager"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SalleReservationService...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	mailClient := mailer.NewClient(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
		log,
	)
	log.Info("Mail client initialized (host=%s, from=%s)", cfg.SMTP.Host, cfg.SMTP.From)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	var (
		reservationRepository *reservationRepo.Repository
		roomRepository        *roomRepo.Repository
		userRepository        *userRepo.Repository
		associationRepository *associationRepo.Repository
		txMgr                 TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		roomRepository = roomRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		associationRepository = associationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		roomRepository = roomRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		associationRepository = associationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// The town hall and individuals billing associations must exist
	// before any request is accepted: admin bookings bill the town hall
	// and private individuals bill the shared "Particuliers" record.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	wellKnown, err := provisionWellKnownAssociations(startupCtx, associationRepository)
	cancelStartup()
	if err != nil {
		log.Fatal("Failed to provision well-known associations: %v", err)
	}
	log.Info("Well-known associations provisioned (town_hall_id=%d, individuals_id=%d)",
		wellKnown.TownHallID, wellKnown.IndividualsID)

	availabilityChecker := availabilityService.NewChecker(reservationRepository, log)
	pricingEngine := pricingService.NewEngine()

	reservationSvc := reservationsService.NewService(
		reservationRepository,
		roomRepository,
		userRepository,
		mailClient,
		txMgr,
		log,
	)
	roomSvc := roomsService.NewService(roomRepository, log)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		roomRepository,
		userRepository,
		availabilityChecker,
		pricingEngine,
		mailClient,
		txMgr,
		wellKnown,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		roomRepository,
		log,
	)
	quoteReservationUseCase := quoteReservationUC.NewUseCase(
		roomRepository,
		userRepository,
		pricingEngine,
		log,
	)

	createReservation := createReservationHandler.NewHandler(
		createReservationUseCase,
		log,
		cfg.Booking.MinAdvanceDays,
		cfg.Booking.QuickMinAdvanceDays,
	)
	quoteReservation := quoteReservationHandler.NewHandler(quoteReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getRoomReservations := getRoomReservationsHandler.NewHandler(reservationSvc, log)
	getRooms := getRoomsHandler.NewHandler(roomSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes: the room catalogue and the availability grid are
	// browsable without an account.
	api.HandleFunc("/rooms", getRooms.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}", getRooms.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Protected routes require the X-User-ID header.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/quick", createReservation.HandleQuick).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/quote", quoteReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rooms/{roomId}/reservations", getRoomReservations.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// provisionWellKnownAssociations upserts the two built-in billing
// associations and returns their IDs.
func provisionWellKnownAssociations(ctx context.Context, repo *associationRepo.Repository) (domain.WellKnownAssociations, error) {
	townHallID, err := repo.EnsureByName(ctx, domain.TownHallAssociationName)
	if err != nil {
		return domain.WellKnownAssociations{}, fmt.Errorf("ensure %q: %w", domain.TownHallAssociationName, err)
	}

	individualsID, err := repo.EnsureByName(ctx, domain.IndividualsAssociationName)
	if err != nil {
		return domain.WellKnownAssociations{}, fmt.Errorf("ensure %q: %w", domain.IndividualsAssociationName, err)
	}

	return domain.WellKnownAssociations{
		TownHallID:    townHallID,
		IndividualsID: individualsID,
	}, nil
}
