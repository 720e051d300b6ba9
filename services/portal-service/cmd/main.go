package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"google.golang.org/grpc"

	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/config"
	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/handler"
	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/repository"
	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/usecase"
	"github.com/vasapolrittideah/careers-portal/shared/auth"
	"github.com/vasapolrittideah/careers-portal/shared/discovery"
	"github.com/vasapolrittideah/careers-portal/shared/logger"
	"github.com/vasapolrittideah/careers-portal/shared/mailer"
	"github.com/vasapolrittideah/careers-portal/shared/provider"
	"github.com/vasapolrittideah/careers-portal/shared/redislock"
	"github.com/vasapolrittideah/careers-portal/shared/utilities"
	"github.com/vasapolrittideah/careers-portal/shared/validator"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.ServiceName, cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient := connectMongo(ctx, cfg, log)
	db := mongoClient.Database(cfg.Mongo.Database)

	redisClient := connectRedis(ctx, cfg, log)

	accountRepo := repository.NewAccountMongoRepository(ctx, log, db)
	identityRepo := repository.NewIdentityMongoRepository(ctx, log, db)
	sessionRepo := repository.NewSessionMongoRepository(ctx, log, db)
	applicationRepo := repository.NewApplicationMongoRepository(ctx, log, db)
	profileRepo := repository.NewProfileMongoRepository(db)
	roleRepo := repository.NewRoleMongoRepository(db)

	httpClient := &http.Client{Timeout: 10 * time.Second}

	var googleVerifier usecase.GoogleVerifier
	if cfg.Google.ClientID != "" {
		googleVerifier = provider.NewGoogleVerifier(cfg.Google.ClientID, httpClient)
	} else {
		log.Warn().Msg("GOOGLE_CLIENT_ID not set, google sign-in disabled")
	}

	var facebookVerifier usecase.FacebookVerifier
	if cfg.Facebook.AppID != "" && cfg.Facebook.AppSecret != "" {
		facebookVerifier = provider.NewFacebookVerifier(
			cfg.Facebook.AppID,
			cfg.Facebook.AppSecret,
			cfg.Facebook.GraphURL,
			httpClient,
		)
	} else {
		log.Warn().Msg("FACEBOOK_APP_ID or FACEBOOK_APP_SECRET not set, facebook sign-in disabled")
	}

	var mailSender usecase.MailSender
	if cfg.ContactEnabled() {
		m, err := mailer.NewMailer(cfg.SMTP)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create mailer")
		}
		mailSender = m
	} else {
		log.Warn().Msg("SMTP or CONTACT_INBOX not set, contact form disabled")
	}

	v, err := validator.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create validator")
	}

	authUsecase := usecase.NewAuthUsecase(
		usecase.NewLocalIdentityProvider(accountRepo, identityRepo, log),
		sessionRepo,
		profileRepo,
		roleRepo,
		googleVerifier,
		facebookVerifier,
		auth.NewJWTAuthenticator(cfg.Token.Audience, cfg.Token.Issuer),
		cfg.Token,
		log,
	)
	applicationUsecase := usecase.NewApplicationUsecase(
		applicationRepo,
		redislock.NewLocker(redisClient, "submit", cfg.Redis.SubmitLockTTL),
		cfg.Payment,
		log,
	)

	router := handler.NewRouter(handler.RouterDeps{
		AuthUsecase:        authUsecase,
		ApplicationUsecase: applicationUsecase,
		DashboardUsecase:   usecase.NewDashboardUsecase(applicationRepo),
		ContactUsecase:     usecase.NewContactUsecase(mailSender, cfg.Contact.Inbox, log),
		AuthRateLimiter: redislock.NewRateLimiter(
			redisClient,
			cfg.Redis.AuthRateLimit,
			cfg.Redis.AuthRateWindow,
			"ratelimit:auth",
		),
		Validator:   v,
		FrontendURL: cfg.HTTP.FrontendURL,
		TrustProxy:  cfg.HTTP.TrustProxy,
		Logger:      log,
	})

	grpcServer := grpc.NewServer()
	healthServer := utilities.RegisterHealthServer(grpcServer, cfg.ServiceName)

	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPC.Port))
	if err != nil {
		log.Fatal().Err(err).Int("port", cfg.GRPC.Port).Msg("failed to listen for gRPC")
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info().Int("port", cfg.GRPC.Port).Msg("gRPC health server starting")
		errCh <- grpcServer.Serve(grpcListener)
	}()
	go func() {
		log.Info().Int("port", cfg.HTTP.Port).Msg("HTTP server starting")
		errCh <- httpServer.ListenAndServe()
	}()

	registrar := registerWithConsul(cfg, log)

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
		}
	}

	healthServer.Shutdown()
	if registrar != nil {
		if err := registrar.Deregister(); err != nil {
			log.Error().Err(err).Msg("failed to deregister from consul")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	grpcServer.GracefulStop()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis client")
		}
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to disconnect from mongo")
	}

	log.Info().Msg("server stopped gracefully")
}

func connectMongo(ctx context.Context, cfg *config.PortalServiceConfig, log *zerolog.Logger) *mongo.Client {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		log.Fatal().Err(err).Msg("failed to ping mongo")
	}

	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	return client
}

// connectRedis returns nil when REDIS_URL is unset; the submit lock and the
// auth rate limit then become no-ops.
func connectRedis(ctx context.Context, cfg *config.PortalServiceConfig, log *zerolog.Logger) *redis.Client {
	if cfg.Redis.URL == "" {
		log.Warn().Msg("REDIS_URL not set, submit lock and auth rate limit disabled")
		return nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid REDIS_URL")
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping redis")
	}

	log.Info().Msg("redis connected")

	return client
}

func registerWithConsul(cfg *config.PortalServiceConfig, log *zerolog.Logger) *discovery.Registrar {
	if cfg.Consul.Address == "" {
		return nil
	}

	registrar, err := discovery.NewRegistrar(cfg.Consul.Address, discovery.Registration{
		ServiceName: cfg.ServiceName,
		Address:     cfg.Consul.ServiceAddress,
		HTTPPort:    cfg.HTTP.Port,
		GRPCPort:    cfg.GRPC.Port,
		Tags:        []string{"http", "grpc"},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create consul registrar")
		return nil
	}

	if err := registrar.Register(); err != nil {
		log.Error().Err(err).Msg("failed to register with consul")
		return nil
	}

	log.Info().Str("address", cfg.Consul.Address).Msg("registered with consul")

	return registrar
}
