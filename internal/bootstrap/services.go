package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tourdesh/tourdesh-api/config"
	"github.com/tourdesh/tourdesh-api/internal/adapters/sessiontoken"
	"github.com/tourdesh/tourdesh-api/internal/adapters/stripeapi"
	"github.com/tourdesh/tourdesh-api/internal/data"
	"github.com/tourdesh/tourdesh-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth         *service.AuthService
	Users        *service.UserService
	Packages     *service.PackageService
	Stories      *service.StoryService
	Bookings     *service.BookingService
	Applications *service.ApplicationService
	Payments     *service.PaymentService
	Stats        *service.StatsService
}

// BuildServices wires repositories, adapters, and services together.
func BuildServices(ctx context.Context, cfg *config.AppConfig, db *mongo.Database, logger *slog.Logger) (ServiceContainer, error) {
	verifier, err := BuildIdentityVerifier(ctx, cfg, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	codec, err := sessiontoken.NewCodec(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("init session codec: %w", err)
	}

	users := data.NewUserRepo(db)
	packages := data.NewPackageRepo(db)
	stories := data.NewStoryRepo(db)
	bookings := data.NewBookingRepo(db)
	applications := data.NewApplicationRepo(db)
	payments := data.NewPaymentRepo(db)

	container := ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Verifier: verifier,
			Codec:    codec,
			Users:    users,
			Logger:   logger,
		}),
		Users:        service.NewUserService(users),
		Packages:     service.NewPackageService(packages),
		Stories:      service.NewStoryService(stories, users),
		Bookings:     service.NewBookingService(bookings, users),
		Applications: service.NewApplicationService(applications, users),
		Stats:        service.NewStatsService(payments, users, packages, stories, bookings),
	}

	if cfg.Payments.Enabled() {
		stripe, err := stripeapi.NewClient(stripeapi.Config{
			SecretKey:  cfg.Payments.SecretKey,
			Timeout:    cfg.Payments.Timeout,
			RetryLimit: cfg.Payments.RetryLimit,
		})
		if err != nil {
			return ServiceContainer{}, fmt.Errorf("init stripe client: %w", err)
		}
		container.Payments = service.NewPaymentService(stripe, payments, container.Bookings, cfg.Payments.Currency, logger)
	} else {
		logger.Warn("payment provider not configured, payment routes will fail closed")
	}

	return container, nil
}
