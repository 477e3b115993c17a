package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	"github.com/tourdesh/tourdesh-api/internal/domain/model"
	apperrors "github.com/tourdesh/tourdesh-api/internal/errors"
)

// PaymentTotaler sums recorded payment amounts. An empty collection
// sums to zero, never an error.
type PaymentTotaler interface {
	TotalAmount(ctx context.Context) (float64, error)
	TotalAmountByEmail(ctx context.Context, email string) (float64, error)
}

// RoleCounter counts users holding a given role.
type RoleCounter interface {
	CountByRole(ctx context.Context, role domainauth.Role) (int64, error)
}

// PackageCounter estimates the tour package count.
type PackageCounter interface {
	EstimatedCount(ctx context.Context) (int64, error)
}

// StoryCounter counts stories globally and per author.
type StoryCounter interface {
	EstimatedCount(ctx context.Context) (int64, error)
	CountByAuthor(ctx context.Context, email string) (int64, error)
}

// BookingCounter groups a tourist's bookings by status.
type BookingCounter interface {
	CountByStatus(ctx context.Context, touristEmail string) (map[string]int64, error)
}

// StatsService aggregates read-only platform counters for dashboards.
type StatsService struct {
	payments PaymentTotaler
	users    RoleCounter
	packages PackageCounter
	stories  StoryCounter
	bookings BookingCounter
}

// NewStatsService constructs a new StatsService.
func NewStatsService(payments PaymentTotaler, users RoleCounter, packages PackageCounter, stories StoryCounter, bookings BookingCounter) *StatsService {
	return &StatsService{
		payments: payments,
		users:    users,
		packages: packages,
		stories:  stories,
		bookings: bookings,
	}
}

// AdminStats returns the platform-wide dashboard snapshot. Counters are
// fetched concurrently; each is independently zero on an empty
// collection.
func (s *StatsService) AdminStats(ctx context.Context) (model.AdminStats, error) {
	var stats model.AdminStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalPayment, err = s.payments.TotalAmount(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalGuides, err = s.users.CountByRole(gctx, domainauth.RoleTourGuide)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalClients, err = s.users.CountByRole(gctx, domainauth.RoleTourist)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalPackages, err = s.packages.EstimatedCount(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalStories, err = s.stories.EstimatedCount(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return model.AdminStats{}, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "aggregate admin stats")
	}
	return stats, nil
}

// UserStats returns the caller's own dashboard snapshot. A user with no
// activity gets all-zero counters.
func (s *StatsService) UserStats(ctx context.Context, email string) (model.UserStats, error) {
	if email == "" {
		return model.UserStats{}, apperrors.ValidationField("email", "email is required")
	}

	var stats model.UserStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalPayment, err = s.payments.TotalAmountByEmail(gctx, email)
		return err
	})
	g.Go(func() (err error) {
		stats.BookingsByStatus, err = s.bookings.CountByStatus(gctx, email)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalStories, err = s.stories.CountByAuthor(gctx, email)
		return err
	})

	if err := g.Wait(); err != nil {
		return model.UserStats{}, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "aggregate user stats")
	}
	return stats, nil
}
