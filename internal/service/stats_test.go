package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	apperrors "github.com/tourdesh/tourdesh-api/internal/errors"
)

type statsFixture struct {
	payTotal       float64
	payByEmail     map[string]float64
	roleCounts     map[domainauth.Role]int64
	packageCount   int64
	storyCount     int64
	storiesByEmail map[string]int64
	bookingsByStat map[string]int64
	err            error
}

func (f *statsFixture) TotalAmount(context.Context) (float64, error) {
	return f.payTotal, f.err
}

func (f *statsFixture) TotalAmountByEmail(_ context.Context, email string) (float64, error) {
	return f.payByEmail[email], f.err
}

func (f *statsFixture) CountByRole(_ context.Context, role domainauth.Role) (int64, error) {
	return f.roleCounts[role], f.err
}

func (f *statsFixture) EstimatedCount(context.Context) (int64, error) {
	return f.packageCount, f.err
}

type storyCountFixture struct{ f *statsFixture }

func (s storyCountFixture) EstimatedCount(context.Context) (int64, error) {
	return s.f.storyCount, s.f.err
}

func (s storyCountFixture) CountByAuthor(_ context.Context, email string) (int64, error) {
	return s.f.storiesByEmail[email], s.f.err
}

func (f *statsFixture) CountByStatus(_ context.Context, _ string) (map[string]int64, error) {
	return f.bookingsByStat, f.err
}

func newStatsService(f *statsFixture) *StatsService {
	return NewStatsService(f, f, f, storyCountFixture{f}, f)
}

func TestAdminStats_AggregatesAllCounters(t *testing.T) {
	f := &statsFixture{
		payTotal: 1234.50,
		roleCounts: map[domainauth.Role]int64{
			domainauth.RoleTourGuide: 3,
			domainauth.RoleTourist:   40,
		},
		packageCount: 12,
		storyCount:   7,
	}

	stats, err := newStatsService(f).AdminStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1234.50, stats.TotalPayment)
	assert.Equal(t, int64(3), stats.TotalGuides)
	assert.Equal(t, int64(40), stats.TotalClients)
	assert.Equal(t, int64(12), stats.TotalPackages)
	assert.Equal(t, int64(7), stats.TotalStories)
}

func TestAdminStats_EmptyPlatformIsAllZero(t *testing.T) {
	stats, err := newStatsService(&statsFixture{}).AdminStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalPayment)
	assert.Zero(t, stats.TotalGuides)
	assert.Zero(t, stats.TotalClients)
	assert.Zero(t, stats.TotalPackages)
	assert.Zero(t, stats.TotalStories)
}

func TestAdminStats_CounterFailureIsUnavailable(t *testing.T) {
	f := &statsFixture{err: errors.New("socket closed")}

	_, err := newStatsService(f).AdminStats(context.Background())
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestUserStats_ScopedToCaller(t *testing.T) {
	f := &statsFixture{
		payByEmail:     map[string]float64{"me@example.com": 99.99},
		storiesByEmail: map[string]int64{"me@example.com": 2},
		bookingsByStat: map[string]int64{"pending": 1, "accepted": 4},
	}

	stats, err := newStatsService(f).UserStats(context.Background(), "me@example.com")
	require.NoError(t, err)
	assert.Equal(t, 99.99, stats.TotalPayment)
	assert.Equal(t, int64(2), stats.TotalStories)
	assert.Equal(t, map[string]int64{"pending": 1, "accepted": 4}, stats.BookingsByStatus)
}

func TestUserStats_NoActivityIsAllZero(t *testing.T) {
	stats, err := newStatsService(&statsFixture{}).UserStats(context.Background(), "quiet@example.com")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalPayment)
	assert.Zero(t, stats.TotalStories)
	assert.Empty(t, stats.BookingsByStatus)
}

func TestUserStats_RequiresEmail(t *testing.T) {
	_, err := newStatsService(&statsFixture{}).UserStats(context.Background(), "")
	assert.True(t, apperrors.IsValidation(err))
}
