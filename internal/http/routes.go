package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	"github.com/tourdesh/tourdesh-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         *service.AuthService
	Users        *service.UserService
	Packages     *service.PackageService
	Stories      *service.StoryService
	Bookings     *service.BookingService
	Applications *service.ApplicationService
	Payments     *service.PaymentService
	Stats        *service.StatsService
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router. Every route carries
// the strictest gate its data requires: public reads stay open, anything
// caller-scoped goes through RequireAuth, and admin surfaces add a
// RequireRole check that re-reads the role from the store.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authed := RequireAuth(services.Auth)
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return Chain(h, authed, RequireRole(services.Auth, domainauth.RoleAdmin))
	}

	authHandlers := &AuthHandlers{Svc: services.Auth}
	mux.Handle("POST /jwt", http.HandlerFunc(authHandlers.Exchange))

	userHandlers := &UserHandlers{Svc: services.Users}
	mux.Handle("POST /users", http.HandlerFunc(userHandlers.Register))
	mux.Handle("GET /users", adminOnly(userHandlers.Search))
	mux.Handle("GET /users/role", authed(http.HandlerFunc(userHandlers.Role)))
	mux.Handle("GET /users/{id}", authed(http.HandlerFunc(userHandlers.Get)))
	mux.Handle("PATCH /users/{email}/role", adminOnly(userHandlers.UpdateRole))
	mux.Handle("PATCH /users/{email}", authed(http.HandlerFunc(userHandlers.UpdateProfile)))
	mux.Handle("GET /tour-guides", http.HandlerFunc(userHandlers.TourGuides))

	packageHandlers := &PackageHandlers{Svc: services.Packages}
	mux.Handle("GET /packages", http.HandlerFunc(packageHandlers.List))
	mux.Handle("GET /packages/{id}", http.HandlerFunc(packageHandlers.Get))
	mux.Handle("POST /packages", adminOnly(packageHandlers.Create))

	storyHandlers := &StoryHandlers{Svc: services.Stories}
	mux.Handle("GET /stories", http.HandlerFunc(storyHandlers.List))
	mux.Handle("GET /stories/{id}", http.HandlerFunc(storyHandlers.Get))
	mux.Handle("POST /stories", authed(http.HandlerFunc(storyHandlers.Create)))
	mux.Handle("PATCH /stories/{id}", authed(http.HandlerFunc(storyHandlers.Update)))
	mux.Handle("PATCH /stories/{id}/images", authed(http.HandlerFunc(storyHandlers.ToggleImage)))
	mux.Handle("DELETE /stories/{id}", authed(http.HandlerFunc(storyHandlers.Delete)))

	bookingHandlers := &BookingHandlers{Svc: services.Bookings}
	mux.Handle("GET /bookings", authed(http.HandlerFunc(bookingHandlers.List)))
	mux.Handle("GET /bookings/{id}", authed(http.HandlerFunc(bookingHandlers.Get)))
	mux.Handle("POST /bookings", authed(http.HandlerFunc(bookingHandlers.Create)))
	mux.Handle("PATCH /bookings/{id}/status", authed(http.HandlerFunc(bookingHandlers.UpdateStatus)))
	mux.Handle("DELETE /bookings/{id}", authed(http.HandlerFunc(bookingHandlers.Delete)))

	applicationHandlers := &ApplicationHandlers{Svc: services.Applications}
	mux.Handle("GET /applications", adminOnly(applicationHandlers.List))
	mux.Handle("POST /applications", authed(http.HandlerFunc(applicationHandlers.Apply)))
	mux.Handle("POST /applications/{id}/approve", adminOnly(applicationHandlers.Approve))
	mux.Handle("DELETE /applications/{id}", adminOnly(applicationHandlers.Reject))

	if services.Payments != nil {
		paymentHandlers := &PaymentHandlers{Svc: services.Payments}
		mux.Handle("POST /payments/intent", authed(http.HandlerFunc(paymentHandlers.CreateIntent)))
		mux.Handle("POST /payments/confirm", authed(http.HandlerFunc(paymentHandlers.Confirm)))
	} else {
		mux.Handle("POST /payments/", authed(http.HandlerFunc(paymentsDisabled)))
	}

	statsHandlers := &StatsHandlers{Svc: services.Stats}
	mux.Handle("GET /admin-stats", adminOnly(statsHandlers.Admin))
	mux.Handle("GET /user-stats", authed(http.HandlerFunc(statsHandlers.User)))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return Chain(mux, Recover(logger), Logging(logger))
}
