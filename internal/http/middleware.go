package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
)

// SessionAuthority verifies session credentials and answers role checks.
// service.AuthService satisfies it.
type SessionAuthority interface {
	VerifySession(credential string) (domainauth.Context, error)
	AuthorizeRole(ctx context.Context, email string, allowed ...domainauth.Role) (domainauth.Role, error)
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the credential from the Authorization header. The
// scheme match is exact: "Bearer" followed by a single space. Anything
// else reads as no credential at all.
func bearerToken(r *http.Request) (string, bool) {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := header[len(prefix):]
	if token == "" {
		return "", false
	}
	return token, true
}

// RequireAuth returns a middleware that verifies the bearer credential and
// stores the caller identity in the request context. A missing credential
// is 401, a failed verification is 403; either way the wrapped handler is
// never invoked.
func RequireAuth(auth SessionAuthority) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "missing_credential",
					Err:     errors.New("authorization bearer credential is required"),
				})
				return
			}

			authCtx, err := auth.VerifySession(token)
			if err != nil {
				RenderAppError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetAuthContext(r.Context(), authCtx)))
		})
	}
}

// RequireRole returns a middleware that re-reads the caller's role from
// the user store and rejects callers outside the allowed set. It must run
// inside RequireAuth; the stale role captured in the credential is never
// trusted for the decision, and the context is refreshed with the role
// actually read.
func RequireRole(auth SessionAuthority, allowed ...domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx, ok := GetAuthContext(r.Context())
			if !ok {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "missing_credential",
					Err:     errors.New("authorization bearer credential is required"),
				})
				return
			}

			role, err := auth.AuthorizeRole(r.Context(), authCtx.Email, allowed...)
			if err != nil {
				RenderAppError(w, err)
				return
			}

			authCtx.Role = role
			next.ServeHTTP(w, r.WithContext(SetAuthContext(r.Context(), authCtx)))
		})
	}
}

// Chain applies middlewares right to left, so the first listed runs
// outermost.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
