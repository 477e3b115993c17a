package httpx

import (
	"context"
	"net/http"
)

// TokenExchanger swaps a verified provider token for a session credential.
// service.AuthService satisfies it.
type TokenExchanger interface {
	ExchangeToken(ctx context.Context, providerToken string) (string, error)
}

// AuthHandlers provides HTTP handlers for the token exchange endpoint.
type AuthHandlers struct {
	Svc TokenExchanger
}

type exchangeRequest struct {
	IDToken string `json:"idToken"`
}

type exchangeResponse struct {
	Token string `json:"token"`
}

// Exchange handles POST /jwt. It accepts a provider-issued ID token and
// responds with a locally signed session credential.
func (h *AuthHandlers) Exchange(w http.ResponseWriter, r *http.Request) {
	var req exchangeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	token, err := h.Svc.ExchangeToken(r.Context(), req.IDToken)
	if err != nil {
		RenderAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, exchangeResponse{Token: token})
}
