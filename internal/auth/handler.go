package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pointtaken/timesheet/internal"
	"github.com/pointtaken/timesheet/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	service ServiceAPI
}

func NewHandler(logger *slog.Logger, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		service:     service,
	}
}

// Login authenticates a user and returns access and refresh tokens.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.service.Authenticate(dto)
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// RefreshToken exchanges a refresh token for a new token pair.
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// Logout acknowledges the logout. Tokens are stateless, so the client
// simply discards them; the endpoint exists so the client has a single
// place to hook session teardown.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// AuthMiddleware validates the bearer token and loads the session user
// into the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.service.ValidateAccessToken(token)
		if err != nil {
			h.handleAuthError(w, err)
			return
		}

		user, err := h.service.GetSessionUser(claims.UserID)
		if err != nil {
			h.handleAuthError(w, err)
			return
		}

		ctx := internal.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		h.HandleServiceError(w, internal.NewUnauthorizedError("invalid email or password", internal.ErrCodeInvalidCredentials))
	case errors.Is(err, ErrUserInactive):
		h.HandleServiceError(w, internal.NewForbiddenError("user account is deactivated", internal.ErrCodeUserInactive))
	case errors.Is(err, ErrTokenExpired):
		h.HandleServiceError(w, internal.NewUnauthorizedError("token has expired", internal.ErrCodeTokenExpired))
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrUserNotFound):
		h.HandleServiceError(w, internal.NewUnauthorizedError("invalid token", internal.ErrCodeInvalidToken))
	default:
		h.HandleServiceError(w, err)
	}
}
