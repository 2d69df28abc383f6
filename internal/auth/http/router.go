package http

import (
	"context"
	"net/http"
	"time"

	"github.com/seo-pirate/backend/internal/auth/service"
	commonhttp "github.com/seo-pirate/backend/internal/common/http"
	"github.com/seo-pirate/backend/internal/common/jwtverify"
	"github.com/seo-pirate/backend/internal/common/logger"
	userdomain "github.com/seo-pirate/backend/internal/user/domain"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	User userdomain.Public `json:"user"`
}

type tokenResponse struct {
	AuthToken string `json:"authToken"`
}

type userTokenResponse struct {
	User      userdomain.Public `json:"user"`
	AuthToken string            `json:"authToken"`
}

type claimsResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type Handler struct {
	auth           *service.AuthService
	log            *logger.Logger
	requestTimeout time.Duration
}

func NewHandler(
	auth *service.AuthService,
	guard func(http.Handler) http.Handler,
	limits *commonhttp.StrictRateLimiter,
	requestTimeout time.Duration,
	log *logger.Logger,
) http.Handler {
	h := &Handler{auth: auth, log: log, requestTimeout: requestTimeout}

	mux := http.NewServeMux()
	mux.Handle("/api/auth/register",
		limits.MiddlewareForPath("/api/auth/register")(http.HandlerFunc(h.register)))
	mux.Handle("/api/auth/login",
		limits.MiddlewareForPath("/api/auth/login")(http.HandlerFunc(h.login)))
	mux.Handle("/api/auth/verify", guard(http.HandlerFunc(h.verify)))
	mux.Handle("/api/auth/user/", guard(http.HandlerFunc(h.updateUser)))
	return mux
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("register failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	user, err := h.auth.Register(ctx, service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, userResponse{User: user})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	token, err := h.auth.Login(ctx, service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{AuthToken: token})
}

// verify answers with the decoded token claims; reaching this handler at
// all proves the guard accepted the token.
func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, claimsResponse{
		ID:       claims.UserID,
		Email:    claims.Email,
		Username: claims.Username,
	})
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	userID, ok := commonhttp.ExtractIDFromPath(r.URL.Path, "/api/auth/user/")
	if !ok || userID == "" {
		commonhttp.WriteError(w, http.StatusBadRequest, "user id is required")
		return
	}
	if err := commonhttp.ValidateUUID(userID); err != nil {
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid user id format")
		return
	}

	var req updateUserRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("update user failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	result, err := h.auth.UpdateUser(ctx, service.UpdateUserInput{
		ID:       userdomain.ID(userID),
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, userTokenResponse{
		User:      result.User,
		AuthToken: result.Token,
	})
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.requestTimeout)
}
