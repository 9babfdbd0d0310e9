package users

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/httpjson"
	"pet-care-tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// RegisterPublicRoutes monta /register y /login (sin token).
func RegisterPublicRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	r.Post("/register", registerHandler(svc, log))
	r.Post("/login", loginHandler(svc, log))
}

// RegisterRoutes monta /me y /users/{id}. Se espera RequireAuth aplicado.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	r.Get("/me", meHandler(svc, log))
	r.Get("/users/{id}", getUserHandler(svc, log))
	r.Put("/users/{id}", updateUserHandler(svc, log))
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Username                *string      `json:"username"`
	Password                *string      `json:"password"`
	Email                   *string      `json:"email"`
	NotificationPreferences *Preferences `json:"notification_preferences"`
}

// userResponse nunca incluye el hash.
type userResponse struct {
	ID                      int64       `json:"id"`
	Username                string      `json:"username"`
	Email                   string      `json:"email"`
	NotificationPreferences Preferences `json:"notification_preferences"`
	CreatedAt               time.Time   `json:"created_at"`
}

type loginUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Credenciales"
// @Success 201 {object} map[string]any "{success, message, user}"
// @Failure 400 {object} map[string]any "datos inválidos o usuario existente"
// @Router /register [post]
func registerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Username: req.Username,
			Password: req.Password,
			Email:    req.Email,
		})
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		log.Info("user registered", map[string]any{"user_id": u.ID})
		httpjson.OK(w, http.StatusCreated, map[string]any{
			"message": "User registered successfully",
			"user":    toUserResponse(u),
		})
	}
}

// loginHandler godoc
// @Summary Login
// @Description Devuelve un token Bearer (HS256, 24h por defecto).
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} map[string]any "{success, token, user{id, username}}"
// @Failure 401 {object} map[string]any "credenciales inválidas"
// @Router /login [post]
func loginHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		sess, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		httpjson.OK(w, http.StatusOK, map[string]any{
			"token":      sess.Token,
			"expires_at": sess.ExpiresAt,
			"user":       loginUser{ID: sess.User.ID, Username: sess.User.Username},
		})
	}
}

// meHandler godoc
// @Summary Usuario actual
// @Tags users
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} map[string]any "{success, user}"
// @Failure 401 {object} map[string]any "token requerido"
// @Failure 404 {object} map[string]any "user not found"
// @Router /me [get]
func meHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Fail(w, http.StatusUnauthorized, "authentication token required")
			return
		}

		u, err := svc.GetByID(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpjson.OK(w, http.StatusOK, map[string]any{"user": toUserResponse(u)})
	}
}

// getUserHandler godoc
// @Summary Ver usuario
// @Tags users
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "ID del usuario"
// @Success 200 {object} map[string]any "{success, user}"
// @Failure 404 {object} map[string]any "user not found"
// @Router /users/{id} [get]
func getUserHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			httpjson.Fail(w, http.StatusNotFound, "user not found")
			return
		}

		u, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpjson.OK(w, http.StatusOK, map[string]any{"user": toUserResponse(u)})
	}
}

// updateUserHandler godoc
// @Summary Actualizar perfil
// @Description Solo el propio usuario. Campos omitidos no se tocan.
// @Tags users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "ID del usuario"
// @Param payload body updateUserRequest true "Campos a actualizar"
// @Success 200 {object} map[string]any "{success, message, user}"
// @Failure 400 {object} map[string]any "datos inválidos"
// @Failure 403 {object} map[string]any "otro usuario"
// @Router /users/{id} [put]
func updateUserHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Fail(w, http.StatusUnauthorized, "authentication token required")
			return
		}
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			httpjson.Fail(w, http.StatusNotFound, "user not found")
			return
		}

		var req updateUserRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, err := svc.Update(r.Context(), claims.UserID, id, UpdateInput{
			Username:    req.Username,
			Password:    req.Password,
			Email:       req.Email,
			Preferences: req.NotificationPreferences,
		})
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpjson.OK(w, http.StatusOK, map[string]any{
			"message": "Profile updated",
			"user":    toUserResponse(u),
		})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpjson.Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDuplicateUsername):
		httpjson.Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		httpjson.Fail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrForbidden):
		httpjson.Fail(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, ErrNotFound):
		httpjson.Fail(w, http.StatusNotFound, "user not found")
	default:
		log.Error("users request failed", map[string]any{"path": r.URL.Path, "error": err})
		httpjson.FailInternal(w, r, "internal error", err)
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:                      u.ID,
		Username:                u.Username,
		Email:                   u.Email,
		NotificationPreferences: u.NotificationPreferences,
		CreatedAt:               u.CreatedAt,
	}
}
