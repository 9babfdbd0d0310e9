package feeding

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/httpjson"
	"pet-care-tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// PetOwnerLookup evita importar el paquete pets.
type PetOwnerLookup interface {
	OwnerOf(ctx context.Context, petID int64) (int64, error)
}

func RegisterRoutes(r chi.Router, svc *Service, pets PetOwnerLookup, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	r.Route("/pets/{petID}/feeding-schedule", func(fr chi.Router) {
		fr.Get("/", listSchedulesHandler(svc, pets, log))
		fr.Post("/", createScheduleHandler(svc, pets, log))
	})
}

type createScheduleRequest struct {
	FeedingTime string `json:"feeding_time"` // HH:MM
	Frequency   string `json:"frequency" enums:"daily,twice_daily,weekly"`
	FoodType    string `json:"food_type"`
	Amount      string `json:"amount"`
	Notes       string `json:"notes"`
}

type scheduleResponse struct {
	ID          int64     `json:"id"`
	PetID       int64     `json:"pet_id"`
	FeedingTime string    `json:"feeding_time"`
	Frequency   Frequency `json:"frequency"`
	FoodType    string    `json:"food_type"`
	Amount      string    `json:"amount"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// listSchedulesHandler godoc
// @Summary Listar horarios de comida
// @Description Horarios de la mascota ordenados por hora. Siempre devuelve `schedules` (vacío si no hay).
// @Tags feeding
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petID path int true "ID de la mascota"
// @Success 200 {object} map[string]any "{success, schedules}"
// @Failure 403 {object} map[string]any "mascota ajena"
// @Failure 404 {object} map[string]any "pet not found"
// @Router /pets/{petID}/feeding-schedule [get]
func listSchedulesHandler(svc *Service, pets PetOwnerLookup, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, pets)
		if !ok {
			return
		}

		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			log.Error("list feeding schedules", map[string]any{"pet_id": petID, "error": err})
			httpjson.FailInternal(w, r, "internal error", err)
			return
		}

		out := make([]scheduleResponse, 0, len(items))
		for _, s := range items {
			out = append(out, toScheduleResponse(s))
		}
		httpjson.OK(w, http.StatusOK, map[string]any{"schedules": out})
	}
}

// createScheduleHandler godoc
// @Summary Crear horario de comida
// @Tags feeding
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petID path int true "ID de la mascota"
// @Param payload body createScheduleRequest true "Horario"
// @Success 201 {object} map[string]any "{success, schedule}"
// @Failure 400 {object} map[string]any "datos inválidos"
// @Failure 403 {object} map[string]any "mascota ajena"
// @Failure 404 {object} map[string]any "pet not found"
// @Router /pets/{petID}/feeding-schedule [post]
func createScheduleHandler(svc *Service, pets PetOwnerLookup, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, pets)
		if !ok {
			return
		}

		var req createScheduleRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		s, err := svc.Create(r.Context(), petID, CreateInput{
			FeedingTime: req.FeedingTime,
			Frequency:   req.Frequency,
			FoodType:    req.FoodType,
			Amount:      req.Amount,
			Notes:       req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpjson.Fail(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Error("create feeding schedule", map[string]any{"pet_id": petID, "error": err})
			httpjson.FailInternal(w, r, "internal error", err)
			return
		}
		httpjson.OK(w, http.StatusCreated, map[string]any{"schedule": toScheduleResponse(s)})
	}
}

func authorizePet(w http.ResponseWriter, r *http.Request, pets PetOwnerLookup) (int64, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		httpjson.Fail(w, http.StatusUnauthorized, "authentication token required")
		return 0, false
	}
	petID, err := strconv.ParseInt(chi.URLParam(r, "petID"), 10, 64)
	if err != nil || petID <= 0 {
		httpjson.Fail(w, http.StatusNotFound, "pet not found")
		return 0, false
	}
	ownerID, err := pets.OwnerOf(r.Context(), petID)
	if err != nil {
		httpjson.Fail(w, http.StatusNotFound, "pet not found")
		return 0, false
	}
	if ownerID != claims.UserID {
		httpjson.Fail(w, http.StatusForbidden, "forbidden")
		return 0, false
	}
	return petID, true
}

func toScheduleResponse(s Schedule) scheduleResponse {
	return scheduleResponse{
		ID:          s.ID,
		PetID:       s.PetID,
		FeedingTime: s.FeedingTime,
		Frequency:   s.Frequency,
		FoodType:    s.FoodType,
		Amount:      s.Amount,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
	}
}
