package diary

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/media"
	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/httpjson"
	"pet-care-tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// PetOwnerLookup evita importar el paquete pets.
type PetOwnerLookup interface {
	OwnerOf(ctx context.Context, petID int64) (int64, error)
}

// memoria usada por ParseMultipartForm antes de volcar a disco temporal
const multipartMemory = 32 << 20

type petIDFunc func(r *http.Request) string

func petIDFromPath(r *http.Request) string { return chi.URLParam(r, "petID") }

// pet_id puede venir en query (GET, DELETE opcional) o en el form multipart (POST).
func petIDFromForm(r *http.Request) string { return r.FormValue("pet_id") }

// RegisterRoutes monta las dos formas de la API: /diary-entries (pet_id como parámetro)
// y /pets/{petID}/diary. Se espera que el router ya haya aplicado RequireAuth.
func RegisterRoutes(r chi.Router, svc *Service, pets PetOwnerLookup, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	r.Route("/diary-entries", func(dr chi.Router) {
		dr.Get("/", listEntriesHandler(svc, pets, log, petIDFromForm))
		dr.Post("/", createEntryHandler(svc, pets, log, petIDFromForm))
		dr.Delete("/{entryID}", deleteEntryHandler(svc, pets, log, petIDFromForm))
	})

	r.Route("/pets/{petID}/diary", func(dr chi.Router) {
		dr.Get("/", listEntriesHandler(svc, pets, log, petIDFromPath))
		dr.Post("/", createEntryHandler(svc, pets, log, petIDFromPath))
		dr.Delete("/{entryID}", deleteEntryHandler(svc, pets, log, petIDFromPath))
	})
}

// mediaResponse representa un archivo adjunto a una entrada.
type mediaResponse struct {
	ID          int64      `json:"id"`
	MediaType   media.Kind `json:"media_type" enums:"photo,video"`
	FilePath    string     `json:"file_path"`
	Description *string    `json:"description"`
}

// entryResponse representa una entrada del diario devuelta por la API.
type entryResponse struct {
	ID            int64           `json:"id"`
	PetID         int64           `json:"pet_id"`
	Notes         string          `json:"notes"`
	Mood          Mood            `json:"mood" enums:"happy,normal,sad"`
	Weight        *string         `json:"weight"`
	FoodIntake    string          `json:"food_intake"`
	ActivityLevel ActivityLevel   `json:"activity_level" enums:"high,normal,low"`
	HealthNotes   string          `json:"health_notes"`
	EntryDate     time.Time       `json:"entry_date"`
	Media         []mediaResponse `json:"media"`
}

// listEntriesResponse es el sobre de GET.
type listEntriesResponse struct {
	Success bool            `json:"success"`
	Entries []entryResponse `json:"entries"`
}

// createEntryResponse es el sobre de POST.
type createEntryResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Entry   entryResponse `json:"entry"`
}

// listEntriesHandler godoc
// @Summary Listar entradas del diario
// @Description Lista las entradas del diario de una mascota del usuario autenticado, más recientes primero. Cada entrada trae `media` (nunca null). Autenticación: `Authorization: Bearer <token>`.
// @Tags diary
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param pet_id query int true "ID de la mascota (solo en /diary-entries)"
// @Param mood query string false "Filtra por mood (happy, normal, sad)"
// @Param activity_level query string false "Filtra por nivel de actividad (high, normal, low)"
// @Param from query string false "Fecha mínima (RFC3339 o YYYY-MM-DD)"
// @Param to query string false "Fecha máxima (RFC3339 o YYYY-MM-DD)"
// @Success 200 {object} listEntriesResponse
// @Failure 400 {object} map[string]any "pet_id o filtros inválidos"
// @Failure 401 {object} map[string]any "token requerido"
// @Failure 403 {object} map[string]any "token inválido o mascota ajena"
// @Failure 404 {object} map[string]any "pet not found"
// @Failure 500 {object} map[string]any "internal error"
// @Router /diary-entries [get]
// @Router /pets/{petID}/diary [get]
func listEntriesHandler(svc *Service, pets PetOwnerLookup, log logger.Logger, petIDOf petIDFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, pets, petIDOf(r))
		if !ok {
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			httpjson.Fail(w, http.StatusBadRequest, err.Error())
			return
		}

		items, err := svc.ListByPet(r.Context(), petID, filter)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e))
		}
		httpjson.Write(w, http.StatusOK, listEntriesResponse{Success: true, Entries: out})
	}
}

// createEntryHandler godoc
// @Summary Crear entrada del diario
// @Description Crea una entrada con hasta 5 archivos (`media`, solo image/* o video/*). La entrada y sus archivos se guardan juntos o no se guarda nada. Autenticación: `Authorization: Bearer <token>`.
// @Tags diary
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param pet_id formData int true "ID de la mascota (solo en /diary-entries)"
// @Param notes formData string false "Notas"
// @Param mood formData string false "happy, normal o sad"
// @Param weight formData string false "Peso (decimal)"
// @Param foodIntake formData string false "Comida del día"
// @Param activityLevel formData string false "high, normal o low"
// @Param healthNotes formData string false "Notas de salud"
// @Param media formData file false "Fotos o videos (máx. 5)"
// @Success 200 {object} createEntryResponse
// @Failure 400 {object} map[string]any "campos inválidos / demasiados archivos"
// @Failure 401 {object} map[string]any "token requerido"
// @Failure 403 {object} map[string]any "token inválido o mascota ajena"
// @Failure 404 {object} map[string]any "pet not found"
// @Failure 413 {object} map[string]any "archivo demasiado grande"
// @Failure 415 {object} map[string]any "tipo de archivo no soportado"
// @Failure 500 {object} map[string]any "transacción revertida"
// @Router /diary-entries [post]
// @Router /pets/{petID}/diary [post]
func createEntryHandler(svc *Service, pets PetOwnerLookup, log logger.Logger, petIDOf petIDFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc.policy.MaxFiles > 0 && svc.policy.MaxFileBytes > 0 {
			limit := int64(svc.policy.MaxFiles)*svc.policy.MaxFileBytes + multipartMemory
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}

		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			switch {
			case errors.As(err, &tooLarge), errors.Is(err, multipart.ErrMessageTooLarge):
				httpjson.Fail(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			case errors.Is(err, http.ErrNotMultipart):
				// sin archivos: aceptamos urlencoded
				if err := r.ParseForm(); err != nil {
					httpjson.Fail(w, http.StatusBadRequest, "invalid form")
					return
				}
			default:
				httpjson.Fail(w, http.StatusBadRequest, "invalid multipart form")
				return
			}
		}
		if r.MultipartForm != nil {
			defer func() { _ = r.MultipartForm.RemoveAll() }()
		}

		petID, ok := authorizePet(w, r, pets, petIDOf(r))
		if !ok {
			return
		}

		var uploads []media.Upload
		if r.MultipartForm != nil {
			uploads = media.FromFileHeaders(r.MultipartForm.File["media"])
		}

		e, err := svc.Create(r.Context(), petID, CreateInput{
			Notes:         r.FormValue("notes"),
			Mood:          r.FormValue("mood"),
			Weight:        r.FormValue("weight"),
			FoodIntake:    r.FormValue("foodIntake"),
			ActivityLevel: r.FormValue("activityLevel"),
			HealthNotes:   r.FormValue("healthNotes"),
		}, uploads)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		httpjson.Write(w, http.StatusOK, createEntryResponse{
			Success: true,
			Message: "Diary entry created successfully",
			Entry:   toEntryResponse(e),
		})
	}
}

// deleteEntryHandler godoc
// @Summary Borrar entrada del diario
// @Description Borra la entrada y sus medios. Los archivos se borran después, best-effort. Autenticación: `Authorization: Bearer <token>`.
// @Tags diary
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param entryID path int true "ID de la entrada"
// @Param pet_id query int false "ID de la mascota, opcional (solo en /diary-entries)"
// @Success 200 {object} map[string]any "{success, message}"
// @Failure 401 {object} map[string]any "token requerido"
// @Failure 403 {object} map[string]any "token inválido o mascota ajena"
// @Failure 404 {object} map[string]any "pet / entry not found"
// @Failure 500 {object} map[string]any "internal error"
// @Router /diary-entries/{entryID} [delete]
// @Router /pets/{petID}/diary/{entryID} [delete]
func deleteEntryHandler(svc *Service, pets PetOwnerLookup, log logger.Logger, petIDOf petIDFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			httpjson.Fail(w, http.StatusUnauthorized, "authentication token required")
			return
		}

		entryID, err := strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
		if err != nil || entryID <= 0 {
			httpjson.Fail(w, http.StatusNotFound, "diary entry not found")
			return
		}

		// sin pet_id, la mascota sale de la propia entrada
		raw := strings.TrimSpace(petIDOf(r))
		if raw == "" {
			owner, err := svc.PetOf(r.Context(), entryID)
			if err != nil {
				writeError(w, r, log, err)
				return
			}
			raw = strconv.FormatInt(owner, 10)
		}

		petID, ok := authorizePet(w, r, pets, raw)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), petID, entryID); err != nil {
			writeError(w, r, log, err)
			return
		}

		httpjson.OK(w, http.StatusOK, map[string]any{"message": "Diary entry deleted successfully"})
	}
}

// authorizePet resuelve el pet y exige que sea del usuario autenticado.
// Responde el error y devuelve ok=false si no corresponde seguir.
func authorizePet(w http.ResponseWriter, r *http.Request, pets PetOwnerLookup, raw string) (int64, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || claims.UserID <= 0 {
		httpjson.Fail(w, http.StatusUnauthorized, "authentication token required")
		return 0, false
	}

	petID, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || petID <= 0 {
		httpjson.Fail(w, http.StatusBadRequest, "pet_id required")
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

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpjson.Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		httpjson.Fail(w, http.StatusNotFound, "diary entry not found")
	case errors.Is(err, media.ErrUnsupportedMediaType):
		httpjson.Fail(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, media.ErrPayloadTooLarge):
		httpjson.Fail(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, media.ErrTooManyFiles), errors.Is(err, media.ErrEmptyFile):
		httpjson.Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrTransactionFailed):
		log.Error("diary transaction failed", map[string]any{"path": r.URL.Path, "error": err})
		httpjson.FailInternal(w, r, "Failed to create diary entry", err)
	default:
		log.Error("diary request failed", map[string]any{"path": r.URL.Path, "error": err})
		httpjson.FailInternal(w, r, "internal error", err)
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()

	mood, err := ParseMood(q.Get("mood"))
	if err != nil {
		return ListFilter{}, err
	}
	activity, err := ParseActivityLevel(q.Get("activity_level"))
	if err != nil {
		return ListFilter{}, err
	}

	filter := ListFilter{Mood: mood, ActivityLevel: activity}

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, err := parseDate(v, false)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339 or YYYY-MM-DD")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		t, err := parseDate(v, true)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339 or YYYY-MM-DD")
		}
		filter.To = &t
	}
	return filter, nil
}

// parseDate acepta RFC3339 o YYYY-MM-DD; con endOfDay la fecha sola cubre el día entero.
func parseDate(v string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func toEntryResponse(e Entry) entryResponse {
	ms := make([]mediaResponse, 0, len(e.Media))
	for _, m := range e.Media {
		ms = append(ms, mediaResponse{
			ID:          m.ID,
			MediaType:   m.MediaType,
			FilePath:    m.FilePath,
			Description: m.Description,
		})
	}
	return entryResponse{
		ID:            e.ID,
		PetID:         e.PetID,
		Notes:         e.Notes,
		Mood:          e.Mood,
		Weight:        e.Weight,
		FoodIntake:    e.FoodIntake,
		ActivityLevel: e.ActivityLevel,
		HealthNotes:   e.HealthNotes,
		EntryDate:     e.EntryDate,
		Media:         ms,
	}
}
