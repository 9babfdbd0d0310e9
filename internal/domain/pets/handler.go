package pets

import (
	"encoding/json"
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

const multipartMemory = 8 << 20

// RegisterRoutes monta /pets. Se espera RequireAuth aplicado por el router.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, log))
		pr.Get("/", listPetsHandler(svc, log))
		pr.Get("/stats", petStatsHandler(svc, log))

		pr.Get("/{petID}", getPetHandler(svc, log))
		pr.Put("/{petID}", updatePetHandler(svc, log))
		pr.Delete("/{petID}", deletePetHandler(svc, log))
		pr.Get("/{petID}/weight-history", weightHistoryHandler(svc, log))
	})
}

// createPetRequest es el cuerpo JSON para registrar una mascota (alternativa a multipart).
type createPetRequest struct {
	Name      string      `json:"name"`
	Species   string      `json:"species"`
	Breed     string      `json:"breed"`
	Gender    string      `json:"gender" enums:"male,female,unknown"`
	BirthDate string      `json:"birth_date"` // YYYY-MM-DD
	Weight    flexDecimal `json:"weight"`
}

// updatePetRequest: punteros para distinguir "no enviado" de "vacío".
type updatePetRequest struct {
	Name      *string      `json:"name"`
	Species   *string      `json:"species"`
	Breed     *string      `json:"breed"`
	Gender    *string      `json:"gender" enums:"male,female,unknown"`
	BirthDate *string      `json:"birth_date"`
	Weight    *flexDecimal `json:"weight"`
}

// petResponse representa el perfil de una mascota devuelto por la API.
type petResponse struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed"`
	Gender      Gender    `json:"gender"`
	BirthDate   *string   `json:"birth_date"`
	Weight      *string   `json:"weight"`
	ImageURL    *string   `json:"image_url"`
	LastUpdated time.Time `json:"last_updated"`
}

type weightRecordResponse struct {
	ID         int64     `json:"id"`
	PetID      int64     `json:"pet_id"`
	Weight     string    `json:"weight"`
	RecordedAt time.Time `json:"recorded_at"`
}

// flexDecimal acepta 4.2 o "4.2".
type flexDecimal string

func (d *flexDecimal) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*d = flexDecimal(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*d = flexDecimal(n.String())
	return nil
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Registra una mascota del usuario autenticado. Acepta multipart (con `image` opcional, solo image/*, máx. 5MB) o JSON.
// @Tags pets
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param name formData string true "Nombre"
// @Param species formData string true "Especie"
// @Param breed formData string false "Raza"
// @Param gender formData string false "male, female o unknown"
// @Param birth_date formData string false "YYYY-MM-DD"
// @Param weight formData string false "Peso (decimal)"
// @Param image formData file false "Imagen de perfil"
// @Success 201 {object} map[string]any "{success, pet}"
// @Failure 400 {object} map[string]any "campos inválidos"
// @Failure 401 {object} map[string]any "token requerido"
// @Failure 413 {object} map[string]any "imagen demasiado grande"
// @Failure 415 {object} map[string]any "imagen no soportada"
// @Router /pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Fail(w, http.StatusUnauthorized, "authentication token required")
			return
		}

		var (
			in    CreateInput
			image *media.Upload
		)

		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			if svc.policy.MaxFileBytes > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, svc.policy.MaxFileBytes+multipartMemory)
			}
			if err := r.ParseMultipartForm(multipartMemory); err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
					httpjson.Fail(w, http.StatusRequestEntityTooLarge, "request body too large")
					return
				}
				httpjson.Fail(w, http.StatusBadRequest, "invalid multipart form")
				return
			}
			defer func() { _ = r.MultipartForm.RemoveAll() }()

			in = CreateInput{
				Name:      r.FormValue("name"),
				Species:   r.FormValue("species"),
				Breed:     r.FormValue("breed"),
				Gender:    r.FormValue("gender"),
				BirthDate: r.FormValue("birth_date"),
				Weight:    r.FormValue("weight"),
			}
			if files := media.FromFileHeaders(r.MultipartForm.File["image"]); len(files) > 0 {
				image = &files[0]
			}
		} else {
			var req createPetRequest
			if err := httpjson.Decode(r, &req); err != nil {
				httpjson.Fail(w, http.StatusBadRequest, "invalid json")
				return
			}
			in = CreateInput{
				Name:      req.Name,
				Species:   req.Species,
				Breed:     req.Breed,
				Gender:    req.Gender,
				BirthDate: req.BirthDate,
				Weight:    string(req.Weight),
			}
		}

		p, err := svc.Create(r.Context(), claims.UserID, in, image)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpjson.OK(w, http.StatusCreated, map[string]any{"pet": toPetResponse(p)})
	}
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} map[string]any "{success, pets}"
// @Failure 401 {object} map[string]any "token requerido"
// @Failure 500 {object} map[string]any "internal error"
// @Router /pets [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Fail(w, http.StatusUnauthorized, "authentication token required")
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpjson.OK(w, http.StatusOK, map[string]any{"pets": out})
	}
}

// petStatsHandler godoc
// @Summary Estadísticas de mis mascotas
// @Description Total de mascotas y peso promedio de las que tienen peso registrado.
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} map[string]any "{success, totalPets, averageWeight}"
// @Failure 401 {object} map[string]any "token requerido"
// @Router /pets/stats [get]
func petStatsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Fail(w, http.StatusUnauthorized, "authentication token required")
			return
		}

		st, err := svc.Stats(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpjson.OK(w, http.StatusOK, map[string]any{
			"totalPets":     st.TotalPets,
			"averageWeight": st.AverageWeight,
		})
	}
}

// getPetHandler godoc
// @Summary Ver mascota
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petID path int true "ID de la mascota"
// @Success 200 {object} map[string]any "{success, pet}"
// @Failure 403 {object} map[string]any "mascota ajena"
// @Failure 404 {object} map[string]any "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Fail(w, http.StatusUnauthorized, "authentication token required")
			return
		}
		petID, ok := petIDParam(w, r)
		if !ok {
			return
		}

		p, err := svc.GetOwned(r.Context(), claims.UserID, petID)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpjson.OK(w, http.StatusOK, map[string]any{"pet": toPetResponse(p)})
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Actualiza los campos enviados. Si viene `weight`, además agrega una fila al historial de peso.
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petID path int true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a actualizar"
// @Success 200 {object} map[string]any "{success, pet}"
// @Failure 400 {object} map[string]any "campos inválidos"
// @Failure 403 {object} map[string]any "mascota ajena"
// @Failure 404 {object} map[string]any "pet not found"
// @Router /pets/{petID} [put]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Fail(w, http.StatusUnauthorized, "authentication token required")
			return
		}
		petID, ok := petIDParam(w, r)
		if !ok {
			return
		}

		var req updatePetRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		in := UpdateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Gender:    req.Gender,
			BirthDate: req.BirthDate,
		}
		if req.Weight != nil {
			v := string(*req.Weight)
			in.Weight = &v
		}

		p, err := svc.Update(r.Context(), claims.UserID, petID, in)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpjson.OK(w, http.StatusOK, map[string]any{"pet": toPetResponse(p)})
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Description Borra la mascota con su diario, historial y horarios. La imagen se borra después, best-effort.
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petID path int true "ID de la mascota"
// @Success 200 {object} map[string]any "{success, message}"
// @Failure 403 {object} map[string]any "mascota ajena"
// @Failure 404 {object} map[string]any "pet not found"
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Fail(w, http.StatusUnauthorized, "authentication token required")
			return
		}
		petID, ok := petIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, petID); err != nil {
			writeError(w, r, log, err)
			return
		}
		httpjson.OK(w, http.StatusOK, map[string]any{"message": "Pet deleted successfully"})
	}
}

// weightHistoryHandler godoc
// @Summary Historial de peso
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petID path int true "ID de la mascota"
// @Success 200 {object} map[string]any "{success, history}"
// @Failure 403 {object} map[string]any "mascota ajena"
// @Failure 404 {object} map[string]any "pet not found"
// @Router /pets/{petID}/weight-history [get]
func weightHistoryHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Fail(w, http.StatusUnauthorized, "authentication token required")
			return
		}
		petID, ok := petIDParam(w, r)
		if !ok {
			return
		}

		items, err := svc.WeightHistory(r.Context(), claims.UserID, petID)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		out := make([]weightRecordResponse, 0, len(items))
		for _, h := range items {
			out = append(out, weightRecordResponse{ID: h.ID, PetID: h.PetID, Weight: h.Weight, RecordedAt: h.RecordedAt})
		}
		httpjson.OK(w, http.StatusOK, map[string]any{"history": out})
	}
}

func petIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "petID"), 10, 64)
	if err != nil || id <= 0 {
		httpjson.Fail(w, http.StatusNotFound, "pet not found")
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpjson.Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		httpjson.Fail(w, http.StatusNotFound, "pet not found")
	case errors.Is(err, ErrForbidden):
		httpjson.Fail(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, media.ErrUnsupportedMediaType):
		httpjson.Fail(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, media.ErrPayloadTooLarge):
		httpjson.Fail(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, media.ErrTooManyFiles), errors.Is(err, media.ErrEmptyFile):
		httpjson.Fail(w, http.StatusBadRequest, err.Error())
	default:
		log.Error("pets request failed", map[string]any{"path": r.URL.Path, "error": err})
		httpjson.FailInternal(w, r, "internal error", err)
	}
}

func toPetResponse(p Pet) petResponse {
	out := petResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		Gender:      p.Gender,
		Weight:      p.Weight,
		LastUpdated: p.LastUpdated,
	}
	if p.BirthDate != nil {
		s := p.BirthDate.Format("2006-01-02")
		out.BirthDate = &s
	}
	if p.ImageURL != "" {
		s := p.ImageURL
		out.ImageURL = &s
	}
	return out
}
