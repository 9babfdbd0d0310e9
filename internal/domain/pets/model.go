package pets

import "time"

// Gender define el sexo de la mascota.
// @Enum male, female, unknown
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnknown:
		return true
	}
	return false
}

// Pet representa el perfil de una mascota. Pertenece a un único usuario.
type Pet struct {
	ID      int64
	OwnerID int64

	Name    string
	Species string // texto libre (dog, cat, ...)
	Breed   string
	Gender  Gender

	BirthDate *time.Time
	Weight    *string // decimal normalizado; nil = sin peso

	// URL absoluta de la imagen de perfil; vacío = sin imagen.
	ImageURL string

	LastUpdated time.Time
}

// WeightRecord es una fila de weight_history. Se agrega en cada update con peso.
type WeightRecord struct {
	ID         int64
	PetID      int64
	Weight     string
	RecordedAt time.Time
}

// Stats resume las mascotas de un usuario.
type Stats struct {
	TotalPets     int
	AverageWeight float64 // 0 si ninguna tiene peso
}
