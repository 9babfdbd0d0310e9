package diary

import (
	"time"

	"pet-care-tracker/internal/domain/media"
)

// Mood del día registrado en la entrada.
// @Enum happy, normal, sad
type Mood string

const (
	MoodHappy  Mood = "happy"
	MoodNormal Mood = "normal"
	MoodSad    Mood = "sad"
)

// ActivityLevel nivel de actividad del día.
// @Enum high, normal, low
type ActivityLevel string

const (
	ActivityHigh   ActivityLevel = "high"
	ActivityNormal ActivityLevel = "normal"
	ActivityLow    ActivityLevel = "low"
)

// Entry es una entrada del diario de una mascota (pet_diary_entries).
type Entry struct {
	ID    int64
	PetID int64

	Notes         string
	Mood          Mood          // vacío = no informado
	Weight        *string       // decimal normalizado ("4.2"); nil = sin peso
	FoodIntake    string
	ActivityLevel ActivityLevel // vacío = no informado
	HealthNotes   string

	// Asignada por el servidor al crear.
	EntryDate time.Time

	// Nunca nil en lecturas: sin archivos => slice vacío.
	Media []Media
}

// Media es un archivo (foto o video) enlazado a una entrada (pet_media).
type Media struct {
	ID          int64
	EntryID     int64
	MediaType   media.Kind
	FilePath    string // URL absoluta
	Description *string
}

func (m Mood) Valid() bool {
	switch m {
	case MoodHappy, MoodNormal, MoodSad:
		return true
	}
	return false
}

func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivityHigh, ActivityNormal, ActivityLow:
		return true
	}
	return false
}
