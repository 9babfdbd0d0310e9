package feeding

import "time"

// Frequency de un horario de comida.
// @Enum daily, twice_daily, weekly
type Frequency string

const (
	FrequencyDaily      Frequency = "daily"
	FrequencyTwiceDaily Frequency = "twice_daily"
	FrequencyWeekly     Frequency = "weekly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyTwiceDaily, FrequencyWeekly:
		return true
	}
	return false
}

// Schedule es una fila de feeding_schedules.
type Schedule struct {
	ID    int64
	PetID int64

	FeedingTime string // HH:MM
	Frequency   Frequency
	FoodType    string
	Amount      string
	Notes       string

	CreatedAt time.Time
}
