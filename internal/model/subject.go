package model

import "time"

// Category категория предмета
type Category string

const (
	CategoryLanguages      Category = "Languages"
	CategoryScience        Category = "Science"
	CategoryMaths          Category = "Maths"
	CategoryArts           Category = "Arts and humanities"
	CategorySocialSciences Category = "Social sciences"
)

// Categories все допустимые категории
var Categories = []Category{
	CategoryLanguages,
	CategoryScience,
	CategoryMaths,
	CategoryArts,
	CategorySocialSciences,
}

// Valid проверяет что категория известна
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Subject struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

const (
	MinServiceHours   = 1
	MaxServiceHours   = 100
	MinSessionLength  = 30
	MaxSessionLength  = 180 // в минутах
	SessionLengthStep = 15
)

// MaxSessionDuration максимальная длина занятия
const MaxSessionDuration = MaxSessionLength * time.Minute

// Service услуга учителя: пакет из NumberOfHours занятий по предмету
type Service struct {
	ID            int64     `json:"id"`
	TutorID       int64     `json:"tutor_id"`
	SubjectID     int64     `json:"subject_id"`
	NumberOfHours int       `json:"number_of_hours"`
	PricePerHour  int       `json:"price_per_hour"` // в копейках/центах
	SessionLength int       `json:"session_length"` // в минутах
	CreatedAt     time.Time `json:"created_at"`
}

// IsDefault услуга на одно занятие
func (s *Service) IsDefault() bool {
	return s.NumberOfHours == 1
}

// SessionDuration длительность одного занятия
func (s *Service) SessionDuration() time.Duration {
	return time.Duration(s.SessionLength) * time.Minute
}

// TotalPrice стоимость всего пакета
func (s *Service) TotalPrice() int {
	return s.NumberOfHours * s.PricePerHour
}
