package domain

import "time"

// Trainer represents a trainer profile with the running rating aggregate
type Trainer struct {
	UserID      int64
	Name        string
	Rating      float64
	RatingCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ApplyRating возвращает новое средневзвешенное значение рейтинга
// после добавления одной оценки
func (t *Trainer) ApplyRating(rating int) float64 {
	return (t.Rating*float64(t.RatingCount) + float64(rating)) / float64(t.RatingCount+1)
}
