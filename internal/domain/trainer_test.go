package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrainerApplyRating(t *testing.T) {
	// Первая оценка становится рейтингом как есть
	fresh := &Trainer{Rating: 0, RatingCount: 0}
	assert.InDelta(t, 5.0, fresh.ApplyRating(5), 1e-9)

	// (4.5*10 + 2) / 11
	seasoned := &Trainer{Rating: 4.5, RatingCount: 10}
	assert.InDelta(t, 47.0/11.0, seasoned.ApplyRating(2), 1e-9)

	// Одинаковая оценка не меняет среднее
	stable := &Trainer{Rating: 3.0, RatingCount: 7}
	assert.InDelta(t, 3.0, stable.ApplyRating(3), 1e-9)
}
