package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduleOverlaps(t *testing.T) {
	base := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	s := &Schedule{
		StartTime: base,
		EndTime:   base.Add(time.Hour),
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{
			name:  "полное совпадение",
			start: base,
			end:   base.Add(time.Hour),
			want:  true,
		},
		{
			name:  "частичное пересечение в начале",
			start: base.Add(-30 * time.Minute),
			end:   base.Add(30 * time.Minute),
			want:  true,
		},
		{
			name:  "частичное пересечение в конце",
			start: base.Add(30 * time.Minute),
			end:   base.Add(90 * time.Minute),
			want:  true,
		},
		{
			name:  "вложенный интервал",
			start: base.Add(15 * time.Minute),
			end:   base.Add(45 * time.Minute),
			want:  true,
		},
		{
			name:  "стык конец-в-начало не пересекается",
			start: base.Add(-time.Hour),
			end:   base,
			want:  false,
		},
		{
			name:  "стык начало-в-конец не пересекается",
			start: base.Add(time.Hour),
			end:   base.Add(2 * time.Hour),
			want:  false,
		},
		{
			name:  "полностью до",
			start: base.Add(-3 * time.Hour),
			end:   base.Add(-2 * time.Hour),
			want:  false,
		},
		{
			name:  "полностью после",
			start: base.Add(2 * time.Hour),
			end:   base.Add(3 * time.Hour),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Overlaps(tt.start, tt.end))
		})
	}
}

func TestScheduleIsFull(t *testing.T) {
	s := &Schedule{Capacity: 10, CurrentBookings: 9}
	assert.False(t, s.IsFull())

	s.CurrentBookings = 10
	assert.True(t, s.IsFull())
}

func TestScheduleHasStarted(t *testing.T) {
	start := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	s := &Schedule{StartTime: start}

	assert.False(t, s.HasStarted(start.Add(-time.Second)))
	// момент начала считается начавшимся занятием
	assert.True(t, s.HasStarted(start))
	assert.True(t, s.HasStarted(start.Add(time.Second)))
}

func TestScheduleOwnedBy(t *testing.T) {
	s := &Schedule{TrainerID: 42}
	assert.True(t, s.OwnedBy(42))
	assert.False(t, s.OwnedBy(43))
}
