package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingTransitions(t *testing.T) {
	confirmed := &Booking{Status: StatusConfirmed}
	assert.True(t, confirmed.IsConfirmed())
	assert.True(t, confirmed.CanBeCancelled())
	assert.False(t, confirmed.CanBeReactivated())

	cancelled := &Booking{Status: StatusCancelled}
	assert.True(t, cancelled.IsCancelled())
	assert.False(t, cancelled.CanBeCancelled())
	assert.True(t, cancelled.CanBeReactivated())

	completed := &Booking{Status: StatusCompleted}
	assert.False(t, completed.CanBeCancelled())
	assert.False(t, completed.CanBeReactivated())

	noShow := &Booking{Status: StatusNoShow}
	assert.False(t, noShow.CanBeCancelled())
	assert.False(t, noShow.CanBeReactivated())
}

func TestBookingIsRated(t *testing.T) {
	b := &Booking{}
	assert.False(t, b.IsRated())

	rating := 5
	b.Rating = &rating
	assert.True(t, b.IsRated())
}

func TestValidRating(t *testing.T) {
	assert.False(t, ValidRating(0))
	assert.True(t, ValidRating(1))
	assert.True(t, ValidRating(5))
	assert.False(t, ValidRating(6))
	assert.False(t, ValidRating(-1))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleMember))
	assert.True(t, ValidRole(RoleTrainer))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("manager"))
}
