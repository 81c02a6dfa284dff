package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitnessClassService/internal/domain"
	bookingRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/schedule"
	"github.com/m04kA/FitnessClassService/internal/service/bookings/models"
	"github.com/m04kA/FitnessClassService/pkg/ptr"
)

var testStart = time.Date(2025, 11, 3, 18, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	booking *domain.Booking
	list    []*domain.Booking

	gotUserStatus     *domain.BookingStatus
	gotScheduleStatus *domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	f.gotUserStatus = status
	return f.list, nil
}

func (f *fakeBookingRepo) GetByScheduleID(_ context.Context, _ int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	f.gotScheduleStatus = status
	return f.list, nil
}

type fakeScheduleRepo struct {
	schedule *domain.Schedule
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id int64) (*domain.Schedule, error) {
	if f.schedule == nil || f.schedule.ID != id {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	s := *f.schedule
	return &s, nil
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:         200,
		UserID:     7,
		ScheduleID: 10,
		Status:     domain.StatusConfirmed,
		BookedAt:   testStart.Add(-24 * time.Hour),
	}
}

func testSchedule() *domain.Schedule {
	return &domain.Schedule{
		ID:        10,
		TrainerID: 500,
		StartTime: testStart,
		EndTime:   testStart.Add(time.Hour),
		Status:    domain.ScheduleActive,
	}
}

func newTestService(br *fakeBookingRepo, sr *fakeScheduleRepo) *Service {
	return NewService(br, sr, nopLogger{})
}

func TestGetByID_AccessMatrix(t *testing.T) {
	tests := []struct {
		name    string
		actor   domain.Actor
		wantErr error
	}{
		{name: "владелец", actor: domain.Actor{UserID: 7, Role: domain.RoleMember}},
		{name: "администратор", actor: domain.Actor{UserID: 999, Role: domain.RoleAdmin}},
		{name: "тренер своего занятия", actor: domain.Actor{UserID: 500, Role: domain.RoleTrainer}},
		{
			name:    "чужой тренер",
			actor:   domain.Actor{UserID: 501, Role: domain.RoleTrainer},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "посторонний участник",
			actor:   domain.Actor{UserID: 8, Role: domain.RoleMember},
			wantErr: ErrAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(
				&fakeBookingRepo{booking: testBooking()},
				&fakeScheduleRepo{schedule: testSchedule()},
			)

			resp, err := svc.GetByID(context.Background(), 200, tt.actor)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(200), resp.ID)
			assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeScheduleRepo{})

	_, err := svc.GetByID(context.Background(), 404, domain.Actor{UserID: 7, Role: domain.RoleMember})

	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	br := &fakeBookingRepo{list: []*domain.Booking{testBooking()}}
	svc := newTestService(br, &fakeScheduleRepo{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		Actor:  domain.Actor{UserID: 7, Role: domain.RoleMember},
		UserID: 7,
		Status: ptr.Ptr("confirmed"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	require.NotNil(t, br.gotUserStatus)
	assert.Equal(t, domain.StatusConfirmed, *br.gotUserStatus)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeScheduleRepo{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		Actor:  domain.Actor{UserID: 7, Role: domain.RoleMember},
		UserID: 7,
		Status: ptr.Ptr("pending"),
	})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserBookings_ForeignHistoryDenied(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeScheduleRepo{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		Actor:  domain.Actor{UserID: 8, Role: domain.RoleMember},
		UserID: 7,
	})

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetScheduleBookings_OwningTrainer(t *testing.T) {
	br := &fakeBookingRepo{list: []*domain.Booking{testBooking()}}
	svc := newTestService(br, &fakeScheduleRepo{schedule: testSchedule()})

	resp, err := svc.GetScheduleBookings(context.Background(), &models.GetScheduleBookingsRequest{
		Actor:      domain.Actor{UserID: 500, Role: domain.RoleTrainer},
		ScheduleID: 10,
	})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	assert.Nil(t, br.gotScheduleStatus)
}

func TestGetScheduleBookings_ForeignTrainerDenied(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeScheduleRepo{schedule: testSchedule()})

	_, err := svc.GetScheduleBookings(context.Background(), &models.GetScheduleBookingsRequest{
		Actor:      domain.Actor{UserID: 501, Role: domain.RoleTrainer},
		ScheduleID: 10,
	})

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetScheduleBookings_ScheduleNotFound(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeScheduleRepo{})

	_, err := svc.GetScheduleBookings(context.Background(), &models.GetScheduleBookingsRequest{
		Actor:      domain.Actor{UserID: 999, Role: domain.RoleAdmin},
		ScheduleID: 404,
	})

	require.ErrorIs(t, err, ErrScheduleNotFound)
}
