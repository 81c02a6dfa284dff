package mark_attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitnessClassService/internal/domain"
	bookingRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/booking"
)

var testNow = time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)

type frozenClock struct{ now time.Time }

func (c *frozenClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	booking *domain.Booking

	markedID    int64
	setAttended bool
	setStatus   domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) SetAttendance(_ context.Context, id int64, attended bool, status domain.BookingStatus) error {
	f.markedID = id
	f.setAttended = attended
	f.setStatus = status
	return nil
}

type fakeScheduleRepo struct {
	schedule *domain.Schedule
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, _ int64) (*domain.Schedule, error) {
	s := *f.schedule
	return &s, nil
}

func startedSchedule() *domain.Schedule {
	return &domain.Schedule{
		ID:        10,
		TrainerID: 500,
		StartTime: testNow.Add(-30 * time.Minute),
		EndTime:   testNow.Add(30 * time.Minute),
		Status:    domain.ScheduleActive,
		ClassName: "Кроссфит",
	}
}

func bookingWithStatus(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ID: 200, UserID: 7, ScheduleID: 10, Status: status}
}

func newTestUseCase(br *fakeBookingRepo, sr *fakeScheduleRepo) *UseCase {
	uc := NewUseCase(br, sr, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &frozenClock{now: testNow}
	return uc
}

func trainerRequest(attended bool) *Request {
	return &Request{
		Actor:     domain.Actor{UserID: 500, Role: domain.RoleTrainer},
		BookingID: 200,
		Attended:  attended,
	}
}

func TestMarkAttendance_StatusTransitions(t *testing.T) {
	tests := []struct {
		name       string
		initial    domain.BookingStatus
		attended   bool
		wantStatus domain.BookingStatus
	}{
		{
			name:       "посетил - completed",
			initial:    domain.StatusConfirmed,
			attended:   true,
			wantStatus: domain.StatusCompleted,
		},
		{
			name:       "не пришел - no_show",
			initial:    domain.StatusConfirmed,
			attended:   false,
			wantStatus: domain.StatusNoShow,
		},
		{
			name:       "переотметка no_show в completed",
			initial:    domain.StatusNoShow,
			attended:   true,
			wantStatus: domain.StatusCompleted,
		},
		{
			name:       "переотметка completed в no_show",
			initial:    domain.StatusCompleted,
			attended:   false,
			wantStatus: domain.StatusNoShow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br := &fakeBookingRepo{booking: bookingWithStatus(tt.initial)}
			uc := newTestUseCase(br, &fakeScheduleRepo{schedule: startedSchedule()})

			resp, err := uc.Execute(context.Background(), trainerRequest(tt.attended))

			require.NoError(t, err)
			assert.Equal(t, string(tt.wantStatus), resp.Status)
			assert.Equal(t, tt.attended, resp.Attended)
			assert.Equal(t, int64(200), br.markedID)
			assert.Equal(t, tt.wantStatus, br.setStatus)
		})
	}
}

func TestMarkAttendance_AdminAllowed(t *testing.T) {
	br := &fakeBookingRepo{booking: bookingWithStatus(domain.StatusConfirmed)}
	uc := newTestUseCase(br, &fakeScheduleRepo{schedule: startedSchedule()})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{UserID: 999, Role: domain.RoleAdmin},
		BookingID: 200,
		Attended:  true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(200), br.markedID)
}

func TestMarkAttendance_ForeignTrainerDenied(t *testing.T) {
	br := &fakeBookingRepo{booking: bookingWithStatus(domain.StatusConfirmed)}
	uc := newTestUseCase(br, &fakeScheduleRepo{schedule: startedSchedule()})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{UserID: 501, Role: domain.RoleTrainer},
		BookingID: 200,
		Attended:  true,
	})

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, int64(0), br.markedID)
}

func TestMarkAttendance_MemberDenied(t *testing.T) {
	br := &fakeBookingRepo{booking: bookingWithStatus(domain.StatusConfirmed)}
	uc := newTestUseCase(br, &fakeScheduleRepo{schedule: startedSchedule()})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{UserID: 7, Role: domain.RoleMember},
		BookingID: 200,
		Attended:  true,
	})

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestMarkAttendance_ClassNotStarted(t *testing.T) {
	s := startedSchedule()
	s.StartTime = testNow.Add(time.Minute)
	s.EndTime = testNow.Add(time.Hour)
	br := &fakeBookingRepo{booking: bookingWithStatus(domain.StatusConfirmed)}
	uc := newTestUseCase(br, &fakeScheduleRepo{schedule: s})

	_, err := uc.Execute(context.Background(), trainerRequest(true))

	require.ErrorIs(t, err, ErrClassNotStarted)
	assert.Equal(t, int64(0), br.markedID)
}

func TestMarkAttendance_CancelledBooking(t *testing.T) {
	br := &fakeBookingRepo{booking: bookingWithStatus(domain.StatusCancelled)}
	uc := newTestUseCase(br, &fakeScheduleRepo{schedule: startedSchedule()})

	_, err := uc.Execute(context.Background(), trainerRequest(true))

	require.ErrorIs(t, err, ErrInvalidState)
}

func TestMarkAttendance_NotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{schedule: startedSchedule()})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{UserID: 999, Role: domain.RoleAdmin},
		BookingID: 404,
		Attended:  true,
	})

	require.ErrorIs(t, err, ErrBookingNotFound)
}
