package join_waitlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitnessClassService/internal/domain"
	bookingRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/booking"
	waitlistRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/waitlist"
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

type fakeScheduleRepo struct {
	schedule *domain.Schedule
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id int64) (*domain.Schedule, error) {
	if f.schedule == nil || f.schedule.ID != id {
		return nil, errors.New("schedule repo: not found")
	}
	s := *f.schedule
	return &s, nil
}

type fakeBookingRepo struct {
	existing *domain.Booking
}

func (f *fakeBookingRepo) GetByUserAndSchedule(_ context.Context, _, _ int64) (*domain.Booking, error) {
	if f.existing == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b := *f.existing
	return &b, nil
}

type fakeWaitlistRepo struct {
	existing     *domain.WaitingListEntry
	tailPosition int
	created      *domain.WaitingListEntry
}

func (f *fakeWaitlistRepo) GetByUserAndSchedule(_ context.Context, _, _ int64) (*domain.WaitingListEntry, error) {
	if f.existing == nil {
		return nil, waitlistRepo.ErrEntryNotFound
	}
	e := *f.existing
	return &e, nil
}

func (f *fakeWaitlistRepo) Create(_ context.Context, userID, scheduleID int64) (*domain.WaitingListEntry, error) {
	f.tailPosition++
	f.created = &domain.WaitingListEntry{
		ID:         int64(300 + f.tailPosition),
		UserID:     userID,
		ScheduleID: scheduleID,
		Position:   f.tailPosition,
		CreatedAt:  testNow,
	}
	return f.created, nil
}

func fullSchedule() *domain.Schedule {
	return &domain.Schedule{
		ID:              10,
		StartTime:       testNow.Add(5 * time.Hour),
		EndTime:         testNow.Add(6 * time.Hour),
		Status:          domain.ScheduleActive,
		Capacity:        15,
		CurrentBookings: 15,
		ClassName:       "Бокс",
	}
}

func newTestUseCase(sr *fakeScheduleRepo, br *fakeBookingRepo, wr *fakeWaitlistRepo) *UseCase {
	uc := NewUseCase(sr, br, wr, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &frozenClock{now: testNow}
	return uc
}

func TestJoinWaitlist_TailPosition(t *testing.T) {
	wr := &fakeWaitlistRepo{tailPosition: 2}
	uc := newTestUseCase(&fakeScheduleRepo{schedule: fullSchedule()}, &fakeBookingRepo{}, wr)

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:      domain.Actor{UserID: 7, Role: domain.RoleMember},
		ScheduleID: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Position)
	assert.Equal(t, "Бокс", resp.ClassName)
}

func TestJoinWaitlist_ScheduleNotFull(t *testing.T) {
	s := fullSchedule()
	s.CurrentBookings = 14
	uc := newTestUseCase(&fakeScheduleRepo{schedule: s}, &fakeBookingRepo{}, &fakeWaitlistRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:      domain.Actor{UserID: 7, Role: domain.RoleMember},
		ScheduleID: 10,
	})

	require.ErrorIs(t, err, ErrClassNotFull)
}

func TestJoinWaitlist_ConfirmedBookingExists(t *testing.T) {
	br := &fakeBookingRepo{
		existing: &domain.Booking{ID: 200, UserID: 7, ScheduleID: 10, Status: domain.StatusConfirmed},
	}
	uc := newTestUseCase(&fakeScheduleRepo{schedule: fullSchedule()}, br, &fakeWaitlistRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:      domain.Actor{UserID: 7, Role: domain.RoleMember},
		ScheduleID: 10,
	})

	require.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestJoinWaitlist_CancelledBookingDoesNotBlock(t *testing.T) {
	br := &fakeBookingRepo{
		existing: &domain.Booking{ID: 200, UserID: 7, ScheduleID: 10, Status: domain.StatusCancelled},
	}
	wr := &fakeWaitlistRepo{}
	uc := newTestUseCase(&fakeScheduleRepo{schedule: fullSchedule()}, br, wr)

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:      domain.Actor{UserID: 7, Role: domain.RoleMember},
		ScheduleID: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Position)
}

func TestJoinWaitlist_AlreadyWaitingCarriesPosition(t *testing.T) {
	wr := &fakeWaitlistRepo{
		existing: &domain.WaitingListEntry{ID: 33, UserID: 7, ScheduleID: 10, Position: 4},
	}
	uc := newTestUseCase(&fakeScheduleRepo{schedule: fullSchedule()}, &fakeBookingRepo{}, wr)

	_, err := uc.Execute(context.Background(), &Request{
		Actor:      domain.Actor{UserID: 7, Role: domain.RoleMember},
		ScheduleID: 10,
	})

	require.ErrorIs(t, err, ErrAlreadyWaiting)

	var waitingErr *domain.AlreadyWaitingError
	require.True(t, errors.As(err, &waitingErr))
	assert.Equal(t, 4, waitingErr.Position)
	assert.Nil(t, wr.created)
}

func TestJoinWaitlist_PastSchedule(t *testing.T) {
	s := fullSchedule()
	s.StartTime = testNow.Add(-time.Minute)
	uc := newTestUseCase(&fakeScheduleRepo{schedule: s}, &fakeBookingRepo{}, &fakeWaitlistRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:      domain.Actor{UserID: 7, Role: domain.RoleMember},
		ScheduleID: 10,
	})

	require.ErrorIs(t, err, ErrPastSchedule)
}
