package cancel_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitnessClassService/internal/domain"
	scheduleRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/schedule"
	"github.com/m04kA/FitnessClassService/internal/integrations/notifyservice"
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
	schedule    *domain.Schedule
	cancelledID int64
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id int64) (*domain.Schedule, error) {
	if f.schedule == nil || f.schedule.ID != id {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	s := *f.schedule
	return &s, nil
}

func (f *fakeScheduleRepo) CancelWithReset(_ context.Context, id int64) error {
	f.cancelledID = id
	return nil
}

type fakeBookingRepo struct {
	confirmed []*domain.Booking

	cancelReason string
	cancelledAt  time.Time
}

func (f *fakeBookingRepo) GetByScheduleID(_ context.Context, _ int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	if status == nil || *status != domain.StatusConfirmed {
		return nil, nil
	}
	return f.confirmed, nil
}

func (f *fakeBookingRepo) CancelAllForSchedule(_ context.Context, _ int64, reason string, cancelledAt time.Time) (int64, error) {
	f.cancelReason = reason
	f.cancelledAt = cancelledAt
	return int64(len(f.confirmed)), nil
}

type fakeWaitlistRepo struct {
	entries []*domain.WaitingListEntry

	clearedSchedule int64
}

func (f *fakeWaitlistRepo) ListBySchedule(_ context.Context, _ int64) ([]*domain.WaitingListEntry, error) {
	return f.entries, nil
}

func (f *fakeWaitlistRepo) DeleteBySchedule(_ context.Context, scheduleID int64) (int64, error) {
	f.clearedSchedule = scheduleID
	return int64(len(f.entries)), nil
}

type fakeNotifier struct {
	sent []*notifyservice.Notification
}

func (f *fakeNotifier) Send(_ context.Context, n *notifyservice.Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

func activeSchedule() *domain.Schedule {
	return &domain.Schedule{
		ID:              10,
		TrainerID:       500,
		StartTime:       testNow.Add(48 * time.Hour),
		EndTime:         testNow.Add(49 * time.Hour),
		Status:          domain.ScheduleActive,
		Capacity:        15,
		CurrentBookings: 2,
		ClassName:       "Стретчинг",
	}
}

func newTestUseCase(sr *fakeScheduleRepo, br *fakeBookingRepo, wr *fakeWaitlistRepo, n *fakeNotifier) *UseCase {
	uc := NewUseCase(sr, br, wr, n, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &frozenClock{now: testNow}
	return uc
}

func TestCancelSchedule_CascadeNotifiesEveryone(t *testing.T) {
	sr := &fakeScheduleRepo{schedule: activeSchedule()}
	br := &fakeBookingRepo{confirmed: []*domain.Booking{
		{ID: 200, UserID: 7, ScheduleID: 10, Status: domain.StatusConfirmed},
		{ID: 201, UserID: 8, ScheduleID: 10, Status: domain.StatusConfirmed},
	}}
	wr := &fakeWaitlistRepo{entries: []*domain.WaitingListEntry{
		{ID: 31, UserID: 9, ScheduleID: 10, Position: 1},
	}}
	n := &fakeNotifier{}
	uc := newTestUseCase(sr, br, wr, n)

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:      domain.Actor{UserID: 999, Role: domain.RoleAdmin},
		ScheduleID: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.ScheduleCancelled), resp.Status)
	assert.Equal(t, int64(2), resp.AffectedBookings)
	assert.Equal(t, int64(1), resp.RemovedWaitlistEntries)

	assert.Equal(t, int64(10), sr.cancelledID)
	assert.Equal(t, domain.ScheduleCancelledReason, br.cancelReason)
	assert.Equal(t, testNow, br.cancelledAt)
	assert.Equal(t, int64(10), wr.clearedSchedule)

	// Уведомляются и записанные, и ожидающие
	require.Len(t, n.sent, 3)
	gotUsers := []int64{n.sent[0].UserID, n.sent[1].UserID, n.sent[2].UserID}
	assert.ElementsMatch(t, []int64{7, 8, 9}, gotUsers)
	for _, msg := range n.sent {
		assert.Equal(t, notifyservice.EventScheduleCancelled, msg.Event)
		require.NotNil(t, msg.Reason)
		assert.Equal(t, domain.ScheduleCancelledReason, *msg.Reason)
	}
}

func TestCancelSchedule_CustomReasonPassedThrough(t *testing.T) {
	sr := &fakeScheduleRepo{schedule: activeSchedule()}
	br := &fakeBookingRepo{confirmed: []*domain.Booking{
		{ID: 200, UserID: 7, ScheduleID: 10, Status: domain.StatusConfirmed},
	}}
	n := &fakeNotifier{}
	uc := newTestUseCase(sr, br, &fakeWaitlistRepo{}, n)

	reason := "Тренер заболел"
	_, err := uc.Execute(context.Background(), &Request{
		Actor:      domain.Actor{UserID: 999, Role: domain.RoleAdmin},
		ScheduleID: 10,
		Reason:     &reason,
	})

	require.NoError(t, err)
	require.Len(t, n.sent, 1)
	require.NotNil(t, n.sent[0].Reason)
	assert.Equal(t, reason, *n.sent[0].Reason)
}

func TestCancelSchedule_OwningTrainerAllowed(t *testing.T) {
	sr := &fakeScheduleRepo{schedule: activeSchedule()}
	uc := newTestUseCase(sr, &fakeBookingRepo{}, &fakeWaitlistRepo{}, &fakeNotifier{})

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:      domain.Actor{UserID: 500, Role: domain.RoleTrainer},
		ScheduleID: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.AffectedBookings)
	assert.Equal(t, int64(0), resp.RemovedWaitlistEntries)
}

func TestCancelSchedule_ForeignTrainerDenied(t *testing.T) {
	sr := &fakeScheduleRepo{schedule: activeSchedule()}
	uc := newTestUseCase(sr, &fakeBookingRepo{}, &fakeWaitlistRepo{}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:      domain.Actor{UserID: 501, Role: domain.RoleTrainer},
		ScheduleID: 10,
	})

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, int64(0), sr.cancelledID)
}

func TestCancelSchedule_MemberDenied(t *testing.T) {
	sr := &fakeScheduleRepo{schedule: activeSchedule()}
	uc := newTestUseCase(sr, &fakeBookingRepo{}, &fakeWaitlistRepo{}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:      domain.Actor{UserID: 7, Role: domain.RoleMember},
		ScheduleID: 10,
	})

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancelSchedule_AlreadyCancelled(t *testing.T) {
	s := activeSchedule()
	s.Status = domain.ScheduleCancelled
	uc := newTestUseCase(&fakeScheduleRepo{schedule: s}, &fakeBookingRepo{}, &fakeWaitlistRepo{}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:      domain.Actor{UserID: 999, Role: domain.RoleAdmin},
		ScheduleID: 10,
	})

	require.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancelSchedule_NotFound(t *testing.T) {
	uc := newTestUseCase(&fakeScheduleRepo{}, &fakeBookingRepo{}, &fakeWaitlistRepo{}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:      domain.Actor{UserID: 999, Role: domain.RoleAdmin},
		ScheduleID: 404,
	})

	require.ErrorIs(t, err, ErrScheduleNotFound)
}
