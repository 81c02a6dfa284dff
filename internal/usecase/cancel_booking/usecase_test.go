package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitnessClassService/internal/domain"
	bookingRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/booking"
	waitlistRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/waitlist"
	"github.com/m04kA/FitnessClassService/internal/integrations/notifyservice"
)

var testNow = time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)

var testWindows = Windows{
	CancellationDeadline: 2 * time.Hour,
	LateThreshold:        24 * time.Hour,
	ConfirmationWindow:   24 * time.Hour,
}

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
	schedule     *domain.Schedule
	releaseCalls int
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, _ int64) (*domain.Schedule, error) {
	s := *f.schedule
	return &s, nil
}

func (f *fakeScheduleRepo) ReleaseSlot(_ context.Context, _ int64) error {
	f.releaseCalls++
	return nil
}

type fakeBookingRepo struct {
	booking       *domain.Booking
	cancelledID   int64
	cancelReason  string
	cancelledTime time.Time
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string, cancelledAt time.Time) error {
	f.cancelledID = id
	f.cancelReason = reason
	f.cancelledTime = cancelledAt
	return nil
}

type fakeWaitlistRepo struct {
	head       *domain.WaitingListEntry
	notifiedID int64
	notifiedAt time.Time
	expiresAt  time.Time
}

func (f *fakeWaitlistRepo) GetHead(_ context.Context, _ int64) (*domain.WaitingListEntry, error) {
	if f.head == nil {
		return nil, waitlistRepo.ErrEntryNotFound
	}
	e := *f.head
	return &e, nil
}

func (f *fakeWaitlistRepo) MarkNotified(_ context.Context, id int64, notifiedAt, expiresAt time.Time) error {
	f.notifiedID = id
	f.notifiedAt = notifiedAt
	f.expiresAt = expiresAt
	return nil
}

type fakeNotifier struct {
	sent []*notifyservice.Notification
}

func (f *fakeNotifier) Send(_ context.Context, n *notifyservice.Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

func testSchedule(start time.Time) *domain.Schedule {
	return &domain.Schedule{
		ID:              10,
		TrainerID:       500,
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		Status:          domain.ScheduleActive,
		Capacity:        15,
		CurrentBookings: 15,
		ClassName:       "Кроссфит",
	}
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{ID: 200, UserID: 7, ScheduleID: 10, Status: domain.StatusConfirmed}
}

func newTestUseCase(sr *fakeScheduleRepo, br *fakeBookingRepo, wr *fakeWaitlistRepo, n *fakeNotifier) *UseCase {
	uc := NewUseCase(sr, br, wr, n, fakeTxManager{}, testWindows, nopLogger{})
	uc.timeProvider = &frozenClock{now: testNow}
	return uc
}

func TestCancelBooking_SuccessWithPromotion(t *testing.T) {
	sr := &fakeScheduleRepo{schedule: testSchedule(testNow.Add(48 * time.Hour))}
	br := &fakeBookingRepo{booking: confirmedBooking()}
	wr := &fakeWaitlistRepo{head: &domain.WaitingListEntry{ID: 31, UserID: 88, ScheduleID: 10, Position: 1}}
	n := &fakeNotifier{}
	uc := newTestUseCase(sr, br, wr, n)

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{UserID: 7, Role: domain.RoleMember},
		BookingID: 200,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.False(t, resp.IsLateCancellation)
	require.NotNil(t, resp.PromotedUserID)
	assert.Equal(t, int64(88), *resp.PromotedUserID)

	assert.Equal(t, int64(200), br.cancelledID)
	assert.Equal(t, 1, sr.releaseCalls)
	assert.Equal(t, int64(31), wr.notifiedID)
	assert.Equal(t, testNow.Add(24*time.Hour), wr.expiresAt)

	// Уведомления: отмена владельцу и приглашение голове очереди
	require.Len(t, n.sent, 2)
	assert.Equal(t, notifyservice.EventBookingCancelled, n.sent[0].Event)
	assert.Equal(t, int64(7), n.sent[0].UserID)
	assert.Equal(t, notifyservice.EventWaitlistPromoted, n.sent[1].Event)
	assert.Equal(t, int64(88), n.sent[1].UserID)
}

func TestCancelBooking_EmptyWaitlist(t *testing.T) {
	sr := &fakeScheduleRepo{schedule: testSchedule(testNow.Add(48 * time.Hour))}
	br := &fakeBookingRepo{booking: confirmedBooking()}
	wr := &fakeWaitlistRepo{}
	uc := newTestUseCase(sr, br, wr, &fakeNotifier{})

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{UserID: 7, Role: domain.RoleMember},
		BookingID: 200,
	})

	require.NoError(t, err)
	assert.Nil(t, resp.PromotedUserID)
	assert.Equal(t, int64(0), wr.notifiedID)
}

func TestCancelBooking_DeadlineBoundary(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		wantErr error
	}{
		{
			name:  "ровно за 2 часа отмена проходит",
			start: testNow.Add(2 * time.Hour),
		},
		{
			name:    "меньше 2 часов - отказ",
			start:   testNow.Add(2*time.Hour - time.Second),
			wantErr: ErrTooLateToCancel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sr := &fakeScheduleRepo{schedule: testSchedule(tt.start)}
			br := &fakeBookingRepo{booking: confirmedBooking()}
			uc := newTestUseCase(sr, br, &fakeWaitlistRepo{}, &fakeNotifier{})

			_, err := uc.Execute(context.Background(), &Request{
				Actor:     domain.Actor{UserID: 7, Role: domain.RoleMember},
				BookingID: 200,
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, sr.releaseCalls)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 1, sr.releaseCalls)
			}
		})
	}
}

func TestCancelBooking_AdminBypassesDeadline(t *testing.T) {
	sr := &fakeScheduleRepo{schedule: testSchedule(testNow.Add(30 * time.Minute))}
	br := &fakeBookingRepo{booking: confirmedBooking()}
	uc := newTestUseCase(sr, br, &fakeWaitlistRepo{}, &fakeNotifier{})

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{UserID: 999, Role: domain.RoleAdmin},
		BookingID: 200,
	})

	require.NoError(t, err)
	// меньше суток до начала - поздняя отмена
	assert.True(t, resp.IsLateCancellation)
}

func TestCancelBooking_AccessDenied(t *testing.T) {
	sr := &fakeScheduleRepo{schedule: testSchedule(testNow.Add(48 * time.Hour))}
	br := &fakeBookingRepo{booking: confirmedBooking()}
	uc := newTestUseCase(sr, br, &fakeWaitlistRepo{}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{UserID: 8, Role: domain.RoleMember},
		BookingID: 200,
	})

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	b := confirmedBooking()
	b.Status = domain.StatusCancelled
	sr := &fakeScheduleRepo{schedule: testSchedule(testNow.Add(48 * time.Hour))}
	uc := newTestUseCase(sr, &fakeBookingRepo{booking: b}, &fakeWaitlistRepo{}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{UserID: 7, Role: domain.RoleMember},
		BookingID: 200,
	})

	require.ErrorIs(t, err, ErrNotConfirmed)
}

func TestCancelBooking_NotFound(t *testing.T) {
	sr := &fakeScheduleRepo{schedule: testSchedule(testNow.Add(48 * time.Hour))}
	uc := newTestUseCase(sr, &fakeBookingRepo{}, &fakeWaitlistRepo{}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{UserID: 7, Role: domain.RoleMember},
		BookingID: 404,
	})

	require.ErrorIs(t, err, ErrBookingNotFound)
}
