package rate_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitnessClassService/internal/domain"
	bookingRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/booking"
	trainerRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/trainer"
	"github.com/m04kA/FitnessClassService/pkg/ptr"
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

	ratedID     int64
	setRating   int
	setFeedback *string
	setStatus   domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) SetRating(_ context.Context, id int64, rating int, feedback *string, status domain.BookingStatus) error {
	f.ratedID = id
	f.setRating = rating
	f.setFeedback = feedback
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

type fakeTrainerRepo struct {
	trainer *domain.Trainer

	updatedUserID int64
	updatedRating float64
	updatedCount  int
}

func (f *fakeTrainerRepo) GetByUserID(_ context.Context, userID int64) (*domain.Trainer, error) {
	if f.trainer == nil || f.trainer.UserID != userID {
		return nil, trainerRepo.ErrTrainerNotFound
	}
	t := *f.trainer
	return &t, nil
}

func (f *fakeTrainerRepo) UpdateRating(_ context.Context, userID int64, rating float64, ratingCount int) error {
	f.updatedUserID = userID
	f.updatedRating = rating
	f.updatedCount = ratingCount
	return nil
}

func startedSchedule() *domain.Schedule {
	return &domain.Schedule{
		ID:        10,
		TrainerID: 500,
		StartTime: testNow.Add(-2 * time.Hour),
		EndTime:   testNow.Add(-time.Hour),
		Status:    domain.ScheduleCompleted,
		ClassName: "Йога",
	}
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{ID: 200, UserID: 7, ScheduleID: 10, Status: domain.StatusConfirmed}
}

func newTestUseCase(br *fakeBookingRepo, sr *fakeScheduleRepo, tr *fakeTrainerRepo) *UseCase {
	uc := NewUseCase(br, sr, tr, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &frozenClock{now: testNow}
	return uc
}

func ownerRequest(rating int) *Request {
	return &Request{
		Actor:     domain.Actor{UserID: 7, Role: domain.RoleMember},
		BookingID: 200,
		Rating:    rating,
	}
}

func TestRateBooking_UpdatesTrainerAggregate(t *testing.T) {
	br := &fakeBookingRepo{booking: confirmedBooking()}
	tr := &fakeTrainerRepo{trainer: &domain.Trainer{UserID: 500, Rating: 4.5, RatingCount: 10}}
	uc := newTestUseCase(br, &fakeScheduleRepo{schedule: startedSchedule()}, tr)

	req := ownerRequest(2)
	req.Feedback = ptr.Ptr("Слишком интенсивно")
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, 2, resp.Rating)
	// (4.5*10 + 2) / 11
	assert.InDelta(t, 47.0/11.0, resp.TrainerRating, 1e-9)

	assert.Equal(t, int64(200), br.ratedID)
	assert.Equal(t, domain.StatusCompleted, br.setStatus)
	require.NotNil(t, br.setFeedback)
	assert.Equal(t, "Слишком интенсивно", *br.setFeedback)

	assert.Equal(t, int64(500), tr.updatedUserID)
	assert.InDelta(t, 47.0/11.0, tr.updatedRating, 1e-9)
	assert.Equal(t, 11, tr.updatedCount)
}

func TestRateBooking_NoShowKeepsStatus(t *testing.T) {
	b := confirmedBooking()
	b.Status = domain.StatusNoShow
	br := &fakeBookingRepo{booking: b}
	tr := &fakeTrainerRepo{trainer: &domain.Trainer{UserID: 500}}
	uc := newTestUseCase(br, &fakeScheduleRepo{schedule: startedSchedule()}, tr)

	resp, err := uc.Execute(context.Background(), ownerRequest(4))

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), resp.Status)
	assert.Equal(t, domain.StatusNoShow, br.setStatus)
}

func TestRateBooking_MissingTrainerProfileTolerated(t *testing.T) {
	br := &fakeBookingRepo{booking: confirmedBooking()}
	tr := &fakeTrainerRepo{}
	uc := newTestUseCase(br, &fakeScheduleRepo{schedule: startedSchedule()}, tr)

	resp, err := uc.Execute(context.Background(), ownerRequest(5))

	require.NoError(t, err)
	// Оценка бронирования сохранена, агрегат тренера не трогали
	assert.Equal(t, int64(200), br.ratedID)
	assert.Equal(t, int64(0), tr.updatedUserID)
	assert.InDelta(t, 0.0, resp.TrainerRating, 1e-9)
}

func TestRateBooking_ClassNotStarted(t *testing.T) {
	s := startedSchedule()
	s.StartTime = testNow.Add(time.Minute)
	s.EndTime = testNow.Add(time.Hour)
	s.Status = domain.ScheduleActive
	br := &fakeBookingRepo{booking: confirmedBooking()}
	uc := newTestUseCase(br, &fakeScheduleRepo{schedule: s}, &fakeTrainerRepo{})

	_, err := uc.Execute(context.Background(), ownerRequest(5))

	require.ErrorIs(t, err, ErrClassNotStarted)
	assert.Equal(t, int64(0), br.ratedID)
}

func TestRateBooking_AlreadyRated(t *testing.T) {
	b := confirmedBooking()
	b.Status = domain.StatusCompleted
	b.Rating = ptr.Ptr(5)
	uc := newTestUseCase(&fakeBookingRepo{booking: b}, &fakeScheduleRepo{schedule: startedSchedule()}, &fakeTrainerRepo{})

	_, err := uc.Execute(context.Background(), ownerRequest(3))

	require.ErrorIs(t, err, ErrAlreadyRated)
}

func TestRateBooking_CancelledBooking(t *testing.T) {
	b := confirmedBooking()
	b.Status = domain.StatusCancelled
	uc := newTestUseCase(&fakeBookingRepo{booking: b}, &fakeScheduleRepo{schedule: startedSchedule()}, &fakeTrainerRepo{})

	_, err := uc.Execute(context.Background(), ownerRequest(3))

	require.ErrorIs(t, err, ErrInvalidState)
}

func TestRateBooking_AccessDenied(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{booking: confirmedBooking()}, &fakeScheduleRepo{schedule: startedSchedule()}, &fakeTrainerRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{UserID: 8, Role: domain.RoleMember},
		BookingID: 200,
		Rating:    5,
	})

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestRateBooking_RatingOutOfRange(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{booking: confirmedBooking()}, &fakeScheduleRepo{schedule: startedSchedule()}, &fakeTrainerRepo{})

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.Execute(context.Background(), ownerRequest(rating))
		require.ErrorIs(t, err, ErrInvalidInput)
	}
}
