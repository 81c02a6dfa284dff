package leave_waitlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitnessClassService/internal/domain"
	waitlistRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/waitlist"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeScheduleRepo struct {
	lockCalls int
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id int64) (*domain.Schedule, error) {
	f.lockCalls++
	return &domain.Schedule{ID: id, Status: domain.ScheduleActive, StartTime: time.Now().Add(time.Hour)}, nil
}

type fakeWaitlistRepo struct {
	entry *domain.WaitingListEntry

	deletedID     int64
	shiftSchedule int64
	shiftAfter    int
}

func (f *fakeWaitlistRepo) GetByID(_ context.Context, id int64) (*domain.WaitingListEntry, error) {
	if f.entry == nil || f.entry.ID != id {
		return nil, waitlistRepo.ErrEntryNotFound
	}
	e := *f.entry
	return &e, nil
}

func (f *fakeWaitlistRepo) Delete(_ context.Context, id int64) error {
	f.deletedID = id
	return nil
}

func (f *fakeWaitlistRepo) ShiftPositionsAfter(_ context.Context, scheduleID int64, position int) error {
	f.shiftSchedule = scheduleID
	f.shiftAfter = position
	return nil
}

func TestLeaveWaitlist_RenumbersTail(t *testing.T) {
	// Очередь X(1), Y(2), Z(3): выход Y сдвигает Z на позицию 2
	wr := &fakeWaitlistRepo{
		entry: &domain.WaitingListEntry{ID: 32, UserID: 7, ScheduleID: 10, Position: 2},
	}
	sr := &fakeScheduleRepo{}
	uc := NewUseCase(sr, wr, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:   domain.Actor{UserID: 7, Role: domain.RoleMember},
		EntryID: 32,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Position)
	assert.Equal(t, int64(32), wr.deletedID)
	assert.Equal(t, int64(10), wr.shiftSchedule)
	assert.Equal(t, 2, wr.shiftAfter)
	assert.Equal(t, 1, sr.lockCalls)
}

func TestLeaveWaitlist_AdminCanRemoveAnyEntry(t *testing.T) {
	wr := &fakeWaitlistRepo{
		entry: &domain.WaitingListEntry{ID: 32, UserID: 7, ScheduleID: 10, Position: 1},
	}
	uc := NewUseCase(&fakeScheduleRepo{}, wr, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:   domain.Actor{UserID: 999, Role: domain.RoleAdmin},
		EntryID: 32,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(32), wr.deletedID)
}

func TestLeaveWaitlist_AccessDenied(t *testing.T) {
	wr := &fakeWaitlistRepo{
		entry: &domain.WaitingListEntry{ID: 32, UserID: 7, ScheduleID: 10, Position: 1},
	}
	uc := NewUseCase(&fakeScheduleRepo{}, wr, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:   domain.Actor{UserID: 8, Role: domain.RoleMember},
		EntryID: 32,
	})

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, int64(0), wr.deletedID)
}

func TestLeaveWaitlist_EntryNotFound(t *testing.T) {
	uc := NewUseCase(&fakeScheduleRepo{}, &fakeWaitlistRepo{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:   domain.Actor{UserID: 7, Role: domain.RoleMember},
		EntryID: 404,
	})

	require.ErrorIs(t, err, ErrEntryNotFound)
}
