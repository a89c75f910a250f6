package commands

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tendhq/tend/internal/habits/domain"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

func TestSetStatusHandler_Handle(t *testing.T) {
	ownerID := uuid.New()
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	clock := sharedDomain.FixedClock{Instant: now}

	newStoredHabit := func(t *testing.T) *domain.Habit {
		t.Helper()
		habit, err := domain.NewHabit(ownerID, "Read", "")
		require.NoError(t, err)
		habit.ClearDomainEvents()
		return habit
	}

	t.Run("marks today completed", func(t *testing.T) {
		repo := new(mockHabitRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewSetStatusHandler(repo, outboxRepo, uow, clock)

		habit := newStoredHabit(t)
		ctx, txCtx := newTxContexts()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("FindByID", txCtx, habit.ID()).Return(habit, nil)
		repo.On("Save", txCtx, habit).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, SetStatusCommand{
			HabitID: habit.ID(),
			OwnerID: ownerID,
			Status:  "completed",
		})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "2024-03-15", result.Day)
		assert.Equal(t, domain.StatusCompleted, result.TodayStatus)
		assert.Equal(t, 1, result.Streak)

		repo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
	})

	t.Run("records a past day without touching today", func(t *testing.T) {
		repo := new(mockHabitRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewSetStatusHandler(repo, outboxRepo, uow, clock)

		habit := newStoredHabit(t)
		ctx, txCtx := newTxContexts()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("FindByID", txCtx, habit.ID()).Return(habit, nil)
		repo.On("Save", txCtx, habit).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, SetStatusCommand{
			HabitID: habit.ID(),
			OwnerID: ownerID,
			Day:     "2024-03-10",
			Status:  "failed",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusUntracked, result.TodayStatus)

		edited, err := domain.ParseDayKey("2024-03-10")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusFailed, habit.Ledger().Get(edited))
	})

	t.Run("rejects a malformed day", func(t *testing.T) {
		repo := new(mockHabitRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewSetStatusHandler(repo, outboxRepo, uow, clock)

		result, err := handler.Handle(t.Context(), SetStatusCommand{
			HabitID: uuid.New(),
			OwnerID: ownerID,
			Day:     "03/15/2024",
			Status:  "completed",
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrInvalidDayKey)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		repo := new(mockHabitRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewSetStatusHandler(repo, outboxRepo, uow, clock)

		habit := newStoredHabit(t)
		ctx, txCtx := newTxContexts()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByID", txCtx, habit.ID()).Return(habit, nil)

		result, err := handler.Handle(ctx, SetStatusCommand{
			HabitID: habit.ID(),
			OwnerID: ownerID,
			Status:  "skipped",
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)

		uow.AssertExpectations(t)
	})

	t.Run("fails when habit does not exist", func(t *testing.T) {
		repo := new(mockHabitRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewSetStatusHandler(repo, outboxRepo, uow, clock)

		ctx, txCtx := newTxContexts()
		habitID := uuid.New()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByID", txCtx, habitID).Return(nil, nil)

		result, err := handler.Handle(ctx, SetStatusCommand{
			HabitID: habitID,
			OwnerID: ownerID,
			Status:  "completed",
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrHabitNotFound)
	})

	t.Run("fails when caller is not the owner", func(t *testing.T) {
		repo := new(mockHabitRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewSetStatusHandler(repo, outboxRepo, uow, clock)

		habit := newStoredHabit(t)
		ctx, txCtx := newTxContexts()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByID", txCtx, habit.ID()).Return(habit, nil)

		result, err := handler.Handle(ctx, SetStatusCommand{
			HabitID: habit.ID(),
			OwnerID: uuid.New(),
			Status:  "completed",
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrNotOwner)
	})
}

func TestArchiveHabitHandler_Handle(t *testing.T) {
	ownerID := uuid.New()

	t.Run("archives a habit", func(t *testing.T) {
		repo := new(mockHabitRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewArchiveHabitHandler(repo, outboxRepo, uow)

		habit, err := domain.NewHabit(ownerID, "Read", "")
		require.NoError(t, err)
		habit.ClearDomainEvents()

		ctx, txCtx := newTxContexts()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("FindByID", txCtx, habit.ID()).Return(habit, nil)
		repo.On("Save", txCtx, habit).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		err = handler.Handle(ctx, ArchiveHabitCommand{HabitID: habit.ID(), OwnerID: ownerID})

		require.NoError(t, err)
		assert.True(t, habit.IsArchived())

		repo.AssertExpectations(t)
	})

	t.Run("fails when habit does not exist", func(t *testing.T) {
		repo := new(mockHabitRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewArchiveHabitHandler(repo, outboxRepo, uow)

		ctx, txCtx := newTxContexts()
		habitID := uuid.New()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByID", txCtx, habitID).Return(nil, nil)

		err := handler.Handle(ctx, ArchiveHabitCommand{HabitID: habitID, OwnerID: ownerID})
		assert.ErrorIs(t, err, ErrHabitNotFound)
	})
}

func TestUpdateReminderHandler_Handle(t *testing.T) {
	ownerID := uuid.New()

	t.Run("sets a reminder schedule", func(t *testing.T) {
		repo := new(mockHabitRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewUpdateReminderHandler(repo, outboxRepo, uow)

		habit, err := domain.NewHabit(ownerID, "Read", "")
		require.NoError(t, err)
		habit.ClearDomainEvents()

		ctx, txCtx := newTxContexts()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("FindByID", txCtx, habit.ID()).Return(habit, nil)
		repo.On("Save", txCtx, habit).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, UpdateReminderCommand{
			HabitID:      habit.ID(),
			OwnerID:      ownerID,
			ReminderTime: "07:30",
			ReminderDays: []time.Weekday{time.Monday},
		})

		require.NoError(t, err)
		assert.Equal(t, "07:30", result.ReminderTime)
		assert.Equal(t, []time.Weekday{time.Monday}, result.ReminderDays)
	})

	t.Run("rejects a malformed reminder time", func(t *testing.T) {
		repo := new(mockHabitRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewUpdateReminderHandler(repo, outboxRepo, uow)

		habit, err := domain.NewHabit(ownerID, "Read", "")
		require.NoError(t, err)

		ctx, txCtx := newTxContexts()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByID", txCtx, habit.ID()).Return(habit, nil)

		result, err := handler.Handle(ctx, UpdateReminderCommand{
			HabitID:      habit.ID(),
			OwnerID:      ownerID,
			ReminderTime: "7:30pm",
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrInvalidReminderTime)
	})
}
