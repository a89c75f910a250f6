package commands

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tendhq/tend/internal/journal/domain"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
)

type mockGoalRepo struct {
	mock.Mock
}

func (m *mockGoalRepo) Save(ctx context.Context, goal *domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *mockGoalRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *mockGoalRepo) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Goal, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Goal), args.Error(1)
}

func (m *mockGoalRepo) CountGoals(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (int, error) {
	args := m.Called(ctx, ownerID, start, end)
	return args.Int(0), args.Error(1)
}

func (m *mockGoalRepo) CountCompletedGoals(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (int, error) {
	args := m.Called(ctx, ownerID, start, end)
	return args.Int(0), args.Error(1)
}

type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) Save(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockOutboxRepo) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) MarkPublished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	args := m.Called(ctx, id, errMsg, nextRetryAt)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkDead(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetFailed(ctx context.Context, maxRetries, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, maxRetries, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	args := m.Called(ctx, olderThanDays)
	return args.Get(0).(int64), args.Error(1)
}

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type txKey struct{}

func newTxContexts() (context.Context, context.Context) {
	ctx := context.Background()
	return ctx, context.WithValue(ctx, txKey{}, "transaction")
}

func TestAddGoalHandler_Handle(t *testing.T) {
	ownerID := uuid.New()

	t.Run("adds a goal", func(t *testing.T) {
		repo := new(mockGoalRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewAddGoalHandler(repo, outboxRepo, uow)

		ctx, txCtx := newTxContexts()
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("Save", txCtx, mock.AnythingOfType("*domain.Goal")).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, AddGoalCommand{OwnerID: ownerID, Title: "Run a 10k"})

		require.NoError(t, err)
		assert.Equal(t, "Run a 10k", result.Title)
		repo.AssertExpectations(t)
	})

	t.Run("rejects an empty title", func(t *testing.T) {
		repo := new(mockGoalRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewAddGoalHandler(repo, outboxRepo, uow)

		ctx, txCtx := newTxContexts()
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)

		result, err := handler.Handle(ctx, AddGoalCommand{OwnerID: ownerID, Title: " "})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrGoalEmptyTitle)
	})
}

func TestCompleteGoalHandler_Handle(t *testing.T) {
	ownerID := uuid.New()
	clock := sharedDomain.FixedClock{Instant: time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)}

	t.Run("completes a goal", func(t *testing.T) {
		repo := new(mockGoalRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCompleteGoalHandler(repo, outboxRepo, uow, clock)

		goal, err := domain.NewGoal(ownerID, "Run a 10k")
		require.NoError(t, err)
		goal.ClearDomainEvents()

		ctx, txCtx := newTxContexts()
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("FindByID", txCtx, goal.ID()).Return(goal, nil)
		repo.On("Save", txCtx, goal).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		err = handler.Handle(ctx, CompleteGoalCommand{GoalID: goal.ID(), OwnerID: ownerID})

		require.NoError(t, err)
		assert.True(t, goal.IsCompleted())
	})

	t.Run("fails when goal does not exist", func(t *testing.T) {
		repo := new(mockGoalRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCompleteGoalHandler(repo, outboxRepo, uow, clock)

		ctx, txCtx := newTxContexts()
		goalID := uuid.New()
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByID", txCtx, goalID).Return(nil, nil)

		err := handler.Handle(ctx, CompleteGoalCommand{GoalID: goalID, OwnerID: ownerID})
		assert.ErrorIs(t, err, ErrGoalNotFound)
	})

	t.Run("fails when caller is not the owner", func(t *testing.T) {
		repo := new(mockGoalRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCompleteGoalHandler(repo, outboxRepo, uow, clock)

		goal, err := domain.NewGoal(ownerID, "Run a 10k")
		require.NoError(t, err)

		ctx, txCtx := newTxContexts()
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByID", txCtx, goal.ID()).Return(goal, nil)

		err = handler.Handle(ctx, CompleteGoalCommand{GoalID: goal.ID(), OwnerID: uuid.New()})
		assert.ErrorIs(t, err, ErrNotOwner)
	})
}
