package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tasknest/internal/app/service"
	"tasknest/internal/core/domain"
)

type taskStoreMock struct {
	mock.Mock
}

func (m *taskStoreMock) Load(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskStoreMock) Save(ctx context.Context, tasks []domain.Task) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func TestTaskService_AddPropagatesLoadError(t *testing.T) {
	storeMock := new(taskStoreMock)
	storeMock.On("Load", mock.Anything).Return(nil, errors.New("disk is gone")).Once()
	svc := service.NewTaskService(storeMock, 0)

	_, err := svc.Add(context.Background(), domain.CreateTaskInput{Description: "x"})
	require.Error(t, err)
	require.False(t, domain.IsValidation(err))
	require.False(t, domain.IsNotFound(err))
	storeMock.AssertExpectations(t)
}

func TestTaskService_CompletePropagatesSaveError(t *testing.T) {
	task, err := domain.NewTask("flaky", domain.PriorityMedium, "")
	require.NoError(t, err)

	storeMock := new(taskStoreMock)
	storeMock.On("Load", mock.Anything).Return([]domain.Task{task}, nil).Once()
	storeMock.On("Save", mock.Anything, mock.Anything).Return(errors.New("write failed")).Once()
	svc := service.NewTaskService(storeMock, 0)

	_, err = svc.Complete(context.Background(), task.ID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "write failed")
	storeMock.AssertExpectations(t)
}

func TestTaskService_AddValidationFailureDoesNotSave(t *testing.T) {
	storeMock := new(taskStoreMock)
	storeMock.On("Load", mock.Anything).Return([]domain.Task{}, nil).Once()
	svc := service.NewTaskService(storeMock, 0)

	// No Save expectation: a validation failure must have no observable
	// effect on the store.
	_, err := svc.Add(context.Background(), domain.CreateTaskInput{Description: "   "})
	require.Error(t, err)
	require.True(t, domain.IsValidation(err))
	storeMock.AssertExpectations(t)
}
