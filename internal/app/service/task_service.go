package service

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"tasknest/internal/core/domain"
	"tasknest/internal/core/ports"
)

// TaskService orchestrates one load-mutate-save cycle per operation against
// the whole-document store. It holds no collection state between calls.
type TaskService struct {
	store    ports.TaskStore
	maxDepth int
}

var _ ports.TaskService = (*TaskService)(nil)

func NewTaskService(store ports.TaskStore, maxDepth int) *TaskService {
	if maxDepth <= 0 {
		maxDepth = domain.DefaultMaxDepth
	}
	return &TaskService{store: store, maxDepth: maxDepth}
}

func (s *TaskService) Add(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	tasks, err := s.store.Load(ctx)
	if err != nil {
		return domain.Task{}, err
	}

	parentID := ""
	if input.ParentRef != "" {
		idx, err := findIndex(tasks, input.ParentRef)
		if err != nil {
			if domain.IsNotFound(err) {
				return domain.Task{}, domain.NewTaskNotFound("parent task not found: %s", input.ParentRef)
			}
			return domain.Task{}, err
		}
		parentID = tasks[idx].ID
	}

	task, err := domain.NewTask(input.Description, input.Priority, parentID)
	if err != nil {
		return domain.Task{}, err
	}

	if parentID != "" {
		byID := domain.IndexByID(tasks)
		if err := domain.CheckCycle(task.ID, parentID, byID); err != nil {
			return domain.Task{}, err
		}
		if err := domain.CheckDepth(parentID, byID, s.maxDepth); err != nil {
			return domain.Task{}, err
		}
		for i := range tasks {
			if tasks[i].ID == parentID {
				tasks[i].Subtasks = append(tasks[i].Subtasks, task.ID)
				break
			}
		}
	}

	tasks = append(tasks, task)
	if err := s.store.Save(ctx, tasks); err != nil {
		return domain.Task{}, err
	}

	zap.L().Debug("task added",
		zap.String("task_id", task.ID),
		zap.String("priority", string(task.Priority)),
		zap.String("parent_id", parentID),
	)
	return task, nil
}

// List returns a filtered view ordered by priority rank (high before medium
// before low), newest created first within each rank. The sort is stable.
func (s *TaskService) List(ctx context.Context, filter domain.ListFilter) ([]domain.Task, error) {
	tasks, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	if filter.Priority != "" && !filter.Priority.Valid() {
		return nil, domain.NewValidationError("invalid priority %q: must be one of high, medium, low", string(filter.Priority))
	}
	switch filter.Status {
	case "", domain.StatusComplete, domain.StatusIncomplete:
	default:
		return nil, domain.NewValidationError("invalid status %q: must be complete or incomplete", string(filter.Status))
	}

	parentID := ""
	if filter.ParentRef != "" {
		idx, err := findIndex(tasks, filter.ParentRef)
		if err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.NewTaskNotFound("parent task not found: %s", filter.ParentRef)
			}
			return nil, err
		}
		parentID = tasks[idx].ID
	}

	filtered := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		if filter.Status == domain.StatusComplete && !t.Completed {
			continue
		}
		if filter.Status == domain.StatusIncomplete && t.Completed {
			continue
		}
		if parentID != "" && t.ParentID != parentID {
			continue
		}
		filtered = append(filtered, t)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Priority.Rank() != filtered[j].Priority.Rank() {
			return filtered[i].Priority.Rank() < filtered[j].Priority.Rank()
		}
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered, nil
}

// Find resolves a full id or an 8-character short-id prefix. A prefix
// matching more than one task is a validation error, not a pick.
func (s *TaskService) Find(ctx context.Context, ref string) (domain.Task, error) {
	tasks, err := s.store.Load(ctx)
	if err != nil {
		return domain.Task{}, err
	}
	idx, err := findIndex(tasks, ref)
	if err != nil {
		return domain.Task{}, err
	}
	return tasks[idx], nil
}

func (s *TaskService) Complete(ctx context.Context, ref string) (domain.Task, error) {
	return s.setCompleted(ctx, ref, true)
}

func (s *TaskService) Uncomplete(ctx context.Context, ref string) (domain.Task, error) {
	return s.setCompleted(ctx, ref, false)
}

func (s *TaskService) setCompleted(ctx context.Context, ref string, completed bool) (domain.Task, error) {
	tasks, err := s.store.Load(ctx)
	if err != nil {
		return domain.Task{}, err
	}
	idx, err := findIndex(tasks, ref)
	if err != nil {
		return domain.Task{}, err
	}
	tasks[idx].Completed = completed
	if err := s.store.Save(ctx, tasks); err != nil {
		return domain.Task{}, err
	}
	zap.L().Debug("task completion updated",
		zap.String("task_id", tasks[idx].ID),
		zap.Bool("completed", completed),
	)
	return tasks[idx], nil
}

func (s *TaskService) SetPriority(ctx context.Context, ref string, priority domain.Priority) (domain.PriorityChange, error) {
	if !priority.Valid() {
		return domain.PriorityChange{}, domain.NewValidationError(
			"invalid priority %q: must be one of high, medium, low", string(priority))
	}

	tasks, err := s.store.Load(ctx)
	if err != nil {
		return domain.PriorityChange{}, err
	}
	idx, err := findIndex(tasks, ref)
	if err != nil {
		return domain.PriorityChange{}, err
	}

	previous := tasks[idx].Priority
	tasks[idx].Priority = priority
	if err := s.store.Save(ctx, tasks); err != nil {
		return domain.PriorityChange{}, err
	}
	return domain.PriorityChange{Task: tasks[idx], Previous: previous}, nil
}

// Remove deletes a task and its entire subtree, collected pre-order over
// the subtasks index. It reports how many tasks were dropped.
func (s *TaskService) Remove(ctx context.Context, ref string) (int, error) {
	tasks, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	idx, err := findIndex(tasks, ref)
	if err != nil {
		return 0, err
	}
	target := tasks[idx]

	byID := domain.IndexByID(tasks)
	removed := make(map[string]struct{})
	var collect func(id string)
	collect = func(id string) {
		if _, done := removed[id]; done {
			return
		}
		removed[id] = struct{}{}
		t, ok := byID[id]
		if !ok {
			return
		}
		for _, sub := range t.Subtasks {
			collect(sub)
		}
	}
	collect(target.ID)

	if target.ParentID != "" {
		for i := range tasks {
			if tasks[i].ID == target.ParentID {
				tasks[i].Subtasks = withoutID(tasks[i].Subtasks, target.ID)
				break
			}
		}
	}

	kept := make([]domain.Task, 0, len(tasks)-len(removed))
	for _, t := range tasks {
		if _, gone := removed[t.ID]; !gone {
			kept = append(kept, t)
		}
	}

	if err := s.store.Save(ctx, kept); err != nil {
		return 0, err
	}
	zap.L().Debug("task removed",
		zap.String("task_id", target.ID),
		zap.Int("removed", len(removed)),
	)
	return len(removed), nil
}

// findIndex resolves ref against the loaded collection: exact id match
// first, then a unique match on the first 8 characters when ref is at
// least that long.
func findIndex(tasks []domain.Task, ref string) (int, error) {
	for i := range tasks {
		if tasks[i].ID == ref {
			return i, nil
		}
	}

	if len(ref) >= domain.ShortIDLength {
		prefix := ref[:domain.ShortIDLength]
		matchIdx := -1
		matches := 0
		for i := range tasks {
			if strings.HasPrefix(tasks[i].ID, prefix) {
				matches++
				matchIdx = i
			}
		}
		if matches > 1 {
			return -1, domain.NewValidationError("ambiguous task id %q: matches multiple tasks", ref)
		}
		if matches == 1 {
			return matchIdx, nil
		}
	}

	return -1, domain.NewTaskNotFound("task not found: %s", ref)
}

func withoutID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}
