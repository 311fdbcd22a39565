package ports

import (
	"context"

	"tasknest/internal/core/domain"
)

// TaskStore persists the whole task collection as one durable document.
// Save is all-or-nothing; it never leaves a partially written file behind.
type TaskStore interface {
	Load(ctx context.Context) ([]domain.Task, error)
	Save(ctx context.Context, tasks []domain.Task) error
}

// TaskService runs one load-mutate-save cycle per operation. Task
// references accept either a full id or an unambiguous short-id prefix.
type TaskService interface {
	Add(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Task, error)
	Find(ctx context.Context, ref string) (domain.Task, error)
	Complete(ctx context.Context, ref string) (domain.Task, error)
	Uncomplete(ctx context.Context, ref string) (domain.Task, error)
	SetPriority(ctx context.Context, ref string, priority domain.Priority) (domain.PriorityChange, error)
	Remove(ctx context.Context, ref string) (int, error)
}

// SearchService matches keywords against an in-memory collection; it does
// not touch storage.
type SearchService interface {
	Search(tasks []domain.Task, keywords []string, caseSensitive bool) ([]domain.Task, error)
}
