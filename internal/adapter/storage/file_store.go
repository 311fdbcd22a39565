package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"tasknest/internal/core/domain"
	"tasknest/internal/core/ports"
)

// Fixed-width, lexically sortable UTC timestamp form.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type document struct {
	Tasks []taskRecord `json:"tasks"`
}

type taskRecord struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	Priority    string   `json:"priority,omitempty"`
	CreatedAt   string   `json:"created_at"`
	ParentID    *string  `json:"parent_id"`
	Subtasks    []string `json:"subtasks"`
}

// FileStore owns the backing JSON file. Each Save replaces the whole
// document through a temp-file-and-rename sequence, so readers never
// observe a partial write. It performs no cross-process locking; two
// overlapping load-mutate-save cycles can lose the earlier update.
type FileStore struct {
	path string
}

var _ ports.TaskStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the full collection. A missing file is an empty collection;
// a file that exists but cannot be decoded is an error.
func (s *FileStore) Load(ctx context.Context) ([]domain.Task, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read task data from %s: %w", s.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse task data in %s: %w", s.path, err)
	}

	tasks := make([]domain.Task, 0, len(doc.Tasks))
	for _, rec := range doc.Tasks {
		task, err := mapRecordToDomainTask(rec)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Save serializes the full collection and atomically replaces the target
// file: write to a temp file in the same directory, fsync, close, rename.
// On any failure the temp file is removed and the target is left untouched.
func (s *FileStore) Save(ctx context.Context, tasks []domain.Task) error {
	doc := document{Tasks: make([]taskRecord, 0, len(tasks))}
	for _, task := range tasks {
		doc.Tasks = append(doc.Tasks, mapDomainTaskToRecord(task))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode task data: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tasks-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write task data: %w", err)
	}

	// Rename is the only step that makes the new state visible.
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// mapRecordToDomainTask applies the read-side defaults for optional fields
// (priority medium, no parent, no subtasks) and re-runs the entity
// validation so a malformed stored record fails the same way construction
// does.
func mapRecordToDomainTask(rec taskRecord) (domain.Task, error) {
	desc, err := domain.ValidateDescription(rec.Description)
	if err != nil {
		return domain.Task{}, err
	}

	priority := domain.PriorityMedium
	if rec.Priority != "" {
		priority = domain.Priority(rec.Priority)
		if !priority.Valid() {
			return domain.Task{}, domain.NewValidationError(
				"invalid priority %q: must be one of high, medium, low", rec.Priority)
		}
	}

	createdAt := time.Now().UTC()
	if rec.CreatedAt != "" {
		createdAt, err = time.Parse(timeLayout, rec.CreatedAt)
		if err != nil {
			createdAt, err = time.Parse(time.RFC3339Nano, rec.CreatedAt)
			if err != nil {
				return domain.Task{}, fmt.Errorf("failed to parse task data: bad created_at %q: %w", rec.CreatedAt, err)
			}
		}
		createdAt = createdAt.UTC()
	}

	task := domain.Task{
		ID:          rec.ID,
		Description: desc,
		Completed:   rec.Completed,
		Priority:    priority,
		CreatedAt:   createdAt,
		Subtasks:    rec.Subtasks,
	}
	if task.Subtasks == nil {
		task.Subtasks = []string{}
	}
	if rec.ParentID != nil {
		task.ParentID = *rec.ParentID
	}
	return task, nil
}

func mapDomainTaskToRecord(task domain.Task) taskRecord {
	rec := taskRecord{
		ID:          task.ID,
		Description: task.Description,
		Completed:   task.Completed,
		Priority:    string(task.Priority),
		CreatedAt:   task.CreatedAt.UTC().Format(timeLayout),
		Subtasks:    task.Subtasks,
	}
	if rec.Subtasks == nil {
		rec.Subtasks = []string{}
	}
	if task.ParentID != "" {
		value := task.ParentID
		rec.ParentID = &value
	}
	return rec
}
