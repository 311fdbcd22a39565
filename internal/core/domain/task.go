package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

const (
	MaxDescriptionLength = 500
	DefaultMaxDepth      = 3
	ShortIDLength        = 8
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank orders priorities for listing: high sorts before medium before low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", NewValidationError("invalid priority %q: must be one of high, medium, low", s)
	}
	return p, nil
}

type Status string

const (
	StatusComplete   Status = "complete"
	StatusIncomplete Status = "incomplete"
)

type Task struct {
	ID          string
	Description string
	Completed   bool
	Priority    Priority
	CreatedAt   time.Time
	ParentID    string // empty for root tasks
	Subtasks    []string
}

// ShortID is the unambiguous-prefix form used to reference tasks externally.
func (t Task) ShortID() string {
	if len(t.ID) < ShortIDLength {
		return t.ID
	}
	return t.ID[:ShortIDLength]
}

type CreateTaskInput struct {
	Description string
	Priority    Priority
	ParentRef   string // full id or short-id prefix; empty for a root task
}

type ListFilter struct {
	Priority  Priority
	Status    Status
	ParentRef string
}

// PriorityChange is the result of a set-priority operation; callers display
// the prior value alongside the updated task.
type PriorityChange struct {
	Task     Task
	Previous Priority
}

// NewTask validates the raw fields and builds a task with a fresh id and
// creation timestamp. An empty priority defaults to medium.
func NewTask(description string, priority Priority, parentID string) (Task, error) {
	desc, err := ValidateDescription(description)
	if err != nil {
		return Task{}, err
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return Task{}, NewValidationError("invalid priority %q: must be one of high, medium, low", string(priority))
	}
	return Task{
		ID:          uuid.NewString(),
		Description: desc,
		Priority:    priority,
		CreatedAt:   time.Now().UTC(),
		ParentID:    parentID,
		Subtasks:    []string{},
	}, nil
}

func ValidateDescription(raw string) (string, error) {
	desc := strings.TrimSpace(raw)
	if desc == "" {
		return "", NewValidationError("task description cannot be empty")
	}
	if len(desc) > MaxDescriptionLength {
		return "", NewValidationError("task description cannot exceed %d characters", MaxDescriptionLength)
	}
	return desc, nil
}

// IndexByID builds the id lookup used by the tree validators and traversals.
// Parent and subtask references are always resolved through this index
// rather than held as pointers.
func IndexByID(tasks []Task) map[string]Task {
	byID := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	return byID
}

// CheckCycle walks the ancestor chain starting at newParentID and fails if
// taskID is encountered. A repeated ancestor means the stored tree is
// already corrupt; the walk bails out without error so it always terminates.
func CheckCycle(taskID, newParentID string, byID map[string]Task) error {
	if newParentID == "" {
		return nil
	}
	visited := make(map[string]struct{})
	current := newParentID
	for current != "" {
		if current == taskID {
			return NewValidationError("circular dependency detected: task cannot be its own ancestor")
		}
		if _, seen := visited[current]; seen {
			break
		}
		visited[current] = struct{}{}
		ancestor, ok := byID[current]
		if !ok {
			break
		}
		current = ancestor.ParentID
	}
	return nil
}

// CheckDepth verifies that a task added under parentID would not exceed
// maxDepth levels, counting the new task itself and with a root task at
// depth 1. It bounds the tree that would result, so it runs before the task
// is attached.
func CheckDepth(parentID string, byID map[string]Task, maxDepth int) error {
	if parentID == "" {
		return nil
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	depth := 1 // the task being added
	visited := make(map[string]struct{})
	current := parentID
	for current != "" {
		if _, seen := visited[current]; seen {
			break
		}
		visited[current] = struct{}{}
		depth++
		if depth > maxDepth {
			return NewValidationError("maximum task depth of %d levels would be exceeded", maxDepth)
		}
		ancestor, ok := byID[current]
		if !ok {
			break
		}
		current = ancestor.ParentID
	}
	return nil
}
