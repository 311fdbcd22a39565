package dto

type TaskItem struct {
	ID          string   `json:"id"`
	ShortID     string   `json:"short_id"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	Priority    string   `json:"priority"`
	CreatedAt   string   `json:"created_at"`
	ParentID    *string  `json:"parent_id,omitempty"`
	Subtasks    []string `json:"subtasks,omitempty"`
}

type AddResult struct {
	Success bool     `json:"success"`
	Task    TaskItem `json:"task"`
}

type ListResult struct {
	Count int        `json:"count"`
	Tasks []TaskItem `json:"tasks"`
}

type RemoveResult struct {
	Success bool `json:"success"`
	Removed int  `json:"removed"`
}

type PriorityResult struct {
	Success  bool     `json:"success"`
	Task     TaskItem `json:"task"`
	Previous string   `json:"previous_priority"`
}
