package mapper

import (
	"time"

	"tasknest/internal/adapter/cli/dto"
	"tasknest/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:          task.ID,
		ShortID:     task.ShortID(),
		Description: task.Description,
		Completed:   task.Completed,
		Priority:    string(task.Priority),
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
	}

	if task.ParentID != "" {
		value := task.ParentID
		item.ParentID = &value
	}

	if len(task.Subtasks) > 0 {
		item.Subtasks = append([]string(nil), task.Subtasks...)
	}

	return item
}
