package service

import (
	"strings"

	"tasknest/internal/core/domain"
	"tasknest/internal/core/ports"
)

const MaxKeywordLength = 100

// SearchService matches keywords against task descriptions by substring
// containment with OR semantics: a task matches when any keyword matches.
// Results keep the original collection order; callers re-sort for display.
type SearchService struct{}

var _ ports.SearchService = (*SearchService)(nil)

func NewSearchService() *SearchService {
	return &SearchService{}
}

func (s *SearchService) Search(tasks []domain.Task, keywords []string, caseSensitive bool) ([]domain.Task, error) {
	for _, keyword := range keywords {
		if strings.TrimSpace(keyword) == "" {
			return nil, domain.NewValidationError("keywords cannot be empty")
		}
		if len(keyword) > MaxKeywordLength {
			return nil, domain.NewValidationError("keyword exceeds maximum length of %d characters", MaxKeywordLength)
		}
	}

	needles := make([]string, len(keywords))
	for i, keyword := range keywords {
		if caseSensitive {
			needles[i] = keyword
		} else {
			needles[i] = strings.ToLower(keyword)
		}
	}

	var matches []domain.Task
	for _, task := range tasks {
		haystack := task.Description
		if !caseSensitive {
			haystack = strings.ToLower(haystack)
		}
		for _, needle := range needles {
			if strings.Contains(haystack, needle) {
				matches = append(matches, task)
				break
			}
		}
	}
	return matches, nil
}
