package app

import (
	"context"

	"livequiz-coordinator/internal/domain"
)

// QuestionRepository loads question-bank content (from cache/backing store).
type QuestionRepository interface {
	GetQuestionSet(ctx context.Context, setID string) (domain.QuestionSet, error)
}
