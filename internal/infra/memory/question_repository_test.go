package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"livequiz-coordinator/internal/domain"
)

func TestQuestionRepositoryCachesLoads(t *testing.T) {
	loader := &countingLoader{
		QuestionLoader: NewStaticQuestionLoader(map[string]domain.QuestionSet{
			"set-1": sampleSet(),
		}),
	}
	repo := NewQuestionRepository(loader, time.Minute)

	set, err := repo.GetQuestionSet(context.Background(), "set-1")
	if err != nil {
		t.Fatalf("get set: %v", err)
	}
	if len(set.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(set.Questions))
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}

	// Second call should hit cache, loader not incremented.
	_, _ = repo.GetQuestionSet(context.Background(), "set-1")
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
}

func TestStaticLoaderUnknownSet(t *testing.T) {
	repo := NewQuestionRepository(NewStaticQuestionLoader(nil), time.Minute)
	_, err := repo.GetQuestionSet(context.Background(), "missing")
	if !errors.Is(err, domain.ErrQuestionSetNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

type countingLoader struct {
	QuestionLoader
	calls int
}

func (l *countingLoader) LoadQuestionSet(ctx context.Context, setID string) (domain.QuestionSet, error) {
	l.calls++
	return l.QuestionLoader.LoadQuestionSet(ctx, setID)
}

func sampleSet() domain.QuestionSet {
	return domain.QuestionSet{
		ID:    "set-1",
		Title: "Sample",
		Questions: []domain.Question{
			{ID: 1, Text: "What is 2 + 2?", Options: []string{"3", "4"}, CorrectAnswer: 1},
		},
	}
}
