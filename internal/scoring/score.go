// Package scoring maps a question set and a participant's answers to an
// integer score. It is pure; the coordinator itself never recomputes scores
// and stores whatever clients report.
package scoring

import "livequiz-coordinator/internal/domain"

// Score awards each answer whose selected option matches the question's
// correct option. Unknown question ids are ignored. A question's points
// default to 1 when unset.
func Score(set domain.QuestionSet, answers []domain.Answer) int {
	total := 0
	for _, answer := range answers {
		question, ok := findQuestion(set, answer.QuestionID)
		if !ok {
			continue
		}
		if question.CorrectAnswer != answer.SelectedOption {
			continue
		}
		points := question.Points
		if points == 0 {
			points = 1
		}
		total += points
	}
	return total
}

func findQuestion(set domain.QuestionSet, id int) (domain.Question, bool) {
	for i := range set.Questions {
		if set.Questions[i].ID == id {
			return set.Questions[i], true
		}
	}
	return domain.Question{}, false
}
