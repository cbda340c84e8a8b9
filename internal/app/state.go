package app

import (
	"sort"

	"livequiz-coordinator/internal/domain"
)

// SessionState holds the participant registry, the result registry and the
// aggregate quiz state for one session process. Both registries are keyed by
// connection id and remember arrival order so that snapshots and ranked
// leaderboards are deterministic. All mutation goes through the methods
// below, which keep finishedParticipants within [0, totalParticipants].
type SessionState struct {
	participants     map[string]*domain.Participant
	participantOrder []string
	results          map[string]*domain.Result
	resultOrder      []string
	quiz             domain.QuizState
}

func NewSessionState() *SessionState {
	return &SessionState{
		participants: make(map[string]*domain.Participant),
		results:      make(map[string]*domain.Result),
	}
}

// upsertParticipant inserts or overwrites a registration. A re-registered
// connection keeps its original arrival position.
func (s *SessionState) upsertParticipant(p domain.Participant) {
	if _, ok := s.participants[p.ID]; !ok {
		s.participantOrder = append(s.participantOrder, p.ID)
	}
	s.participants[p.ID] = &p
	s.quiz.TotalParticipants = len(s.participants)
}

func (s *SessionState) participant(connID string) (*domain.Participant, bool) {
	p, ok := s.participants[connID]
	return p, ok
}

// upsertResult replaces the stored result for a connection wholesale.
func (s *SessionState) upsertResult(connID string, r domain.Result) {
	if _, ok := s.results[connID]; !ok {
		s.resultOrder = append(s.resultOrder, connID)
	}
	s.results[connID] = &r
}

func (s *SessionState) result(connID string) (*domain.Result, bool) {
	r, ok := s.results[connID]
	return r, ok
}

// remove deletes a connection's participant and result atomically and
// re-derives the counters. finishedParticipants is clamped so the
// [0, total] invariant survives a finisher disconnecting.
func (s *SessionState) remove(connID string) bool {
	if _, ok := s.participants[connID]; !ok {
		return false
	}
	delete(s.participants, connID)
	delete(s.results, connID)
	s.participantOrder = deleteKey(s.participantOrder, connID)
	s.resultOrder = deleteKey(s.resultOrder, connID)
	s.quiz.TotalParticipants = len(s.participants)
	if s.quiz.FinishedParticipants > s.quiz.TotalParticipants {
		s.quiz.FinishedParticipants = s.quiz.TotalParticipants
	}
	return true
}

func (s *SessionState) markFinished() {
	s.quiz.FinishedParticipants++
}

// resetRound starts a fresh round, keeping the current registry size.
func (s *SessionState) resetRound() {
	s.quiz = domain.QuizState{
		InProgress:           false,
		TotalParticipants:    len(s.participants),
		FinishedParticipants: 0,
	}
}

func (s *SessionState) quizState() domain.QuizState {
	return s.quiz
}

// participantList snapshots the registry in arrival order.
func (s *SessionState) participantList() []domain.Participant {
	list := make([]domain.Participant, 0, len(s.participantOrder))
	for _, id := range s.participantOrder {
		list = append(list, *s.participants[id])
	}
	return list
}

// rankedResults snapshots all results sorted score-descending. The sort is
// stable over arrival order so tied scores keep their relative positions.
func (s *SessionState) rankedResults() []domain.Result {
	list := make([]domain.Result, 0, len(s.resultOrder))
	for _, id := range s.resultOrder {
		list = append(list, *s.results[id])
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Score > list[j].Score
	})
	return list
}

func deleteKey(order []string, key string) []string {
	for i, k := range order {
		if k == key {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
