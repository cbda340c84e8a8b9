package app

import (
	"sync"

	"github.com/google/uuid"

	"livequiz-coordinator/internal/domain"
)

// Event names broadcast to every connected client.
const (
	EventParticipantsUpdated   = "participants-updated"
	EventQuizStateUpdated      = "quiz-state-updated"
	EventQuizStarted           = "quiz-started"
	EventLiveLeaderboardUpdate = "live-leaderboard-update"
	EventAllCompleted          = "all-completed"
)

// Event is one named broadcast with its payload snapshot.
type Event struct {
	Name    string
	Payload any
}

// IdentityProvider mints an opaque identity for participants who register
// without a wallet address. Injected so tests can pin deterministic ids.
type IdentityProvider func() string

// DefaultIdentityProvider returns a fresh "user_" prefixed random identity.
func DefaultIdentityProvider() string {
	return "user_" + uuid.NewString()
}

// Coordinator is the sole authority over SessionState. Apply serializes
// intents under a single lock, so each one is reduced to completion and its
// events published before the next is handled. Every operation is a
// defensive no-op on unknown connection ids; none of them error.
type Coordinator struct {
	mu       sync.Mutex
	state    *SessionState
	bus      *Broadcaster
	identity IdentityProvider
}

func NewCoordinator(identity IdentityProvider) *Coordinator {
	if identity == nil {
		identity = DefaultIdentityProvider
	}
	return &Coordinator{
		state:    NewSessionState(),
		bus:      NewBroadcaster(),
		identity: identity,
	}
}

// Apply reduces one intent against the session state and broadcasts the
// resulting events in production order. The returned slice is the same
// batch, mainly useful to callers and tests; an unknown connection id
// yields nil and nothing is broadcast.
func (c *Coordinator) Apply(intent Intent) []Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	events := c.reduce(intent)
	c.bus.Publish(events...)
	return events
}

// Subscribe registers a listener for broadcast events. The caller must
// invoke the returned cancel function to avoid leaks.
func (c *Coordinator) Subscribe() (<-chan Event, func()) {
	return c.bus.Subscribe()
}

// ParticipantCount reports the current registry size.
func (c *Coordinator) ParticipantCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.quizState().TotalParticipants
}

// Participants snapshots the registry in arrival order.
func (c *Coordinator) Participants() []domain.Participant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.participantList()
}

// QuizState snapshots the aggregate state.
func (c *Coordinator) QuizState() domain.QuizState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.quizState()
}

func (c *Coordinator) reduce(intent Intent) []Event {
	switch in := intent.(type) {
	case Register:
		return c.register(in)
	case StartQuiz:
		return c.startQuiz(in)
	case ReportProgress:
		return c.reportProgress(in)
	case CompleteQuiz:
		return c.completeQuiz(in)
	case Disconnect:
		return c.disconnect(in)
	}
	return nil
}

func (c *Coordinator) register(in Register) []Event {
	wallet := in.WalletAddress
	if wallet == "" {
		wallet = c.identity()
	}
	c.state.upsertParticipant(domain.Participant{
		ID:            in.ConnID,
		Name:          in.Name,
		WalletAddress: wallet,
		Status:        domain.StatusWaiting,
	})
	return []Event{
		{Name: EventParticipantsUpdated, Payload: c.state.participantList()},
		{Name: EventQuizStateUpdated, Payload: c.state.quizState()},
	}
}

func (c *Coordinator) startQuiz(in StartQuiz) []Event {
	p, ok := c.state.participant(in.ConnID)
	if !ok {
		return nil
	}
	p.Status = domain.StatusInProgress
	p.CurrentQuestion = 0
	c.state.quiz.InProgress = true
	return []Event{
		{Name: EventQuizStarted},
		{Name: EventParticipantsUpdated, Payload: c.state.participantList()},
		{Name: EventQuizStateUpdated, Payload: c.state.quizState()},
	}
}

func (c *Coordinator) reportProgress(in ReportProgress) []Event {
	p, ok := c.state.participant(in.ConnID)
	if !ok {
		return nil
	}
	p.CurrentQuestion = in.QuestionIndex

	if r, ok := c.state.result(in.ConnID); ok {
		r.Score = in.Score
		r.CompletedQuestions = in.QuestionIndex + 1
	} else {
		c.state.upsertResult(in.ConnID, domain.Result{
			Name:               p.Name,
			WalletAddress:      p.WalletAddress,
			Score:              in.Score,
			Answers:            []domain.Answer{},
			CompletedQuestions: in.QuestionIndex + 1,
		})
	}

	return []Event{
		{Name: EventParticipantsUpdated, Payload: c.state.participantList()},
		{Name: EventLiveLeaderboardUpdate, Payload: c.state.rankedResults()},
	}
}

func (c *Coordinator) completeQuiz(in CompleteQuiz) []Event {
	p, ok := c.state.participant(in.ConnID)
	if !ok {
		return nil
	}
	p.Status = domain.StatusCompleted

	// Final results replace any interim record wholesale; name and wallet
	// always come from the stored participant, not the payload.
	c.state.upsertResult(in.ConnID, domain.Result{
		Name:          p.Name,
		WalletAddress: p.WalletAddress,
		Score:         in.Score,
		Answers:       in.Answers,
	})
	c.state.markFinished()

	events := []Event{
		{Name: EventLiveLeaderboardUpdate, Payload: c.state.rankedResults()},
	}

	quiz := c.state.quizState()
	if quiz.FinishedParticipants == quiz.TotalParticipants && quiz.TotalParticipants > 0 {
		events = append(events, Event{Name: EventAllCompleted, Payload: c.state.rankedResults()})
		c.state.resetRound()
	}

	events = append(events,
		Event{Name: EventParticipantsUpdated, Payload: c.state.participantList()},
		Event{Name: EventQuizStateUpdated, Payload: c.state.quizState()},
	)
	return events
}

func (c *Coordinator) disconnect(in Disconnect) []Event {
	if !c.state.remove(in.ConnID) {
		return nil
	}
	return []Event{
		{Name: EventParticipantsUpdated, Payload: c.state.participantList()},
		{Name: EventQuizStateUpdated, Payload: c.state.quizState()},
	}
}
