package app

import "livequiz-coordinator/internal/domain"

// Intent is the closed set of client-originated actions the coordinator
// understands. Each carries the connection id assigned by the transport.
type Intent interface {
	isIntent()
}

// Register announces a participant. WalletAddress may be empty, in which
// case the coordinator mints an identity via its IdentityProvider.
type Register struct {
	ConnID        string
	Name          string
	WalletAddress string
}

// StartQuiz moves the sender to in-progress and flips the shared start flag.
// The first start wins; repeats are idempotent.
type StartQuiz struct {
	ConnID string
}

// ReportProgress updates the sender's current question and interim score.
type ReportProgress struct {
	ConnID        string
	QuestionIndex int
	Score         int
}

// CompleteQuiz records the sender's final score and answers.
type CompleteQuiz struct {
	ConnID  string
	Score   int
	Answers []domain.Answer
}

// Disconnect removes the sender entirely; raised by the transport on close.
type Disconnect struct {
	ConnID string
}

func (Register) isIntent()       {}
func (StartQuiz) isIntent()      {}
func (ReportProgress) isIntent() {}
func (CompleteQuiz) isIntent()   {}
func (Disconnect) isIntent()     {}
