package domain

// Participant status values as reported to clients.
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Participant is one connected quiz-taker's registration record,
// keyed by their connection id for the lifetime of the connection.
type Participant struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	WalletAddress   string `json:"walletAddress,omitempty"`
	Status          string `json:"status"`
	CurrentQuestion int    `json:"currentQuestion"`
}

// Answer is a single (question, selected option) pair from a finished run.
type Answer struct {
	QuestionID     int `json:"questionId"`
	SelectedOption int `json:"selectedOption"`
}

// Result is a participant's scoring record. Name and wallet address are
// copied from the participant when the result is written, not live-linked.
type Result struct {
	Name               string   `json:"name"`
	WalletAddress      string   `json:"walletAddress,omitempty"`
	Score              int      `json:"score"`
	Answers            []Answer `json:"answers"`
	CompletedQuestions int      `json:"completedQuestions,omitempty"`
}

// QuizState is the process-wide aggregate broadcast after every mutation.
type QuizState struct {
	InProgress           bool `json:"inProgress"`
	TotalParticipants    int  `json:"totalParticipants"`
	FinishedParticipants int  `json:"finishedParticipants"`
}

// Question models an MCQ question; CorrectAnswer is an index into Options.
type Question struct {
	ID            int      `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Points        int      `json:"points,omitempty"` // defaults to 1 if zero
}

// QuestionSet is the question bank served to clients for one quiz.
type QuestionSet struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
}
