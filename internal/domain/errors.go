package domain

import "errors"

var (
	// ErrQuestionSetNotFound indicates the question bank has no such set.
	ErrQuestionSetNotFound = errors.New("question set not found")
)
