package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session has not been initialized.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrSessionInactive is returned when a finished session is mutated.
	ErrSessionInactive = errors.New("quiz session already submitted")
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrInvalidBank is returned for an empty or malformed bank.
	ErrInvalidBank = errors.New("invalid question bank")
	// ErrInvalidQuestion is returned when an appended question is malformed.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrQuestionOutOfRange indicates a question index outside the bank.
	ErrQuestionOutOfRange = errors.New("question index out of range")
	// ErrOptionOutOfRange indicates an option index outside the question's options.
	ErrOptionOutOfRange = errors.New("option index out of range")
)
