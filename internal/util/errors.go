package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrAssignmentClosed   = errors.New("assignment is closed")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrResponseNotFound   = errors.New("response not found")
	ErrWrongClassCode     = errors.New("incorrect class code")
)
