package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Questionnaire Errors =====
var (
	ErrQuestionNotFound    = errors.New("question not found")
	ErrQuestionExists      = errors.New("a question with this key already exists")
	ErrQuestionKeyRequired = errors.New("question key is required")
	ErrQuestionKeyTooLong  = errors.New("question key exceeds maximum length")
	ErrQuestionKeyReserved = errors.New("question key is reserved")
	ErrPromptRequired      = errors.New("question text is required")
	ErrPromptTooLong       = errors.New("question text cannot exceed 45 characters")
	ErrInvalidQuestionKind = errors.New("question type must be choice or number")
	ErrInvalidMatchMode    = errors.New("match type must be similarity or complementary")
	ErrInvalidWeight       = errors.New("weight must be a non-negative number")
	ErrNoQuestions         = errors.New("no questions configured yet")
)

// ===== Answer Errors =====
var (
	ErrNoAnswers           = errors.New("answers not registered yet")
	ErrAnswerKeyNotFound   = errors.New("question not found in registered answers")
	ErrBioTooLong          = errors.New("bio exceeds maximum length")
	ErrSearchKeyRequired   = errors.New("search key is required")
	ErrSearchValueRequired = errors.New("search value is required")
)

// ===== Personality Errors =====
var (
	ErrInvalidPersonality = errors.New("invalid personality format")
)

// ===== Role Errors =====
var (
	ErrRoleRequired   = errors.New("role is required")
	ErrInvalidScore   = errors.New("score must be a finite number")
	ErrInvalidRoleTag = errors.New("invalid role label")
)

// ===== Matchmaking Errors =====
var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrNoCandidates     = errors.New("no match found")
	ErrSessionNotFound  = errors.New("matchmaking session not found or expired")
	ErrNotSessionOwner  = errors.New("only the member who started matchmaking can respond")
	ErrSessionExhausted = errors.New("no candidates left in this session")
)
