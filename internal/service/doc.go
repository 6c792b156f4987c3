// Package service implements the business logic of the matchmaking bot.
//
// The service package contains validation rules and the orchestration of
// repository operations. Services sit between the command handlers and data
// access, and never see platform types.
//
// # Service Pattern
//
//   - Constructor function (NewXxxService) accepts a config struct with repository dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors (errors.go) or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces. Both the SurrealDB
// repositories and the SQLite store satisfy them.
//
// # Concurrency
//
// Read-modify-write operations on one user's records run under a KeyedMutex,
// so concurrent interactions from the same user cannot lose updates within
// one process.
//
// # Example Usage
//
//	answers := NewAnswerService(AnswerServiceConfig{
//	    Answers:   answerRepository,
//	    Questions: questionRepository,
//	    Locks:     NewKeyedMutex(),
//	})
//	err := answers.EditAnswer(ctx, userID, "age", "31")
package service
