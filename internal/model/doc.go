// Package model defines the domain entities shared by every layer of the bot.
//
// # Domain Entities
//
//   - Question: administrator-defined survey question (key, prompt, kind, mode, weight)
//   - AnswerSet: one user's answers keyed by question key, plus the reserved "bio" key
//   - PersonalityProfile: trait → percentage imported from a personality test
//   - RoleCompatibility: bonus for an ordered pair of community roles
//   - RoleTag: gender or orientation label attached to a community role
//   - Member: a community member as reported by the chat platform
//   - MatchSession: an open accept/reject browse flow
//
// # Validation Constants
//
//	const (
//	    MaxPromptLength = 45
//	    MaxBioLength    = 4000
//	)
//
// # Error Types
//
// RFC 9457 Problem Details errors for the HTTP surface are defined in errors.go.
package model
