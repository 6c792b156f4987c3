// Package repository implements the SurrealDB data access layer of the
// matchmaking bot.
//
// Each repository struct handles one record set:
//
//   - QuestionRepository: survey questions keyed by question key
//   - AnswerRepository: one JSON-encoded answer map per user
//   - PersonalityRepository: one JSON-encoded personality profile per user
//   - RoleCompatibilityRepository: directional (role_from, role_to) bonus
//   - RoleTagRepository: gender and orientation labels keyed by (kind, role_id)
//
// # Query Patterns
//
//   - Parameterized queries with $variable syntax
//   - type::thing() record IDs derived from the natural key, so every read
//     and write touches exactly one record
//   - UPSERT for last-write-wins record sets
//   - time::now() for automatic timestamps
//
// Get methods return (nil, nil) when the record does not exist. The schema
// lives in the top-level migrations package and is applied by Migrate.
//
// # Example Usage
//
//	repo := NewAnswerRepository(db)
//	answers, err := repo.Get(ctx, userID)
//	if err != nil {
//	    return err
//	}
//	if answers == nil {
//	    // Nothing registered yet
//	}
package repository
