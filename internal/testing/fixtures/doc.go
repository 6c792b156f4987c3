// Package fixtures provides test data factories.
//
// # Factory Pattern
//
// Create a factory over the repositories under test:
//
//	f := fixtures.New(fixtures.Stores{
//	    Questions: repository.NewQuestionRepository(tdb.DB),
//	    Answers:   repository.NewAnswerRepository(tdb.DB),
//	})
//
// # Customization
//
// Use option functions for customization:
//
//	q := f.CreateQuestion(t, fixtures.WithKey("age"), fixtures.Numeric())
//
// # Random Data
//
// Keys default to q_<random hex>, so repeated calls never collide.
package fixtures
