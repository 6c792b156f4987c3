// Package scoring computes the pairwise compatibility score between two
// community members.
//
// Every function in this package is pure: it reads the values passed to it,
// performs no I/O and keeps no state, so it is safe to call concurrently for
// unrelated pairs.
//
// The total score blends three components:
//
//	total = 0.5*Answers + 0.3*Personality + 0.2*Roles   (clamped to [0,100])
//
// Missing or malformed per-field data never produces an error. A numeric
// answer that does not parse contributes nothing, an empty denominator yields
// zero, and two personality profiles without a complementary trait yield zero.
package scoring
