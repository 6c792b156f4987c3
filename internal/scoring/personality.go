package scoring

import (
	"math"

	"github.com/Sakemo/matchmake-bot/internal/model"
)

// TraitPair is a complementary pair: the first user holds Trait and the
// other user holds Complement.
type TraitPair struct {
	Trait      string
	Complement string
}

// ComplementaryTraits lists both directions of every complementary pair.
// Entries are evaluated independently, so two users who each report both
// sides of a pair are counted once per direction.
var ComplementaryTraits = []TraitPair{
	{Trait: "Dominant", Complement: "Submissive"},
	{Trait: "Submissive", Complement: "Dominant"},
	{Trait: "Sadist", Complement: "Masochist"},
	{Trait: "Masochist", Complement: "Sadist"},
	{Trait: "Brat tamer", Complement: "Brat"},
	{Trait: "Brat", Complement: "Brat tamer"},
	{Trait: "Daddy/Mommy", Complement: "Slave"},
	{Trait: "Slave", Complement: "Daddy/Mommy"},
	{Trait: "Primal (Hunter)", Complement: "Primal (Prey)"},
	{Trait: "Primal (Prey)", Complement: "Primal (Hunter)"},
}

// ScorePersonality averages the values of every complementary trait pair the
// two profiles share, plus the smaller Switch value when both report one.
func ScorePersonality(user, other model.PersonalityProfile) float64 {
	var sum float64
	count := 0

	for _, p := range ComplementaryTraits {
		a, okA := user[p.Trait]
		b, okB := other[p.Complement]
		if !okA || !okB {
			continue
		}
		sum += float64(a+b) / 2
		count++
	}

	a, okA := user[model.TraitSwitch]
	b, okB := other[model.TraitSwitch]
	if okA && okB {
		sum += math.Min(float64(a), float64(b))
		count++
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
