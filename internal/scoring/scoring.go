package scoring

import (
	"math"
	"strconv"
	"strings"

	"github.com/Sakemo/matchmake-bot/internal/model"
)

// Component weights of the total score
const (
	AnswersWeight     = 0.5
	PersonalityWeight = 0.3
	RolesWeight       = 0.2
)

// MaxScore is the upper bound of every normalized score
const MaxScore = 100.0

// Input carries everything known about one side of a pair
type Input struct {
	Answers     model.AnswerSet
	Personality model.PersonalityProfile
	Roles       []string
}

// ScoreAnswers compares two answer sets question by question.
//
// Every question adds weight*100 to the denominator, including questions that
// one of the users left unanswered. Unanswered questions therefore lower the
// score instead of being excluded.
func ScoreAnswers(user, other model.AnswerSet, questions []*model.Question) float64 {
	var awarded, maxPoints float64

	for _, q := range questions {
		if q == nil {
			continue
		}
		maxPoints += q.Weight * MaxScore

		a, okA := user.Get(q.Key)
		b, okB := other.Get(q.Key)
		if !okA || !okB {
			continue
		}

		awarded += questionPoints(q, a, b)
	}

	if maxPoints == 0 {
		return 0
	}
	return awarded / maxPoints * MaxScore
}

func questionPoints(q *model.Question, a, b string) float64 {
	switch q.Mode {
	case model.MatchSimilarity:
		if a == b {
			return q.Weight * MaxScore
		}
	case model.MatchComplementary:
		switch q.Kind {
		case model.QuestionKindChoice:
			if a != b {
				return q.Weight * MaxScore
			}
		case model.QuestionKindNumber:
			x, errA := parseNumber(a)
			y, errB := parseNumber(b)
			if errA != nil || errB != nil {
				return 0
			}
			return q.Weight * (MaxScore - math.Min(math.Abs(x-y), MaxScore))
		}
	}
	return 0
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

// ScoreRoles sums the configured bonus of every ordered (userRole, otherRole)
// pair. The result is not normalized.
func ScoreRoles(userRoles, otherRoles []string, table model.RoleCompatibilityTable) float64 {
	if len(table) == 0 {
		return 0
	}
	var bonus float64
	for _, a := range userRoles {
		for _, b := range otherRoles {
			bonus += table[model.RolePair{From: a, To: b}]
		}
	}
	return bonus
}

// Breakdown returns every component score plus the clamped total
func Breakdown(user, other Input, questions []*model.Question, table model.RoleCompatibilityTable) model.ScoreBreakdown {
	answers := ScoreAnswers(user.Answers, other.Answers, questions)
	personality := ScorePersonality(user.Personality, other.Personality)
	roles := ScoreRoles(user.Roles, other.Roles, table)

	return model.ScoreBreakdown{
		Answers:     answers,
		Personality: personality,
		Roles:       roles,
		Total:       Combine(answers, personality, roles),
	}
}

// ScoreTotal is the weighted, clamped compatibility of user towards other
func ScoreTotal(user, other Input, questions []*model.Question, table model.RoleCompatibilityTable) float64 {
	return Breakdown(user, other, questions, table).Total
}

// Combine blends component scores and clamps the result to [0,100]
func Combine(answers, personality, roles float64) float64 {
	total := answers*AnswersWeight + personality*PersonalityWeight + roles*RolesWeight
	return clamp(total, 0, MaxScore)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
