package model

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// PersonalityProfile maps a personality-test trait to its percentage
type PersonalityProfile map[string]int

// Trait names with special meaning in scoring
const (
	TraitSwitch = "Switch"
)

var profileLine = regexp.MustCompile(`^(\d+)%\s+(.+)`)

// ParsePersonalityProfile extracts "<percent>% <trait>" lines from a pasted
// test result. Lines that do not start with a percentage are dropped, and a
// repeated trait keeps the last value.
func ParsePersonalityProfile(input string) PersonalityProfile {
	profile := make(PersonalityProfile)
	for _, line := range strings.Split(strings.TrimSpace(input), "\n") {
		m := profileLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		pct, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		trait := strings.TrimSpace(m[2])
		if trait == "" {
			continue
		}
		profile[trait] = pct
	}
	return profile
}

// Traits returns trait names ordered by descending value, then name
func (p PersonalityProfile) Traits() []string {
	traits := make([]string, 0, len(p))
	for t := range p {
		traits = append(traits, t)
	}
	sort.Slice(traits, func(i, j int) bool {
		if p[traits[i]] != p[traits[j]] {
			return p[traits[i]] > p[traits[j]]
		}
		return traits[i] < traits[j]
	})
	return traits
}

// Format renders the profile back into the pasted-line format
func (p PersonalityProfile) Format() string {
	lines := make([]string, 0, len(p))
	for _, t := range p.Traits() {
		lines = append(lines, fmt.Sprintf("%d%% %s", p[t], t))
	}
	return strings.Join(lines, "\n")
}

// UserPersonality is the stored personality record of one user
type UserPersonality struct {
	UserID    string             `json:"user_id"`
	Profile   PersonalityProfile `json:"profile"`
	UpdatedOn time.Time          `json:"updated_on"`
}
