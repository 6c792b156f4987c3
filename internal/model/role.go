package model

import "time"

// RolePair is an ordered (from, to) pair of community role IDs
type RolePair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// RoleCompatibility is an administrator-configured bonus for a role pair.
// (A,B) and (B,A) are distinct entries.
type RoleCompatibility struct {
	From      string    `json:"role_from"`
	To        string    `json:"role_to"`
	Score     float64   `json:"score"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Pair returns the ordered pair this entry applies to
func (r RoleCompatibility) Pair() RolePair {
	return RolePair{From: r.From, To: r.To}
}

// RoleCompatibilityTable is the lookup form of all role bonuses
type RoleCompatibilityTable map[RolePair]float64

// NewRoleCompatibilityTable indexes entries by ordered pair
func NewRoleCompatibilityTable(entries []*RoleCompatibility) RoleCompatibilityTable {
	table := make(RoleCompatibilityTable, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		table[e.Pair()] = e.Score
	}
	return table
}

// RoleTagKind groups role-attribute tags
type RoleTagKind string

const (
	RoleTagGender      RoleTagKind = "gender"
	RoleTagOrientation RoleTagKind = "orientation"
)

// Allowed tag labels per kind
var (
	GenderLabels      = []string{"Male", "Female", "Non-binary"}
	OrientationLabels = []string{"Heterosexual", "Homosexual", "Bisexual", "Asexual"}
)

// IsValidRoleTag reports whether label is allowed for kind
func IsValidRoleTag(kind RoleTagKind, label string) bool {
	var labels []string
	switch kind {
	case RoleTagGender:
		labels = GenderLabels
	case RoleTagOrientation:
		labels = OrientationLabels
	default:
		return false
	}
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

// RoleTag labels a community role with a gender or orientation
type RoleTag struct {
	Kind      RoleTagKind `json:"kind"`
	RoleID    string      `json:"role_id"`
	Label     string      `json:"label"`
	UpdatedOn time.Time   `json:"updated_on"`
}
