package bot

import (
	"math"
	"strconv"
	"strings"

	"github.com/Sakemo/matchmake-bot/internal/model"
)

// InteractionKind distinguishes the three routed interaction types
type InteractionKind int

const (
	KindCommand InteractionKind = iota + 1
	KindComponent
	KindModal
)

// Request is a platform-neutral interaction
type Request struct {
	ID      string
	Kind    InteractionKind
	GuildID string
	// Member is the invoking member, roles included
	Member  *model.Member
	IsAdmin bool

	// Command interactions
	Command string
	Args    Args
	// Resolved holds members referenced by user options, keyed by user ID
	Resolved map[string]*model.Member

	// Component and modal interactions
	CustomID string
	// Values holds submitted modal inputs keyed by input custom ID
	Values map[string]string
}

// UserID returns the ID of the invoking user
func (r *Request) UserID() string {
	if r.Member == nil {
		return ""
	}
	return r.Member.UserID
}

// Route splits the custom ID into its prefix and remaining segments
func (r *Request) Route() (string, []string) {
	return SplitCustomID(r.CustomID)
}

// SplitCustomID splits "prefix:a:b" into "prefix" and ["a", "b"]
func SplitCustomID(id string) (string, []string) {
	parts := strings.Split(id, ":")
	return parts[0], parts[1:]
}

// CustomID joins segments into a routed custom ID
func CustomID(prefix string, segments ...string) string {
	return strings.Join(append([]string{prefix}, segments...), ":")
}

// Args holds command option values by name. Strings, user and role IDs are
// stored as string; numbers as float64; integers as int64.
type Args map[string]interface{}

// Has reports whether the option was supplied
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns a string, user or role option, empty when absent
func (a Args) String(name string) string {
	switch v := a[name].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return ""
}

// Number returns a numeric option
func (a Args) Number(name string) (float64, bool) {
	switch v := a[name].(type) {
	case float64:
		return v, !math.IsNaN(v)
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}
