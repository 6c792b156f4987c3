package bot

import (
	"context"
	"fmt"
	"regexp"
)

// OptionType is the value type of a command option
type OptionType int

const (
	OptionString OptionType = iota + 1
	OptionNumber
	OptionInteger
	OptionUser
	OptionRole
)

func (t OptionType) String() string {
	switch t {
	case OptionString:
		return "string"
	case OptionNumber:
		return "number"
	case OptionInteger:
		return "integer"
	case OptionUser:
		return "user"
	case OptionRole:
		return "role"
	}
	return fmt.Sprintf("OptionType(%d)", int(t))
}

// Choice is one allowed value of a string option
type Choice struct {
	Name  string
	Value string
}

// Option describes one command argument
type Option struct {
	Name        string
	Description string
	Type        OptionType
	Required    bool
	// MaxLength applies to string options; 0 means unlimited
	MaxLength int
	Choices   []Choice
}

// HandlerFunc handles a command, component or modal interaction
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

// Command is one entry of the dispatch table
type Command struct {
	Name        string
	Description string
	Options     []Option
	// AdminOnly restricts the command to members with administrator rights
	AdminOnly bool
	Handle    HandlerFunc
}

var commandName = regexp.MustCompile(`^[a-z0-9_-]{1,32}$`)

// Validate checks the command definition against platform limits
func (c *Command) Validate() error {
	if !commandName.MatchString(c.Name) {
		return fmt.Errorf("command %q: invalid name", c.Name)
	}
	if c.Description == "" || len(c.Description) > 100 {
		return fmt.Errorf("command %q: description must be 1-100 characters", c.Name)
	}
	if c.Handle == nil {
		return fmt.Errorf("command %q: missing handler", c.Name)
	}

	seen := make(map[string]bool, len(c.Options))
	optional := false
	for _, o := range c.Options {
		if !commandName.MatchString(o.Name) {
			return fmt.Errorf("command %q: invalid option name %q", c.Name, o.Name)
		}
		if seen[o.Name] {
			return fmt.Errorf("command %q: duplicate option %q", c.Name, o.Name)
		}
		seen[o.Name] = true
		if o.Type < OptionString || o.Type > OptionRole {
			return fmt.Errorf("command %q: option %q has unknown type", c.Name, o.Name)
		}
		// required options must precede optional ones
		if o.Required && optional {
			return fmt.Errorf("command %q: required option %q after optional", c.Name, o.Name)
		}
		if !o.Required {
			optional = true
		}
	}
	return nil
}

// Option returns the option definition by name
func (c *Command) Option(name string) (Option, bool) {
	for _, o := range c.Options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}
