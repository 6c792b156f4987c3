package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Router is the dispatch table of commands, components and modals
type Router struct {
	mu         sync.RWMutex
	commands   map[string]*Command
	order      []string
	components map[string]HandlerFunc
	modals     map[string]HandlerFunc
	logger     *zap.Logger
}

// NewRouter creates an empty dispatch table
func NewRouter(logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		commands:   make(map[string]*Command),
		components: make(map[string]HandlerFunc),
		modals:     make(map[string]HandlerFunc),
		logger:     logger,
	}
}

// Register adds commands to the table. Names must be unique.
func (r *Router) Register(cmds ...Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range cmds {
		cmd := cmds[i]
		if err := cmd.Validate(); err != nil {
			return err
		}
		if _, exists := r.commands[cmd.Name]; exists {
			return fmt.Errorf("command %q registered twice", cmd.Name)
		}
		r.commands[cmd.Name] = &cmd
		r.order = append(r.order, cmd.Name)
	}
	return nil
}

// HandleComponent routes button presses whose custom ID starts with prefix
func (r *Router) HandleComponent(prefix string, fn HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[prefix] = fn
}

// HandleModal routes modal submissions whose custom ID starts with prefix
func (r *Router) HandleModal(prefix string, fn HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modals[prefix] = fn
}

// Commands returns the registered commands in registration order
func (r *Router) Commands() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Command, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.commands[name])
	}
	return out
}

// Dispatch routes a request to its handler
func (r *Router) Dispatch(ctx context.Context, req *Request) (*Response, error) {
	switch req.Kind {
	case KindCommand:
		return r.dispatchCommand(ctx, req)
	case KindComponent:
		return r.dispatchRouted(ctx, req, r.components)
	case KindModal:
		return r.dispatchRouted(ctx, req, r.modals)
	}
	return nil, fmt.Errorf("%w: interaction kind %d", ErrUnknownCommand, req.Kind)
}

func (r *Router) dispatchCommand(ctx context.Context, req *Request) (*Response, error) {
	r.mu.RLock()
	cmd, ok := r.commands[req.Command]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, req.Command)
	}
	if req.GuildID == "" || req.Member == nil {
		return nil, ErrNoGuild
	}
	if cmd.AdminOnly && !req.IsAdmin {
		r.logger.Info("admin command denied",
			zap.String("command", cmd.Name),
			zap.String("user_id", req.UserID()),
		)
		return nil, ErrForbidden
	}
	if req.Args == nil {
		req.Args = Args{}
	}
	if err := validateArgs(cmd, req.Args); err != nil {
		return nil, err
	}
	return cmd.Handle(ctx, req)
}

func (r *Router) dispatchRouted(ctx context.Context, req *Request, table map[string]HandlerFunc) (*Response, error) {
	prefix, _ := req.Route()

	r.mu.RLock()
	fn, ok := table[prefix]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, req.CustomID)
	}
	if req.GuildID == "" || req.Member == nil {
		return nil, ErrNoGuild
	}
	return fn(ctx, req)
}

// validateArgs enforces required options, string limits and choices, and
// normalizes string values by trimming surrounding space
func validateArgs(cmd *Command, args Args) error {
	for name := range args {
		if _, ok := cmd.Option(name); !ok {
			return &ArgumentError{Option: name, Reason: "unknown option"}
		}
	}

	for _, opt := range cmd.Options {
		raw, present := args[opt.Name]
		if !present {
			if opt.Required {
				return &ArgumentError{Option: opt.Name, Reason: "is required"}
			}
			continue
		}

		switch opt.Type {
		case OptionString, OptionUser, OptionRole:
			s, ok := raw.(string)
			if !ok {
				return &ArgumentError{Option: opt.Name, Reason: "must be text"}
			}
			s = strings.TrimSpace(s)
			if opt.Required && s == "" {
				return &ArgumentError{Option: opt.Name, Reason: "is required"}
			}
			if opt.MaxLength > 0 && utf8.RuneCountInString(s) > opt.MaxLength {
				return &ArgumentError{Option: opt.Name, Reason: fmt.Sprintf("cannot exceed %d characters", opt.MaxLength)}
			}
			if len(opt.Choices) > 0 && !hasChoice(opt.Choices, s) {
				return &ArgumentError{Option: opt.Name, Reason: "is not an allowed value"}
			}
			args[opt.Name] = s
		case OptionNumber, OptionInteger:
			if _, ok := args.Number(opt.Name); !ok {
				return &ArgumentError{Option: opt.Name, Reason: "must be a number"}
			}
		}
	}
	return nil
}

func hasChoice(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}
