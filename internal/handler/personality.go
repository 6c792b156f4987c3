package handler

import (
	"context"

	"github.com/Sakemo/matchmake-bot/internal/bot"
	"github.com/Sakemo/matchmake-bot/internal/service"
)

const (
	personalityPrefix = "personality"
	personalityInput  = "test_input"
	maxTestInput      = 4000
)

// PersonalityHandler handles personality test commands
type PersonalityHandler struct {
	personalityService *service.PersonalityService
}

// PersonalityHandlerConfig holds dependencies for PersonalityHandler
type PersonalityHandlerConfig struct {
	PersonalityService *service.PersonalityService
}

// NewPersonalityHandler creates a new personality handler
func NewPersonalityHandler(cfg PersonalityHandlerConfig) *PersonalityHandler {
	return &PersonalityHandler{personalityService: cfg.PersonalityService}
}

// Commands implements CommandHandler
func (h *PersonalityHandler) Commands() []bot.Command {
	return []bot.Command{
		{
			Name:        "import_test",
			Description: "Import your personality test results.",
			Options: []bot.Option{
				{Name: "test_input", Description: "Results, one 'X% Trait' per line", Type: bot.OptionString, Required: true, MaxLength: maxTestInput},
			},
			Handle: h.ImportTest,
		},
		{
			Name:        "edit_personality",
			Description: "Edit your personality test results.",
			Handle:      h.EditPersonality,
		},
		{
			Name:        "clear_test",
			Description: "Delete your personality test results.",
			Handle:      h.ClearTest,
		},
	}
}

// Routes implements CommandHandler
func (h *PersonalityHandler) Routes(r *bot.Router) {
	r.HandleModal(personalityPrefix, h.SubmitPersonality)
}

// ImportTest handles /import_test
func (h *PersonalityHandler) ImportTest(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	if _, err := h.personalityService.Import(ctx, req.UserID(), req.Args.String("test_input")); err != nil {
		return nil, err
	}
	return bot.Ephemeral("Personality test results imported successfully!"), nil
}

// EditPersonality handles /edit_personality by opening a prefilled modal
func (h *PersonalityHandler) EditPersonality(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	current, err := h.personalityService.Formatted(ctx, req.UserID())
	if err != nil {
		return nil, err
	}
	return bot.ShowModal(&bot.Modal{
		CustomID: personalityPrefix,
		Title:    "Edit Personality Test Results",
		Inputs: []bot.TextInput{{
			CustomID:    personalityInput,
			Label:       "Personality test results",
			Value:       current,
			Placeholder: "80% Dominant\n45% Switch",
			Paragraph:   true,
			Required:    true,
			MaxLength:   maxTestInput,
		}},
	}), nil
}

// SubmitPersonality stores the edited results
func (h *PersonalityHandler) SubmitPersonality(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	if _, err := h.personalityService.Import(ctx, req.UserID(), req.Values[personalityInput]); err != nil {
		return nil, err
	}
	return bot.Ephemeral("Personality test results updated successfully!"), nil
}

// ClearTest handles /clear_test
func (h *PersonalityHandler) ClearTest(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	if err := h.personalityService.Clear(ctx, req.UserID()); err != nil {
		return nil, err
	}
	return bot.Ephemeral("Personality test results cleared successfully!"), nil
}
