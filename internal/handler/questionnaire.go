package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sakemo/matchmake-bot/internal/bot"
	"github.com/Sakemo/matchmake-bot/internal/model"
	"github.com/Sakemo/matchmake-bot/internal/service"
)

const adminTutorial = "**Matchmaking Bot Administration Tutorial**\n\n" +
	"1. **/add_question**: adds a new question. Provide the key, the text (max. 45 characters), the type, the match type, the weight and, when needed, the choices separated by commas.\n" +
	"2. **/delete_question**: removes an existing question by key.\n" +
	"3. **/edit_question**: edits the text of a question.\n" +
	"4. **/add_role_compatibility**: sets the compatibility bonus from one role to another.\n" +
	"5. **/register_gender_role** and **/register_orientation_role**: register roles that represent genders and sexual orientations.\n" +
	"\nUse these commands carefully and check the bot's replies to confirm your actions."

// QuestionnaireHandler handles survey administration commands
type QuestionnaireHandler struct {
	questionnaireService *service.QuestionnaireService
}

// QuestionnaireHandlerConfig holds dependencies for QuestionnaireHandler
type QuestionnaireHandlerConfig struct {
	QuestionnaireService *service.QuestionnaireService
}

// NewQuestionnaireHandler creates a new questionnaire handler
func NewQuestionnaireHandler(cfg QuestionnaireHandlerConfig) *QuestionnaireHandler {
	return &QuestionnaireHandler{questionnaireService: cfg.QuestionnaireService}
}

// Commands implements CommandHandler
func (h *QuestionnaireHandler) Commands() []bot.Command {
	return []bot.Command{
		{
			Name:        "tutorial_admin",
			Description: "Walkthrough of the administration commands.",
			AdminOnly:   true,
			Handle:      h.Tutorial,
		},
		{
			Name:        "add_question",
			Description: "Adds a new matchmaking question (Admin)",
			AdminOnly:   true,
			Options: []bot.Option{
				{Name: "key", Description: "Unique question key", Type: bot.OptionString, Required: true, MaxLength: model.MaxKeyLength},
				{Name: "question", Description: "Question text (max. 45 characters)", Type: bot.OptionString, Required: true, MaxLength: model.MaxPromptLength},
				{Name: "q_type", Description: "Answer type", Type: bot.OptionString, Required: true, Choices: []bot.Choice{
					{Name: "choice", Value: string(model.QuestionKindChoice)},
					{Name: "number", Value: string(model.QuestionKindNumber)},
				}},
				{Name: "match_type", Description: "How answers are compared", Type: bot.OptionString, Required: true, Choices: []bot.Choice{
					{Name: "similarity", Value: string(model.MatchSimilarity)},
					{Name: "complementary", Value: string(model.MatchComplementary)},
				}},
				{Name: "weight", Description: "Question weight", Type: bot.OptionNumber, Required: true},
				{Name: "choices", Description: "Allowed answers separated by commas", Type: bot.OptionString},
			},
			Handle: h.AddQuestion,
		},
		{
			Name:        "delete_question",
			Description: "Deletes a matchmaking question (Admin)",
			AdminOnly:   true,
			Options: []bot.Option{
				{Name: "key", Description: "Question key", Type: bot.OptionString, Required: true},
			},
			Handle: h.DeleteQuestion,
		},
		{
			Name:        "edit_question",
			Description: "Edits the text of a matchmaking question (Admin)",
			AdminOnly:   true,
			Options: []bot.Option{
				{Name: "key", Description: "Question key", Type: bot.OptionString, Required: true},
				{Name: "new_question", Description: "New text (max. 45 characters)", Type: bot.OptionString, Required: true, MaxLength: model.MaxPromptLength},
			},
			Handle: h.EditQuestion,
		},
		{
			Name:        "current_form",
			Description: "Shows the current list of matchmaking questions.",
			Handle:      h.CurrentForm,
		},
	}
}

// Routes implements CommandHandler
func (h *QuestionnaireHandler) Routes(r *bot.Router) {}

// Tutorial handles /tutorial_admin
func (h *QuestionnaireHandler) Tutorial(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	return bot.Ephemeral(adminTutorial), nil
}

// AddQuestion handles /add_question
func (h *QuestionnaireHandler) AddQuestion(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	weight, _ := req.Args.Number("weight")
	q, err := h.questionnaireService.AddQuestion(ctx, model.CreateQuestionRequest{
		Key:     req.Args.String("key"),
		Prompt:  req.Args.String("question"),
		Kind:    model.QuestionKind(req.Args.String("q_type")),
		Mode:    model.MatchMode(req.Args.String("match_type")),
		Weight:  weight,
		Choices: req.Args.String("choices"),
	})
	if err != nil {
		return nil, err
	}
	return bot.Ephemeral("Question added successfully: " + q.Prompt), nil
}

// DeleteQuestion handles /delete_question
func (h *QuestionnaireHandler) DeleteQuestion(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	if err := h.questionnaireService.DeleteQuestion(ctx, req.Args.String("key")); err != nil {
		return nil, err
	}
	return bot.Ephemeral("Question deleted successfully!"), nil
}

// EditQuestion handles /edit_question
func (h *QuestionnaireHandler) EditQuestion(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	if _, err := h.questionnaireService.EditQuestion(ctx, req.Args.String("key"), req.Args.String("new_question")); err != nil {
		return nil, err
	}
	return bot.Ephemeral("Question updated successfully!"), nil
}

// CurrentForm handles /current_form
func (h *QuestionnaireHandler) CurrentForm(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	questions, err := h.questionnaireService.RequireQuestions(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(questions))
	for _, q := range questions {
		lines = append(lines, fmt.Sprintf("**%s**: %s", q.Key, q.Prompt))
	}
	embed := &bot.Embed{
		Title:       "Current Questions",
		Description: bot.Truncate(strings.Join(lines, "\n"), bot.MaxEmbedDescription),
		Color:       bot.ColorBlue,
	}
	return bot.EmbedReply(embed, true), nil
}
