package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sakemo/matchmake-bot/internal/bot"
	"github.com/Sakemo/matchmake-bot/internal/model"
	"github.com/Sakemo/matchmake-bot/internal/service"
)

// Custom ID prefixes owned by AnswerHandler
const (
	registerPrefix = "register"
	editPrefix     = "edit"
	bioPrefix      = "bio"
)

// AnswerHandler handles survey answer commands and their modals
type AnswerHandler struct {
	questionnaireService *service.QuestionnaireService
	answerService        *service.AnswerService
}

// AnswerHandlerConfig holds dependencies for AnswerHandler
type AnswerHandlerConfig struct {
	QuestionnaireService *service.QuestionnaireService
	AnswerService        *service.AnswerService
}

// NewAnswerHandler creates a new answer handler
func NewAnswerHandler(cfg AnswerHandlerConfig) *AnswerHandler {
	return &AnswerHandler{
		questionnaireService: cfg.QuestionnaireService,
		answerService:        cfg.AnswerService,
	}
}

// Commands implements CommandHandler
func (h *AnswerHandler) Commands() []bot.Command {
	return []bot.Command{
		{
			Name:        "register_match",
			Description: "Register your matchmaking answers.",
			Handle:      h.RegisterMatch,
		},
		{
			Name:        "edit_answer",
			Description: "Edit your answer to one question.",
			Options: []bot.Option{
				{Name: "key", Description: "Question key", Type: bot.OptionString, Required: true},
				{Name: "new_value", Description: "New answer", Type: bot.OptionString, Required: true},
			},
			Handle: h.EditAnswer,
		},
		{
			Name:        "edit_responses",
			Description: "Edit all your matchmaking answers.",
			Handle:      h.EditResponses,
		},
		{
			Name:        "edit_bio",
			Description: "Edit the bio shown on your profile.",
			Handle:      h.EditBio,
		},
		{
			Name:        "clear_responses",
			Description: "Delete all your matchmaking answers.",
			Handle:      h.ClearResponses,
		},
		{
			Name:        "search_match",
			Description: "Find members who gave a specific answer to a question.",
			Options: []bot.Option{
				{Name: "key", Description: "Question key", Type: bot.OptionString, Required: true},
				{Name: "value", Description: "Answer to look for", Type: bot.OptionString, Required: true},
			},
			Handle: h.SearchMatch,
		},
	}
}

// Routes implements CommandHandler
func (h *AnswerHandler) Routes(r *bot.Router) {
	r.HandleComponent(registerPrefix, h.RegisterPage)
	r.HandleModal(registerPrefix, h.SubmitRegisterPage)
	r.HandleComponent(editPrefix, h.EditPage)
	r.HandleModal(editPrefix, h.SubmitEditPage)
	r.HandleModal(bioPrefix, h.SubmitBio)
}

// RegisterMatch handles /register_match by opening the first survey page
func (h *AnswerHandler) RegisterMatch(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	return h.registerModal(ctx, 0)
}

// RegisterPage opens a later registration page from a Continue button
func (h *AnswerHandler) RegisterPage(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	_, segments := req.Route()
	page, err := parsePage(segments)
	if err != nil {
		return nil, err
	}
	return h.registerModal(ctx, page)
}

func (h *AnswerHandler) registerModal(ctx context.Context, page int) (*bot.Response, error) {
	questions, err := h.questionnaireService.RequireQuestions(ctx)
	if err != nil {
		return nil, err
	}
	if pageOf(questions, page) == nil {
		return nil, service.ErrNoQuestions
	}
	return bot.ShowModal(surveyModal(registerPrefix, "Matchmaking Registration", questions, page, nil, true)), nil
}

// SubmitRegisterPage stores one submitted registration page
func (h *AnswerHandler) SubmitRegisterPage(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	_, segments := req.Route()
	page, err := parsePage(segments)
	if err != nil {
		return nil, err
	}

	values := model.AnswerSet(req.Values)
	if page == 0 {
		err = h.answerService.Register(ctx, req.UserID(), values)
	} else {
		err = h.answerService.ContinueRegistration(ctx, req.UserID(), values)
	}
	if err != nil {
		return nil, err
	}
	return h.nextPage(ctx, registerPrefix, page, "Answers registered successfully!")
}

// EditResponses handles /edit_responses by opening the first prefilled page
func (h *AnswerHandler) EditResponses(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	return h.editModal(ctx, req.UserID(), 0)
}

// EditPage opens a later edit page from a Continue button
func (h *AnswerHandler) EditPage(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	_, segments := req.Route()
	page, err := parsePage(segments)
	if err != nil {
		return nil, err
	}
	return h.editModal(ctx, req.UserID(), page)
}

func (h *AnswerHandler) editModal(ctx context.Context, userID string, page int) (*bot.Response, error) {
	current, err := h.answerService.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, service.ErrNoAnswers
	}
	questions, err := h.questionnaireService.RequireQuestions(ctx)
	if err != nil {
		return nil, err
	}
	if pageOf(questions, page) == nil {
		return nil, service.ErrNoQuestions
	}
	return bot.ShowModal(surveyModal(editPrefix, "Edit Answers", questions, page, current.Answers, false)), nil
}

// SubmitEditPage merges one submitted edit page
func (h *AnswerHandler) SubmitEditPage(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	_, segments := req.Route()
	page, err := parsePage(segments)
	if err != nil {
		return nil, err
	}
	if err := h.answerService.EditResponses(ctx, req.UserID(), model.AnswerSet(req.Values)); err != nil {
		return nil, err
	}
	return h.nextPage(ctx, editPrefix, page, "Answers updated successfully!")
}

// nextPage answers a page submission with a Continue button, or with done
// after the last page
func (h *AnswerHandler) nextPage(ctx context.Context, prefix string, page int, done string) (*bot.Response, error) {
	questions, err := h.questionnaireService.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	total := pageCount(len(questions))
	if page+1 >= total {
		return bot.Ephemeral(done), nil
	}
	msg := fmt.Sprintf("Page %d of %d saved. Press Continue for the next questions.", page+1, total)
	return bot.Ephemeral(msg).WithButtons(continueButton(prefix, page+1)), nil
}

// EditAnswer handles /edit_answer
func (h *AnswerHandler) EditAnswer(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	if err := h.answerService.EditAnswer(ctx, req.UserID(), req.Args.String("key"), req.Args.String("new_value")); err != nil {
		return nil, err
	}
	return bot.Ephemeral("Answer updated successfully!"), nil
}

// EditBio handles /edit_bio by opening a prefilled bio modal
func (h *AnswerHandler) EditBio(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	bio, err := h.answerService.Bio(ctx, req.UserID())
	if err != nil {
		return nil, err
	}
	return bot.ShowModal(&bot.Modal{
		CustomID: bioPrefix,
		Title:    "Edit Bio",
		Inputs: []bot.TextInput{{
			CustomID:    model.BioKey,
			Label:       "Bio",
			Value:       bio,
			Placeholder: "Tell others about yourself",
			Paragraph:   true,
			MaxLength:   model.MaxBioLength,
		}},
	}), nil
}

// SubmitBio stores the submitted bio
func (h *AnswerHandler) SubmitBio(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	if err := h.answerService.SetBio(ctx, req.UserID(), req.Values[model.BioKey]); err != nil {
		return nil, err
	}
	return bot.Ephemeral("Bio updated successfully!"), nil
}

// ClearResponses handles /clear_responses
func (h *AnswerHandler) ClearResponses(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	if err := h.answerService.Clear(ctx, req.UserID()); err != nil {
		return nil, err
	}
	return bot.Ephemeral("Answers deleted successfully!"), nil
}

// SearchMatch handles /search_match
func (h *AnswerHandler) SearchMatch(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	userIDs, err := h.answerService.Search(ctx, req.Args.String("key"), req.Args.String("value"))
	if err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return bot.Ephemeral("No users found with that answer."), nil
	}

	mentions := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		mentions = append(mentions, model.MentionUser(id))
	}
	return bot.Ephemeral(bot.Truncate("Users found: "+strings.Join(mentions, ", "), bot.MaxMessageContent)), nil
}
