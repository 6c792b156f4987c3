package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Sakemo/matchmake-bot/internal/bot"
	"github.com/Sakemo/matchmake-bot/internal/model"
	"github.com/Sakemo/matchmake-bot/internal/service"
)

// RoleCatalogHandler handles role compatibility and role tag commands
type RoleCatalogHandler struct {
	roleCatalogService *service.RoleCatalogService
}

// RoleCatalogHandlerConfig holds dependencies for RoleCatalogHandler
type RoleCatalogHandlerConfig struct {
	RoleCatalogService *service.RoleCatalogService
}

// NewRoleCatalogHandler creates a new role catalog handler
func NewRoleCatalogHandler(cfg RoleCatalogHandlerConfig) *RoleCatalogHandler {
	return &RoleCatalogHandler{roleCatalogService: cfg.RoleCatalogService}
}

func labelChoices(labels []string) []bot.Choice {
	choices := make([]bot.Choice, 0, len(labels))
	for _, l := range labels {
		choices = append(choices, bot.Choice{Name: l, Value: l})
	}
	return choices
}

// Commands implements CommandHandler
func (h *RoleCatalogHandler) Commands() []bot.Command {
	return []bot.Command{
		{
			Name:        "add_role_compatibility",
			Description: "Sets the compatibility bonus between two roles (Admin)",
			AdminOnly:   true,
			Options: []bot.Option{
				{Name: "role_from", Description: "Role held by the searching member", Type: bot.OptionRole, Required: true},
				{Name: "role_to", Description: "Role held by the candidate", Type: bot.OptionRole, Required: true},
				{Name: "score", Description: "Bonus added to the role component", Type: bot.OptionNumber, Required: true},
			},
			Handle: h.AddRoleCompatibility,
		},
		{
			Name:        "register_gender_role",
			Description: "Registers a role representing a gender (Admin)",
			AdminOnly:   true,
			Options: []bot.Option{
				{Name: "role", Description: "Role", Type: bot.OptionRole, Required: true},
				{Name: "gender", Description: "Gender", Type: bot.OptionString, Required: true, Choices: labelChoices(model.GenderLabels)},
			},
			Handle: h.RegisterGenderRole,
		},
		{
			Name:        "register_orientation_role",
			Description: "Registers a role representing a sexual orientation (Admin)",
			AdminOnly:   true,
			Options: []bot.Option{
				{Name: "role", Description: "Role", Type: bot.OptionRole, Required: true},
				{Name: "orientation", Description: "Orientation", Type: bot.OptionString, Required: true, Choices: labelChoices(model.OrientationLabels)},
			},
			Handle: h.RegisterOrientationRole,
		},
	}
}

// Routes implements CommandHandler
func (h *RoleCatalogHandler) Routes(r *bot.Router) {}

// AddRoleCompatibility handles /add_role_compatibility
func (h *RoleCatalogHandler) AddRoleCompatibility(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	score, _ := req.Args.Number("score")
	entry, err := h.roleCatalogService.SetCompatibility(ctx, req.Args.String("role_from"), req.Args.String("role_to"), score)
	if err != nil {
		return nil, err
	}
	return bot.Ephemeral(fmt.Sprintf("Compatibility from %s to %s set to **%s**.",
		roleMention(entry.From), roleMention(entry.To), strconv.FormatFloat(entry.Score, 'f', -1, 64))), nil
}

// RegisterGenderRole handles /register_gender_role
func (h *RoleCatalogHandler) RegisterGenderRole(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	return h.tag(ctx, model.RoleTagGender, req.Args.String("role"), req.Args.String("gender"))
}

// RegisterOrientationRole handles /register_orientation_role
func (h *RoleCatalogHandler) RegisterOrientationRole(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	return h.tag(ctx, model.RoleTagOrientation, req.Args.String("role"), req.Args.String("orientation"))
}

func (h *RoleCatalogHandler) tag(ctx context.Context, kind model.RoleTagKind, roleID, label string) (*bot.Response, error) {
	tag, err := h.roleCatalogService.TagRole(ctx, kind, roleID, label)
	if err != nil {
		return nil, err
	}
	return bot.Ephemeral(fmt.Sprintf("Role %s registered as **%s**.", roleMention(tag.RoleID), tag.Label)), nil
}

func roleMention(roleID string) string {
	return "<@&" + roleID + ">"
}
