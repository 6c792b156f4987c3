package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sakemo/matchmake-bot/internal/bot"
	"github.com/Sakemo/matchmake-bot/internal/model"
	"github.com/Sakemo/matchmake-bot/internal/service"
)

const notRegistered = "Not registered"

// ProfileHandler handles /profile
type ProfileHandler struct {
	profileService *service.ProfileService
	members        service.MemberDirectory
}

// ProfileHandlerConfig holds dependencies for ProfileHandler
type ProfileHandlerConfig struct {
	ProfileService *service.ProfileService
	Members        service.MemberDirectory
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(cfg ProfileHandlerConfig) *ProfileHandler {
	return &ProfileHandler{profileService: cfg.ProfileService, members: cfg.Members}
}

// Commands implements CommandHandler
func (h *ProfileHandler) Commands() []bot.Command {
	return []bot.Command{
		{
			Name:        "profile",
			Description: "Shows a member's profile with everything they registered.",
			Options: []bot.Option{
				{Name: "user", Description: "Member to show (default: you)", Type: bot.OptionUser},
			},
			Handle: h.Profile,
		},
	}
}

// Routes implements CommandHandler
func (h *ProfileHandler) Routes(r *bot.Router) {}

// Profile handles /profile
func (h *ProfileHandler) Profile(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	target, err := h.target(ctx, req)
	if err != nil {
		return nil, err
	}
	p, err := h.profileService.Build(ctx, target)
	if err != nil {
		return nil, err
	}
	return bot.EmbedReply(ProfileEmbed(p), true), nil
}

func (h *ProfileHandler) target(ctx context.Context, req *bot.Request) (*model.Member, error) {
	userID := req.Args.String("user")
	if userID == "" || userID == req.UserID() {
		return req.Member, nil
	}
	if m, ok := req.Resolved[userID]; ok && m != nil {
		return m, nil
	}
	if h.members == nil {
		return nil, service.ErrMemberNotFound
	}
	m, err := h.members.Member(ctx, req.GuildID, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, service.ErrMemberNotFound
	}
	return m, nil
}

// ProfileEmbed renders an assembled profile
func ProfileEmbed(p *model.Profile) *bot.Embed {
	name := p.Member.DisplayName
	if name == "" {
		name = p.Member.UserID
	}
	tag := p.Member.Tag
	if tag == "" {
		tag = p.Member.Mention()
	}

	embed := &bot.Embed{
		Title:        "Profile of " + name,
		Color:        bot.ColorBlue,
		ThumbnailURL: p.Member.AvatarURL,
	}
	embed.AddField("Name", name, true)
	embed.AddField("Tag", tag, true)

	bio := p.Bio
	if bio == "" {
		bio = "No bio registered."
	}
	embed.AddField("Bio", fieldValue(bio), false)

	answers := "No answers registered."
	if keys := p.Answers.SurveyKeys(); len(keys) > 0 {
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("**%s**: %s", k, p.Answers[k]))
		}
		answers = strings.Join(lines, "\n")
	}
	embed.AddField("Answers", fieldValue(answers), false)

	personality := "Test not taken."
	if traits := p.Personality.Traits(); len(traits) > 0 {
		lines := make([]string, 0, len(traits))
		for _, t := range traits {
			lines = append(lines, fmt.Sprintf("- **%s**: %d%%", t, p.Personality[t]))
		}
		personality = strings.Join(lines, "\n")
	}
	embed.AddField("Personality Test Results", fieldValue(personality), false)

	embed.AddField("Gender", joinOr(p.Genders, notRegistered), true)
	embed.AddField("Sexual Orientation", joinOr(p.Orientations, notRegistered), true)
	return embed
}

func fieldValue(s string) string {
	return bot.Truncate(s, bot.MaxFieldValue)
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}
