package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Sakemo/matchmake-bot/internal/bot"
	"github.com/Sakemo/matchmake-bot/internal/model"
)

// ErrUnsupportedInteraction is returned for interaction types the bot does
// not route
var ErrUnsupportedInteraction = errors.New("unsupported interaction type")

// ToRequest converts a decoded interaction into a platform-neutral request
func ToRequest(i *discordgo.Interaction) (*bot.Request, error) {
	req := &bot.Request{
		ID:      i.ID,
		GuildID: i.GuildID,
	}

	switch {
	case i.Member != nil:
		req.Member = toMember(i.Member, nil, i.GuildID)
		req.IsAdmin = i.Member.Permissions&discordgo.PermissionAdministrator != 0
	case i.User != nil:
		req.Member = &model.Member{UserID: i.User.ID, DisplayName: displayName(nil, i.User), Tag: i.User.String()}
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		req.Kind = bot.KindCommand
		req.Command = data.Name
		req.Args = toArgs(data.Options)
		req.Resolved = resolvedMembers(data.Resolved, i.GuildID)
	case discordgo.InteractionMessageComponent:
		req.Kind = bot.KindComponent
		req.CustomID = i.MessageComponentData().CustomID
	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		req.Kind = bot.KindModal
		req.CustomID = data.CustomID
		req.Values = modalValues(data.Components)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedInteraction, i.Type)
	}
	return req, nil
}

func toArgs(options []*discordgo.ApplicationCommandInteractionDataOption) bot.Args {
	args := make(bot.Args, len(options))
	for _, opt := range options {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionNumber:
			if v, ok := opt.Value.(float64); ok {
				args[opt.Name] = v
			}
		case discordgo.ApplicationCommandOptionInteger:
			if v, ok := opt.Value.(float64); ok {
				args[opt.Name] = int64(v)
			}
		default:
			if v, ok := opt.Value.(string); ok {
				args[opt.Name] = v
			}
		}
	}
	return args
}

// Resolved members carry no user object; it is joined from Resolved.Users.
func resolvedMembers(res *discordgo.ApplicationCommandInteractionDataResolved, guildID string) map[string]*model.Member {
	if res == nil || len(res.Users) == 0 {
		return nil
	}
	out := make(map[string]*model.Member, len(res.Users))
	for id, user := range res.Users {
		if m, ok := res.Members[id]; ok {
			out[id] = toMember(m, user, guildID)
			continue
		}
		out[id] = &model.Member{UserID: id, GuildID: guildID, DisplayName: displayName(nil, user), Tag: user.String()}
	}
	return out
}

func toMember(m *discordgo.Member, user *discordgo.User, guildID string) *model.Member {
	if user == nil {
		user = m.User
	}
	member := &model.Member{
		GuildID: guildID,
		Roles:   append([]string(nil), m.Roles...),
	}
	if member.GuildID == "" {
		member.GuildID = m.GuildID
	}
	if user != nil {
		member.UserID = user.ID
		member.Tag = user.String()
		member.AvatarURL = user.AvatarURL("256")
	}
	member.DisplayName = displayName(m, user)
	return member
}

func displayName(m *discordgo.Member, user *discordgo.User) string {
	if m != nil && m.Nick != "" {
		return m.Nick
	}
	if user == nil {
		return ""
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

func modalValues(rows []discordgo.MessageComponent) map[string]string {
	values := make(map[string]string)
	for _, c := range rows {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok {
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}
