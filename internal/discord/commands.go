package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Sakemo/matchmake-bot/internal/bot"
)

// ApplicationCommands converts the dispatch table into slash-command
// definitions. Admin commands are hidden from members without the
// administrator permission.
func ApplicationCommands(cmds []*bot.Command) []*discordgo.ApplicationCommand {
	dmAllowed := false
	admin := int64(discordgo.PermissionAdministrator)

	out := make([]*discordgo.ApplicationCommand, 0, len(cmds))
	for _, c := range cmds {
		ac := &discordgo.ApplicationCommand{
			Name:         c.Name,
			Description:  c.Description,
			DMPermission: &dmAllowed,
		}
		if c.AdminOnly {
			ac.DefaultMemberPermissions = &admin
		}
		for _, opt := range c.Options {
			ac.Options = append(ac.Options, toOption(opt))
		}
		out = append(out, ac)
	}
	return out
}

func toOption(opt bot.Option) *discordgo.ApplicationCommandOption {
	o := &discordgo.ApplicationCommandOption{
		Type:        optionType(opt.Type),
		Name:        opt.Name,
		Description: opt.Description,
		Required:    opt.Required,
		MaxLength:   opt.MaxLength,
	}
	for _, ch := range opt.Choices {
		o.Choices = append(o.Choices, &discordgo.ApplicationCommandOptionChoice{Name: ch.Name, Value: ch.Value})
	}
	return o
}

func optionType(t bot.OptionType) discordgo.ApplicationCommandOptionType {
	switch t {
	case bot.OptionNumber:
		return discordgo.ApplicationCommandOptionNumber
	case bot.OptionInteger:
		return discordgo.ApplicationCommandOptionInteger
	case bot.OptionUser:
		return discordgo.ApplicationCommandOptionUser
	case bot.OptionRole:
		return discordgo.ApplicationCommandOptionRole
	}
	return discordgo.ApplicationCommandOptionString
}

// RegisterCommands replaces the application's commands with cmds. An empty
// guildID publishes them globally.
func RegisterCommands(ctx context.Context, client RESTClient, appID, guildID string, cmds []*bot.Command) ([]*discordgo.ApplicationCommand, error) {
	registered, err := client.ApplicationCommandBulkOverwrite(appID, guildID, ApplicationCommands(cmds), discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("overwrite commands: %w", err)
	}
	return registered, nil
}
