package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Sakemo/matchmake-bot/internal/discord"
	"github.com/Sakemo/matchmake-bot/internal/session"
)

func newRegisterCmd() *cobra.Command {
	var guildID string
	var global bool

	cmd := &cobra.Command{
		Use:   "register-commands",
		Short: "Publish the slash commands to Discord",
		Long: `Replaces the application's slash commands with the bot's command table.
Commands are published to DISCORD_GUILD_ID (or --guild) when set, which
takes effect immediately; --global publishes them to every guild.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateRegistration(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			target := guildID
			if target == "" {
				target = cfg.Discord.GuildID
			}
			if global {
				target = ""
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			return registerCommands(ctx, target)
		},
	}
	cmd.Flags().StringVar(&guildID, "guild", "", "guild to publish to (defaults to DISCORD_GUILD_ID)")
	cmd.Flags().BoolVar(&global, "global", false, "publish globally instead of to one guild")
	return cmd
}

func registerCommands(ctx context.Context, guildID string) error {
	dg, err := discord.NewSession(cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}

	// The command table does not depend on storage, so services get inert
	// collaborators.
	responder, err := buildResponder(&stores{}, session.NewMemoryStore(session.MemoryConfig{}), platform{
		members:  discord.NewMemberDirectory(dg),
		notifier: discord.NewNotifier(dg),
	}, log)
	if err != nil {
		return err
	}

	registered, err := discord.RegisterCommands(ctx, dg, cfg.Discord.ApplicationID, guildID, responder.Commands())
	if err != nil {
		return err
	}

	scope := "global"
	if guildID != "" {
		scope = "guild " + guildID
	}
	log.Info("commands registered", zap.Int("count", len(registered)), zap.String("scope", scope))
	return nil
}
