package discord

import (
	"github.com/bwmarrin/discordgo"
)

// RESTClient is the subset of *discordgo.Session used by the adapter
type RESTClient interface {
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMembers(guildID, after string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// NewSession creates a REST-only session authenticated as the bot
func NewSession(token string) (*discordgo.Session, error) {
	return discordgo.New("Bot " + token)
}

var _ RESTClient = (*discordgo.Session)(nil)
