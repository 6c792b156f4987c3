package discord

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/Sakemo/matchmake-bot/internal/bot"
)

// ============================================================================
// Test Doubles
// ============================================================================

type recordingResponder struct {
	mu       sync.Mutex
	requests []*bot.Request
	reply    *bot.Response
}

func (r *recordingResponder) Respond(ctx context.Context, req *bot.Request) *bot.Response {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	if r.reply != nil {
		return r.reply
	}
	return bot.Ephemeral("ok")
}

func (r *recordingResponder) last() *bot.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		return nil
	}
	return r.requests[len(r.requests)-1]
}

type fakeREST struct {
	mu       sync.Mutex
	members  map[string]*discordgo.Member
	memberFn func(guildID, userID string) (*discordgo.Member, error)
	roster   []*discordgo.Member
	listErr  error
	pages    []string
	dmErr    error
	sent     map[string]*discordgo.MessageEmbed
	guildID  string
	commands []*discordgo.ApplicationCommand
}

func newFakeREST() *fakeREST {
	return &fakeREST{
		members: make(map[string]*discordgo.Member),
		sent:    make(map[string]*discordgo.MessageEmbed),
	}
}

func (f *fakeREST) GuildMember(guildID, userID string, _ ...discordgo.RequestOption) (*discordgo.Member, error) {
	if f.memberFn != nil {
		return f.memberFn(guildID, userID)
	}
	if m, ok := f.members[userID]; ok {
		return m, nil
	}
	return nil, &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusNotFound},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownMember, Message: "Unknown Member"},
	}
}

// GuildMembers pages through roster, which tests keep sorted by user ID
func (f *fakeREST) GuildMembers(guildID, after string, limit int, _ ...discordgo.RequestOption) ([]*discordgo.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = append(f.pages, after)
	if f.listErr != nil {
		return nil, f.listErr
	}
	var page []*discordgo.Member
	for _, m := range f.roster {
		if m.User.ID <= after {
			continue
		}
		if len(page) == limit {
			break
		}
		page = append(page, m)
	}
	return page, nil
}

func (f *fakeREST) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.dmErr != nil {
		return nil, f.dmErr
	}
	return &discordgo.Channel{ID: "dm-" + recipientID}, nil
}

func (f *fakeREST) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent[channelID] = embed
	return &discordgo.Message{ChannelID: channelID}, nil
}

func (f *fakeREST) ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	if appID == "" {
		return nil, errors.New("missing application id")
	}
	f.guildID = guildID
	f.commands = commands
	return commands, nil
}
