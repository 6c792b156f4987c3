package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/Sakemo/matchmake-bot/internal/model"
	"github.com/Sakemo/matchmake-bot/internal/service"
)

// memberPageSize is the largest page the list guild members endpoint returns
const memberPageSize = 1000

// MemberDirectory looks up guild members through the REST API
type MemberDirectory struct {
	client RESTClient
}

// NewMemberDirectory creates a new member directory
func NewMemberDirectory(client RESTClient) *MemberDirectory {
	return &MemberDirectory{client: client}
}

// Member returns the member, or nil when the user is not in the guild
func (d *MemberDirectory) Member(ctx context.Context, guildID, userID string) (*model.Member, error) {
	m, err := d.client.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch member %s: %w", userID, err)
	}
	return toMember(m, nil, guildID), nil
}

// Members lists the whole guild in pages ordered by user ID. It requires the
// Server Members privileged intent.
func (d *MemberDirectory) Members(ctx context.Context, guildID string) ([]*model.Member, error) {
	var (
		out   []*model.Member
		after string
	)
	for {
		page, err := d.client.GuildMembers(guildID, after, memberPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("list members of %s: %w", guildID, err)
		}
		for _, m := range page {
			if m == nil || m.User == nil {
				continue
			}
			out = append(out, toMember(m, nil, guildID))
			after = m.User.ID
		}
		if len(page) < memberPageSize {
			return out, nil
		}
	}
}

func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
		return true
	}
	return restErr.Message != nil && (restErr.Message.Code == discordgo.ErrCodeUnknownMember || restErr.Message.Code == discordgo.ErrCodeUnknownUser)
}

var (
	_ service.MemberDirectory = (*MemberDirectory)(nil)
	_ service.MemberLister    = (*MemberDirectory)(nil)
)
