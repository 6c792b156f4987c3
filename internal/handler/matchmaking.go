package handler

import (
	"context"
	"fmt"

	"github.com/Sakemo/matchmake-bot/internal/bot"
	"github.com/Sakemo/matchmake-bot/internal/model"
	"github.com/Sakemo/matchmake-bot/internal/service"
)

const (
	matchPrefix  = "match"
	actionAccept = "accept"
	actionReject = "reject"
)

// MatchmakingHandler handles /matchmake and its accept/reject buttons
type MatchmakingHandler struct {
	matchmakingService *service.MatchmakingService
}

// MatchmakingHandlerConfig holds dependencies for MatchmakingHandler
type MatchmakingHandlerConfig struct {
	MatchmakingService *service.MatchmakingService
}

// NewMatchmakingHandler creates a new matchmaking handler
func NewMatchmakingHandler(cfg MatchmakingHandlerConfig) *MatchmakingHandler {
	return &MatchmakingHandler{matchmakingService: cfg.MatchmakingService}
}

// Commands implements CommandHandler
func (h *MatchmakingHandler) Commands() []bot.Command {
	return []bot.Command{
		{
			Name:        "matchmake",
			Description: "Find the member most compatible with you.",
			Handle:      h.Matchmake,
		},
	}
}

// Routes implements CommandHandler
func (h *MatchmakingHandler) Routes(r *bot.Router) {
	r.HandleComponent(matchPrefix, h.Respond)
}

// Matchmake handles /matchmake. The result is posted publicly.
func (h *MatchmakingHandler) Matchmake(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	sess, err := h.matchmakingService.Start(ctx, req.Member)
	if err != nil {
		return nil, err
	}
	candidate, _ := sess.Current()
	return bot.EmbedReply(CandidateEmbed(candidate), false).WithButtons(browseButtons(sess.ID)...), nil
}

// Respond handles the accept and reject buttons
func (h *MatchmakingHandler) Respond(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	_, segments := req.Route()
	if len(segments) != 2 {
		return nil, &bot.ArgumentError{Option: "button", Reason: "is malformed"}
	}
	action, sessionID := segments[0], segments[1]

	switch action {
	case actionAccept:
		sess, candidate, err := h.matchmakingService.Accept(ctx, sessionID, req.UserID())
		if err != nil {
			return nil, err
		}
		return bot.Update("", MatchEmbed(sess.OriginID, candidate.UserID)), nil

	case actionReject:
		sess, err := h.matchmakingService.Reject(ctx, sessionID, req.UserID())
		if err != nil {
			return nil, err
		}
		candidate, ok := sess.Current()
		if !ok {
			return bot.Update("No match available!"), nil
		}
		return bot.Update("", CandidateEmbed(candidate)).WithButtons(browseButtons(sess.ID)...), nil
	}
	return nil, &bot.ArgumentError{Option: "button", Reason: "is not a known action"}
}

func browseButtons(sessionID string) []bot.Button {
	return []bot.Button{
		{CustomID: bot.CustomID(matchPrefix, actionAccept, sessionID), Label: "Accept", Style: bot.ButtonSuccess},
		{CustomID: bot.CustomID(matchPrefix, actionReject, sessionID), Label: "Reject", Style: bot.ButtonDanger},
	}
}

// CandidateEmbed presents one browse candidate
func CandidateEmbed(c model.Candidate) *bot.Embed {
	return &bot.Embed{
		Title:       "Matchmaking",
		Description: fmt.Sprintf("**Candidate:** %s\n**Compatibility:** %.2f%%", model.MentionUser(c.UserID), c.Score),
		Color:       bot.ColorBlue,
	}
}

// MatchEmbed announces an accepted match
func MatchEmbed(originID, candidateID string) *bot.Embed {
	embed := &bot.Embed{
		Title:       "It's a Match!",
		Description: fmt.Sprintf("%s and %s really hit it off!", model.MentionUser(originID), model.MentionUser(candidateID)),
		Color:       bot.ColorPurple,
	}
	return embed.AddField("❤️❤️❤️", "What a lovely match!", false)
}
