package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/Sakemo/matchmake-bot/internal/bot"
	"github.com/Sakemo/matchmake-bot/internal/logger"
	"github.com/Sakemo/matchmake-bot/internal/middleware"
	"github.com/Sakemo/matchmake-bot/internal/model"
)

// Responder turns a request into a payload. It never fails; errors are
// already rendered as user-facing messages.
type Responder interface {
	Respond(ctx context.Context, req *bot.Request) *bot.Response
}

// Endpoint serves the interactions URL. Requests must already be
// signature-verified.
type Endpoint struct {
	responder Responder
	limiter   *middleware.RateLimiter
	logger    *zap.Logger
}

// EndpointConfig holds configuration for the interactions endpoint
type EndpointConfig struct {
	Responder Responder
	// Limiter throttles interactions per user; nil disables throttling
	Limiter *middleware.RateLimiter
	Logger  *zap.Logger
}

// NewEndpoint creates a new interactions endpoint
func NewEndpoint(cfg EndpointConfig) *Endpoint {
	return &Endpoint{
		responder: cfg.Responder,
		limiter:   cfg.Limiter,
		logger:    logger.WithFields(cfg.Logger).Named("interactions"),
	}
}

// ServeHTTP handles one interaction
func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		model.NewBadRequestError("could not read request body").WriteJSON(w)
		return
	}

	var interaction discordgo.Interaction
	if err := json.Unmarshal(body, &interaction); err != nil {
		model.NewBadRequestError("malformed interaction payload").WriteJSON(w)
		return
	}

	if interaction.Type == discordgo.InteractionPing {
		e.write(w, &discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong})
		return
	}

	req, err := ToRequest(&interaction)
	if err != nil {
		e.logger.Debug("interaction ignored", zap.Error(err), zap.String(logger.FieldInteraction, interaction.ID))
		model.NewBadRequestError(err.Error()).WriteJSON(w)
		return
	}

	if resp, limited := e.throttle(req); limited {
		e.write(w, ToInteractionResponse(resp))
		return
	}

	resp := e.responder.Respond(r.Context(), req)
	e.logger.Debug("interaction handled",
		append(logger.InteractionFields(req.ID, label(req), req.UserID(), req.GuildID),
			zap.String(logger.FieldRequestID, middleware.GetRequestID(r.Context())))...,
	)
	e.write(w, ToInteractionResponse(resp))
}

func (e *Endpoint) throttle(req *bot.Request) (*bot.Response, bool) {
	userID := req.UserID()
	if e.limiter == nil || userID == "" {
		return nil, false
	}
	allowed, _, reset := e.limiter.Allow(userID)
	if allowed {
		return nil, false
	}
	e.logger.Info("interaction rate limited", logger.InteractionFields(req.ID, label(req), userID, req.GuildID)...)
	return bot.Ephemeral(fmt.Sprintf("You're doing that too fast. Try again in %d seconds.", e.limiter.RetryAfter(reset))), true
}

func (e *Endpoint) write(w http.ResponseWriter, resp *discordgo.InteractionResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		e.logger.Error("encode interaction response", zap.Error(err))
		model.NewInternalError("").WriteJSON(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		e.logger.Warn("write interaction response", zap.Error(err))
	}
}

func label(req *bot.Request) string {
	if req.Kind == bot.KindCommand {
		return req.Command
	}
	return req.CustomID
}
