package handler

import (
	"context"

	"go.uber.org/zap"

	"github.com/Sakemo/matchmake-bot/internal/bot"
	"github.com/Sakemo/matchmake-bot/internal/logger"
)

// maxChoicePreview caps the choice list shown as a modal placeholder
const maxChoicePreview = 100

// CommandHandler is a domain handler that contributes to the dispatch table
type CommandHandler interface {
	Commands() []bot.Command
	Routes(r *bot.Router)
}

// Register adds every handler's commands and routes to the router
func Register(r *bot.Router, handlers ...CommandHandler) error {
	for _, h := range handlers {
		if err := r.Register(h.Commands()...); err != nil {
			return err
		}
		h.Routes(r)
	}
	return nil
}

// Responder dispatches requests and turns errors into user-facing replies
type Responder struct {
	router *bot.Router
	logger *zap.Logger
}

// NewResponder creates a responder over router
func NewResponder(router *bot.Router, log *zap.Logger) *Responder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Responder{router: router, logger: log}
}

// Commands returns the dispatch table for platform registration
func (r *Responder) Commands() []*bot.Command {
	return r.router.Commands()
}

// Respond always produces a payload. Unexpected errors are logged and
// answered with a generic message.
func (r *Responder) Respond(ctx context.Context, req *bot.Request) *bot.Response {
	resp, err := r.router.Dispatch(ctx, req)
	if err == nil {
		if resp == nil {
			resp = bot.Ephemeral("Done.")
		}
		return resp
	}

	msg, known := MapError(err)
	if !known {
		r.logger.Error("interaction failed",
			append(logger.InteractionFields(req.ID, commandLabel(req), req.UserID(), req.GuildID), zap.Error(err))...,
		)
	}
	return bot.Ephemeral(msg)
}

func commandLabel(req *bot.Request) string {
	if req.Kind == bot.KindCommand {
		return req.Command
	}
	return req.CustomID
}
