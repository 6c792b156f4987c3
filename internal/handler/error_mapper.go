package handler

import (
	"errors"
	"strings"

	"github.com/Sakemo/matchmake-bot/internal/bot"
	"github.com/Sakemo/matchmake-bot/internal/service"
)

const genericErrorMessage = "An unexpected error occurred."

// MapError converts a dispatch or service error to the message shown to the
// user. known is false for errors that were not anticipated and should be
// logged.
func MapError(err error) (msg string, known bool) {
	if err == nil {
		return "", true
	}

	var argErr *bot.ArgumentError
	switch {
	// ===== Dispatch Errors =====
	case errors.Is(err, bot.ErrForbidden):
		return "You do not have permission to run this command.", true
	case errors.Is(err, bot.ErrNoGuild):
		return "This command can only be used in a server.", true
	case errors.Is(err, bot.ErrUnknownCommand),
		errors.Is(err, bot.ErrUnknownComponent):
		return "This interaction is no longer supported.", true
	case errors.As(err, &argErr):
		return "Invalid value for **" + argErr.Option + "**: " + argErr.Reason + ".", true

	// ===== Questionnaire Errors =====
	case errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrAnswerKeyNotFound):
		return "Question not found!", true
	case errors.Is(err, service.ErrQuestionExists):
		return "A question with this key already exists!", true
	case errors.Is(err, service.ErrPromptTooLong):
		return "The question cannot exceed 45 characters!", true
	case errors.Is(err, service.ErrNoQuestions):
		return "No questions configured yet!", true
	case errors.Is(err, service.ErrQuestionKeyRequired),
		errors.Is(err, service.ErrQuestionKeyTooLong),
		errors.Is(err, service.ErrQuestionKeyReserved),
		errors.Is(err, service.ErrPromptRequired),
		errors.Is(err, service.ErrInvalidQuestionKind),
		errors.Is(err, service.ErrInvalidMatchMode),
		errors.Is(err, service.ErrInvalidWeight):
		return sentence(err), true

	// ===== Answer Errors =====
	case errors.Is(err, service.ErrNoAnswers):
		return "You have not registered your answers yet!", true
	case errors.Is(err, service.ErrBioTooLong),
		errors.Is(err, service.ErrSearchKeyRequired),
		errors.Is(err, service.ErrSearchValueRequired):
		return sentence(err), true

	// ===== Personality Errors =====
	case errors.Is(err, service.ErrInvalidPersonality):
		return "Invalid format. Make sure to use 'X% Category' on each line.", true

	// ===== Role Errors =====
	case errors.Is(err, service.ErrRoleRequired),
		errors.Is(err, service.ErrInvalidScore),
		errors.Is(err, service.ErrInvalidRoleTag):
		return sentence(err), true

	// ===== Matchmaking Errors =====
	case errors.Is(err, service.ErrMemberNotFound):
		return "Could not find the member data.", true
	case errors.Is(err, service.ErrNoCandidates):
		return "No match found!", true
	case errors.Is(err, service.ErrSessionNotFound):
		return "This matchmaking session has expired. Run /matchmake again.", true
	case errors.Is(err, service.ErrNotSessionOwner):
		return "Only the member who started matchmaking can respond.", true
	case errors.Is(err, service.ErrSessionExhausted):
		return "No match available!", true

	default:
		return genericErrorMessage, false
	}
}

// sentence capitalizes an error message and terminates it with a period
func sentence(err error) string {
	msg := err.Error()
	if msg == "" {
		return genericErrorMessage
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
