// Package bot is the platform-neutral command surface of the matchmaking bot.
//
// A Router holds the dispatch table: slash commands by name, plus component
// (button) and modal-submit handlers routed by the first segment of their
// custom ID. Handlers receive a Request with typed, validated arguments and
// return a Response describing the outbound payload: a message, an update of
// the message that carried the pressed button, or a modal prompt.
//
// Custom IDs are colon separated, for example:
//
//	match:accept:<session-id>
//	register:1
//
// The platform adapter (internal/discord) translates interactions into
// Requests and Responses into wire payloads.
package bot
