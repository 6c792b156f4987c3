// Package discord adapts the bot dispatch table to Discord.
//
// The adapter serves the HTTP interactions endpoint: it decodes a signed
// interaction into a bot.Request, hands it to a Responder and writes the
// resulting bot.Response back as an interaction callback. It also publishes
// the command table, looks up guild members and sends match notifications
// by direct message through the REST API.
//
// Nothing here knows about questions, answers or scoring.
package discord
