// Package handler provides the slash-command handlers of the matchmaking bot.
//
// Handlers are organized by domain. Each handler struct encapsulates the
// services needed for one feature area and exposes:
//
//   - Commands: the dispatch-table entries it serves
//   - Routes: component (button) and modal-submit handlers it owns
//
// Handlers return service errors unchanged; MapError converts them into the
// user-facing ephemeral message in one place.
//
// # Example Usage
//
//	router := bot.NewRouter(logger)
//	err := handler.Register(router,
//	    handler.NewQuestionnaireHandler(handler.QuestionnaireHandlerConfig{
//	        QuestionnaireService: questionnaireService,
//	    }),
//	)
//	responder := handler.NewResponder(router, logger)
package handler
