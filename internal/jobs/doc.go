// Package jobs implements background work that runs independently of
// interaction handling.
//
// # Job Types
//
//   - SessionJanitor: drops expired browse sessions from the in-memory
//     session store (Redis expires keys on its own)
//
// # Lifecycle
//
// Jobs are started after the HTTP server is wired and stopped during
// graceful shutdown:
//
//	janitor := jobs.NewSessionJanitor(store, time.Minute, logger)
//	janitor.Start()
//	defer janitor.Stop()
//
// # Error Handling
//
// Jobs log errors but don't crash the application. A failed run is simply
// retried on the next tick.
package jobs
