// Package database provides database connectivity for the matchmaking bot.
//
// # Connection Management
//
// Connect to SurrealDB:
//
//	db := database.NewSurrealDB(database.Config{
//	    Host:      "localhost",
//	    Port:      "8000",
//	    User:      "root",
//	    Password:  "secret",
//	    Namespace: "matchbot",
//	    Database:  "production",
//	})
//	if err := db.Connect(ctx); err != nil {
//	    return err
//	}
//	defer db.Close()
//
// # Result Shape
//
// Query returns one {status, result} map per statement. QueryOne unwraps the
// first statement and returns its first record, or ErrNotFound when the
// statement produced nothing.
package database
