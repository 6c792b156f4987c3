// Package testdb provides test database utilities.
//
// # Test Database Setup
//
// Create a test database for each test:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//	}
//
// Connection settings come from TEST_DB_HOST, TEST_DB_PORT, TEST_DB_USER and
// TEST_DB_PASSWORD. Tests are skipped when the server cannot be reached.
//
// # Isolation
//
// Each test gets its own namespace, removed again by Close. Reset empties the
// record sets for tests that reuse one TestDB across subtests.
package testdb
