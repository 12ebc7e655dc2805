package webhook

//go:generate go tool mockery --name "Repository|Publisher" --output ./mocks

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 * The only implementation is the in-memory Buffer; events do not survive a restart
 */

// Reader provides read operations for buffered events
type Reader interface {
	/* Query returns a copy of the buffered events, newest first
	 * An empty session matches every event
	 */
	Query(session string, limit int) []Event
	Len() int
}

// Writer provides write operations for buffered events
type Writer interface {
	/* Add appends ev unless an equal event is already buffered
	 * Returns false for duplicates
	 */
	Add(ev Event) bool
	Clear()
}

/* Interface composition - combining small interfaces into larger ones
 * This is preferred over large monolithic interfaces
 */
type Repository interface {
	Reader
	Writer
}
