package webhook

import "github.com/stretchr/testify/mock"

// MatchEvent creates a custom matcher for event arguments in mocks
func MatchEvent(matcher func(Event) bool) interface{} {
	return mock.MatchedBy(matcher)
}

// MatchBroadcast matches the frame handed to a Publisher mock
func MatchBroadcast(matcher func(Broadcast) bool) interface{} {
	return mock.MatchedBy(func(msg any) bool {
		b, ok := msg.(Broadcast)
		return ok && matcher(b)
	})
}
