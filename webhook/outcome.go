package webhook

import "fmt"

/* Outcome represents what ingestion did with a pushed body
 * Every outcome is acknowledged to WAHA with a success response
 */
type Outcome int

const (
	Stored Outcome = iota + 1
	Ignored
	Duplicate
	Unverified
)

// Outcomes lists every valid outcome, in declaration order
var Outcomes = []Outcome{Stored, Ignored, Duplicate, Unverified}

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case Stored:
		return "stored"
	case Ignored:
		return "ignored"
	case Duplicate:
		return "duplicate"
	case Unverified:
		return "unverified"
	default:
		return "unknown"
	}
}

// NewOutcome creates an Outcome from a string
func NewOutcome(str string) Outcome {
	switch str {
	case "stored":
		return Stored
	case "duplicate":
		return Duplicate
	case "unverified":
		return Unverified
	default:
		return Ignored
	}
}

// Validate checks if the outcome is valid
func (o Outcome) Validate() error {
	if o < Stored || o > Unverified {
		return fmt.Errorf("invalid outcome: %d", o)
	}
	return nil
}

// Message is the acknowledgement text sent back to WAHA
func (o Outcome) Message() string {
	if o == Ignored {
		return "Webhook endpoint is reachable. Payload ignored."
	}
	return "Webhook received"
}
