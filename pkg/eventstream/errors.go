package eventstream

import "errors"

var (
	// ErrNilTurnEvent indicates a nil turn event was handed to a publisher.
	ErrNilTurnEvent = errors.New("nil turn event")

	// ErrUnknownProvider is returned for an events.provider value with no
	// publisher behind it.
	ErrUnknownProvider = errors.New("unknown event provider")
)

// Provider names accepted by events.provider.
const (
	ProviderNone  = "none"
	ProviderKafka = "kafka"
)
