package interpret

import "errors"

var (
	// errRemoteDisabled marks a gateway with no configured client.
	errRemoteDisabled = errors.New("remote interpretation disabled")

	// errEmptyUtterance marks text that normalized down to nothing.
	errEmptyUtterance = errors.New("utterance empty after normalization")
)
