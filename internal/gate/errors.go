package gate

import "errors"

// Sentinel errors wrapped by Gate.Authorize; match them with errors.Is.
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNoPolicyDefined = errors.New("no policy defined for resource")
)
