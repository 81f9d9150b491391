package antenna

import "errors"

var (
	// ErrMalformedPattern is returned for sample sets that do not describe one uniform revolution
	ErrMalformedPattern = errors.New("antenna: malformed pattern")

	// ErrAmbiguousBoresight is returned when the computed boresight does not fall on a sample
	ErrAmbiguousBoresight = errors.New("antenna: ambiguous boresight")
)
