package logbase

import "errors"

var (
	// ErrSendNotImplemented is returned when a record reaches the emission
	// hook of a processor that has no Sender bound.
	ErrSendNotImplemented = errors.New(errMsgSendNotImplemented)

	// ErrInvalidEnrichment is returned by AddEnrichment for nil enrichers.
	ErrInvalidEnrichment = errors.New(errMsgInvalidEnrichment)

	// ErrUnsupportedLevelSpec is returned by ConfigureLevelsFrom when the
	// input has a shape it cannot read. The level set is left untouched.
	ErrUnsupportedLevelSpec = errors.New(errMsgUnsupportedLevels)
)
