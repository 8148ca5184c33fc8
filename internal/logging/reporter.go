package logging

import (
	"github.com/felixgeelhaar/bolt/v3"

	"github.com/aabizri/gemoturtle"
)

var _ gemoturtle.Diagnostics = (*Reporter)(nil)

// Reporter logs every generation of an LSystem at debug level.
type Reporter struct {
	logger *bolt.Logger
	fields []Field
}

// NewReporter creates a Reporter tagging every entry with fields.
func NewReporter(logger *bolt.Logger, fields ...Field) *Reporter {
	return &Reporter{logger: logger, fields: fields}
}

// Generated implements gemoturtle.Diagnostics.
func (r *Reporter) Generated(generation uint, length int) {
	NewEvent(r.logger.Debug()).
		Add(r.fields...).
		Add(Generation(generation), Length(length)).
		Msg("generated")
}
