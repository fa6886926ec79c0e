package logbase

import (
	"os"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// sameEnricher reports whether a and b are the same registered enricher.
// Comparable values (pointers, structs of comparable fields) use ==; function
// values are matched by code pointer, so two closures created from the same
// literal are indistinguishable. Register a pointer type when that matters.
func sameEnricher(a, b Enricher) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Kind() == reflect.Func {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	if ta.Comparable() {
		return a == b
	}
	return false
}

// isNilEnricher catches both a nil interface and a typed nil stored in one.
func isNilEnricher(e Enricher) bool {
	return e == nil || isNilValue(e)
}

// isNilValue reports whether v holds a nil pointer, func, map, slice, chan
// or interface.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Ptr, reflect.Map, reflect.Interface, reflect.Slice, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// StaticFields sets the same fields on every record, overwriting whatever an
// earlier enrichment put there.
type StaticFields struct {
	Values Fields
}

// NewStaticFields returns a StaticFields enricher holding a copy of values.
func NewStaticFields(values Fields) *StaticFields {
	return &StaticFields{Values: Fields{}.merge(values)}
}

func (s *StaticFields) Enrich(rec Record) Record {
	rec.Fields().merge(s.Values)
	return rec
}

// Hostname returns an enricher that stamps fields.host with the machine's
// hostname, resolved once when the enricher is created.
func Hostname() *StaticFields {
	host, err := os.Hostname()
	if err != nil || host == emptyString {
		host = "unknown"
	}
	return NewStaticFields(Fields{"host": host})
}

// InstanceID returns an enricher that stamps fields.instance_id with a random
// identifier generated once, so records from one process can be correlated.
func InstanceID() *StaticFields {
	return NewStaticFields(Fields{"instance_id": uuid.NewString()})
}

// Timestamp returns an enricher that sets fields.time from now.
// A nil now uses time.Now.
func Timestamp(now func() time.Time) EnricherFunc {
	if now == nil {
		now = time.Now
	}
	return func(rec Record) Record {
		rec.Fields()["time"] = now()
		return rec
	}
}
