package logbase

// Fields holds the structured data attached to a record.
type Fields map[string]any

// Record is a single log entry on its way to a Sender. It is built fresh for
// every Report call and is not retained by the processor afterwards.
type Record map[string]any

// newRecord builds the base record for a report. The caller's fields are
// copied so enrichments never write into a map the caller still holds.
func newRecord(msg string, extra Fields) Record {
	fields := make(Fields, len(extra))
	for k, v := range extra {
		fields[k] = v
	}
	return Record{
		MessageKey: msg,
		FieldsKey:  fields,
	}
}

// Message returns the record's message, or "" when it is missing or not a string.
func (r Record) Message() string {
	msg, _ := r[MessageKey].(string)
	return msg
}

// Fields returns the record's field map, creating it when it is missing.
// A plain map[string]any stored by an enrichment is converted in place.
func (r Record) Fields() Fields {
	switch f := r[FieldsKey].(type) {
	case Fields:
		if f != nil {
			return f
		}
	case map[string]any:
		if f != nil {
			r[FieldsKey] = Fields(f)
			return f
		}
	}
	f := Fields{}
	r[FieldsKey] = f
	return f
}

// merge copies every entry of src into f, overwriting existing keys.
func (f Fields) merge(src Fields) Fields {
	for k, v := range src {
		f[k] = v
	}
	return f
}

// mergeFields folds the optional field maps of the severity helpers into one.
func mergeFields(fields []Fields) Fields {
	switch len(fields) {
	case 0:
		return nil
	case 1:
		return fields[0]
	}
	out := Fields{}
	for _, f := range fields {
		out.merge(f)
	}
	return out
}
