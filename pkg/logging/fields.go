package logging

// Detail is a logging detail that enrich the logging message with additional contextual detail.
type Detail interface {
	addTo(e entry)
}

// Field creates a single key value pair based logging detail.
// It will enrich the log entry with a value in the key you gave.
func Field(key string, value any) Detail {
	return field{Key: key, Value: value}
}

type field struct {
	Key   string
	Value any
}

func (f field) addTo(e entry) {
	e[f.Key] = toFieldValue(f.Value)
}

// LazyDetail lets you add logging details that aren’t evaluated until the log is actually created.
type LazyDetail func() Detail

func (fn LazyDetail) addTo(e entry) {
	if fn == nil {
		return
	}
	if d := fn(); d != nil {
		d.addTo(e)
	}
}

// Fields is a collection of field that you can add to your loggig record.
type Fields map[string]any

func (fields Fields) addTo(e entry) {
	for k, v := range fields {
		Field(k, v).addTo(e)
	}
}

// ErrField adds the error message under the "error" key.
// A nil error adds nothing.
func ErrField(err error) Detail {
	if err == nil {
		return nullLoggingDetail{}
	}
	return Field("error", Fields{"message": err.Error()})
}

func toFieldValue(val any) any {
	switch val := val.(type) {
	case Fields:
		e := entry{}
		val.addTo(e)
		return map[string]any(e)
	case Detail:
		e := entry{}
		val.addTo(e)
		return map[string]any(e)
	case error:
		return val.Error()
	default:
		return val
	}
}

type entry map[string]any

type nullLoggingDetail struct{}

func (nullLoggingDetail) addTo(entry) {}
