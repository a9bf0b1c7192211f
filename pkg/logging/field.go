package logging

import "time"

// StringField creates a Field with a string value.
func StringField(key, value string) Field {
	return Field{Key: key, Value: value}
}

// IntField creates a Field with an integer value.
func IntField(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// BoolField creates a Field with a boolean value.
func BoolField(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// DurationField records d in milliseconds, keeping microsecond
// precision.
func DurationField(key string, d time.Duration) Field {
	return Field{Key: key, Value: float64(d.Microseconds()) / 1000}
}

// ErrorField creates a Field for an error value. A nil error is
// logged as "<nil>".
func ErrorField(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: "<nil>"}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Call renders the check as written against the facade, e.g.
// `Foo.not.isUnion`.
func (r CheckRecord) Call() string {
	if r.Negated {
		return r.Type + ".not." + r.Check
	}
	return r.Type + "." + r.Check
}

// Fields flattens the record into log fields. The message is left
// out; the suite only when set.
func (r CheckRecord) Fields() []Field {
	fields := []Field{
		StringField("type", r.Type),
		StringField("check", r.Check),
		BoolField("negated", r.Negated),
		StringField("outcome", r.Outcome),
		BoolField("passed", r.Passed),
		DurationField("duration_ms", time.Duration(r.DurationUs)*time.Microsecond),
	}
	if r.Suite != "" {
		fields = append(fields, StringField("suite", r.Suite))
	}
	return fields
}
