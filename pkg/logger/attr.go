package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the emitting component under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Username records the account name under the key "username".
func Username(name string) slog.Attr {
	return slog.String("username", name)
}

// Subject records a token subject under the key "subject".
func Subject(subject string) slog.Attr {
	return slog.String("subject", subject)
}
