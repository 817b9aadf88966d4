package scenario

import "fmt"

// ConfigError is a missing or malformed scenario field. It is raised before
// the day loop starts.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("scenario config %s: %s", e.Field, e.Message)
}

func newConfigError(field, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}
