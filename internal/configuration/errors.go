package configuration

// ConfigurationError reports an invalid or unloadable configuration: bad
// threshold ordering, negative weights, malformed override files and so on.
type ConfigurationError struct {
	message string
}

func (e *ConfigurationError) Error() string {
	return e.message
}

// NewConfigurationError creates a configuration error with the given
// description.
func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{message: message}
}
