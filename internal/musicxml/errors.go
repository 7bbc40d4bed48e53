package musicxml

// ParseError reports an unusable MusicXML document: malformed XML, a missing
// required element, or a pitch that maps outside the keyboard.
type ParseError struct {
	message string
}

func (e *ParseError) Error() string {
	return e.message
}

// NewParseError creates a parse error with the given description.
func NewParseError(message string) *ParseError {
	return &ParseError{message: message}
}
