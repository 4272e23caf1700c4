package intake

import (
	"strings"
)

// Form is a decoded submission: text fields and at most one attachment.
type Form struct {
	Fields map[string]string
	Image  *Attachment
}

// Attachment is an uploaded file held in memory.
type Attachment struct {
	Filename string
	Data     []byte
}

// ValidationError reports required fields that were missing or empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "Missing required fields"
}

// Detail lists the missing fields, for logs.
func (e *ValidationError) Detail() string {
	return strings.Join(e.Missing, ", ")
}

// validate checks that every required field is present and non-empty.
func validate(f Form, required []string) error {
	var missing []string
	for _, name := range required {
		if f.Fields[name] == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
