package services

// Custom errors
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

// MissingCredentialError means neither the request nor the server supplied a
// Gemini API key.
type MissingCredentialError struct{}

func (e *MissingCredentialError) Error() string { return "Gemini API Key not provided." }

// ProviderError wraps any failure of the upstream generation call. Its message
// is the upstream error text, unchanged.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string { return e.Err.Error() }

func (e *ProviderError) Unwrap() error { return e.Err }
