package services

import "strings"

// KeyResolver picks the Gemini API key used for a single request.
type KeyResolver struct {
	fallback string
}

func NewKeyResolver(fallbackKey string) *KeyResolver {
	return &KeyResolver{fallback: strings.TrimSpace(fallbackKey)}
}

// Resolve prefers the caller's key and falls back to the server key.
func (k *KeyResolver) Resolve(requestKey string) (string, error) {
	if key := strings.TrimSpace(requestKey); key != "" {
		return key, nil
	}
	if k.fallback != "" {
		return k.fallback, nil
	}
	return "", &MissingCredentialError{}
}

// HasFallback reports whether a server-side key was configured.
func (k *KeyResolver) HasFallback() bool {
	return k.fallback != ""
}
