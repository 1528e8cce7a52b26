package models

// TextProcessRequest is the body of the simplify and translate endpoints.
type TextProcessRequest struct {
	Text   string `json:"text"`
	APIKey string `json:"api_key,omitempty"`
}

type SimplifyResponse struct {
	SimplifiedText string `json:"simplified_text"`
}

type TranslateResponse struct {
	TranslatedText string `json:"translated_text"`
}

type HealthResponse struct {
	Status                string `json:"status"`
	Model                 string `json:"model"`
	FallbackKeyConfigured bool   `json:"fallback_key_configured"`
}
