package services

import "fmt"

const DefaultTargetLanguage = "English"

func buildSimplifyPrompt(text string) string {
	return fmt.Sprintf("Simplify the following text: %s", text)
}

func buildTranslatePrompt(targetLanguage, text string) string {
	if targetLanguage == "" {
		targetLanguage = DefaultTargetLanguage
	}
	return fmt.Sprintf("Translate the following text to %s: %s", targetLanguage, text)
}
