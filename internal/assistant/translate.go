package assistant

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"
)

var ErrNoDetection = errors.New("language could not be detected")

// Translator calls the Cloud Translation v2 API with an API key.
type Translator struct {
	service *translate.Service
}

// NewTranslator creates a translation client. Extra options follow the
// API key.
func NewTranslator(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Translator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Google Translate API key is required")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := translate.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Translate service: %w", err)
	}
	return &Translator{service: service}, nil
}

// Translate translates one text into the target language.
func (t *Translator) Translate(ctx context.Context, text, target string) (string, error) {
	out, err := t.TranslateBatch(ctx, []string{text}, target)
	if err != nil {
		return "", err
	}
	return out[0], nil
}

// TranslateBatch translates all texts in one request, keeping their order.
func (t *Translator) TranslateBatch(ctx context.Context, texts []string, target string) ([]string, error) {
	if len(texts) == 0 {
		return []string{}, nil
	}

	resp, err := t.service.Translations.List(texts, target).Format("text").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("translate to %s: %w", target, err)
	}
	if len(resp.Translations) != len(texts) {
		return nil, fmt.Errorf("translate to %s: got %d translations for %d texts", target, len(resp.Translations), len(texts))
	}

	out := make([]string, len(resp.Translations))
	for i, tr := range resp.Translations {
		out[i] = tr.TranslatedText
	}
	return out, nil
}

// DetectLanguage returns the most likely language code of text.
func (t *Translator) DetectLanguage(ctx context.Context, text string) (string, error) {
	resp, err := t.service.Detections.List([]string{text}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("detect language: %w", err)
	}
	if len(resp.Detections) == 0 || len(resp.Detections[0]) == 0 {
		return "", ErrNoDetection
	}
	return resp.Detections[0][0].Language, nil
}
