package assistant

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fixed inputs for the diagnostic run
const (
	SloganPrompt    = "Generate a short, catchy slogan for a coffee shop."
	AnalysisPrompt  = "Campaign A performed well with a high conversion rate."
	TranslateSample = "Hello, world!"
	TranslateTarget = "es"
	DetectSample    = "Bonjour"
	BatchTarget     = "fr"
)

// BatchSamples are translated together to BatchTarget
var BatchSamples = []string{"Good morning", "Good afternoon"}

// TextGenerator produces text from a prompt
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// TextTranslator translates and detects languages
type TextTranslator interface {
	Translate(ctx context.Context, text, target string) (string, error)
	TranslateBatch(ctx context.Context, texts []string, target string) ([]string, error)
	DetectLanguage(ctx context.Context, text string) (string, error)
}

// GeminiReport holds the generative text results
type GeminiReport struct {
	Slogan   string `json:"slogan"`
	Analysis string `json:"analysis"`
}

// TranslateReport holds the translation results
type TranslateReport struct {
	TranslatedText    string   `json:"translatedText"`
	DetectedLanguage  string   `json:"detectedLanguage"`
	BatchTranslations []string `json:"batchTranslations"`
}

// Report is the outcome of a successful diagnostic run
type Report struct {
	Gemini    GeminiReport    `json:"gemini"`
	Translate TranslateReport `json:"translate"`
}

// Diagnostics checks that both Google providers answer
type Diagnostics struct {
	generator  TextGenerator
	translator TextTranslator
	logger     *zap.Logger
}

// NewDiagnostics creates a diagnostics runner
func NewDiagnostics(generator TextGenerator, translator TextTranslator, logger *zap.Logger) *Diagnostics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Diagnostics{generator: generator, translator: translator, logger: logger}
}

// Run calls every provider operation once. The generator and translator
// checks run concurrently; the first failure cancels the other.
func (d *Diagnostics) Run(ctx context.Context) (*Report, error) {
	var report Report
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slogan, err := d.generator.GenerateText(ctx, SloganPrompt)
		if err != nil {
			return err
		}
		analysis, err := d.generator.GenerateText(ctx, AnalysisPrompt)
		if err != nil {
			return err
		}
		report.Gemini = GeminiReport{Slogan: slogan, Analysis: analysis}
		return nil
	})

	g.Go(func() error {
		translated, err := d.translator.Translate(ctx, TranslateSample, TranslateTarget)
		if err != nil {
			return err
		}
		detected, err := d.translator.DetectLanguage(ctx, DetectSample)
		if err != nil {
			return err
		}
		batch, err := d.translator.TranslateBatch(ctx, BatchSamples, BatchTarget)
		if err != nil {
			return err
		}
		report.Translate = TranslateReport{
			TranslatedText:    translated,
			DetectedLanguage:  detected,
			BatchTranslations: batch,
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		d.logger.Error("Google services diagnostic failed", zap.Error(err))
		return nil, err
	}
	return &report, nil
}
