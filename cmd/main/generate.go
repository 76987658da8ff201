package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/CTAG07/Sundew/pkg/corpus"
	"github.com/CTAG07/Sundew/pkg/ngram"
	"github.com/CTAG07/Sundew/pkg/templating"
)

// runGenerate trains a model on a corpus file and prints the requested
// number of generated samples.
func (a *app) runGenerate(args []string) error {
	cfg := a.config
	fs := a.newFlagSet("generate")
	corpusPath := fs.String("corpus", cfg.Generate.CorpusPath, "path to the training corpus")
	order := fs.Int("order", cfg.Model.Order, "n-gram order (context size + 1, at least 2)")
	maxLength := fs.Int("max-length", cfg.Generate.MaxLength, "maximum number of tokens to generate")
	minCount := fs.Int("min-count", cfg.Model.MinCount, "minimum occurrences required to keep a token out of <unk>")
	numSamples := fs.Int("num-samples", cfg.Generate.NumSamples, "how many independent generations to produce")
	seed := fs.Uint64("seed", 0, "random seed for reproducible sampling (default: random)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	seedSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})

	text, err := corpus.Load(*corpusPath)
	if err != nil {
		return err
	}

	model, err := ngram.New(*order, ngram.WithMinCount(*minCount))
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	model.SetLogger(a.logger)
	if seedSet {
		model.SetRand(rand.New(rand.NewPCG(*seed, *seed)))
	}

	model.Train(text)
	if !model.Trained() {
		a.logger.Warn("Corpus contains no tokens, generated text will be empty", slog.String("corpus", *corpusPath))
	}
	stats := model.Stats()
	a.logger.Info("Model ready",
		slog.Int("vocab_size", stats.VocabSize),
		slog.Int("contexts", stats.Contexts),
		slog.Int("transitions", stats.Transitions),
		slog.Int("starting_tokens", stats.StartingTokens),
	)

	tm, err := templating.NewTemplateManager(a.logger, model, *cfg.Templates, cfg.TemplateDir)
	if err != nil {
		return fmt.Errorf("failed to create template manager: %w", err)
	}

	for i := 1; i <= *numSamples; i++ {
		sample := templating.Sample{Index: i, Text: model.Generate(*maxLength)}
		if err = tm.RenderSample(a.stdout, sample); err != nil {
			return fmt.Errorf("failed to render sample %d: %w", i, err)
		}
	}
	return nil
}
