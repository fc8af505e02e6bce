// Package pipeline orchestrates a catalog translation run from parsed
// input to the written output catalog.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/louanfontenele/LocoTranslator/internal/catalog"
	"github.com/louanfontenele/LocoTranslator/internal/classify"
	"github.com/louanfontenele/LocoTranslator/internal/memory"
	"github.com/louanfontenele/LocoTranslator/internal/progress"
	"github.com/louanfontenele/LocoTranslator/internal/translate"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

// RunConfig holds everything a translation run needs.
type RunConfig struct {
	SourcePath   string
	OutputPath   string
	ProgressPath string

	TargetLanguage string
	Context        string
	Provider       string
	Model          string
	APIKey         string

	MaxRetries int
	Timeout    time.Duration

	CacheEnabled bool
	CachePath    string

	// PlaceholderPatterns overrides the classifier's defaults.
	PlaceholderPatterns []string

	// Quiet disables the progress bar and per-run summary.
	Quiet bool
}

// Stats summarizes what a run did.
type Stats struct {
	Total      int
	Translated int
	Reused     int
	Skipped    int
	Failed     int
	CacheHits  int
	Elapsed    time.Duration
}

// Runner executes translation runs.
type Runner struct {
	cfg        RunConfig
	translator translate.Translator
	policy     translate.Policy
}

// NewRunner builds a runner, connecting to the configured provider.
func NewRunner(ctx context.Context, cfg RunConfig) (*Runner, error) {
	translator, err := translate.New(ctx, translate.Config{
		Provider:       cfg.Provider,
		Model:          cfg.Model,
		APIKey:         cfg.APIKey,
		TargetLanguage: cfg.TargetLanguage,
		Context:        cfg.Context,
		Timeout:        cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}

	policy := translate.DefaultPolicy()
	if cfg.MaxRetries > 0 {
		policy.MaxAttempts = cfg.MaxRetries
	}

	return &Runner{
		cfg:        cfg,
		translator: translate.WithBreaker(translator),
		policy:     policy,
	}, nil
}

// Run translates the source catalog and writes the merged output. It is
// safe to call again after an interrupted run; completed entries are
// reused from the progress store instead of being translated again.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	start := time.Now()
	stats := Stats{}

	file, err := catalog.ParseFile(r.cfg.SourcePath)
	if err != nil {
		return stats, err
	}
	stats.Total = len(file.Entries)

	store, err := progress.Load(r.cfg.ProgressPath)
	if err != nil {
		return stats, err
	}

	var mem *memory.Cache
	if r.cfg.CacheEnabled {
		mem, err = memory.Open(r.cfg.CachePath, r.cfg.TargetLanguage, r.cfg.Context,
			r.translator.Name(), r.cfg.Model)
		if err != nil {
			return stats, fmt.Errorf("open translation memory: %w", err)
		}
		defer mem.Close()
	}

	var driver *translate.Driver
	if mem != nil {
		driver = translate.NewDriver(r.translator, r.policy, mem)
	} else {
		driver = translate.NewDriver(r.translator, r.policy, nil)
	}

	classifier, err := classify.New(r.cfg.PlaceholderPatterns)
	if err != nil {
		return stats, err
	}

	bar := r.newBar(len(file.Entries))

	for _, e := range file.Entries {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		switch classifier.Classify(e, store) {
		case classify.Skip:
			stats.Skipped++
		case classify.Reuse:
			stats.Reused++
		case classify.Translate:
			res, err := driver.Resolve(ctx, e)
			if res.Status != "" && res.Status != progress.StatusPending {
				key := progress.Key(e.MsgID, e.MsgIDPlural)
				if putErr := store.Put(key, res); putErr != nil {
					return stats, putErr
				}
			}
			if err != nil {
				return stats, fmt.Errorf("translating %q: %w", e.MsgID, err)
			}
			if res.Status == progress.StatusFailed {
				stats.Failed++
				if !r.cfg.Quiet {
					fmt.Fprintf(os.Stderr, "\n%s failed after %d attempts: %q (%s)\n",
						red("✗"), res.Attempts, e.MsgID, res.Err)
				}
			} else {
				stats.Translated++
			}
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if err := r.writeOutput(file, store); err != nil {
		return stats, err
	}

	if mem != nil {
		stats.CacheHits = driver.CacheHits()
	}
	stats.Elapsed = time.Since(start)

	if !r.cfg.Quiet {
		r.printSummary(stats)
	}
	return stats, nil
}

// writeOutput renders the catalog with every completed translation
// merged in and writes it to the output path.
func (r *Runner) writeOutput(file *catalog.File, store *progress.Store) error {
	lookup := func(e *catalog.Entry) (catalog.Translation, bool) {
		res, ok := store.Get(progress.Key(e.MsgID, e.MsgIDPlural))
		if !ok || res.Status != progress.StatusDone {
			return catalog.Translation{}, false
		}
		return catalog.Translation{
			Singular: res.SingularTranslation,
			Plural:   res.PluralTranslation,
		}, true
	}
	return file.WriteFile(r.cfg.OutputPath, lookup)
}

func (r *Runner) newBar(total int) *progressbar.ProgressBar {
	if r.cfg.Quiet {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", filepath.Base(r.cfg.SourcePath))),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

func (r *Runner) printSummary(stats Stats) {
	fmt.Printf("\n=== Translation Summary ===\n")
	fmt.Printf("Total entries: %d\n", stats.Total)
	fmt.Printf("Translated: %s\n", green(fmt.Sprintf("%d", stats.Translated)))
	fmt.Printf("Reused from progress: %d\n", stats.Reused)
	fmt.Printf("Skipped: %d\n", stats.Skipped)
	if stats.Failed > 0 {
		fmt.Printf("Failed: %s\n", red(fmt.Sprintf("%d", stats.Failed)))
	}
	if stats.CacheHits > 0 {
		fmt.Printf("Cache hits: %s\n", yellow(fmt.Sprintf("%d", stats.CacheHits)))
	}
	fmt.Printf("Elapsed: %s\n", stats.Elapsed.Round(time.Millisecond))
	fmt.Printf("Output: %s\n", r.cfg.OutputPath)
}
