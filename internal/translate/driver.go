package translate

import (
	"context"
	"unicode"

	"github.com/louanfontenele/LocoTranslator/internal/catalog"
	"github.com/louanfontenele/LocoTranslator/internal/progress"
)

// TranslationMemory caches provider responses across runs so repeated
// source strings are not sent to the service twice.
type TranslationMemory interface {
	Get(ctx context.Context, source string) (string, bool, error)
	Put(ctx context.Context, source, translation string) error
}

// Driver resolves entries that need translation and records the outcome.
type Driver struct {
	translator Translator
	policy     Policy
	memory     TranslationMemory

	calls     int
	cacheHits int
}

// NewDriver creates a driver. memory may be nil to disable caching.
func NewDriver(t Translator, policy Policy, memory TranslationMemory) *Driver {
	return &Driver{translator: t, policy: policy, memory: memory}
}

// Calls returns the number of requests sent to the translation service.
func (d *Driver) Calls() int { return d.calls }

// CacheHits returns the number of forms served from the translation memory.
func (d *Driver) CacheHits() int { return d.cacheHits }

// Resolve translates every form of the entry and returns the resulting
// progress record. An entry is marked done only when all of its forms
// translated successfully; a transient failure after retries marks the
// entry failed so the run can continue. A non-nil error is returned only
// for permanent failures that should abort the run.
func (d *Driver) Resolve(ctx context.Context, e *catalog.Entry) (progress.Result, error) {
	res := progress.Result{
		Singular: e.MsgID,
		Plural:   e.MsgIDPlural,
		Status:   progress.StatusPending,
	}

	singular, attempts, err := d.translateForm(ctx, e.MsgID)
	res.Attempts += attempts
	if err != nil {
		if IsPermanent(err) {
			return res, err
		}
		res.Status = progress.StatusFailed
		res.Err = err.Error()
		return res, nil
	}

	var plural string
	if e.HasPlural() {
		plural, attempts, err = d.translateForm(ctx, e.MsgIDPlural)
		res.Attempts += attempts
		if err != nil {
			if IsPermanent(err) {
				return res, err
			}
			res.Status = progress.StatusFailed
			res.Err = err.Error()
			return res, nil
		}
	}

	res.SingularTranslation = singular
	res.PluralTranslation = plural
	res.Status = progress.StatusDone
	return res, nil
}

// translateForm resolves a single form, consulting the translation
// memory before calling the service. Cache errors degrade to a miss.
func (d *Driver) translateForm(ctx context.Context, text string) (string, int, error) {
	if d.memory != nil {
		if cached, ok, err := d.memory.Get(ctx, text); err == nil && ok {
			d.cacheHits++
			return cached, 0, nil
		}
	}

	var out string
	attempts, err := d.policy.Do(ctx, func(ctx context.Context) error {
		translated, err := d.translator.Translate(ctx, text)
		if err != nil {
			return err
		}
		out = translated
		return nil
	})
	d.calls += attempts
	if err != nil {
		return "", attempts, err
	}

	// A response with no letters at all is almost certainly the service
	// echoing markup or refusing; keep the source text instead.
	if !hasLetter(out) && hasLetter(text) {
		out = text
	}

	if d.memory != nil {
		_ = d.memory.Put(ctx, text, out)
	}
	return out, attempts, nil
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
