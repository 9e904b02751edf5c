package services

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/retromat/retromat-backend/modules/activity/domain/aggregates/activity2"
	"github.com/retromat/retromat-backend/modules/activity/domain/entities/activity"
	"github.com/retromat/retromat-backend/pkg/composables"
	"github.com/retromat/retromat-backend/pkg/eventbus"
	"github.com/retromat/retromat-backend/pkg/validation"
)

const legacyLocale = "en"

// UnitOfWork runs fn in a transaction committed when fn returns nil.
type UnitOfWork func(ctx context.Context, fn func(ctx context.Context) error) error

type Mapper interface {
	Fill(record map[string]any, target any) error
}

type ActivityImporterOptions struct {
	Reader     activity.Reader
	Mapper     Mapper
	Validator  validation.Validator
	Activities activity.Repository
	Activity2  activity2.Repository
	// UnitOfWork defaults to composables.InTx.
	UnitOfWork UnitOfWork
	Publisher  eventbus.EventBus
}

// PassResult describes one committed import pass.
type PassResult struct {
	Variant  string        `json:"variant"`
	Locale   string        `json:"locale"`
	Inserted int           `json:"inserted"`
	Updated  int           `json:"updated"`
	Duration time.Duration `json:"duration"`
}

type ImportResult struct {
	Passes []PassResult `json:"passes"`
}

func (r *ImportResult) add(p PassResult) {
	r.Passes = append(r.Passes, p)
}

// ActivityImporter copies activities from a Reader into both persisted
// shapes. Every pass reads the whole source and commits once.
type ActivityImporter struct {
	reader       activity.Reader
	uow          UnitOfWork
	publisher    eventbus.EventBus
	legacy       importVariant
	translatable importVariant
}

func NewActivityImporter(opts ActivityImporterOptions) *ActivityImporter {
	uow := opts.UnitOfWork
	if uow == nil {
		uow = composables.InTx
	}
	deps := variantDeps{mapper: opts.Mapper, validator: opts.Validator}
	return &ActivityImporter{
		reader:       opts.Reader,
		uow:          uow,
		publisher:    opts.Publisher,
		legacy:       &legacyVariant{variantDeps: deps, repo: opts.Activities},
		translatable: &translatableVariant{variantDeps: deps, repo: opts.Activity2},
	}
}

// Import runs the legacy pass followed by a translatable pass in locale.
// An empty locale means English.
func (i *ActivityImporter) Import(ctx context.Context, locale string) (*ImportResult, error) {
	if locale == "" {
		locale = legacyLocale
	}
	result := &ImportResult{}
	pass, err := i.Import1(ctx)
	if err != nil {
		return result, err
	}
	result.add(pass)

	pass, err = i.Import2(ctx, locale)
	if err != nil {
		return result, err
	}
	result.add(pass)
	return result, nil
}

// Import2Multiple runs a translatable pass per locale and always finishes
// with English so locale independent fields come from the English source.
func (i *ActivityImporter) Import2Multiple(ctx context.Context, locales []string) (*ImportResult, error) {
	result := &ImportResult{}
	for _, locale := range append(append([]string{}, locales...), legacyLocale) {
		pass, err := i.Import2(ctx, locale)
		if err != nil {
			return result, err
		}
		result.add(pass)
	}
	return result, nil
}

func (i *ActivityImporter) Import1(ctx context.Context) (PassResult, error) {
	return i.run(ctx, i.legacy, legacyLocale)
}

func (i *ActivityImporter) Import2(ctx context.Context, locale string) (PassResult, error) {
	return i.run(ctx, i.translatable, locale)
}

func (i *ActivityImporter) run(ctx context.Context, variant importVariant, locale string) (PassResult, error) {
	start := time.Now()
	result := PassResult{Variant: variant.Name(), Locale: locale}
	logger := composables.UseLogger(ctx).WithFields(logrus.Fields{
		"variant": result.Variant,
		"locale":  locale,
	})

	err := i.pass(ctx, variant, &result)
	result.Duration = time.Since(start)
	importPassDuration.WithLabelValues(result.Variant).Observe(result.Duration.Seconds())

	if err != nil {
		var invalid *InvalidActivityError
		if errors.As(err, &invalid) {
			importPasses.WithLabelValues(result.Variant, "invalid").Inc()
			logger.WithField("violations", len(invalid.Violations)).Warn("import pass aborted by invalid activity")
			return result, err
		}
		importPasses.WithLabelValues(result.Variant, "failed").Inc()
		logger.WithError(err).Error("import pass failed")
		return result, err
	}

	importPasses.WithLabelValues(result.Variant, "committed").Inc()
	importedRecords.WithLabelValues(result.Variant, locale, inserted.String()).Add(float64(result.Inserted))
	importedRecords.WithLabelValues(result.Variant, locale, updated.String()).Add(float64(result.Updated))
	logger.WithFields(logrus.Fields{
		"inserted": result.Inserted,
		"updated":  result.Updated,
		"duration": result.Duration,
	}).Info("import pass committed")

	if i.publisher != nil {
		i.publisher.Publish(&activity.ImportedEvent{
			Variant:  result.Variant,
			Locale:   locale,
			Inserted: result.Inserted,
			Updated:  result.Updated,
			At:       time.Now(),
		})
	}
	return result, nil
}

func (i *ActivityImporter) pass(ctx context.Context, variant importVariant, result *PassResult) error {
	i.reader.SetCurrentLocale(variant.ReaderLocale(result.Locale))
	records, err := i.reader.ExtractAllActivities(ctx)
	if err != nil {
		return gerrors.Wrapf(err, "extract %s activities", result.Locale)
	}

	return i.uow(ctx, func(ctx context.Context) error {
		inserts, updates := 0, 0
		for _, record := range records {
			o, err := variant.ImportRecord(ctx, result.Locale, record)
			if err != nil {
				return err
			}
			if o == inserted {
				inserts++
			} else {
				updates++
			}
		}
		result.Inserted, result.Updated = inserts, updates
		return nil
	})
}
