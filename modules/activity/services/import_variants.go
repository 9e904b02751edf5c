package services

import (
	"context"

	"github.com/retromat/retromat-backend/modules/activity/domain/aggregates/activity2"
	"github.com/retromat/retromat-backend/modules/activity/domain/entities/activity"
	"github.com/retromat/retromat-backend/pkg/mapping"
	"github.com/retromat/retromat-backend/pkg/validation"
)

type outcome int

const (
	inserted outcome = iota
	updated
)

func (o outcome) String() string {
	if o == inserted {
		return "inserted"
	}
	return "updated"
}

// importVariant writes one record into one persisted shape.
type importVariant interface {
	Name() string
	// ReaderLocale is the locale the source is read in for a pass in locale.
	ReaderLocale(locale string) string
	ImportRecord(ctx context.Context, locale string, record activity.Record) (outcome, error)
}

type variantDeps struct {
	mapper    Mapper
	validator validation.Validator
}

func (d variantDeps) check(variant, locale string, render func() string, fillErr error, v any) error {
	violations := mapping.DecodeViolations(fillErr)
	if fillErr == nil {
		violations = d.validator.Validate(v)
	}
	if len(violations) == 0 {
		return nil
	}
	return &InvalidActivityError{
		Variant:    variant,
		Locale:     locale,
		Activity:   render(),
		Violations: violations,
	}
}

// legacyVariant maintains the English only activities.
type legacyVariant struct {
	variantDeps
	repo activity.Repository
}

func (v *legacyVariant) Name() string { return activity.VariantLegacy }

func (v *legacyVariant) ReaderLocale(string) string { return legacyLocale }

func (v *legacyVariant) ImportRecord(ctx context.Context, _ string, record activity.Record) (outcome, error) {
	fromReader := &activity.Activity{}
	fillErr := v.mapper.Fill(record, fromReader)
	fromReader.Language = legacyLocale
	if err := v.check(v.Name(), legacyLocale, fromReader.String, fillErr, fromReader); err != nil {
		return 0, err
	}

	lookup, err := v.repo.FindByRetromatID(ctx, fromReader.RetromatID)
	if err != nil {
		return 0, err
	}
	if existing, ok := lookup.Get(); ok {
		if err := v.mapper.Fill(record, existing); err != nil {
			return 0, err
		}
		return updated, v.repo.Update(ctx, existing)
	}
	return inserted, v.repo.Create(ctx, fromReader)
}

// translatableVariant maintains activities with per locale translations.
type translatableVariant struct {
	variantDeps
	repo activity2.Repository
}

func (v *translatableVariant) Name() string { return activity.VariantTranslatable }

func (v *translatableVariant) ReaderLocale(locale string) string { return locale }

func (v *translatableVariant) ImportRecord(ctx context.Context, locale string, record activity.Record) (outcome, error) {
	fromReader := activity2.New(locale)
	fillErr := v.mapper.Fill(record, fromReader)
	if err := v.check(v.Name(), locale, fromReader.String, fillErr, fromReader); err != nil {
		return 0, err
	}

	lookup, err := v.repo.FindByRetromatID(ctx, fromReader.RetromatID)
	if err != nil {
		return 0, err
	}
	if existing, ok := lookup.Get(); ok {
		existing.SetDefaultLocale(locale)
		if err := v.mapper.Fill(record, existing); err != nil {
			return 0, err
		}
		existing.MergeNewTranslations()
		return updated, v.repo.Update(ctx, existing)
	}
	fromReader.MergeNewTranslations()
	return inserted, v.repo.Create(ctx, fromReader)
}
