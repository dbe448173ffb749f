// Package iconset adapts each upstream icon set (Material, Lucide, Phosphor)
// to a common record shape.
package iconset

import (
	"context"
	"errors"
	"fmt"

	"github.com/lysyi3m/icon-lists/app/fetch"
	"github.com/lysyi3m/icon-lists/app/popularity"
	"github.com/lysyi3m/icon-lists/app/schema"
)

var (
	// ErrParse marks payloads that could not be decoded.
	ErrParse = errors.New("parse failed")
	// ErrNoRecords is the cheap validation used for sets without a schema.
	ErrNoRecords = fmt.Errorf("%w: payload contains no icon records", schema.ErrValidation)
)

// Record is the normalized icon shared by every set.
type Record struct {
	Name       string
	Categories []string
	Tags       []string
	Popularity int
}

// RawRecord holds the upstream fields a source reads before normalization.
type RawRecord struct {
	Name                string
	PascalName          string
	Categories          []string
	Tags                []string
	Popularity          int
	UnsupportedFamilies []string
}

// Payload is everything FetchRaw produced for one run.
type Payload struct {
	Records []RawRecord
	// Document is the generic decoded form used for schema validation.
	Document any
	// Categories maps upstream category keys to titles (Lucide).
	Categories map[string]string
	// Popularity is the Material derived lookup (Lucide, Phosphor).
	Popularity popularity.Lookup
}

// Variant is one output list produced from a payload.
type Variant struct {
	Output            string
	Records           []Record
	IncludePopularity bool
}

type Normalized struct {
	Variants []Variant
	// Warnings counts records skipped during normalization.
	Warnings int
}

type Source interface {
	Name() string
	FetchRaw(ctx context.Context) (*Payload, error)
	Validate(payload *Payload) error
	Normalize(payload *Payload) (*Normalized, error)
}

// Fetcher is the upstream access a source needs.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
	ReadDir(dir, ext string) ([]fetch.File, error)
}

// RequireRecords rejects empty payloads.
func RequireRecords(payload *Payload) error {
	if payload == nil || len(payload.Records) == 0 {
		return ErrNoRecords
	}
	return nil
}

func parseError(source string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrParse, source, err)
}
