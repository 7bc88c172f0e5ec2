// Package filestore persists a lifecycle registry to a single JSON or YAML file.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/modelctl/internal/lifecycle"
	"github.com/zjrosen/modelctl/internal/log"
	"github.com/zjrosen/modelctl/internal/tracing"
)

// Format is the on-disk encoding of a registry file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from the file extension. Anything that is not
// .yaml or .yml is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Store reads and writes one registry file.
type Store struct {
	path   string
	format Format
	tracer trace.Tracer
}

// Option configures a Store.
type Option func(*Store)

// WithTracer records store.save and store.load spans on t.
func WithTracer(t trace.Tracer) Option {
	return func(s *Store) {
		s.tracer = t
	}
}

// New returns a Store for path.
func New(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("registry path is required")
	}
	s := &Store{path: filepath.Clean(path), format: FormatFor(path)}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the registry file path.
func (s *Store) Path() string {
	return s.path
}

// Format returns the encoding used for the file.
func (s *Store) Format() Format {
	return s.format
}

// Exists reports whether the registry file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Save writes the registry with statuses derived at the current time.
// The destination is replaced atomically; on failure it is left as it was.
func (s *Store) Save(ctx context.Context, r *lifecycle.Registry) (err error) {
	_, span := tracing.Start(ctx, s.tracer, tracing.SpanStoreSave,
		attribute.String(tracing.AttrStorePath, s.path),
		attribute.String(tracing.AttrStoreFormat, string(s.format)),
		attribute.Int(tracing.AttrRegistryModels, r.Len()),
	)
	defer func() { tracing.Finish(span, err) }()

	data, err := s.encode(r.Snapshot(time.Time{}))
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		log.ErrorErr(log.CatStore, "Save failed", err, "path", s.path)
		return err
	}
	log.Debug(log.CatStore, "Saved registry", "path", s.path, "models", r.Len())
	return nil
}

// Load replaces the registry contents with the models in the file. A missing
// or unreadable file yields an *IOError; malformed content or a model that
// fails validation yields a *lifecycle.ParseError. On any error r is unchanged.
func (s *Store) Load(ctx context.Context, r *lifecycle.Registry) (err error) {
	_, span := tracing.Start(ctx, s.tracer, tracing.SpanStoreLoad,
		attribute.String(tracing.AttrStorePath, s.path),
		attribute.String(tracing.AttrStoreFormat, string(s.format)),
	)
	defer func() { tracing.Finish(span, err) }()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return &IOError{Op: "read", Path: s.path, Err: err}
	}

	doc, err := s.decode(data)
	if err != nil {
		log.ErrorErr(log.CatStore, "Decode failed", err, "path", s.path)
		return err
	}
	models, err := lifecycle.DecodeDocument(doc)
	if err != nil {
		log.ErrorErr(log.CatStore, "Invalid model in registry file", err, "path", s.path)
		return err
	}
	if err := r.Replace(models); err != nil {
		// Duplicate keys in the file are a content problem, not an I/O one.
		return &lifecycle.ParseError{Index: -1, Err: err}
	}

	span.SetAttributes(attribute.Int(tracing.AttrRegistryModels, len(models)))
	log.Debug(log.CatStore, "Loaded registry", "path", s.path, "models", len(models))
	return nil
}

// LoadOrEmpty loads the registry, treating a missing file as an empty registry.
func (s *Store) LoadOrEmpty(ctx context.Context, r *lifecycle.Registry) error {
	err := s.Load(ctx, r)
	if IsNotExist(err) {
		log.Debug(log.CatStore, "Registry file not found, starting empty", "path", s.path)
		return r.Replace(nil)
	}
	return err
}

func (s *Store) encode(doc lifecycle.Document) ([]byte, error) {
	switch s.format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode registry: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode registry: %w", err)
		}
		return buf.Bytes(), nil
	default:
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode registry: %w", err)
		}
		return append(b, '\n'), nil
	}
}

func (s *Store) decode(data []byte) (lifecycle.Document, error) {
	var doc lifecycle.Document
	switch s.format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				// Empty document; DecodeDocument reports the missing models field.
				return lifecycle.Document{}, nil
			}
			return lifecycle.Document{}, &lifecycle.ParseError{Index: -1, Err: err}
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return lifecycle.Document{}, &lifecycle.ParseError{Index: -1, Err: err}
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			return lifecycle.Document{}, &lifecycle.ParseError{Index: -1, Err: errors.New("trailing content after document")}
		}
	}
	return doc, nil
}
