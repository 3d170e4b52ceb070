// Package submit is the boundary where a confirmed collection snapshot leaves
// the core. The core only exports; sinks decide what happens next.
package submit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"linkdeck/internal/collection"
	"linkdeck/internal/format"
	"linkdeck/internal/model"

	"github.com/rs/zerolog"
)

// Sink receives a submitted snapshot.
type Sink interface {
	Submit(ctx context.Context, links []model.LinkValues) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, links []model.LinkValues) error

func (f SinkFunc) Submit(ctx context.Context, links []model.LinkValues) error {
	return f(ctx, links)
}

// Export takes the read-only snapshot of s: field values in order, ids stripped.
func Export(s *collection.Store) []model.LinkValues {
	return s.Snapshot()
}

// Submit exports s and hands the snapshot to sink.
func Submit(ctx context.Context, s *collection.Store, sink Sink) ([]model.LinkValues, error) {
	snap := Export(s)
	if sink == nil {
		return snap, nil
	}
	if err := sink.Submit(ctx, snap); err != nil {
		return snap, fmt.Errorf("submit: %w", err)
	}
	return snap, nil
}

// Multi fans a submission out to every sink and joins their errors.
type Multi []Sink

func (m Multi) Submit(ctx context.Context, links []model.LinkValues) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := s.Submit(ctx, links); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogSink writes each submission as one structured log event.
type LogSink struct {
	Logger zerolog.Logger
}

func (s LogSink) Submit(_ context.Context, links []model.LinkValues) error {
	arr := zerolog.Arr()
	for _, l := range links {
		arr.Dict(zerolog.Dict().Str("title", l.Title).Str("url", l.URL))
	}
	s.Logger.Info().Int("count", len(links)).Array("links", arr).Msg("links submitted")
	return nil
}

// WriterSink encodes each submission to W in the given output format.
type WriterSink struct {
	W      io.Writer
	Format string
	Pretty bool
}

func (s WriterSink) Submit(_ context.Context, links []model.LinkValues) error {
	if s.W == nil {
		return errors.New("writer sink: nil writer")
	}
	if links == nil {
		links = []model.LinkValues{}
	}
	return format.Write(s.W, links, s.Format, s.Pretty)
}
