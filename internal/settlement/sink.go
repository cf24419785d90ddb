package settlement

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Sink makes the artifacts of a closing durable. Write must be safe to call
// again with the same closing after a failure.
type Sink interface {
	Write(ctx context.Context, c Closing) error
}

// FileSink writes the artifacts of every closing into one directory.
type FileSink struct {
	dir string
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

func (f *FileSink) Write(ctx context.Context, c Closing) error {
	artifacts, err := Artifacts(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("creating settlement directory: %w", err)
	}
	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(f.dir, a.Name), a.Data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", a.Name, err)
		}
	}
	return nil
}

// Tee writes every closing to all of its sinks and reports every failure.
type Tee []Sink

func (t Tee) Write(ctx context.Context, c Closing) error {
	var problems []error
	for _, s := range t {
		if err := s.Write(ctx, c); err != nil {
			problems = append(problems, err)
		}
	}
	return errors.Join(problems...)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, c Closing) error

func (f SinkFunc) Write(ctx context.Context, c Closing) error {
	return f(ctx, c)
}
