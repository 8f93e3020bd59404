package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/jsonizer/pkg/assembly"
	"github.com/matzehuels/jsonizer/pkg/part"
	"github.com/matzehuels/jsonizer/pkg/producer"
	"github.com/matzehuels/jsonizer/pkg/random"
)

// Runner executes pipeline runs.
//
// The Runner is stateless except for the logger - it doesn't store run
// results. Multiple goroutines can safely use the same Runner with
// different options; every run gets its own producer.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete produce → assemble → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string]map[string][]byte)}

	// Stage 1+2: Produce and assemble
	start := time.Now()
	docs, leftover, produced, err := r.Assemble(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	result.Documents = docs
	result.Leftover = leftover
	result.Stats.Produced = produced
	result.Stats.Documents = len(docs)
	result.Stats.AssembleTime = time.Since(start)
	for _, d := range docs {
		result.Stats.Bytes += len(d.JSON)
	}

	opts.Logger.Info("assembled documents",
		"documents", len(docs),
		"bytes", result.Stats.Bytes,
		"products", produced.Created,
		"leftover", len(leftover),
		"duration", result.Stats.AssembleTime)

	// Stage 3: Render
	renderStart := time.Now()
	for _, d := range docs {
		artifacts, err := Render(ctx, d, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", d.ID, err)
		}
		result.Artifacts[d.ID] = artifacts
	}
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Debug("rendered documents",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Assemble runs one producer and one assembly per target until every
// document is complete, then stops the producer and returns the documents
// in target order along with the unclaimed products.
func (r *Runner) Assemble(ctx context.Context, opts Options) ([]*assembly.Document, []*part.Part, producer.Stats, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, producer.Stats{}, err
	}

	prod, err := producer.New(opts.Config, random.New(opts.Seed), opts.Logger)
	if err != nil {
		return nil, nil, producer.Stats{}, err
	}

	leftover := make(chan []*part.Part, 1)
	go func() { leftover <- prod.Run(ctx) }()

	docs := make([]*assembly.Document, len(opts.Targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, target := range opts.Targets {
		g.Go(func() error {
			doc, err := assembly.New(prod, target, opts.Logger).Run(gctx)
			docs[i] = doc
			return err
		})
	}
	err = g.Wait()

	prod.Stop()
	left := <-leftover
	stats := prod.Stats()
	if err != nil {
		return nil, left, stats, err
	}
	return docs, left, stats, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
