// Package assembly builds documents out of producer output.
//
// An [Assembly] orders the raw leaves its document needs, then claims
// products first come first served until the per-type leaf counts reach
// the target. Products without a key, or whose key is already in the
// document, go back to the producer. Assemblies never talk to each other,
// so any of them may consume leaves ordered by another.
package assembly

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/jsonizer/pkg/errors"
	"github.com/matzehuels/jsonizer/pkg/observability"
	"github.com/matzehuels/jsonizer/pkg/part"
)

// Source is the producer as seen by an assembly.
type Source interface {
	Order(ints, doubles, strings int)
	Get() (*part.Part, bool)
	Recirculate(p *part.Part)
	Ready() <-chan struct{}
}

// Document is a finished JSON document.
type Document struct {
	ID      string        // random UUID
	Target  part.Counts   // requested minimum leaf counts
	Counts  part.Counts   // leaf counts actually contained
	Members []*part.Part  // accepted top-level members, in order
	JSON    string        // rendered object
	Elapsed time.Duration // time from first order to render
}

// Root returns the document as an unkeyed object part.
func (d *Document) Root() *part.Part {
	return part.NewObject("", d.Members...)
}

// Assembly assembles one document.
type Assembly struct {
	src    Source
	target part.Counts
	logger *log.Logger
	id     string
}

// New returns an assembly for a document with at least target leaves of
// each type. A nil logger discards output.
func New(src Source, target part.Counts, logger *log.Logger) *Assembly {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Assembly{
		src:    src,
		target: target,
		logger: logger,
		id:     uuid.NewString(),
	}
}

// ID returns the identifier the finished document will carry.
func (a *Assembly) ID() string { return a.id }

// Run assembles the document. It blocks until the target is covered or ctx
// is done; in the latter case the error has code CANCELLED and the members
// accepted so far are lost.
func (a *Assembly) Run(ctx context.Context) (*Document, error) {
	start := time.Now()
	t := a.target
	hooks := observability.Assembly()
	hooks.OnDocumentStart(ctx, a.id, t.Ints, t.Doubles, t.Strings)

	a.src.Order(t.Ints, t.Doubles, t.Strings)

	doc := &Document{ID: a.id, Target: t}
	used := make(map[string]bool)
	for !doc.Counts.Covers(t) {
		ready := a.src.Ready()
		p, ok := a.src.Get()
		if !ok {
			a.src.Order(missing(t.Ints, doc.Counts.Ints), missing(t.Doubles, doc.Counts.Doubles), missing(t.Strings, doc.Counts.Strings))
			select {
			case <-ready:
				continue
			case <-ctx.Done():
				err := errors.Wrap(errors.ErrCodeCancelled, ctx.Err(), "document %s", a.id)
				hooks.OnDocumentComplete(ctx, a.id, 0, time.Since(start), err)
				return nil, err
			}
		}

		if !p.HasKey() || used[p.Key()] {
			a.logger.Debug("recirc object",
				"key", p.Key(),
				"type", p.Kind(),
				"serial", p.Serial())
			hooks.OnReject(ctx, a.id, p.Key())
			a.src.Recirculate(p)
			continue
		}
		used[p.Key()] = true
		doc.Members = append(doc.Members, p)
		doc.Counts = doc.Counts.Add(p.Counts())
	}

	doc.JSON = render(doc.Members)
	doc.Elapsed = time.Since(start)

	a.logger.Infof("Created [%d,%d,%d] in %.3f ms for JSON of size: %d",
		t.Ints, t.Doubles, t.Strings,
		float64(doc.Elapsed.Nanoseconds())/1e6, len(doc.JSON))
	hooks.OnDocumentComplete(ctx, a.id, len(doc.JSON), doc.Elapsed, nil)
	return doc, nil
}

func missing(want, have int) int {
	if have < want {
		return 1
	}
	return 0
}

func render(members []*part.Part) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			b.WriteByte(',')
		}
		m.AppendTo(&b)
	}
	b.WriteByte('}')
	return b.String()
}
