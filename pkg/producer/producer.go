// Package producer runs the assembly line.
//
// A [Producer] owns two queues. Raw leaves ordered by consumers enter the
// work queue; on every dispatch pass the factories are offered the queue
// head in a weighted random order, and whatever they emit is either sent
// back to the work queue or promoted to the products queue where
// assemblies pick it up.
//
// Exactly one goroutine runs [Producer.Run]. Any number of goroutines may
// call [Producer.Order], [Producer.Get], [Producer.Recirculate] and
// [Producer.Ready] concurrently.
package producer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jsonizer/pkg/config"
	"github.com/matzehuels/jsonizer/pkg/factory"
	"github.com/matzehuels/jsonizer/pkg/keys"
	"github.com/matzehuels/jsonizer/pkg/observability"
	"github.com/matzehuels/jsonizer/pkg/part"
	"github.com/matzehuels/jsonizer/pkg/queue"
	"github.com/matzehuels/jsonizer/pkg/random"
	"github.com/matzehuels/jsonizer/pkg/values"
)

const (
	// StallLimit is the number of passes a head may survive without being
	// consumed. One more and it is promoted as is.
	StallLimit = 2

	// ProgressEvery is the product interval between progress log lines.
	ProgressEvery = 100
)

// station is a registered factory with its dispatch parameters.
type station struct {
	category config.Category
	factory  factory.Factory
	recirc   int
	weight   int
}

// Producer is the assembly line.
type Producer struct {
	logger *log.Logger
	rng    *random.Source

	ints, doubles, strs *values.Pool
	keys                *keys.Allocator
	stations            []station
	dispatch            []int

	work     queue.Queue
	products queue.Queue

	wake     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	readyMu sync.Mutex
	ready   chan struct{}

	// stalls is only touched by the dispatching goroutine.
	stalls map[part.Serial]int

	statsMu sync.Mutex
	stats   Stats
}

// Stats summarizes the producer's output so far.
type Stats struct {
	Created      int               // parts promoted by factories
	ByKind       map[part.Kind]int // Created, by kind
	Recirculated int               // factory outputs sent back to the work queue
	NotConsumed  int               // stalled heads promoted as is
	Returned     int               // products handed back by assemblies
}

// New builds a producer from cfg. Only categories with a positive weight get
// a factory, and the key allocator is activated once all of them are
// registered. A nil logger discards output.
func New(cfg config.Config, rng *random.Source, logger *log.Logger) (*Producer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = random.New(0)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	p := &Producer{
		logger:  logger,
		rng:     rng,
		ints:    values.NewInts(cfg.Ints),
		doubles: values.NewDoubles(cfg.Doubles),
		strs:    values.NewStrings(cfg.Strings),
		keys:    keys.New(cfg.Keys, cfg.KeyMultiplier, rng),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		ready:   make(chan struct{}),
		stalls:  make(map[part.Serial]int),
		stats:   Stats{ByKind: make(map[part.Kind]int)},
	}

	for _, cat := range cfg.Enabled() {
		prm := cfg.Params(cat)
		var f factory.Factory
		if cat.Keyed() {
			f = factory.NewKeyedPair(cat.Leaf(), p.keys)
		} else {
			f = factory.NewContainer(cat.Shape(), cat.Leaf(), prm.Min, prm.Max, p.keys, rng)
		}
		idx := len(p.stations)
		p.stations = append(p.stations, station{category: cat, factory: f, recirc: prm.Recirc, weight: prm.Weight})
		for range prm.Weight {
			p.dispatch = append(p.dispatch, idx)
		}
	}
	p.keys.Activate()

	logger.Debug("producer ready",
		"factories", len(p.stations),
		"dispatch", len(p.dispatch),
		"keys", p.keys.Len())
	return p, nil
}

// Order pushes freshly drawn raw leaves onto the work queue and wakes the
// producer.
func (p *Producer) Order(ints, doubles, strs int) {
	p.work.PushBackAll(p.ints.Draw(p.rng, ints))
	p.work.PushBackAll(p.doubles.Draw(p.rng, doubles))
	p.work.PushBackAll(p.strs.Draw(p.rng, strs))
	p.signal()
}

// Recirculate returns a part to the back of the work queue.
func (p *Producer) Recirculate(pt *part.Part) {
	if pt == nil {
		return
	}
	p.work.PushBack(pt)
	p.statsMu.Lock()
	p.stats.Returned++
	p.statsMu.Unlock()
	p.signal()
}

// Get pops the oldest product, if any.
func (p *Producer) Get() (*part.Part, bool) {
	return p.products.TryGet()
}

// Ready returns a channel that is closed the next time consumers are woken:
// on every promotion and whenever the work queue runs dry. Capture it before
// calling Get so that a promotion in between is not missed.
func (p *Producer) Ready() <-chan struct{} {
	p.readyMu.Lock()
	defer p.readyMu.Unlock()
	return p.ready
}

// Stop signals the producer loop to exit after its current pass.
// It is safe to call more than once.
func (p *Producer) Stop() {
	p.stopOnce.Do(func() { close(p.done) })
}

// Pending returns the size of the work queue.
func (p *Producer) Pending() int { return p.work.Len() }

// Available returns the size of the products queue.
func (p *Producer) Available() int { return p.products.Len() }

// Stats returns a snapshot of the production counters.
func (p *Producer) Stats() Stats {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	s := p.stats
	s.ByKind = make(map[part.Kind]int, len(p.stats.ByKind))
	for k, v := range p.stats.ByKind {
		s.ByKind[k] = v
	}
	return s
}

func (p *Producer) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Producer) notify() {
	p.readyMu.Lock()
	close(p.ready)
	p.ready = make(chan struct{})
	p.readyMu.Unlock()
}

// Run dispatches until Stop is called or ctx is done, then drains and
// returns the products nobody consumed.
func (p *Producer) Run(ctx context.Context) []*part.Part {
	for {
		select {
		case <-p.done:
			return p.finish()
		case <-ctx.Done():
			return p.finish()
		default:
		}

		if p.work.Empty() {
			select {
			case <-p.wake:
			case <-p.done:
			case <-ctx.Done():
			}
			continue
		}
		p.Pass(ctx)
	}
}

func (p *Producer) finish() []*part.Part {
	left := p.products.Drain()
	s := p.Stats()
	p.logger.Info("producer stopped",
		"created", s.Created,
		"queue", p.work.Len(),
		"leftover", len(left))
	return left
}

// Pass offers the work queue head to every factory once per unit of weight,
// in random order, and then deals with a head nobody took.
func (p *Producer) Pass(ctx context.Context) {
	head, ok := p.work.Front()
	if !ok {
		return
	}
	candidate := head.Serial()

	order := append([]int(nil), p.dispatch...)
	p.rng.Shuffle(order)
	for _, idx := range order {
		st := &p.stations[idx]
		out := st.factory.Take(&p.work)
		if out == nil {
			continue
		}
		if 100-st.recirc < p.rng.Percent() {
			p.work.PushBack(out)
			p.statsMu.Lock()
			p.stats.Recirculated++
			p.statsMu.Unlock()
			observability.Producer().OnRecirculate(ctx, out.Kind().String())
			continue
		}
		p.promote(ctx, out)
	}

	front, ok := p.work.Front()
	if !ok || front.Serial() != candidate {
		// The head was consumed; factories only ever take from the front.
		delete(p.stalls, candidate)
	}
	switch {
	case !ok:
		p.notify()
	case front.Serial() == candidate:
		p.stalls[candidate]++
		promoted := p.stalls[candidate] > StallLimit
		observability.Producer().OnStall(ctx, uint64(candidate), promoted)
		if !promoted {
			p.work.Rotate()
			return
		}
		p.logger.Warn("NOT CONSUMED: " + front.String())
		p.work.PopFront()
		delete(p.stalls, candidate)
		p.products.PushBack(front)
		p.statsMu.Lock()
		p.stats.NotConsumed++
		p.statsMu.Unlock()
		p.notify()
	}
}

func (p *Producer) promote(ctx context.Context, out *part.Part) {
	p.products.PushBack(out)

	p.statsMu.Lock()
	p.stats.Created++
	p.stats.ByKind[out.Kind()]++
	total := p.stats.Created
	var line string
	if total%ProgressEvery == 0 {
		line = progress(total, p.stats.ByKind, p.work.Len())
	}
	p.statsMu.Unlock()

	p.notify()
	observability.Producer().OnProduct(ctx, out.Kind().String(), total)
	if line != "" {
		p.logger.Info(line)
	}
}

// progress formats a progress line, e.g.
// "Products created: 200 (INT: 20, ARRAY: 120, OBJECT: 60); queue size: 12".
func progress(total int, byKind map[part.Kind]int, queued int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Products created: %d (", total)
	sep := ""
	for _, k := range part.Kinds {
		if n, ok := byKind[k]; ok {
			fmt.Fprintf(&b, "%s%s: %d", sep, k, n)
			sep = ", "
		}
	}
	fmt.Fprintf(&b, "); queue size: %d", queued)
	return b.String()
}
