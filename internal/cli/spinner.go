package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const spinnerTick = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// numbers groups digits in the status line, e.g. 1,240.
var numbers = message.NewPrinter(language.English)

// statusSpinner draws a single status line for a quiet run: a spinner frame,
// the documents finished so far and the products created, sampled from hooks.
type statusSpinner struct {
	total int
	hooks *runHooks

	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once

	mu    sync.Mutex
	width int // length of the last line drawn, for clearing
}

// startStatusSpinner begins drawing on statusOut until Stop is called or ctx
// is done. total is the number of documents in the run.
func startStatusSpinner(ctx context.Context, total int, hooks *runHooks) *statusSpinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &statusSpinner{
		total:   total,
		hooks:   hooks,
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *statusSpinner) loop() {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerTick)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.draw(spinnerFrames[i%len(spinnerFrames)])
		}
	}
}

func (s *statusSpinner) draw(frame string) {
	text := s.line()
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(statusOut, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(text))
	s.width = len(text) + 2
}

// line renders the status text, e.g.
// "Generating 6 documents... 2/6 done, 1,240 products".
func (s *statusSpinner) line() string {
	c := s.hooks.snapshot()
	text := numbers.Sprintf("Generating %d documents... %d/%d done, %d products",
		s.total, c.documents, s.total, c.products)
	if c.stalled > 0 {
		text += numbers.Sprintf(", %d not consumed", c.stalled)
	}
	return text
}

// Stop halts the animation and clears the line. It is safe to call more
// than once.
func (s *statusSpinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.stopped
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.width > 0 {
			fmt.Fprintf(statusOut, "\r%*s\r", s.width, "")
		}
	})
}
