package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/jsonizer/pkg/observability"
	"github.com/matzehuels/jsonizer/pkg/part"
	"github.com/matzehuels/jsonizer/pkg/pipeline"
)

const tuiTick = 100 * time.Millisecond

var (
	tuiRunningStyle = lipgloss.NewStyle().Foreground(colorYellow)
	tuiDoneStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	tuiFailedStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Hooks - pipeline events for the progress view and the status spinner
// =============================================================================

// runHooks counts pipeline events and forwards document events to send,
// when set. High-frequency producer events are only counted; the progress
// view and the spinner sample the counters on every tick.
type runHooks struct {
	products     atomic.Int64
	recirculated atomic.Int64
	stalled      atomic.Int64
	rejected     atomic.Int64
	documents    atomic.Int64

	send func(tea.Msg)
}

// register installs h as the global producer and assembly hooks. The
// returned func restores the no-op hooks.
func (h *runHooks) register() func() {
	observability.SetProducerHooks(h)
	observability.SetAssemblyHooks(h)
	return observability.Reset
}

func (h *runHooks) OnProduct(context.Context, string, int) { h.products.Add(1) }
func (h *runHooks) OnRecirculate(context.Context, string)  { h.recirculated.Add(1) }

func (h *runHooks) OnStall(_ context.Context, _ uint64, promoted bool) {
	if promoted {
		h.stalled.Add(1)
	}
}

func (h *runHooks) OnDocumentStart(_ context.Context, id string, ints, doubles, strs int) {
	h.emit(docStartMsg{id: id, target: part.Counts{Ints: ints, Doubles: doubles, Strings: strs}})
}

func (h *runHooks) OnDocumentComplete(_ context.Context, id string, size int, d time.Duration, err error) {
	if err == nil {
		h.documents.Add(1)
	}
	h.emit(docDoneMsg{id: id, size: size, elapsed: d, err: err})
}

func (h *runHooks) OnReject(context.Context, string, string) { h.rejected.Add(1) }

func (h *runHooks) emit(msg tea.Msg) {
	if h.send != nil {
		h.send(msg)
	}
}

func (h *runHooks) snapshot() counters {
	return counters{
		products:     h.products.Load(),
		recirculated: h.recirculated.Load(),
		stalled:      h.stalled.Load(),
		rejected:     h.rejected.Load(),
		documents:    h.documents.Load(),
	}
}

var (
	_ observability.ProducerHooks = (*runHooks)(nil)
	_ observability.AssemblyHooks = (*runHooks)(nil)
)

// =============================================================================
// Messages
// =============================================================================

type tickMsg time.Time

type docStartMsg struct {
	id     string
	target part.Counts
}

type docDoneMsg struct {
	id      string
	size    int
	elapsed time.Duration
	err     error
}

type runDoneMsg struct {
	result *pipeline.Result
	err    error
}

type counters struct {
	products, recirculated, stalled, rejected, documents int64
}

// =============================================================================
// ProgressModel - live view of a pipeline run
// =============================================================================

type docRow struct {
	target   part.Counts
	size     int
	elapsed  time.Duration
	err      error
	finished bool
}

// ProgressModel is the bubbletea model for the generate progress view.
type ProgressModel struct {
	hooks  *runHooks
	cancel context.CancelFunc

	order []string
	docs  map[string]*docRow
	stats counters

	start     time.Time
	elapsed   time.Duration
	cancelled bool
	finished  bool

	Result *pipeline.Result
	Err    error
}

// newProgressModel creates a progress model reading counters from hooks.
// cancel is called when the user quits before the run finishes.
func newProgressModel(hooks *runHooks, cancel context.CancelFunc) ProgressModel {
	return ProgressModel{
		hooks:  hooks,
		cancel: cancel,
		docs:   make(map[string]*docRow),
		start:  time.Now(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(tuiTick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m ProgressModel) Init() tea.Cmd {
	return tick()
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.cancelled && m.cancel != nil {
				m.cancel()
			}
			m.cancelled = true
		}
	case tickMsg:
		if m.finished {
			return m, nil
		}
		m.stats = m.hooks.snapshot()
		m.elapsed = time.Since(m.start)
		return m, tick()
	case docStartMsg:
		if _, ok := m.docs[msg.id]; !ok {
			m.order = append(m.order, msg.id)
		}
		m.docs[msg.id] = &docRow{target: msg.target}
	case docDoneMsg:
		row, ok := m.docs[msg.id]
		if !ok {
			row = &docRow{}
			m.order = append(m.order, msg.id)
			m.docs[msg.id] = row
		}
		row.size, row.elapsed, row.err, row.finished = msg.size, msg.elapsed, msg.err, true
	case runDoneMsg:
		m.Result, m.Err = msg.result, msg.err
		m.finished = true
		m.stats = m.hooks.snapshot()
		m.elapsed = time.Since(m.start)
		return m, tea.Quit
	}
	return m, nil
}

// Completed returns the number of documents that finished successfully.
func (m ProgressModel) Completed() int {
	n := 0
	for _, row := range m.docs {
		if row.finished && row.err == nil {
			n++
		}
	}
	return n
}

func (m ProgressModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Assembling documents"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("products %d  recirculated %d  rejected %d  stalled %d  %s",
		m.stats.products, m.stats.recirculated, m.stats.rejected, m.stats.stalled,
		m.elapsed.Round(time.Millisecond))))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(m.order))
	for _, id := range m.order {
		row := m.docs[id]
		rows = append(rows, []string{shortID(id), fmtCounts(row.target), rowStatus(row), rowSize(row)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Document", "Target", "Status", "Bytes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if row < 0 || row >= len(m.order) || col != 2 {
				return StyleValue
			}
			r := m.docs[m.order[row]]
			switch {
			case r.err != nil:
				return tuiFailedStyle
			case r.finished:
				return tuiDoneStyle
			}
			return tuiRunningStyle
		})
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	switch {
	case m.finished:
		b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d] done", m.Completed(), len(m.order))))
	case m.cancelled:
		b.WriteString(StyleWarning.Render("  cancelling..."))
	default:
		b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]  q quit", m.Completed(), len(m.order))))
	}
	b.WriteString("\n")
	return b.String()
}

func rowStatus(r *docRow) string {
	switch {
	case r.err != nil:
		return "failed"
	case r.finished:
		return "done in " + r.elapsed.Round(time.Microsecond).String()
	}
	return "assembling"
}

func rowSize(r *docRow) string {
	if !r.finished || r.err != nil {
		return "-"
	}
	return strconv.Itoa(r.size)
}

// =============================================================================
// Runner
// =============================================================================

// runTUI executes the pipeline while rendering the progress view.
// Quitting the view cancels the run.
func runTUI(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hooks := &runHooks{}
	p := tea.NewProgram(newProgressModel(hooks, cancel), tea.WithOutput(statusOut))
	hooks.send = p.Send

	defer hooks.register()()

	go func() {
		result, err := runner.Execute(ctx, opts)
		p.Send(runDoneMsg{result: result, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(ProgressModel)
	return m.Result, m.Err
}
