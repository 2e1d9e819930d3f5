// Package app implements the interactive stash controller as a bubbletea
// model. The model owns all session state; git calls run as commands and
// report back through messages.
package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Akashdeep-Patra/zed-git-stash/internal/common"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/config"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/diff"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/filter"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/git"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/logging"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/stash"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/ui"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/ui/views"
)

// chromeRows is the number of screen rows not available to list rows or
// preview lines: header, title, status bar and key hints.
const chromeRows = 4

// Model is the top-level Bubbletea model.
type Model struct {
	git    git.Service
	cfg    *config.Config
	styles ui.Styles
	keys   KeyMap
	now    func() time.Time
	width  int
	height int

	mode   common.Mode
	loaded bool
	fatal  error

	// Listing. order holds stack indices in display order; cursor is a
	// position in order.
	list    stash.List
	branch  string
	query   string
	order   []int
	matches map[int][]int
	cursor  int

	preview   previewState
	search    textinput.Model
	form      textinput.Model
	untracked bool
	confirm   confirmState

	status   statusLine
	showHelp bool

	busy    bool
	busyOp  string
	spinner spinner.Model

	listSeq   int // Latest list fetch issued.
	settleSeq int // List fetch that ends the busy state.
	fetchSeq  int // Latest preview fetch issued.
}

// previewState is the entry shown in Diff or Files mode.
type previewState struct {
	seq     int
	entry   stash.Entry
	scroll  int
	loading bool
	partial bool
	summary string
	lines   []common.PreviewLine
}

// confirmState is a pending pop or drop.
type confirmState struct {
	kind   opKind
	target stash.Entry
}

type statusLine struct {
	text  string
	isErr bool
	until time.Time
}

// New creates the controller.
func New(gitSvc git.Service, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "filter by branch or message"
	search.CharLimit = 120
	search.Width = 50

	form := textinput.New()
	form.Placeholder = "stash message"
	form.CharLimit = 200
	form.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	styles := ui.StylesFor(cfg.Theme)
	sp.Style = styles.Spinner

	return Model{
		git:     gitSvc,
		cfg:     cfg,
		styles:  styles,
		keys:    NewKeyMap(cfg.Keys),
		now:     time.Now,
		mode:    common.ModeList,
		search:  search,
		form:    form,
		spinner: sp,
	}
}

// Init issues the first listing and starts the status clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(common.CmdRefresh, tick(m.cfg.TickInterval))
}

// Err returns the fatal startup failure, if the session ended because of one.
func (m Model) Err() error { return m.fatal }

// Update processes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampCursor()
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case common.RefreshMsg:
		cmd := m.refresh(false)
		return m, cmd

	case listLoadedMsg:
		return m.onListLoaded(msg)

	case previewLoadedMsg:
		return m.onPreviewLoaded(msg)

	case mutationDoneMsg:
		return m.onMutationDone(msg)

	case tickMsg:
		if m.status.text != "" && !m.now().Before(m.status.until) {
			m.status = statusLine{}
		}
		return m, tick(m.cfg.TickInterval)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the entire UI from a snapshot. It does no I/O.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	return views.Render(m.styles, m.Snapshot())
}

// ── Results ─────────────────────────────────────────────────────────────────

// refresh issues a list fetch that supersedes any outstanding one.
func (m *Model) refresh(invalidate bool) tea.Cmd {
	m.listSeq++
	return fetchList(m.git, m.listSeq, invalidate)
}

func (m Model) onListLoaded(msg listLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.listSeq {
		logging.Logger.Debug("dropping superseded listing", "seq", msg.seq, "latest", m.listSeq)
		return m, nil
	}
	if m.busy && m.settleSeq > 0 && msg.seq >= m.settleSeq {
		m.busy = false
		m.busyOp = ""
	}

	if msg.err != nil {
		if !m.loaded && git.IsFatal(msg.err) {
			m.fatal = msg.err
			return m, tea.Quit
		}
		m.loaded = true
		logging.Logger.Warn("listing stashes failed", "err", msg.err)
		if m.mode.IsPreview() || m.mode == common.ModeConfirm {
			m.setMode(common.ModeList)
		}
		m.setError(git.Summary(msg.err))
		return m, nil
	}

	first := !m.loaded
	m.loaded = true
	m.branch = msg.branch

	selected, hadSelection := m.selected()
	m.list = msg.list
	if m.mode == common.ModeSearch {
		m.applyFilter(m.search.Value())
	} else {
		m.applyFilter(m.query)
	}
	m.reselect(selected, hadSelection)

	if first && m.list.Len() == 0 {
		m.setInfo("No stashes found. Press " + m.keys.NewStash.Help().Key + " to create one.")
	}

	var cmd tea.Cmd
	switch {
	case m.mode.IsPreview():
		cmd = m.followPreview()
	case m.mode == common.ModeConfirm:
		t := m.confirm.target
		if !m.list.Contains(t.Index, t.Hash) {
			m.setMode(common.ModeList)
			m.setError(fmt.Sprintf("%s changed on disk; %s cancelled", t.Ref(), m.confirm.kind.name()))
		}
	}
	return m, cmd
}

// followPreview keeps the previewed entry in sync with a new listing. The
// entry is tracked by hash, so an entry that merely moved keeps its
// preview; one that vanished ends it. A fetch still in flight asked for
// the old index, so it is reissued for the new one.
func (m *Model) followPreview() tea.Cmd {
	e := m.preview.entry
	if m.list.Contains(e.Index, e.Hash) {
		return nil
	}
	if idx := m.list.Find(e.Hash); idx >= 0 {
		moved, _ := m.list.At(idx)
		if m.preview.loading {
			return m.loadPreview(m.mode, moved)
		}
		m.preview.entry = moved
		return nil
	}
	m.setMode(common.ModeList)
	m.setError(fmt.Sprintf("%s: %s", e.Ref(), git.ErrIndexGone))
	return nil
}

func (m Model) onPreviewLoaded(msg previewLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.preview.seq || m.mode != msg.mode {
		logging.Logger.Debug("dropping stale preview", "seq", msg.seq, "mode", msg.mode.String())
		return m, nil
	}
	m.preview.loading = false

	if msg.err != nil {
		logging.Logger.Warn("loading preview failed", "index", msg.index, "err", msg.err)
		m.setMode(common.ModeList)
		m.setError(m.preview.entry.Ref() + ": " + git.Summary(msg.err))
		cmd := m.refresh(true)
		return m, cmd
	}

	if msg.mode == common.ModeFiles {
		m.preview.lines, m.preview.summary = fileLines(msg.files)
		m.preview.partial = msg.files.Partial
	} else {
		m.preview.lines, m.preview.summary = diffLines(msg.doc)
		m.preview.partial = msg.doc.Partial
	}
	m.preview.scroll = 0
	if m.preview.partial {
		m.setError("partial content: git output was truncated or malformed")
	}
	return m, nil
}

func (m Model) onMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	op := msg.op
	switch {
	case msg.err == nil:
		m.setInfo(successText(op))
	case errors.Is(msg.err, git.ErrApplyConflict):
		m.setError(op.ref + " applied with conflicts; resolve them in the working tree")
	case errors.Is(msg.err, git.ErrNothingToStash):
		m.setError("No local changes to save.")
	case errors.Is(msg.err, git.ErrIndexGone):
		m.setError(op.ref + " no longer exists")
	default:
		m.setError(git.Summary(msg.err))
	}
	if msg.err != nil {
		logging.Logger.Warn("stash mutation failed", "op", op.verb(), "err", msg.err)
	}
	cmd := m.refresh(true)
	m.settleSeq = m.listSeq
	return m, cmd
}

func successText(op mutation) string {
	switch op.kind {
	case opApply:
		return "Applied " + op.ref + "."
	case opPop:
		return "Popped " + op.ref + "."
	case opDrop:
		return "Dropped " + op.ref + "."
	default:
		if op.message != "" {
			return fmt.Sprintf("Stash '%s' created.", op.message)
		}
		return "Stash created."
	}
}

// ── Key handling ────────────────────────────────────────────────────────────

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if !m.loaded || m.busy {
		if m.mode == common.ModeList && key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	switch m.mode {
	case common.ModeDiff, common.ModeFiles:
		return m.updatePreview(msg)
	case common.ModeSearch:
		return m.updateSearch(msg)
	case common.ModeNewStash:
		return m.updateForm(msg)
	case common.ModeConfirm:
		return m.updateConfirm(msg)
	default:
		return m.updateList(msg)
	}
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.viewportHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.viewportHeight())
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.order) - 1
		m.clampCursor()
	case key.Matches(msg, m.keys.Back):
		if m.query != "" {
			m.query = ""
			m.applyFilter("")
			m.setInfo("Filter cleared.")
		}
	case key.Matches(msg, m.keys.Refresh):
		cmd := m.refresh(true)
		return m, cmd
	case key.Matches(msg, m.keys.Search):
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		m.setMode(common.ModeSearch)
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.NewStash):
		m.form.Reset()
		m.untracked = m.cfg.IncludeUntracked
		m.setMode(common.ModeNewStash)
		cmd := m.form.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Select, m.keys.ViewDiff):
		return m.openPreview(common.ModeDiff)
	case key.Matches(msg, m.keys.ViewFiles):
		return m.openPreview(common.ModeFiles)
	case key.Matches(msg, m.keys.Apply):
		e, ok := m.requireSelection()
		if !ok {
			return m, nil
		}
		return m.startMutation(mutation{kind: opApply, index: e.Index, ref: e.Ref()})
	case key.Matches(msg, m.keys.Pop):
		return m.askConfirm(opPop)
	case key.Matches(msg, m.keys.Drop):
		return m.askConfirm(opDrop)
	}
	return m, nil
}

func (m Model) openPreview(mode common.Mode) (tea.Model, tea.Cmd) {
	e, ok := m.requireSelection()
	if !ok {
		return m, nil
	}
	cmd := m.loadPreview(mode, e)
	return m, cmd
}

// loadPreview switches to a preview mode and fetches its content.
func (m *Model) loadPreview(mode common.Mode, e stash.Entry) tea.Cmd {
	m.fetchSeq++
	m.preview = previewState{seq: m.fetchSeq, entry: e, loading: true}
	m.setMode(mode)
	return fetchPreview(m.git, m.fetchSeq, mode, e.Index)
}

func (m Model) askConfirm(kind opKind) (tea.Model, tea.Cmd) {
	e, ok := m.requireSelection()
	if !ok {
		return m, nil
	}
	m.confirm = confirmState{kind: kind, target: e}
	m.setMode(common.ModeConfirm)
	return m, nil
}

func (m Model) startMutation(op mutation) (tea.Model, tea.Cmd) {
	m.setMode(common.ModeList)
	m.busy = true
	m.busyOp = op.verb()
	m.settleSeq = 0
	logging.Logger.Debug("mutation", "op", m.busyOp)
	return m, tea.Batch(mutate(m.git, op), m.spinner.Tick)
}

func (m Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back, m.keys.Quit):
		m.setMode(common.ModeList)
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Up):
		m.scrollBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.scrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(-m.viewportHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(m.viewportHeight())
	case key.Matches(msg, m.keys.Top):
		m.preview.scroll = 0
	case key.Matches(msg, m.keys.Bottom):
		m.preview.scroll = m.maxScroll()
	case m.mode == common.ModeDiff && key.Matches(msg, m.keys.ViewFiles):
		cmd := m.loadPreview(common.ModeFiles, m.preview.entry)
		return m, cmd
	case m.mode == common.ModeFiles && key.Matches(msg, m.keys.ViewDiff, m.keys.Select):
		cmd := m.loadPreview(common.ModeDiff, m.preview.entry)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		selected, ok := m.selected()
		m.search.Blur()
		m.query = ""
		m.applyFilter("")
		m.reselect(selected, ok)
		m.setMode(common.ModeList)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.search.Blur()
		m.query = strings.TrimSpace(m.search.Value())
		m.applyFilter(m.query)
		m.setMode(common.ModeList)
		if m.query != "" && len(m.order) == 0 {
			m.setInfo("No stashes match your filter.")
		}
		return m, nil
	case key.Matches(msg, m.keys.InputUp):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.InputDown):
		m.moveCursor(1)
		return m, nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.applyFilter(m.search.Value())
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.form.Blur()
		m.form.Reset()
		m.setMode(common.ModeList)
		return m, nil
	case key.Matches(msg, m.keys.ToggleUntracked):
		m.untracked = !m.untracked
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		message := strings.TrimSpace(m.form.Value())
		if message == "" && m.cfg.RequireStashMessage {
			m.setError("A stash message is required.")
			return m, nil
		}
		m.form.Blur()
		return m.startMutation(mutation{kind: opCreate, message: message, untracked: m.untracked})
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.confirm
	if !key.Matches(msg, m.keys.Confirm) {
		m.setMode(common.ModeList)
		m.setInfo(fmt.Sprintf("%s of %s cancelled.", c.kind.name(), c.target.Ref()))
		return m, nil
	}
	return m.startMutation(mutation{kind: c.kind, index: c.target.Index, ref: c.target.Ref()})
}

// ── State helpers ───────────────────────────────────────────────────────────

func (m *Model) setMode(mode common.Mode) {
	if m.mode != mode {
		logging.Logger.Debug("mode", "from", m.mode.String(), "to", mode.String())
	}
	m.mode = mode
}

func (m *Model) setInfo(text string) {
	m.status = statusLine{text: text, until: m.now().Add(m.cfg.StatusTTL)}
}

func (m *Model) setError(text string) {
	m.status = statusLine{text: text, isErr: true, until: m.now().Add(m.cfg.ErrorTTL)}
}

// applyFilter recomputes the display order for query.
func (m *Model) applyFilter(query string) {
	ranked := filter.Rank(query, m.list)
	m.order = make([]int, len(ranked))
	m.matches = make(map[int][]int, len(ranked))
	for i, r := range ranked {
		m.order[i] = r.Index
		if len(r.Positions) > 0 {
			m.matches[r.Index] = r.Positions
		}
	}
	m.clampCursor()
}

// reselect moves the cursor back onto the previously selected stash after
// the order was rebuilt.
func (m *Model) reselect(prev stash.Entry, ok bool) {
	if !ok {
		m.clampCursor()
		return
	}
	idx := m.list.Find(prev.Hash)
	for pos, i := range m.order {
		if i == idx {
			m.cursor = pos
			return
		}
	}
	m.clampCursor()
}

// selected returns the entry under the cursor.
func (m Model) selected() (stash.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.order) {
		return stash.Entry{}, false
	}
	return m.list.At(m.order[m.cursor])
}

// requireSelection returns the selected entry or explains why there is none.
func (m *Model) requireSelection() (stash.Entry, bool) {
	e, ok := m.selected()
	if ok {
		return e, true
	}
	if m.list.Len() == 0 {
		m.setInfo("No stashes found. Press " + m.keys.NewStash.Help().Key + " to create one.")
	} else {
		m.setInfo("No stashes match your filter.")
	}
	return stash.Entry{}, false
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.order) {
		m.cursor = len(m.order) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// viewportHeight is the number of rows available to list or preview content.
func (m Model) viewportHeight() int {
	h := m.height - chromeRows
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) maxScroll() int {
	return max(0, len(m.preview.lines)-m.viewportHeight())
}

func (m *Model) scrollBy(delta int) {
	m.preview.scroll += delta
	m.clampScroll()
}

func (m *Model) clampScroll() {
	m.preview.scroll = min(max(m.preview.scroll, 0), m.maxScroll())
}

func (k opKind) name() string {
	switch k {
	case opPop:
		return "pop"
	case opDrop:
		return "drop"
	case opApply:
		return "apply"
	default:
		return "create"
	}
}

// ── Preview content ─────────────────────────────────────────────────────────

func diffLines(doc *diff.Document) ([]common.PreviewLine, string) {
	lines := doc.Lines()
	out := make([]common.PreviewLine, len(lines))
	for i, l := range lines {
		out[i] = common.PreviewLine{Style: lineStyle(l.Kind), Text: l.Text}
	}
	st := doc.Stats()
	return out, fmt.Sprintf("%d %s, +%d −%d", st.Files, plural(st.Files, "file"), st.Insertions, st.Deletions)
}

func lineStyle(k diff.LineKind) common.LineStyle {
	switch k {
	case diff.Added:
		return common.LineAdded
	case diff.Removed:
		return common.LineRemoved
	case diff.MetaHeader:
		return common.LineMeta
	case diff.HunkHeader:
		return common.LineHunk
	default:
		return common.LineContext
	}
}

func fileLines(sum *diff.FileSummary) ([]common.PreviewLine, string) {
	out := make([]common.PreviewLine, 0, sum.Len())
	for _, f := range sum.Files {
		status := f.Change.String()
		if f.Unrecognized {
			status = f.RawStatus
		}
		path := f.Path
		if f.Change == diff.ChangeRenamed {
			path = f.OldPath + " → " + f.Path
		}
		counts := fmt.Sprintf("+%d −%d", f.Insertions, f.Deletions)
		if f.Binary {
			counts = "binary"
		}
		out = append(out, common.PreviewLine{
			Style: changeStyle(f.Change),
			Text:  fmt.Sprintf("%-4s %s  %s", status, path, counts),
		})
	}
	ins, del := sum.Totals()
	return out, fmt.Sprintf("%d %s, +%d −%d", sum.Len(), plural(sum.Len(), "file"), ins, del)
}

func changeStyle(c diff.ChangeType) common.LineStyle {
	switch c {
	case diff.ChangeAdded:
		return common.LineFileAdded
	case diff.ChangeDeleted:
		return common.LineFileDeleted
	case diff.ChangeRenamed:
		return common.LineFileRenamed
	default:
		return common.LineFileModified
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
