package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/moodctl/internal/analysis"
	"github.com/chris-regnier/moodctl/internal/api"
	"github.com/chris-regnier/moodctl/internal/calendar"
	"github.com/chris-regnier/moodctl/internal/editor"
	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/journal"
	"github.com/chris-regnier/moodctl/internal/notify"
	"github.com/chris-regnier/moodctl/internal/storage"
)

// Prompt is shown above the draft editor.
const Prompt = "How was your day? What emotions stood out?"

// TUIConfig holds configuration needed by the dashboard.
type TUIConfig struct {
	Editor   string // resolved editor command
	MaxWidth int    // maximum content width (0 = no limit)
	Theme    Theme
	LogFile  string // empty discards log output
	Autosave bool
	Drafts   storage.Drafts  // nil disables draft persistence
	Notifier notify.Notifier // nil disables desktop notifications
	Today    time.Time       // zero means now
}

type focusArea int

const (
	focusEditor focusArea = iota
	focusCalendar
)

// calendarWidth is the rendered month grid plus its border and padding.
const calendarWidth = 31

// Effect outcomes delivered back to Update.
type (
	listingMsg struct {
		revision int
		items    []entry.Summary
		err      error
	}
	createdMsg struct {
		res journal.SaveResult
		err error
	}
	lookupMsg struct {
		date string
		rec  analysis.Record
		err  error
	}
	draftLoadedMsg struct {
		draft storage.Draft
	}
	draftSavedMsg struct {
		date string
		err  error
	}
	externalEditMsg struct {
		text string
		err  error
	}
	notifiedMsg struct {
		err error
	}
)

// dashboardModel owns the journal state. Network and disk work runs as
// commands whose results come back as messages, so state is only touched
// in Update.
type dashboardModel struct {
	svc   api.Service
	ctx   context.Context
	cfg   TUIConfig
	state journal.State

	cal   calendar.Model
	input textarea.Model
	pane  viewport.Model
	spin  spinner.Model
	help  help.Model
	keys  dashboardKeys

	focus      focusArea
	helpActive bool
	width      int
	height     int
	ready      bool
}

func newDashboard(ctx context.Context, svc api.Service, cfg TUIConfig) dashboardModel {
	today := cfg.Today
	if today.IsZero() {
		today = time.Now()
	}
	theme := cfg.Theme

	input := textarea.New()
	input.Placeholder = Prompt
	input.CharLimit = entry.MaxDraftLength
	input.ShowLineNumbers = false
	input.FocusedStyle, input.BlurredStyle = theme.TextareaStyles()
	input.Focus()

	cal := calendar.New(today)
	cal.Opts = theme.CalendarOptions()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = theme.AccentStyle()

	h := help.New()
	h.Styles.ShortKey = theme.AccentStyle()
	h.Styles.ShortDesc = theme.HelpStyle()
	h.Styles.ShortSeparator = theme.HelpStyle()
	h.Styles.FullKey = theme.AccentStyle()
	h.Styles.FullDesc = theme.HelpStyle()
	h.Styles.FullSeparator = theme.HelpStyle()

	return dashboardModel{
		svc:   svc,
		ctx:   ctx,
		cfg:   cfg,
		state: journal.New(today),
		cal:   cal,
		input: input,
		pane:  viewport.New(0, 0),
		spin:  spin,
		help:  h,
		keys:  newDashboardKeys(),
		focus: focusEditor,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	_, effects := m.state.Start()
	return tea.Batch(textarea.Blink, m.run(effects), m.loadDraftCmd(m.state.SelectedDate()))
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var effects []journal.Effect

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m.synced(), nil

	case listingMsg:
		if msg.err != nil {
			m.state = m.state.ListingFailed(msg.err)
		} else {
			m.state = m.state.ListingLoaded(msg.items)
		}
		return m.synced(), nil

	case createdMsg:
		if msg.err != nil {
			m.state, effects = m.state.SaveFailed(msg.err)
			// The buffer only belongs to the failed save while its date is
			// still selected.
			text := msg.res.Draft
			if msg.res.Date == m.state.SelectedDate() && strings.TrimSpace(m.state.Draft.Text()) != "" {
				text = m.state.Draft.Text()
			}
			return m.synced(), tea.Batch(m.run(effects), m.saveDraftCmd(msg.res.Date, text))
		}
		m.state, effects = m.state.SaveSucceeded(msg.res)
		m.focus = focusCalendar
		return m.synced(), m.run(effects)

	case lookupMsg:
		if msg.date != m.state.SelectedDate() {
			log.Printf("dropping stale lookup for %s", msg.date)
			return m, nil
		}
		if msg.err != nil {
			m.state = m.state.LookupFailed(msg.date, msg.err)
			return m.synced(), m.loadDraftCmd(msg.date)
		}
		m.state = m.state.LookupSucceeded(journal.LookupResult{Record: msg.rec, Date: msg.date})
		return m.synced(), nil

	case draftLoadedMsg:
		v := m.state.View
		if msg.draft.Date != m.state.SelectedDate() || !v.EditorVisible() || v == journal.EditingExisting || !m.state.Draft.Blank() {
			return m, nil
		}
		m.state = m.state.Type(msg.draft.Text)
		m.state.Status = "restored draft from " + msg.draft.SavedAt.Local().Format("Jan 2 15:04")
		return m.synced(), nil

	case draftSavedMsg:
		if msg.err != nil {
			log.Printf("error saving draft for %s: %v", msg.date, msg.err)
		}
		return m, nil

	case externalEditMsg:
		if msg.err != nil {
			log.Printf("external editor: %v", msg.err)
			m.state.Status = "editor failed"
			return m, nil
		}
		if msg.text != "" {
			m.state = m.state.Type(msg.text)
		}
		return m.synced(), nil

	case notifiedMsg:
		if msg.err != nil {
			log.Printf("error sending notification: %v", msg.err)
		}
		return m, nil

	case calendar.SelectedMsg:
		return m.selectDate(msg.Date)

	case spinner.TickMsg:
		if m.state.PendingSaves == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.typing() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.helpActive {
		switch {
		case key.Matches(msg, m.keys.Help), msg.String() == "esc", msg.String() == "q":
			m.helpActive = false
		}
		return m, nil
	}

	typing := m.typing()
	// Printable keys belong to the editor while it has focus.
	if typing && msg.Type == tea.KeyRunes {
		return m.updateInput(msg)
	}

	var effects []journal.Effect
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, quitCmd(m.autosaveCmd())
	case key.Matches(msg, m.keys.Help):
		m.helpActive = true
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.state, effects = m.state.Save()
		return m.synced(), m.run(effects)
	case key.Matches(msg, m.keys.Cancel):
		m.state = m.state.Cancel()
		return m.synced(), nil
	case key.Matches(msg, m.keys.Safe):
		m.state = m.state.ToggleSafeMode()
		return m.synced(), nil
	case key.Matches(msg, m.keys.Edit):
		if !m.state.CanEdit() {
			return m, nil
		}
		m.state = m.state.Edit()
		m.focus = focusEditor
		return m.synced(), textarea.Blink
	case key.Matches(msg, m.keys.Delete):
		m.state = m.state.Delete()
		m.focus = focusEditor
		return m.synced(), nil
	case key.Matches(msg, m.keys.Remind):
		m.state, effects = m.state.ScheduleReminders()
		return m.synced(), m.run(effects)
	case key.Matches(msg, m.keys.External):
		if !m.state.View.EditorVisible() {
			return m, nil
		}
		return m, m.externalEditCmd()
	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusEditor {
			m.focus = focusCalendar
		} else {
			m.focus = focusEditor
		}
		return m.synced(), nil
	}

	if typing {
		return m.updateInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.ScrollUp):
		m.pane.SetYOffset(m.pane.YOffset - 1)
		return m, nil
	case key.Matches(msg, m.keys.ScrollDn):
		m.pane.SetYOffset(m.pane.YOffset + 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.cal, cmd, _ = m.cal.Update(msg)
	return m, cmd
}

func (m dashboardModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state = m.state.Type(m.input.Value())
	return m, cmd
}

func (m dashboardModel) selectDate(day time.Time) (tea.Model, tea.Cmd) {
	save := m.autosaveCmd()
	var effects []journal.Effect
	m.state, effects = m.state.SelectDate(day)
	m.focus = focusCalendar
	return m.synced(), tea.Batch(save, m.run(effects))
}

// typing reports whether keys go to the draft editor.
func (m dashboardModel) typing() bool {
	return m.state.View.EditorVisible() && m.focus == focusEditor
}

// synced brings the widgets in line with the journal state.
func (m dashboardModel) synced() dashboardModel {
	if m.input.Value() != m.state.Draft.Text() {
		m.input.SetValue(m.state.Draft.Text())
	}
	if m.typing() {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	m.cal.Cursor = m.state.Selected
	m.cal.Risks = m.state.Store.Risks()
	m.pane.SetContent(m.paneContent(m.pane.Width))
	return m
}

// run maps effects onto commands.
func (m dashboardModel) run(effects []journal.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range effects {
		switch e := e.(type) {
		case journal.CreateEffect:
			cmds = append(cmds, m.createCmd(e), m.spin.Tick)
		case journal.LookupEffect:
			cmds = append(cmds, m.lookupCmd(e.Date))
		case journal.RefreshEffect:
			cmds = append(cmds, m.listCmd(e.Revision))
		case journal.RemindEffect:
			cmds = append(cmds, m.notifyCmd(e.Cues))
		case journal.DiscardDraftEffect:
			cmds = append(cmds, m.discardDraftCmd(e.Date))
		}
	}
	return tea.Batch(cmds...)
}

func (m dashboardModel) createCmd(e journal.CreateEffect) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		rec, err := svc.CreateEntry(ctx, e.Text)
		return createdMsg{
			res: journal.SaveResult{Record: rec, Draft: e.Draft, Date: e.Date},
			err: err,
		}
	}
}

func (m dashboardModel) lookupCmd(date string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		rec, err := svc.EntryByDate(ctx, date)
		return lookupMsg{date: date, rec: rec, err: err}
	}
}

func (m dashboardModel) listCmd(revision int) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		items, err := svc.ListEntries(ctx)
		return listingMsg{revision: revision, items: items, err: err}
	}
}

func (m dashboardModel) notifyCmd(cues []string) tea.Cmd {
	n := m.cfg.Notifier
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		title, body := notify.FormatCues(cues)
		return notifiedMsg{err: n.Notify(title, body)}
	}
}

func (m dashboardModel) loadDraftCmd(date string) tea.Cmd {
	drafts := m.cfg.Drafts
	if drafts == nil {
		return nil
	}
	return func() tea.Msg {
		d, err := drafts.Load(date)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				log.Printf("error loading draft for %s: %v", date, err)
			}
			return nil
		}
		return draftLoadedMsg{draft: d}
	}
}

func (m dashboardModel) saveDraftCmd(date, text string) tea.Cmd {
	drafts := m.cfg.Drafts
	if drafts == nil || !m.cfg.Autosave || strings.TrimSpace(text) == "" {
		return nil
	}
	return func() tea.Msg {
		return draftSavedMsg{date: date, err: drafts.Save(storage.Draft{Date: date, Text: text})}
	}
}

func (m dashboardModel) discardDraftCmd(date string) tea.Cmd {
	drafts := m.cfg.Drafts
	if drafts == nil {
		return nil
	}
	return func() tea.Msg {
		if err := drafts.Discard(date); err != nil {
			log.Printf("error discarding draft for %s: %v", date, err)
		}
		return nil
	}
}

// autosaveCmd persists an unsent new draft for the selected date.
func (m dashboardModel) autosaveCmd() tea.Cmd {
	switch m.state.View {
	case journal.Drafting, journal.NoEntry:
		return m.saveDraftCmd(m.state.SelectedDate(), m.state.Draft.Text())
	}
	return nil
}

func (m dashboardModel) externalEditCmd() tea.Cmd {
	fail := func(err error) tea.Cmd {
		return func() tea.Msg { return externalEditMsg{err: err} }
	}
	path, err := editor.Prepare(m.state.Draft.Text())
	if err != nil {
		return fail(err)
	}
	c, err := editor.Command(editor.ResolveEditor(m.cfg.Editor), path)
	if err != nil {
		os.Remove(path)
		return fail(err)
	}
	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			os.Remove(path)
			return externalEditMsg{err: err}
		}
		text, err := editor.Collect(path)
		return externalEditMsg{text: text, err: err}
	})
}

func quitCmd(before tea.Cmd) tea.Cmd {
	if before == nil {
		return tea.Quit
	}
	return tea.Sequence(before, tea.Quit)
}

func (m dashboardModel) contentWidth() int {
	if m.cfg.MaxWidth > 0 && m.width > m.cfg.MaxWidth {
		return m.cfg.MaxWidth
	}
	return m.width
}

func (m dashboardModel) stacked() bool {
	return m.contentWidth() < calendarWidth+40
}

func (m dashboardModel) mainWidth() int {
	if m.stacked() {
		return m.contentWidth()
	}
	return m.contentWidth() - calendarWidth - 1
}

func (m *dashboardModel) layout() {
	w := m.mainWidth()
	chrome := 4 // header, status, footer, spacing
	if m.stacked() {
		chrome += 10
	}
	bodyHeight := max(m.height-chrome, 5)

	m.input.SetWidth(max(w-2, 10))
	m.input.SetHeight(max(bodyHeight-4, 3))
	m.pane.Width = w
	m.pane.Height = bodyHeight
	m.help.Width = m.contentWidth()
}

func (m dashboardModel) paneContent(width int) string {
	d := m.state.Displayed
	if m.state.View != journal.Viewing || d == nil {
		return ""
	}
	theme := m.cfg.Theme
	if width < 1 {
		width = 80
	}

	sections := []string{
		RenderEntryHeader(*d, theme),
		RenderEntryText(*d, theme, width),
	}
	switch {
	case m.state.AnalysisVisible():
		sections = append(sections, RenderPanels(analysis.Panels(d.Record), theme, width))
	case m.state.SafeMode:
		sections = append(sections, theme.HelpStyle().Italic(true).Render("Safe mode: analysis hidden. Press s to show it."))
	}
	return strings.Join(sections, "\n")
}

func (m dashboardModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	theme := m.cfg.Theme
	cw := m.contentWidth()

	if m.helpActive {
		box := theme.BorderStyle().Padding(1, 2).Render(
			theme.HeaderStyle().Render("Keys") + "\n\n" + m.help.FullHelpView(m.keys.FullHelp()))
		return theme.PaintScreen(box, m.width, m.height, lipgloss.Width(box))
	}

	var body string
	if m.stacked() {
		body = lipgloss.JoinVertical(lipgloss.Left, m.calendarView(), m.mainView(m.mainWidth()))
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.calendarView(), " ", m.mainView(m.mainWidth()))
	}

	sections := []string{m.headerView(), body, m.statusView(), m.help.View(m.keys)}
	return theme.PaintScreen(strings.Join(sections, "\n"), m.width, m.height, cw)
}

func (m dashboardModel) headerView() string {
	theme := m.cfg.Theme
	title := theme.HeaderStyle().Render("moodctl") +
		theme.HelpStyle().Render("  ·  "+m.state.Selected.Format("Monday, January 2 2006"))
	if m.state.SafeMode {
		title += theme.HelpStyle().Render("  ·  ") + theme.AccentStyle().Render("safe mode")
	}
	return title
}

func (m dashboardModel) calendarView() string {
	style := m.cfg.Theme.BorderStyle()
	if !m.typing() {
		style = m.cfg.Theme.FocusBorderStyle()
	}
	return style.Padding(0, 1).Render(m.cal.View())
}

func (m dashboardModel) mainView(width int) string {
	theme := m.cfg.Theme
	date := m.state.SelectedDate()

	if m.state.View == journal.Viewing {
		return m.pane.View()
	}

	var title string
	switch m.state.View {
	case journal.EditingExisting:
		title = "Editing entry for " + date
	case journal.NoEntry:
		title = "No entry for " + date + ". Write one?"
	default:
		title = "New entry for " + date
	}

	counter := fmt.Sprintf("%d/%d", m.state.Draft.Len(), entry.MaxDraftLength)
	counterStyle := theme.HelpStyle()
	if m.state.Draft.Remaining() == 0 {
		counterStyle = theme.DangerStyle()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		theme.HeaderStyle().Render(title),
		theme.HelpStyle().Italic(true).Render(Prompt),
		m.input.View(),
		lipgloss.PlaceHorizontal(max(width, lipgloss.Width(counter)), lipgloss.Right, counterStyle.Render(counter),
			lipgloss.WithWhitespaceBackground(theme.Background)),
	)
}

func (m dashboardModel) statusView() string {
	theme := m.cfg.Theme
	if m.state.PendingSaves > 0 {
		return m.spin.View() + theme.HelpStyle().Render(" analysing and saving...")
	}
	return theme.HelpStyle().Render(m.state.Status)
}

// RunDashboard launches the interactive journal dashboard.
func RunDashboard(ctx context.Context, svc api.Service, cfg TUIConfig) error {
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "moodctl")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(newDashboard(ctx, svc, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
