// Package tui provides the BubbleTea-based terminal user interface.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/panelo/internal/adapter/input"
	"github.com/jmylchreest/panelo/internal/config"
	"github.com/jmylchreest/panelo/internal/layout"
	"github.com/jmylchreest/panelo/internal/model"
	"github.com/jmylchreest/panelo/internal/store"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeHome Mode = iota
	ModeDashboard
	ModeInput
	ModeConfirm
	ModeHelp
)

// inputKind says what the text input is collecting.
type inputKind int

const (
	inputCreate inputKind = iota
	inputRename
	inputAddBox
	inputSearch
)

// Model is the main TUI model.
type Model struct {
	// Configuration
	cfg   *config.Config
	store *store.Store

	// Current mode; prevMode is restored when input or help closes
	mode     Mode
	prevMode Mode

	// Components
	list     list.Model
	viewport viewport.Model
	input    textinput.Model
	help     help.Model

	// State
	dashboards  []model.Dashboard
	activeID    string
	items       []layout.Item
	order       []string
	focusID     string
	inputKind   inputKind
	targetID    string // dashboard being renamed or deleted
	searchQuery string
	width       int
	height      int
	ready       bool

	// Key bindings
	keys KeyMap

	// Status message
	statusMsg string
	statusErr bool

	// Refresh channel subscription
	refreshCh <-chan store.ChangeEvent
}

// dashboardItem wraps a dashboard for the list component.
type dashboardItem struct {
	dashboard model.Dashboard
	active    bool
}

func (i dashboardItem) Title() string {
	return i.dashboard.Name
}

func (i dashboardItem) Description() string {
	n := len(i.dashboard.Boxes)
	desc := fmt.Sprintf("%d/%d boxes", n, model.MaxBoxes)
	if n > 0 {
		titles := make([]string, 0, n)
		for _, b := range i.dashboard.Boxes {
			titles = append(titles, b.DisplayTitle())
		}
		desc += " - " + strings.Join(titles, ", ")
	}
	return desc
}

func (i dashboardItem) FilterValue() string {
	return i.dashboard.Name
}

// dashboardDelegate renders dashboards, marking the last-opened one.
type dashboardDelegate struct {
	list.DefaultDelegate
}

func newDashboardDelegate() dashboardDelegate {
	return dashboardDelegate{DefaultDelegate: list.NewDefaultDelegate()}
}

// Render renders a list item, truncating to the list width.
func (d dashboardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	di, ok := item.(dashboardItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	titleStyle := d.DefaultDelegate.Styles.NormalTitle
	descStyle := d.DefaultDelegate.Styles.NormalDesc
	if index == m.Index() {
		titleStyle = d.DefaultDelegate.Styles.SelectedTitle
		descStyle = d.DefaultDelegate.Styles.SelectedDesc
	}

	itemWidth := m.Width() - d.DefaultDelegate.Styles.NormalTitle.GetHorizontalPadding()

	title := di.Title()
	if di.active {
		title += " •"
	}
	fmt.Fprint(w, titleStyle.Render(truncateRunes(title, itemWidth)))
	fmt.Fprint(w, "\n")
	fmt.Fprint(w, descStyle.Render(truncateRunes(di.Description(), itemWidth)))
}

// New creates a new TUI model.
func New(cfg *config.Config, s *store.Store) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	l := list.New(nil, newDashboardDelegate(), 0, 0)
	l.Title = "Dashboards"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	in := textinput.New()
	in.CharLimit = 2048

	m := Model{
		cfg:   cfg,
		store: s,
		mode:  ModeHome,
		list:  l,
		input: in,
		help:  help.New(),
		keys:  DefaultKeyMap(),
	}

	if s != nil {
		m.refreshCh = s.Subscribe()
	}

	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return loadMsg{} },
		m.watchForChanges,
	)
}

type loadMsg struct{}

// watchForChanges waits for the next store change.
func (m Model) watchForChanges() tea.Msg {
	if m.refreshCh == nil {
		return nil
	}
	ev, ok := <-m.refreshCh
	if !ok {
		return nil
	}
	return refreshMsg{event: ev}
}

type refreshMsg struct {
	event store.ChangeEvent
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	what string
	err  error
}

type boxAddedMsg struct {
	box model.Box
	err error
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		m.list.SetSize(msg.Width, msg.Height-2)
		m.viewport = viewport.New(msg.Width, max(1, msg.Height-3))
		m.viewport.YPosition = 1
		m.renderGrid()
		return m, nil

	case loadMsg:
		m.refresh()
		if m.activeID != "" {
			m.mode = ModeDashboard
			m.syncLayout()
		}
		return m, nil

	case refreshMsg:
		m.refresh()
		if m.mode == ModeDashboard {
			m.syncLayout()
		}
		cmds := []tea.Cmd{m.watchForChanges}
		if msg.event.Type == store.ChangeTypePersistFailed {
			cmds = append(cmds, status("Save failed: "+errString(msg.event.Err), true))
		}
		return m, tea.Batch(cmds...)

	case boxAddedMsg:
		switch {
		case errors.Is(msg.err, store.ErrCapacityExceeded):
			return m, status(fmt.Sprintf("Maximum of %d boxes reached", model.MaxBoxes), true)
		case msg.err != nil:
			return m, status("Add failed: "+msg.err.Error(), true)
		}
		m.refresh()
		m.focusID = msg.box.ID
		m.syncLayout()
		return m, status("Added "+msg.box.DisplayTitle(), false)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, status("Copy failed: "+msg.err.Error(), true)
		}
		return m, status("Copied "+msg.what, false)
	}

	var cmd tea.Cmd
	switch m.mode {
	case ModeHome:
		m.list, cmd = m.list.Update(msg)
	case ModeDashboard:
		m.viewport, cmd = m.viewport.Update(msg)
	case ModeInput:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text input swallows everything, including q and ?
	switch m.mode {
	case ModeInput:
		return m.handleInputKey(msg)
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = m.prevMode
		} else {
			m.prevMode = m.mode
			m.mode = ModeHelp
		}
		return m, nil
	}

	switch m.mode {
	case ModeHome:
		return m.handleHomeKey(msg)
	case ModeDashboard:
		return m.handleDashboardKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Back) {
			m.mode = m.prevMode
		}
		return m, nil
	}

	return m, nil
}

// handleHomeKey handles keys on the dashboard list.
func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected, hasSelection := m.list.SelectedItem().(dashboardItem)

	switch {
	case key.Matches(msg, m.keys.Enter):
		if hasSelection && m.store.SelectDashboard(selected.dashboard.ID) {
			m.searchQuery = ""
			m.focusID = ""
			m.refresh()
			m.mode = ModeDashboard
			m.syncLayout()
		}
		return m, nil

	case key.Matches(msg, m.keys.Create):
		return m.openInput(inputCreate, "Dashboard name", "")

	case key.Matches(msg, m.keys.Rename):
		if hasSelection {
			m.targetID = selected.dashboard.ID
			return m.openInput(inputRename, "New name", selected.dashboard.Name)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if hasSelection {
			m.targetID = selected.dashboard.ID
			m.prevMode = m.mode
			m.mode = ModeConfirm
		}
		return m, nil

	case key.Matches(msg, m.keys.ReorderUp), key.Matches(msg, m.keys.ReorderDown):
		if !hasSelection {
			return m, nil
		}
		idx := m.list.Index()
		target := idx - 1
		if key.Matches(msg, m.keys.ReorderDown) {
			target = idx + 1
		}
		if target < 0 || target >= len(m.dashboards) {
			return m, nil
		}
		if m.store.ReorderDashboards(selected.dashboard.ID, m.dashboards[target].ID) {
			m.refresh()
			m.list.Select(target)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reload()

	case key.Matches(msg, m.keys.Back):
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleDashboardKey handles keys on the box grid.
func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.renderGrid()
			return m, nil
		}
		m.store.GoHome()
		m.refresh()
		m.mode = ModeHome
		return m, nil

	case key.Matches(msg, m.keys.AddBox):
		if active, ok := m.active(); ok && active.IsFull() {
			return m, status(fmt.Sprintf("Maximum of %d boxes reached", model.MaxBoxes), true)
		}
		return m.openInput(inputAddBox, "Website URL", "")

	case key.Matches(msg, m.keys.Rename):
		if active, ok := m.active(); ok {
			m.targetID = active.ID
			return m.openInput(inputRename, "New name", active.Name)
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		return m.openInput(inputSearch, "Search or filter (host=github.com)", m.searchQuery)

	case key.Matches(msg, m.keys.Focus):
		m.cycleFocus(msg.String() == "shift+tab")
		return m, nil

	case key.Matches(msg, m.keys.RemoveBox):
		if m.focusID == "" {
			return m, nil
		}
		if m.store.RemoveBox(m.focusID) {
			m.focusID = ""
			m.refresh()
			m.syncLayout()
			return m, status("Box removed", false)
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if b, ok := m.focusedBox(); ok {
			return m, m.copyToClipboard(b.URL, "URL")
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyAll):
		active, ok := m.active()
		if !ok {
			return m, nil
		}
		data, err := json.MarshalIndent(active, "", "  ")
		if err != nil {
			return m, status("Failed to marshal JSON: "+err.Error(), true)
		}
		return m, m.copyToClipboard(string(data), "dashboard as JSON")

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reload()

	case key.Matches(msg, m.keys.Narrower):
		return m.resizeFocused(-1, 0)
	case key.Matches(msg, m.keys.Wider):
		return m.resizeFocused(1, 0)
	case key.Matches(msg, m.keys.Shorter):
		return m.resizeFocused(0, -1)
	case key.Matches(msg, m.keys.Taller):
		return m.resizeFocused(0, 1)

	case key.Matches(msg, m.keys.MoveLeft):
		return m.moveFocused(-1, 0)
	case key.Matches(msg, m.keys.MoveRight):
		return m.moveFocused(1, 0)
	case key.Matches(msg, m.keys.MoveUp):
		return m.moveFocused(0, -1)
	case key.Matches(msg, m.keys.MoveDown):
		return m.moveFocused(0, 1)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleInputKey handles keys while the text input is open.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		m.mode = m.prevMode
		if m.inputKind == inputSearch {
			m.searchQuery = ""
			m.renderGrid()
		}
		return m, nil

	case tea.KeyEnter:
		value := m.input.Value()
		m.input.Blur()
		m.mode = m.prevMode
		return m.submitInput(value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.inputKind == inputSearch {
		m.searchQuery = m.input.Value()
		m.renderGrid()
	}
	return m, cmd
}

// submitInput applies the value collected by the text input.
// Blank names are ignored silently.
func (m Model) submitInput(value string) (tea.Model, tea.Cmd) {
	switch m.inputKind {
	case inputCreate:
		d, ok := m.store.CreateDashboard(value)
		if !ok {
			return m, nil
		}
		m.refresh()
		m.focusID = ""
		m.mode = ModeDashboard
		m.syncLayout()
		return m, status("Created "+d.Name, false)

	case inputRename:
		if m.store.RenameDashboard(m.targetID, value) {
			m.refresh()
		}
		return m, nil

	case inputAddBox:
		url, ok := input.NormalizeURL(value)
		if !ok {
			return m, nil
		}
		return m, m.addBox(url)

	case inputSearch:
		m.searchQuery = strings.TrimSpace(value)
		m.renderGrid()
		if m.searchQuery != "" {
			m.focusID = ""
			m.cycleFocus(false)
		}
		return m, nil
	}
	return m, nil
}

// handleConfirmKey handles the delete confirmation prompt.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = m.prevMode
	if !key.Matches(msg, m.keys.Confirm) {
		return m, nil
	}

	d, _ := m.store.Dashboard(m.targetID)
	if !m.store.DeleteDashboard(m.targetID) {
		return m, nil
	}
	m.refresh()
	m.mode = ModeHome
	return m, status("Deleted "+d.Name, false)
}

// openInput switches to input mode for the given purpose.
func (m Model) openInput(kind inputKind, prompt, value string) (tea.Model, tea.Cmd) {
	m.inputKind = kind
	m.prevMode = m.mode
	m.mode = ModeInput
	m.input.Prompt = prompt + ": "
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m, textinput.Blink
}

// addBox resolves the title and appends the box without blocking the UI.
func (m Model) addBox(url string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		box, err := s.AddBox(context.Background(), url, url)
		return boxAddedMsg{box: box, err: err}
	}
}

// reload rehydrates the store from persistence.
func (m Model) reload() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		if err := s.Hydrate(context.Background()); err != nil {
			return statusMsg{text: "Reload failed: " + err.Error(), isErr: true}
		}
		return statusMsg{text: "Reloaded"}
	}
}

// moveFocused moves the focused box one cell and stores the new layout.
func (m Model) moveFocused(dx, dy int) (tea.Model, tea.Cmd) {
	if m.focusID == "" {
		return m, nil
	}
	m.store.ApplyLayout(layout.Move(m.items, m.focusID, dx, dy, model.GridColumns))
	m.refresh()
	return m, nil
}

// resizeFocused resizes the focused box and stores the new layout.
func (m Model) resizeFocused(dw, dh int) (tea.Model, tea.Cmd) {
	if m.focusID == "" {
		return m, nil
	}
	m.store.ApplyLayout(layout.Resize(m.items, m.focusID, dw, dh, model.GridColumns))
	m.refresh()
	return m, nil
}

// cycleFocus moves focus to the next (or previous) matching box.
func (m *Model) cycleFocus(reverse bool) {
	matches := m.matches()
	var candidates []string
	for _, id := range m.order {
		if matches == nil || matches[id] {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		m.focusID = ""
		m.renderGrid()
		return
	}

	idx := slices.Index(candidates, m.focusID)
	switch {
	case idx < 0 && reverse:
		idx = len(candidates) - 1
	case idx < 0:
		idx = 0
	case reverse:
		idx = (idx - 1 + len(candidates)) % len(candidates)
	default:
		idx = (idx + 1) % len(candidates)
	}
	m.focusID = candidates[idx]
	m.renderGrid()
}

// refresh reloads the snapshot from the store and rebuilds derived state.
func (m *Model) refresh() {
	if m.store == nil {
		return
	}
	m.dashboards = m.store.Dashboards()
	m.activeID = m.store.ActiveID()

	items := make([]list.Item, len(m.dashboards))
	for i, d := range m.dashboards {
		items[i] = dashboardItem{dashboard: d, active: d.ID == m.activeID}
	}
	m.list.SetItems(items)

	if m.activeID == "" && m.mode == ModeDashboard {
		m.mode = ModeHome
	}

	active, ok := m.active()
	if !ok {
		m.items, m.order, m.focusID = nil, nil, ""
		return
	}
	m.items = layout.Compact(layout.FromBoxes(active.Boxes), model.GridColumns)
	m.order = focusOrder(active.Boxes, m.items)
	if !slices.Contains(m.order, m.focusID) {
		m.focusID = ""
		if len(m.order) > 0 {
			m.focusID = m.order[0]
		}
	}
	m.renderGrid()
}

// syncLayout stores the compacted layout when it differs from the stored
// coordinates, the way a grid reports its layout after mounting.
func (m *Model) syncLayout() {
	active, ok := m.active()
	if !ok || len(active.Boxes) == 0 {
		return
	}
	if slices.Equal(layout.FromBoxes(active.Boxes), m.items) {
		return
	}
	m.store.ApplyLayout(m.items)
	m.refresh()
}

// renderGrid redraws the active dashboard into the viewport.
func (m *Model) renderGrid() {
	active, ok := m.active()
	if !ok {
		m.viewport.SetContent("")
		return
	}
	boxes := make(map[string]model.Box, len(active.Boxes))
	for _, b := range active.Boxes {
		boxes[b.ID] = b
	}
	g := gridView{
		items:     m.items,
		boxes:     boxes,
		focusID:   m.focusID,
		matches:   m.matches(),
		width:     m.width,
		rowHeight: m.cfg.TUI.RowHeight,
	}
	m.viewport.SetContent(g.render())
}

func (m Model) matches() map[string]bool {
	active, ok := m.active()
	if !ok {
		return nil
	}
	return matchBoxes(active.Boxes, m.searchQuery)
}

// active returns the active dashboard from the current snapshot.
func (m Model) active() (model.Dashboard, bool) {
	for _, d := range m.dashboards {
		if d.ID == m.activeID {
			return d, true
		}
	}
	return model.Dashboard{}, false
}

func (m Model) focusedBox() (model.Box, bool) {
	active, ok := m.active()
	if !ok {
		return model.Box{}, false
	}
	if i := active.FindBox(m.focusID); i >= 0 {
		return active.Boxes[i], true
	}
	return model.Box{}, false
}

// copyToClipboard copies text to the system clipboard.
func (m Model) copyToClipboard(text, what string) tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		return copyResultMsg{what: what, err: copyText(text, cfg)}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHome:
		return m.viewHome()
	case ModeDashboard:
		return m.viewDashboard()
	case ModeInput:
		return m.viewInput()
	case ModeConfirm:
		return m.viewConfirm()
	case ModeHelp:
		return m.viewHelp()
	default:
		return ""
	}
}

func (m Model) viewHome() string {
	return m.list.View() + "\n" + m.footer("home")
}

func (m Model) viewDashboard() string {
	active, _ := m.active()
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	header := headerStyle.Render(active.Name) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")).
			Render(fmt.Sprintf("%d/%d boxes", len(active.Boxes), model.MaxBoxes))
	if m.searchQuery != "" {
		header += lipgloss.NewStyle().Foreground(lipgloss.Color("11")).
			Render(fmt.Sprintf("  [%s: %d match]", m.searchQuery, len(m.matches())))
	}
	return header + "\n" + m.viewport.View() + "\n" + m.footer("dashboard")
}

func (m Model) viewInput() string {
	var body string
	if m.prevMode == ModeDashboard {
		body = m.viewport.View()
	} else {
		body = m.list.View()
	}
	return body + "\n" + m.input.View()
}

func (m Model) viewConfirm() string {
	d, _ := m.store.Dashboard(m.targetID)
	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	prompt := fmt.Sprintf("Delete dashboard %q and its %d boxes? (y/N)", d.Name, len(d.Boxes))
	return m.list.View() + "\n" + warn.Render(prompt)
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	m.help.ShowAll = true
	m.help.Width = m.width

	s := titleStyle.Render("Keyboard Shortcuts") + "\n\n"
	s += m.help.View(m.keys) + "\n"
	s += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(
		"Press ? or esc to return")
	return s
}

// footer shows the status message or, when there is none, the keybind bar.
func (m Model) footer(mode string) string {
	if m.statusMsg == "" {
		if !m.cfg.TUI.ShowHelp {
			return ""
		}
		return m.buildKeybindBar(m.width, mode)
	}
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	if m.statusErr {
		statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
	}
	return statusStyle.Render(m.statusMsg)
}

// keybind represents a single keybind with priority for the status bar.
type keybind struct {
	key      string
	desc     string
	priority int // lower = more important (shown first)
}

// buildKeybindBar builds a keybind bar that fits within the given width.
// mode determines which keybinds are shown: "home" or "dashboard".
func (m Model) buildKeybindBar(width int, mode string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	var binds []keybind
	switch mode {
	case "home":
		binds = []keybind{
			{"q", "quit", 1},
			{"enter", "open", 2},
			{"n", "new", 3},
			{"?", "help", 4},
			{"R", "rename", 5},
			{"x", "delete", 6},
			{"K/J", "reorder", 7},
			{"r", "reload", 8},
		}
	case "dashboard":
		binds = []keybind{
			{"q", "quit", 1},
			{"esc", "home", 2},
			{"a", "add", 3},
			{"tab", "focus", 4},
			{"?", "help", 5},
			{"hjkl", "move", 6},
			{"HJKL", "resize", 7},
			{"d", "remove", 8},
			{"c", "copy", 9},
			{"/", "search", 10},
		}
	}
	slices.SortStableFunc(binds, func(a, b keybind) int {
		return a.priority - b.priority
	})

	const separator = "  "
	result := ""
	plainLen := 0
	for _, b := range binds {
		plainItem := b.key + " " + b.desc
		testLen := len(plainItem)
		if result != "" {
			testLen += plainLen + len(separator)
		}
		if width > 0 && testLen > width {
			break
		}
		if result != "" {
			result += separator
		}
		result += keyStyle.Render(b.key) + " " + b.desc
		plainLen = testLen
	}

	return style.Render(result)
}

// truncateRunes shortens s to width runes with a trailing ellipsis.
func truncateRunes(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config    *config.Config
	Store     *store.Store
	WatchPath string // Storage file to watch for outside writes (empty = no watching)
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	s := opts.Store
	if s == nil {
		return errors.New("tui: no store")
	}

	var watcher *store.FileWatcher
	if opts.WatchPath != "" {
		var err error
		watcher, err = store.NewFileWatcher(s, opts.WatchPath)
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		if err := watcher.Start(); err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
		defer watcher.Stop()
	}

	p := tea.NewProgram(New(opts.Config, s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
