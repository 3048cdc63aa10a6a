// Package tui is the interactive terminal front end. One Elm-style model
// drives every screen; all backend work happens in tea.Cmd functions so the
// update loop never blocks.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	styleai "github.com/styleai/styleai-go"
	"github.com/styleai/styleai-go/refdata"
)

type view int

const (
	viewHome view = iota
	viewForm
	viewWardrobe
	viewHistory
	viewDetail
)

// form field indexes, in focus order.
const (
	fieldOccasion = iota
	fieldCountry
	fieldState
	fieldDate
	fieldCount
)

type (
	requestDoneMsg  struct{ state styleai.RequestState }
	wardrobeSyncMsg struct{ err error }
	historySyncMsg  struct{ err error }
	detailMsg       struct {
		rec *styleai.OutfitHistoryRecord
		err error
	}
	cleanDoneMsg struct {
		updated int
		err     error
	}
	deleteDoneMsg struct {
		id  int64
		err error
	}
)

type appModel struct {
	client   *styleai.Client
	orch     *styleai.Orchestrator
	wardrobe *styleai.WardrobeStore
	history  *styleai.HistoryViewer
	detail   *styleai.DetailViewer

	width  int
	height int

	view    view
	suggest bool // form submits to the suggest flow instead of generate

	inputs  []textinput.Model
	focus   int
	spin    spinner.Model
	waiting bool

	result styleai.RequestState
	status string // transient error/info line outside the request cycle

	cursor    int // item cursor within the active wardrobe category
	histIdx   int
	detailRec *styleai.OutfitHistoryRecord
}

func newAppModel(c *styleai.Client) appModel {
	ws := styleai.NewWardrobeStore(c)
	m := appModel{
		client:   c,
		wardrobe: ws,
		orch:     styleai.NewOrchestrator(c, ws),
		history:  styleai.NewHistoryViewer(c),
		detail:   styleai.NewDetailViewer(c),
		view:     viewHome,
	}

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot

	labels := []string{"Occasion", "Country code", "State / region", "Date (YYYY-MM-DD, optional)"}
	m.inputs = make([]textinput.Model, fieldCount)
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = labels[i]
		ti.CharLimit = 64
		m.inputs[i] = ti
	}
	m.inputs[fieldOccasion].Focus()
	return m
}

// Run starts the program over the given client and blocks until quit.
func Run(c *styleai.Client) error {
	p := tea.NewProgram(newAppModel(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.syncWardrobe(), m.syncHistory())
}

// ------------------------- commands -------------------------

func reqTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Minute)
}

func (m appModel) syncWardrobe() tea.Cmd {
	ws := m.wardrobe
	return func() tea.Msg {
		ctx, cancel := reqTimeout()
		defer cancel()
		return wardrobeSyncMsg{err: ws.Load(ctx)}
	}
}

func (m appModel) syncHistory() tea.Cmd {
	hv := m.history
	return func() tea.Msg {
		ctx, cancel := reqTimeout()
		defer cancel()
		return historySyncMsg{err: hv.Load(ctx)}
	}
}

func (m appModel) submitForm() tea.Cmd {
	req := styleai.OutfitRequest{
		Occasion:   strings.TrimSpace(m.inputs[fieldOccasion].Value()),
		Country:    strings.ToUpper(strings.TrimSpace(m.inputs[fieldCountry].Value())),
		Region:     strings.TrimSpace(m.inputs[fieldState].Value()),
		TargetDate: strings.TrimSpace(m.inputs[fieldDate].Value()),
	}
	o := m.orch
	suggest := m.suggest
	return func() tea.Msg {
		ctx, cancel := reqTimeout()
		defer cancel()
		if suggest {
			return requestDoneMsg{state: o.Suggest(ctx, req)}
		}
		return requestDoneMsg{state: o.Generate(ctx, req)}
	}
}

func (m appModel) cleanSelection() tea.Cmd {
	ws := m.wardrobe
	return func() tea.Msg {
		ctx, cancel := reqTimeout()
		defer cancel()
		updated, err := ws.RemoveBackground(ctx)
		return cleanDoneMsg{updated: len(updated), err: err}
	}
}

func (m appModel) deleteItem(id int64) tea.Cmd {
	ws := m.wardrobe
	return func() tea.Msg {
		ctx, cancel := reqTimeout()
		defer cancel()
		return deleteDoneMsg{id: id, err: ws.Delete(ctx, id)}
	}
}

func (m appModel) openDetail(id int64) tea.Cmd {
	dv := m.detail
	return func() tea.Msg {
		ctx, cancel := reqTimeout()
		defer cancel()
		rec, err := dv.Load(ctx, id)
		return detailMsg{rec: rec, err: err}
	}
}

// ------------------------- update -------------------------

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case requestDoneMsg:
		m.waiting = false
		m.result = msg.state
		return m, nil

	case wardrobeSyncMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		return m, nil

	case historySyncMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		return m, nil

	case cleanDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = fmt.Sprintf("Background removed from %d item(s).", msg.updated)
		}
		return m, nil

	case deleteDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = fmt.Sprintf("Deleted item %d.", msg.id)
			if m.cursor > 0 {
				m.cursor--
			}
		}
		return m, nil

	case detailMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.detailRec = msg.rec
		m.view = viewDetail
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys, except while typing into the form.
	if m.view != viewForm {
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	} else if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.view {
	case viewHome:
		return m.handleHomeKey(msg)
	case viewForm:
		return m.handleFormKey(msg)
	case viewWardrobe:
		return m.handleWardrobeKey(msg)
	case viewHistory:
		return m.handleHistoryKey(msg)
	case viewDetail:
		switch msg.String() {
		case "esc", "backspace":
			m.view = viewHistory
			m.detailRec = nil
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1", "g":
		m.suggest = false
		m.view = viewForm
		m.status = ""
		return m, nil
	case "2", "s":
		m.suggest = true
		m.view = viewForm
		m.status = ""
		return m, nil
	case "3", "w":
		m.view = viewWardrobe
		m.status = ""
		return m, m.syncWardrobe()
	case "4", "h":
		m.view = viewHistory
		m.status = ""
		return m, m.syncHistory()
	}
	return m, nil
}

func (m appModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewHome
		m.result = styleai.RequestState{}
		return m, nil

	case "tab", "down":
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil

	case "shift+tab", "up":
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil

	case "enter":
		if m.waiting {
			return m, nil
		}
		m.waiting = true
		return m, tea.Batch(m.submitForm(), m.spin.Tick)
	}

	// Any edit after a validation failure acknowledges it.
	if m.result.Phase == styleai.PhaseInvalid {
		m.orch.EditField()
		m.result = m.orch.State()
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *appModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m appModel) handleWardrobeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.wardrobe.Items(m.wardrobe.ActiveCategory())

	switch msg.String() {
	case "esc", "backspace":
		m.view = viewHome
		return m, nil

	case "left", "right", "tab":
		cats := styleai.Categories()
		cur := 0
		for i, c := range cats {
			if c == m.wardrobe.ActiveCategory() {
				cur = i
			}
		}
		if msg.String() == "left" {
			cur = (cur + len(cats) - 1) % len(cats)
		} else {
			cur = (cur + 1) % len(cats)
		}
		m.wardrobe.SetActiveCategory(cats[cur])
		m.cursor = 0
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
		return m, nil

	case " ":
		if m.cursor < len(items) {
			m.wardrobe.ToggleSelect(items[m.cursor].ID)
		}
		return m, nil

	case "v":
		if m.cursor < len(items) {
			m.wardrobe.ToggleViewMode(items[m.cursor].ID)
		}
		return m, nil

	case "c":
		return m, m.cleanSelection()

	case "d":
		if m.cursor < len(items) {
			return m, m.deleteItem(items[m.cursor].ID)
		}
		return m, nil

	case "r":
		return m, m.syncWardrobe()
	}
	return m, nil
}

func (m appModel) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	recs := m.history.Records()

	switch msg.String() {
	case "esc", "backspace":
		m.view = viewHome
		return m, nil

	case "up", "k":
		if m.histIdx > 0 {
			m.histIdx--
		}
		return m, nil

	case "down", "j":
		if m.histIdx < len(recs)-1 {
			m.histIdx++
		}
		return m, nil

	case "x":
		if m.histIdx < len(recs) {
			id := recs[m.histIdx].ID
			if m.history.IsHidden(id) {
				m.history.Show(id)
			} else {
				m.history.Hide(id)
			}
		}
		return m, nil

	case "enter":
		// Hidden records keep their row but never open the detail screen.
		if m.histIdx < len(recs) && !m.history.IsHidden(recs[m.histIdx].ID) {
			return m, m.openDetail(recs[m.histIdx].ID)
		}
		return m, nil

	case "r":
		return m, m.syncHistory()
	}
	return m, nil
}

// ------------------------- view -------------------------

func (m appModel) View() string {
	header := titleStyle.Render("StyleAI")
	if sess, ok := m.client.Session().Current(); ok {
		header += faintStyle.Render("  signed in as " + sess.Email)
	} else {
		header += faintStyle.Render("  signed out (run: styleai login)")
	}

	var body, footer string
	switch m.view {
	case viewHome:
		body = m.viewHome()
		footer = "1 generate  2 suggest  3 wardrobe  4 history  q quit"
	case viewForm:
		body = m.viewForm()
		footer = "tab next field  enter submit  esc back"
	case viewWardrobe:
		body = m.viewWardrobe()
		footer = "←/→ category  space select  c clean  v photo  d delete  esc back"
	case viewHistory:
		body = m.viewHistory()
		footer = "enter open  x hide/show  r reload  esc back"
	case viewDetail:
		body = m.viewDetail()
		footer = "esc back"
	}

	lines := []string{header, body}
	if m.status != "" && m.view != viewForm {
		lines = append(lines, errorStyle.Render(m.status))
	}
	lines = append(lines, faintStyle.Render(footer))
	return strings.Join(lines, "\n\n")
}

func (m appModel) viewHome() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("What would you like to do?") + "\n\n")
	b.WriteString("  1. Generate a new outfit\n")
	b.WriteString("  2. Suggest from my wardrobe\n")
	b.WriteString(fmt.Sprintf("  3. Browse wardrobe (%d items)\n", m.wardrobe.TotalItems()))
	b.WriteString(fmt.Sprintf("  4. Outfit history (%d looks)\n", len(m.history.Records())))
	return b.String()
}

func (m appModel) viewForm() string {
	var b strings.Builder
	if m.suggest {
		b.WriteString(headerStyle.Render("Suggest from wardrobe") + "\n\n")
	} else {
		b.WriteString(headerStyle.Render("Generate an outfit") + "\n\n")
	}

	labels := []string{"Occasion", "Country", "State", "Date"}
	for i, in := range m.inputs {
		marker := "  "
		if i == m.focus {
			marker = cursorStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%-10s %s\n", marker, labels[i]+":", in.View()))
	}

	if code := strings.ToUpper(strings.TrimSpace(m.inputs[fieldCountry].Value())); code != "" && refdata.IsAllowed(code) {
		b.WriteString(faintStyle.Render(fmt.Sprintf("\n%s — %d regions available", refdata.CountryName(code), len(refdata.Regions(code)))) + "\n")
	}

	b.WriteString("\n" + m.viewRequestState())
	return b.String()
}

// viewRequestState renders the live cycle: spinner while in flight, then the
// weather card, the result, or the error.
func (m appModel) viewRequestState() string {
	if m.waiting {
		live := m.orch.State()
		label := "Checking the weather..."
		if live.Designing() {
			label = "Designing your outfit..."
		}
		out := m.spin.View() + " " + label
		if live.Weather != nil {
			out = m.weatherCard(live.Weather) + "\n" + out
		}
		return out
	}

	st := m.result
	var b strings.Builder
	if st.Weather != nil {
		b.WriteString(m.weatherCard(st.Weather) + "\n")
	}
	switch st.Phase {
	case styleai.PhaseInvalid, styleai.PhaseFetchingWeatherFailed, styleai.PhaseGenerationFailed:
		b.WriteString(errorStyle.Render(st.Message))
	case styleai.PhaseCompleted:
		if st.Outfit != nil {
			b.WriteString(boxStyle.Render(fmt.Sprintf("Top:    %s\nBottom: %s", st.Outfit.TopDescription, st.Outfit.BottomDescription)))
		}
		if st.Suggestion != nil {
			var s strings.Builder
			if st.Suggestion.Suggestion != "" {
				s.WriteString(st.Suggestion.Suggestion + "\n")
			}
			for _, it := range st.Suggestion.SelectedItems {
				s.WriteString(fmt.Sprintf("[%d] %s\n", it.ID, it.Category))
			}
			b.WriteString(boxStyle.Render(strings.TrimRight(s.String(), "\n")))
		}
	}
	return b.String()
}

func (m appModel) weatherCard(w *styleai.WeatherPreview) string {
	card := fmt.Sprintf("%s  %.1f°C (%.1f–%.1f)", w.Condition, w.TemperatureAvg, w.TemperatureMin, w.TemperatureMax)
	if w.Warning != "" {
		card += "\n" + warnStyle.Render(w.Warning)
	}
	return boxStyle.Render(card)
}

func (m appModel) viewWardrobe() string {
	var tabs []string
	for _, cat := range styleai.Categories() {
		label := fmt.Sprintf("%s %d", cat, len(m.wardrobe.Items(cat)))
		if cat == m.wardrobe.ActiveCategory() {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n")

	items := m.wardrobe.Items(m.wardrobe.ActiveCategory())
	if len(items) == 0 {
		b.WriteString(faintStyle.Render("Nothing here yet. Upload with: styleai wardrobe upload"))
		return b.String()
	}
	for i, it := range items {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		check := "[ ]"
		if m.wardrobe.IsSelected(it.ID) {
			check = selectedStyle.Render("[x]")
		}
		photo := "original"
		if m.wardrobe.DisplayURL(it.ID) == it.BgRemovedImageURL && it.BgRemovedImageURL != "" {
			photo = "clean"
		}
		b.WriteString(fmt.Sprintf("%s%s %4d  %-8s %s\n", cursor, check, it.ID, photo, m.wardrobe.DisplayURL(it.ID)))
	}
	return b.String()
}

func (m appModel) viewHistory() string {
	recs := m.history.Records()
	if len(recs) == 0 {
		return faintStyle.Render("No past outfits yet.")
	}
	var b strings.Builder
	for i, r := range recs {
		cursor := "  "
		if i == m.histIdx {
			cursor = cursorStyle.Render("> ")
		}
		if m.history.IsHidden(r.ID) {
			// Only the dimmed occasion label survives for a hidden record.
			b.WriteString(cursor + faintStyle.Render(fmt.Sprintf("%4d  %-14s (hidden)", r.ID, r.Occasion)) + "\n")
			continue
		}
		b.WriteString(fmt.Sprintf("%s%4d  %-14s %-18s %s\n", cursor, r.ID, r.Occasion, r.Location.State, r.TargetDate))
	}
	return b.String()
}

func (m appModel) viewDetail() string {
	r := m.detailRec
	if r == nil {
		return faintStyle.Render("Nothing selected.")
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(r.Occasion) + "\n")
	b.WriteString(fmt.Sprintf("%s, %s — %s\n\n", r.Location.State, refdata.CountryName(r.Location.Country), r.TargetDate))
	b.WriteString(m.weatherCard(&r.Weather) + "\n")
	if r.GeneratedOutfit != nil {
		b.WriteString(boxStyle.Render(fmt.Sprintf("Top:    %s\nBottom: %s", r.GeneratedOutfit.TopDescription, r.GeneratedOutfit.BottomDescription)))
		if r.GeneratedOutfit.ImageURL != "" {
			b.WriteString("\n" + faintStyle.Render(r.GeneratedOutfit.ImageURL))
		}
	}
	return b.String()
}
