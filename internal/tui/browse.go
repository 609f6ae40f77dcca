// ABOUTME: Interactive TUI for browsing, filtering, and editing the post list.
// ABOUTME: Bubbletea model over a posts.Store with search, tag, sort, and add form.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/postboard/internal/models"
	"github.com/2389-research/postboard/internal/posts"
)

// Mode is the current input mode of the browser.
type Mode int

const (
	ModeList Mode = iota
	ModeSearch
	ModeAdd
)

// Add form fields.
const (
	fieldTitle = iota
	fieldContent
	fieldTags
	fieldCount
)

// SeedReloadedMsg carries a freshly loaded seed collection.
type SeedReloadedMsg struct {
	Posts []models.Post
}

// storeHolder shares the store across bubbletea model copies so a reload
// seen by one copy is seen by all.
type storeHolder struct {
	store *posts.Store
}

// BrowseModel is the bubbletea model for the post browser.
type BrowseModel struct {
	mode      Mode
	holder    *storeHolder
	storeOpts []posts.Option
	cursor    int
	search    textinput.Model
	form      [fieldCount]textinput.Model
	field     int
	status    string
	logger    *slog.Logger
	quitting  bool
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	stepStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	favoriteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewBrowseModel creates a browser over store. storeOpts are reused when a
// seed reload rebuilds the store.
func NewBrowseModel(store *posts.Store, logger *slog.Logger, storeOpts ...posts.Option) BrowseModel {
	if logger == nil {
		logger = slog.Default()
	}

	search := textinput.New()
	search.Placeholder = "search title, content, tags"
	search.Prompt = "/ "
	search.Width = 50
	search.SetValue(store.SearchQuery())

	titleInput := textinput.New()
	titleInput.Placeholder = "title"
	titleInput.Width = 50

	contentInput := textinput.New()
	contentInput.Placeholder = "content"
	contentInput.Width = 50

	tagsInput := textinput.New()
	tagsInput.Placeholder = "comma, separated, tags"
	tagsInput.Width = 50

	return BrowseModel{
		mode:      ModeList,
		holder:    &storeHolder{store: store},
		storeOpts: storeOpts,
		search:    search,
		form:      [fieldCount]textinput.Model{titleInput, contentInput, tagsInput},
		logger:    logger,
	}
}

// Store returns the store currently backing the browser.
func (m BrowseModel) Store() *posts.Store {
	return m.holder.store
}

// Mode returns the current input mode.
func (m BrowseModel) Mode() Mode {
	return m.mode
}

// Cursor returns the index of the highlighted post in the filtered view.
func (m BrowseModel) Cursor() int {
	return m.cursor
}

// Init implements tea.Model.
func (m BrowseModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.mode {
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeAdd:
			return m.updateAdd(msg)
		default:
			return m.updateList(msg)
		}

	case SeedReloadedMsg:
		q := m.holder.store.Query()
		m.holder.store = posts.New(msg.Posts, m.storeOpts...)
		m.holder.store.SetQuery(q)
		m.status = fmt.Sprintf("reloaded %d posts", len(msg.Posts))
		m.logger.Debug("tui: seed reloaded", "count", len(msg.Posts))
		m.clampCursor()
		return m, nil
	}

	return m, nil
}

func (m BrowseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	store := m.holder.store
	m.status = ""

	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "/":
		m.mode = ModeSearch
		cmd := m.search.Focus()
		return m, cmd
	case "t":
		store.SetSelectedTag(nextTag(store.Tags(), store.SelectedTag()))
		m.cursor = 0
	case "l":
		store.ToggleSortByLikes()
	case "d":
		store.ToggleSortByDate()
	case "j", "down":
		m.cursor++
	case "k", "up":
		m.cursor--
	case "+":
		if p, ok := m.current(); ok {
			store.Like(p.ID)
		}
	case "f":
		if p, ok := m.current(); ok {
			store.ToggleFavorite(p.ID)
		}
	case "x":
		if p, ok := m.current(); ok {
			store.DeletePost(p.ID)
			m.status = fmt.Sprintf("deleted #%d", p.ID)
		}
	case "a":
		m.mode = ModeAdd
		m.field = fieldTitle
		for i := range m.form {
			m.form[i].SetValue("")
			m.form[i].Blur()
		}
		cmd := m.form[fieldTitle].Focus()
		return m, cmd
	}

	m.clampCursor()
	return m, nil
}

func (m BrowseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEscape:
		m.search.Blur()
		m.mode = ModeList
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.holder.store.SetSearchQuery(m.search.Value())
	m.cursor = 0
	m.clampCursor()
	return m, cmd
}

func (m BrowseModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.closeForm()
		return m, nil
	case tea.KeyTab, tea.KeyEnter:
		if m.field < fieldTags {
			m.form[m.field].Blur()
			m.field++
			cmd := m.form[m.field].Focus()
			return m, cmd
		}
		if msg.Type == tea.KeyEnter {
			in := models.NewPostInput{
				Title:   m.form[fieldTitle].Value(),
				Content: m.form[fieldContent].Value(),
				Tags:    m.form[fieldTags].Value(),
			}
			if post, ok := m.holder.store.AddPost(in); ok {
				m.status = fmt.Sprintf("added #%d", post.ID)
			}
			m.closeForm()
			m.clampCursor()
			return m, nil
		}
		return m, nil
	case tea.KeyShiftTab:
		if m.field > fieldTitle {
			m.form[m.field].Blur()
			m.field--
			cmd := m.form[m.field].Focus()
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.form[m.field], cmd = m.form[m.field].Update(msg)
	return m, cmd
}

func (m *BrowseModel) closeForm() {
	for i := range m.form {
		m.form[i].Blur()
	}
	m.mode = ModeList
}

func (m *BrowseModel) clampCursor() {
	n := len(m.holder.store.Filtered())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m BrowseModel) current() (models.Post, bool) {
	view := m.holder.store.Filtered()
	if m.cursor < 0 || m.cursor >= len(view) {
		return models.Post{}, false
	}
	return view[m.cursor], true
}

// nextTag cycles through no filter and each non-empty tag in order.
func nextTag(tags []string, current string) string {
	var choices []string
	for _, t := range tags {
		if t != "" {
			choices = append(choices, t)
		}
	}
	if len(choices) == 0 {
		return ""
	}
	if current == "" {
		return choices[0]
	}
	for i, t := range choices {
		if t == current && i+1 < len(choices) {
			return choices[i+1]
		}
	}
	return ""
}

// View implements tea.Model.
func (m BrowseModel) View() string {
	if m.quitting {
		return ""
	}

	store := m.holder.store
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   POSTBOARD"))
	b.WriteString(titleStyle.Render(fmt.Sprintf(" - %d posts", store.Len())))
	b.WriteString("\n")

	tag := store.SelectedTag()
	if tag == "" {
		tag = "all"
	}
	b.WriteString(stepStyle.Render(fmt.Sprintf("sort: %s  tag: %s  search: %q",
		store.SortMode(), tag, store.SearchQuery())))
	b.WriteString("\n\n")

	switch m.mode {
	case ModeSearch:
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	case ModeAdd:
		b.WriteString(stepStyle.Render("New post"))
		b.WriteString("\n")
		for i := range m.form {
			b.WriteString(m.form[i].View())
			b.WriteString("\n")
		}
		b.WriteString(promptStyle.Render("[tab] next  [enter] submit  [esc] cancel"))
		b.WriteString("\n")
		return b.String()
	}

	view := store.Filtered()
	if len(view) == 0 {
		b.WriteString(promptStyle.Render("  No posts match."))
		b.WriteString("\n")
	}
	for i, p := range view {
		b.WriteString(renderRow(p, i == m.cursor))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(successStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(promptStyle.Render("[/] search  [t]ag  [l]ikes  [d]ate  [+] like  [f]avorite  [x] delete  [a]dd  [q]uit"))
	b.WriteString("\n")
	return b.String()
}

func renderRow(p models.Post, selected bool) string {
	marker := "  "
	title := p.Title
	if selected {
		marker = "> "
		title = selectedStyle.Render(title)
	}
	star := " "
	if p.IsFavorite {
		star = favoriteStyle.Render("*")
	}

	row := fmt.Sprintf("%s%s #%-3d %s %s", marker, star, p.ID, title,
		promptStyle.Render(fmt.Sprintf("(%d likes)", p.Likes)))
	if len(p.Tags) > 0 {
		row += " " + tagStyle.Render("["+strings.Join(p.Tags, ", ")+"]")
	}
	return row
}
