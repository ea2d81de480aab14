package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/hnews/internal/config"
	"github.com/pders01/hnews/internal/filter"
	"github.com/pders01/hnews/internal/hn"
	"github.com/pders01/hnews/internal/opener"
)

// Lines taken by everything on the results view except the list.
const resultsChrome = 10

type linkOpener interface {
	Open(link string) error
}

// App is the search view: it owns the query draft, the request URL, the
// current result list and the loading/error state.
type App struct {
	config     *config.Config
	client     *hn.Client
	launcher   linkOpener
	matcher    filter.Matcher
	keyHandler *KeyHandler

	searchInput textinput.Model
	filterInput textinput.Model
	list        list.Model
	viewport    viewport.Model
	spinner     spinner.Model

	view  View
	focus focus

	requestURL string
	hits       []hn.Hit
	loading    bool
	seq        uint64
	lastErr    error
	notice     notice

	detail        hn.Hit
	loadingDetail bool

	width           int
	height          int
	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
	// renderMu serializes Render calls on the shared glamour renderer.
	renderMu sync.Mutex
}

func NewApp(cfg *config.Config) *App {
	ApplyTheme(cfg.UI.Colors)

	client := hn.NewClient(cfg)

	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	si := textinput.New()
	si.Placeholder = cfg.UI.Placeholder
	si.Prompt = "› "
	si.SetValue(cfg.API.DefaultQuery)
	si.Focus()

	fi := textinput.New()
	fi.Placeholder = "filter these results..."
	fi.Prompt = "/ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(PrimaryColor)

	app := &App{
		config:      cfg,
		client:      client,
		launcher:    opener.NewLauncher(cfg),
		matcher:     filter.New(),
		searchInput: si,
		filterInput: fi,
		list:        l,
		viewport:    viewport.New(0, 0),
		spinner:     sp,
		view:        ViewResults,
		focus:       focusInput,
		requestURL:  client.SearchURL(cfg.API.DefaultQuery),
	}

	app.keyHandler = NewKeyHandler(app, cfg)

	return app
}

// Init fetches the default query once.
func (a *App) Init() tea.Cmd {
	return a.startFetch(a.requestURL)
}

// RequestURL is the URL of the most recently issued request.
func (a *App) RequestURL() string { return a.requestURL }

// Hits returns the current result list in API order.
func (a *App) Hits() []hn.Hit { return a.hits }

func (a *App) Loading() bool { return a.loading }

func (a *App) LastError() error { return a.lastErr }

// Close releases the filter index.
func (a *App) Close() error {
	return a.matcher.Close()
}

// getRenderer returns the cached renderer for the current width. Call it
// from Update only.
func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := (a.width * 9) / 10
	if wordWrapWidth > 100 {
		wordWrapWidth = 100
	}
	if wordWrapWidth < 40 {
		wordWrapWidth = 40
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case hitsLoadedMsg:
		a.applyHits(msg)
		return a, nil

	case detailRenderedMsg:
		if a.view == ViewDetail && msg.key == a.detail.Key {
			a.viewport.SetContent(msg.content)
			a.viewport.GotoTop()
			a.loadingDetail = false
		}
		return a, nil

	case statusMsg:
		a.setNotice(msg.text, msg.kind)
		return a, nil

	case spinner.TickMsg:
		if !a.loading && !a.loadingDetail {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.view {
	case ViewDetail:
		if _, ok := msg.(tea.MouseMsg); ok {
			a.viewport, cmd = a.viewport.Update(msg)
		}
	case ViewResults:
		switch a.focus {
		case focusInput:
			a.searchInput, cmd = a.searchInput.Update(msg)
		case focusFilter:
			a.filterInput, cmd = a.filterInput.Update(msg)
		default:
			a.list, cmd = a.list.Update(msg)
		}
	}
	return a, cmd
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	listHeight := height - resultsChrome
	if listHeight < 3 {
		listHeight = 3
	}
	a.list.SetSize(width, listHeight)

	a.viewport.Width = width
	a.viewport.Height = height - 3

	inputWidth := width - 24
	if inputWidth < 10 {
		inputWidth = 10
	}
	a.searchInput.Width = inputWidth
	a.filterInput.Width = inputWidth
}

func (a *App) setNotice(text string, kind StatusKind) {
	a.notice = notice{text: text, kind: kind}
}

// showHits replaces the rows with hits. The selected row follows its hit
// when the hit is still present.
func (a *App) showHits(hits []hn.Hit) {
	selected := ""
	if it, ok := a.list.SelectedItem().(hitItem); ok {
		selected = it.hit.Key
	}

	items := make([]list.Item, len(hits))
	index := 0
	for i, h := range hits {
		items[i] = hitItem{hit: h}
		if h.Key == selected {
			index = i
		}
	}
	a.list.SetItems(items)
	if len(items) > 0 {
		a.list.Select(index)
	}
}

func (a *App) selectedHit() (hn.Hit, bool) {
	it, ok := a.list.SelectedItem().(hitItem)
	if !ok {
		return hn.Hit{}, false
	}
	return it.hit, true
}

func (a *App) View() string {
	var content string

	switch a.view {
	case ViewDetail:
		content = a.viewDetail()
	default:
		content = a.viewResults()
	}

	status := a.statusBar()
	separatorWidth := a.width - 2
	if separatorWidth < 0 {
		separatorWidth = 0
	}
	separator := SeparatorStyle.Render("─" + strings.Repeat("─", separatorWidth))

	return lipgloss.JoinVertical(lipgloss.Top, content, separator, status)
}

func (a *App) viewResults() string {
	inputWidth := a.searchInput.Width
	if inputWidth <= 0 {
		inputWidth = 40
	}

	form := lipgloss.JoinHorizontal(
		lipgloss.Top,
		renderInputFrame(a.searchInput.View(), a.focus == focusInput, inputWidth),
		" ",
		renderButton("Search", a.focus == focusInput),
	)

	loadingLine := ""
	if a.loading {
		loadingLine = a.spinner.View() + " " + MsgLoading
	}

	rows := []string{
		renderHeader(Heading, "", a.width),
		loadingLine,
		form,
	}

	if a.focus == focusFilter || a.filterInput.Value() != "" {
		rows = append(rows, a.filterInput.View())
	} else {
		rows = append(rows, "")
	}

	if len(a.list.Items()) == 0 && !a.loading {
		rows = append(rows, GetCompactBanner(MsgNoResults+" • type a query and press enter"))
	} else {
		rows = append(rows, a.list.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *App) viewDetail() string {
	if a.loadingDetail {
		height := a.height - 3
		if height < 1 {
			height = 1
		}
		return renderCentered(a.width, height, a.spinner.View()+" "+renderMuted(MsgRenderingItem))
	}
	return a.viewport.View()
}

func (a *App) statusBar() string {
	style := StatusBarStyle
	if a.width > 0 {
		style = style.Width(a.width)
	}

	if a.lastErr != nil {
		text := StatusErrorStyle.Render("✗ "+a.lastErr.Error()) +
			renderMuted(" • "+a.keyHandler.reloadKey+": reload")
		return style.Render(text)
	}

	parts := []string{}
	if a.notice.text != "" {
		parts = append(parts, a.notice.render())
	}
	if help := a.keyHandler.GetHelpForCurrentView(); len(help) > 0 {
		parts = append(parts, renderHelp(strings.Join(help, " • ")))
	}
	return style.Render(strings.Join(parts, renderMuted(" • ")))
}

type hitItem struct {
	hit hn.Hit
}

func (i hitItem) Title() string {
	if t := i.hit.DisplayTitle(); t != "" {
		return t
	}
	return MsgUntitled
}

func (i hitItem) Description() string { return MsgHitMeta(i.hit) }
func (i hitItem) FilterValue() string { return i.hit.DisplayTitle() }
