package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/hnews/internal/config"
	"github.com/pders01/hnews/internal/debuglog"
	"github.com/pders01/hnews/internal/hn"
)

type KeyHandler struct {
	app         *App
	config      *config.Config
	modifierKey string

	quitKey   string
	reloadKey string
	openKey   string
	filterKey string
	backKey   string
}

// NewKeyHandler resolves the configured bindings. Reload and open take the
// modifier; quit, filter and back are plain keys.
func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	modifierKey := cfg.Keys.Modifier + "+"
	b := cfg.Keys.Bindings
	return &KeyHandler{
		app:         app,
		config:      cfg,
		modifierKey: modifierKey,
		quitKey:     b.Quit,
		reloadKey:   modifierKey + b.Reload,
		openKey:     modifierKey + b.Open,
		filterKey:   b.Filter,
		backKey:     b.Back,
	}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c":
		return kh.app, tea.Quit
	case kh.reloadKey:
		return kh.app, kh.reload()
	}

	if kh.app.view == ViewDetail {
		return kh.handleDetailKeys(msg)
	}

	switch kh.app.focus {
	case focusInput:
		return kh.handleInputKeys(msg)
	case focusFilter:
		return kh.handleFilterKeys(msg)
	default:
		return kh.handleListKeys(msg)
	}
}

// reload re-issues the current request URL.
func (kh *KeyHandler) reload() tea.Cmd {
	debuglog.Infof("reload requested for %s", kh.app.requestURL)
	return kh.app.startFetch(kh.app.requestURL)
}

func (kh *KeyHandler) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return kh.submit()
	case "tab", "down":
		if len(kh.app.list.Items()) > 0 {
			kh.focusList()
		}
		return kh.app, nil
	}

	var cmd tea.Cmd
	kh.app.searchInput, cmd = kh.app.searchInput.Update(msg)
	return kh.app, cmd
}

// submit takes the draft as the new query, clears the input and fetches.
// The draft is used as typed; an empty draft is a valid query.
func (kh *KeyHandler) submit() (tea.Model, tea.Cmd) {
	query := kh.app.searchInput.Value()
	kh.app.searchInput.Reset()
	kh.app.notice = notice{}
	return kh.app, kh.app.startFetch(kh.app.client.SearchURL(query))
}

func (kh *KeyHandler) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case kh.quitKey:
		return kh.app, tea.Quit
	case "tab", "shift+tab", kh.backKey:
		kh.focusInput()
		return kh.app, nil
	case "up":
		if kh.app.list.Index() == 0 {
			kh.focusInput()
			return kh.app, nil
		}
	case kh.filterKey:
		kh.app.focus = focusFilter
		kh.app.filterInput.Focus()
		return kh.app, nil
	case kh.openKey:
		if hit, ok := kh.app.selectedHit(); ok {
			return kh.app, kh.app.openLink(hit.Link())
		}
		return kh.app, nil
	case "enter":
		return kh.openDetail()
	}

	var cmd tea.Cmd
	kh.app.list, cmd = kh.app.list.Update(msg)
	return kh.app, cmd
}

func (kh *KeyHandler) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case kh.backKey:
		kh.app.clearFilter()
		kh.app.notice = notice{}
		kh.app.focus = focusList
		return kh.app, nil
	case "enter", "tab", "down":
		kh.app.filterInput.Blur()
		kh.app.focus = focusList
		return kh.app, nil
	}

	prev := kh.app.filterInput.Value()
	var cmd tea.Cmd
	kh.app.filterInput, cmd = kh.app.filterInput.Update(msg)
	if kh.app.filterInput.Value() != prev {
		kh.app.runFilter()
	}
	return kh.app, cmd
}

func (kh *KeyHandler) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case kh.backKey:
		kh.app.view = ViewResults
		kh.app.detail = hn.Hit{}
		kh.app.loadingDetail = false
		return kh.app, nil
	case kh.quitKey:
		return kh.app, tea.Quit
	case kh.openKey:
		// The displayed hit, not the list selection: a reload may have
		// replaced the rows underneath.
		return kh.app, kh.app.openLink(kh.app.detail.Link())
	}

	var cmd tea.Cmd
	kh.app.viewport, cmd = kh.app.viewport.Update(msg)
	return kh.app, cmd
}

func (kh *KeyHandler) openDetail() (tea.Model, tea.Cmd) {
	hit, ok := kh.app.selectedHit()
	if !ok {
		return kh.app, nil
	}
	kh.app.view = ViewDetail
	kh.app.detail = hit
	kh.app.loadingDetail = true
	kh.app.viewport.SetContent("")
	return kh.app, tea.Batch(kh.app.renderDetail(hit), kh.app.spinner.Tick)
}

func (kh *KeyHandler) focusInput() {
	kh.app.focus = focusInput
	kh.app.filterInput.Blur()
	kh.app.searchInput.Focus()
}

func (kh *KeyHandler) focusList() {
	kh.app.focus = focusList
	kh.app.searchInput.Blur()
}

// GetHelpForCurrentView returns the key hints for the status bar.
func (kh *KeyHandler) GetHelpForCurrentView() []string {
	if kh.app.view == ViewDetail {
		return []string{kh.openKey + ": open", kh.backKey + ": back", kh.quitKey + ": quit"}
	}

	switch kh.app.focus {
	case focusInput:
		return []string{"enter: search", "tab: results", kh.reloadKey + ": reload"}
	case focusFilter:
		return []string{"type to filter", "enter: keep", kh.backKey + ": clear"}
	default:
		return []string{
			"enter: details",
			kh.openKey + ": open",
			kh.filterKey + ": filter",
			kh.reloadKey + ": reload",
			kh.quitKey + ": quit",
		}
	}
}
