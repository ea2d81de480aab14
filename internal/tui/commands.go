package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/hnews/internal/debuglog"
	"github.com/pders01/hnews/internal/filter"
	"github.com/pders01/hnews/internal/hn"
)

type hitsLoadedMsg struct {
	seq  uint64
	url  string
	resp *hn.Response
	err  error
}

type detailRenderedMsg struct {
	key     string
	content string
}

type statusMsg struct {
	text string
	kind StatusKind
}

// startFetch issues a request for rawURL under a fresh sequence number.
// Earlier requests still in flight are not cancelled; their responses are
// dropped on arrival.
func (a *App) startFetch(rawURL string) tea.Cmd {
	a.seq++
	a.requestURL = rawURL
	a.loading = true

	debuglog.WithFields(debuglog.Fields{"url": rawURL, "seq": a.seq}).Debugf("fetch started")

	return tea.Batch(a.fetchHits(a.seq, rawURL), a.spinner.Tick)
}

func (a *App) fetchHits(seq uint64, rawURL string) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		resp, err := client.Fetch(context.Background(), rawURL)
		return hitsLoadedMsg{seq: seq, url: rawURL, resp: resp, err: err}
	}
}

// applyHits folds a fetch result into state. Only the response to the most
// recently issued request is applied.
func (a *App) applyHits(msg hitsLoadedMsg) {
	log := debuglog.WithFields(debuglog.Fields{"url": msg.url, "seq": msg.seq})

	if msg.seq != a.seq {
		log.Debugf("dropping stale response, latest is %d", a.seq)
		return
	}

	a.loading = false

	if msg.err != nil {
		log.Errorf("fetch failed: %v", msg.err)
		a.lastErr = msg.err
		return
	}

	a.lastErr = nil
	a.hits = msg.resp.Hits
	log.Debugf("applied %d hits", len(a.hits))

	if err := a.matcher.Load(a.hits); err != nil {
		log.Warnf("indexing hits for filter: %v", err)
	} else if dc, ok := a.matcher.(filter.DocCounter); ok {
		if n, err := dc.DocCount(); err == nil {
			log.Debugf("filter index holds %d docs", n)
		}
	}

	a.filterInput.Reset()
	a.showHits(a.hits)

	if len(a.hits) == 0 {
		a.setNotice(MsgNoResults, StatusWarn)
	} else {
		a.setNotice(MsgResultsCount(len(a.hits), msg.resp.NbHits), StatusInfo)
	}
}

// runFilter narrows the visible rows to hits matching the filter input.
// ResultList itself is left untouched.
func (a *App) runFilter() {
	query := a.filterInput.Value()
	matched, err := a.matcher.Match(query, 0)
	if err != nil {
		debuglog.Warnf("filter %q: %v", query, err)
		a.setNotice(err.Error(), StatusError)
		return
	}
	a.showHits(matched)
	if strings.TrimSpace(query) != "" {
		a.setNotice(MsgFilterCount(len(matched), len(a.hits)), StatusInfo)
	}
}

func (a *App) clearFilter() {
	a.filterInput.Reset()
	a.filterInput.Blur()
	a.showHits(a.hits)
}

// renderDetail resolves the renderer on the calling goroutine; the returned
// command touches no App state besides the render lock.
func (a *App) renderDetail(hit hn.Hit) tea.Cmd {
	r, err := a.getRenderer()
	mu := &a.renderMu
	return func() tea.Msg {
		if err != nil {
			return detailRenderedMsg{key: hit.Key, content: "Error initializing renderer: " + err.Error()}
		}

		mu.Lock()
		rendered, err := r.Render(detailMarkdown(hit))
		mu.Unlock()
		if err != nil {
			return detailRenderedMsg{key: hit.Key, content: fmt.Sprintf("Failed to render item: %v\n\nPress Esc to go back.", err)}
		}
		return detailRenderedMsg{key: hit.Key, content: rendered}
	}
}

// detailMarkdown lays out a hit's metadata for glamour.
func detailMarkdown(hit hn.Hit) string {
	var b strings.Builder

	title := hit.DisplayTitle()
	if title == "" {
		title = MsgUntitled
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "*%s*\n\n", MsgHitMeta(hit))

	if link := hit.Link(); link != "" && link != hit.ItemURL() {
		fmt.Fprintf(&b, "[Read Online](%s)\n\n", link)
	}
	if item := hit.ItemURL(); item != "" {
		fmt.Fprintf(&b, "[Discussion](%s)\n\n", item)
	}

	b.WriteString("---\n\n")
	if !hit.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "- **Posted:** %s\n", hit.CreatedAt.UTC().Format("Mon, 02 Jan 2006 15:04 MST"))
	}
	if hit.Author != "" {
		fmt.Fprintf(&b, "- **Author:** %s\n", hit.Author)
	}
	fmt.Fprintf(&b, "- **Points:** %d\n", hit.Points)
	fmt.Fprintf(&b, "- **Comments:** %d\n", hit.NumComments)

	body, err := hit.BodyMarkdown()
	if err != nil {
		debuglog.WithFields(debuglog.Fields{"key": hit.Key}).Warnf("%v", err)
	}
	if body != "" {
		fmt.Fprintf(&b, "\n---\n\n%s\n", body)
	}

	return b.String()
}

func (a *App) openLink(link string) tea.Cmd {
	launcher := a.launcher
	return func() tea.Msg {
		if link == "" {
			return statusMsg{text: MsgNoLink, kind: StatusWarn}
		}
		if err := launcher.Open(link); err != nil {
			err = wrapErr("open "+truncateMiddle(link, 40), err)
			debuglog.Warnf("%v", err)
			return statusMsg{text: err.Error(), kind: StatusError}
		}
		return statusMsg{text: MsgOpened(link), kind: StatusSuccess}
	}
}
