package tui

import (
	"fmt"

	"github.com/pders01/hnews/internal/hn"
)

// Canonical short status messages used across the app.
const (
	MsgLoading       = "Loading..."
	MsgNoResults     = "No results"
	MsgRenderingItem = "Rendering…"
	MsgUntitled      = "(untitled)"
	MsgNoLink        = "Nothing to open"
)

// MsgResultsCount reports the shown hits, and the server total when it is
// larger.
func MsgResultsCount(n, total int) string {
	if total > n {
		return fmt.Sprintf("%d of %d results", n, total)
	}
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}

func MsgFilterCount(shown, total int) string {
	return fmt.Sprintf("%d of %d", shown, total)
}

func MsgOpened(link string) string {
	return "Opened " + truncateMiddle(link, 60)
}

// MsgHitMeta is the one-line summary shown under a title in the list.
func MsgHitMeta(h hn.Hit) string {
	meta := fmt.Sprintf("%d points", h.Points)
	if h.Author != "" {
		meta += " by " + h.Author
	}
	meta += fmt.Sprintf(" • %d comments", h.NumComments)
	if !h.CreatedAt.IsZero() {
		meta += " • " + h.CreatedAt.Format("Jan 2, 2006")
	}
	return meta
}
