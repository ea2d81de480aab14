package hn

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// ItemBaseURL is the Hacker News discussion page for an item id.
const ItemBaseURL = "https://news.ycombinator.com/item?id="

// Hit is one entry of the search response. Only Title is needed to render a
// row; the remaining fields feed the detail view and the local filter.
type Hit struct {
	ObjectID    string    `json:"objectID"`
	Title       string    `json:"title"`
	StoryTitle  string    `json:"story_title"`
	URL         string    `json:"url"`
	StoryURL    string    `json:"story_url"`
	Author      string    `json:"author"`
	Points      int       `json:"points"`
	NumComments int       `json:"num_comments"`
	StoryID     int       `json:"story_id"`
	StoryText   string    `json:"story_text"`
	CommentText string    `json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`

	// Key identifies the hit within a result list. Set by the client.
	Key string `json:"-"`
}

// Response is the subset of the search API payload the application uses.
type Response struct {
	Hits   []Hit
	// NbHits is the total number of matches on the server, of which Hits
	// is the first page.
	NbHits int
}

type rawResponse struct {
	Hits   *[]Hit `json:"hits"`
	NbHits int    `json:"nbHits"`
}

// DisplayTitle returns the story title, falling back to the parent story's
// title for comment hits. Empty when neither is present.
func (h Hit) DisplayTitle() string {
	if h.Title != "" {
		return h.Title
	}
	return h.StoryTitle
}

// Link returns the external URL of the hit, or its discussion page when the
// hit has none (Ask HN, comments).
func (h Hit) Link() string {
	if h.URL != "" {
		return h.URL
	}
	if h.StoryURL != "" {
		return h.StoryURL
	}
	return h.ItemURL()
}

// ItemURL returns the Hacker News discussion page, or "" without an id.
func (h Hit) ItemURL() string {
	if h.ObjectID != "" {
		return ItemBaseURL + h.ObjectID
	}
	if h.StoryID > 0 {
		return ItemBaseURL + strconv.Itoa(h.StoryID)
	}
	return ""
}

// BodyMarkdown converts the HTML body of the hit (Ask HN text or comment) to
// Markdown. Empty when the hit has no body.
func (h Hit) BodyMarkdown() (string, error) {
	body := h.StoryText
	if body == "" {
		body = h.CommentText
	}
	if strings.TrimSpace(body) == "" {
		return "", nil
	}
	md, err := htmltomarkdown.ConvertString(body)
	if err != nil {
		return "", fmt.Errorf("converting body: %w", err)
	}
	return strings.TrimSpace(md), nil
}

// assignKeys gives every hit a stable Key: the server object id when present,
// otherwise a digest of the title and the position at fetch time.
func assignKeys(hits []Hit) {
	for i := range hits {
		if hits[i].ObjectID != "" {
			hits[i].Key = hits[i].ObjectID
			continue
		}
		hits[i].Key = fallbackKey(hits[i].DisplayTitle(), i)
	}
}

func fallbackKey(title string, position int) string {
	sum := sha256.Sum256([]byte(strconv.Itoa(position) + "\x00" + title))
	return "h:" + hex.EncodeToString(sum[:8])
}
