package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/atinyakov/notekeeper/internal/common"
	"github.com/atinyakov/notekeeper/internal/models"
	"github.com/atinyakov/notekeeper/internal/validation"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NoResource is stored as the content when a page cannot be fetched or has
// no paragraph text.
const NoResource = "There is no resource"

const (
	summaryParagraphs = 2
	maxPageBytes      = 2 << 20
)

// WebSearchCreator stores a web-search entry for an owner.
type WebSearchCreator interface {
	Create(ctx context.Context, ownerID string, v *models.WebSearch) (*models.WebSearch, error)
}

// WebSearchExtractor saves a page as a web-search entry whose content is
// the page's opening paragraphs.
type WebSearchExtractor struct {
	client   *http.Client
	searches WebSearchCreator
	log      *zap.Logger
}

// NewWebSearchExtractor returns an extractor that fetches pages with client
// and stores the results through searches.
func NewWebSearchExtractor(client *http.Client, searches WebSearchCreator, log *zap.Logger) *WebSearchExtractor {
	return &WebSearchExtractor{client: client, searches: searches, log: log}
}

// Extract fetches in.URL and stores a web-search entry owned by ownerID.
// A URL without a scheme is fetched over https. Fetch and parse failures
// are logged and stored with NoResource as the content.
func (e *WebSearchExtractor) Extract(ctx context.Context, ownerID string, in models.WebSearchExtractInput) (*models.WebSearch, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthenticated
	}
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)
	if in.URL != "" && !strings.HasPrefix(in.URL, "http") {
		in.URL = "https://" + in.URL
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	content, err := e.summarize(ctx, in.URL)
	if err != nil {
		e.log.Warn("failed to scrape page", zap.String("url", in.URL), zap.Error(err))
		content = NoResource
	}

	return e.searches.Create(ctx, ownerID, &models.WebSearch{
		Title:         in.Title,
		Content:       content,
		ReferenceLink: in.URL,
	})
}

func (e *WebSearchExtractor) summarize(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	content := strings.TrimSpace(strings.Join(paragraphs(doc, summaryParagraphs), " "))
	if content == "" {
		return NoResource, nil
	}
	return content, nil
}

// paragraphs returns the text of the first limit <p> elements in document
// order, with whitespace collapsed.
func paragraphs(root *html.Node, limit int) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(out) >= limit {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.P {
			out = append(out, strings.Join(strings.Fields(text(n)), " "))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
		case n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style):
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
