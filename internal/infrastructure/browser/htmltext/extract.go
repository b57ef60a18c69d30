package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

type Config struct {
	TagsToRemove  []string
	BlockTags     []string
	MaxOutputSize int
}

// DefaultConfig drops markup that never carries readable copy.
var DefaultConfig = Config{
	TagsToRemove: []string{
		"script", "style", "noscript", "svg", "iframe",
		"link", "meta", "head", "title", "template", "canvas",
	},
	BlockTags: []string{
		"p", "div", "section", "article", "header", "footer", "main", "aside", "nav",
		"h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol", "tr", "table",
		"br", "hr", "blockquote", "pre", "figcaption", "form", "label", "button",
	},
	MaxOutputSize: 130_000,
}

// Extract returns the readable text of the document body with one block
// element per line.
func Extract(rawHTML string, cfg *Config) (string, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	root := findBodyNode(doc)
	if root == nil {
		root = doc
	}

	var sb strings.Builder
	collectText(root, cfg, &sb)

	lines := strings.Split(sb.String(), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}

	return truncate(strings.Join(kept, "\n"), cfg.MaxOutputSize), nil
}

func findBodyNode(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBodyNode(c); b != nil {
			return b
		}
	}
	return nil
}

func collectText(n *html.Node, cfg *Config, sb *strings.Builder) {
	switch n.Type {
	case html.CommentNode:
		return
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if isOneOf(n.Data, cfg.TagsToRemove...) {
			return
		}
	}

	block := n.Type == html.ElementNode && isOneOf(n.Data, cfg.BlockTags...)
	if block {
		sb.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, cfg, sb)
	}
	if block {
		sb.WriteString("\n")
	}
}

func truncate(s string, maxSize int) string {
	if maxSize > 0 && len(s) > maxSize {
		return s[:maxSize]
	}
	return s
}

func isOneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
