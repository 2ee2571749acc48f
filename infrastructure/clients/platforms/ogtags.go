package platforms

import (
	"bytes"

	"golang.org/x/net/html"

	"music-contest/domain/validation"
)

// scrapedTitleLimit caps og:title values; provider pages occasionally stuff
// whole track descriptions into the tag.
const scrapedTitleLimit = 200

// scrapedTitle picks the og title or the handler's fallback, capped to a sane
// display length.
func scrapedTitle(og openGraph, fallback string) string {
	if og.Title == "" {
		return fallback
	}
	return validation.TruncateText(og.Title, scrapedTitleLimit, "...")
}

// openGraph holds the handful of tags the handlers scrape from provider pages.
type openGraph struct {
	Title    string
	Image    string
	SiteName string
	Author   string // from <link itemprop="name"> (YouTube's channel name)
}

// parseOpenGraph walks the document head for og: meta tags. It tolerates any
// malformed markup the tokenizer itself tolerates and simply returns what it
// found; missing tags are empty strings.
func parseOpenGraph(body []byte) openGraph {
	var og openGraph

	tokenizer := html.NewTokenizer(bytes.NewReader(body))
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			return og
		}
		if tokenType != html.StartTagToken && tokenType != html.SelfClosingTagToken {
			continue
		}

		token := tokenizer.Token()
		switch token.Data {
		case "meta":
			var property, content string
			for _, attr := range token.Attr {
				switch attr.Key {
				case "property", "name":
					property = attr.Val
				case "content":
					content = attr.Val
				}
			}
			switch property {
			case "og:title":
				og.Title = content
			case "og:image":
				og.Image = content
			case "og:site_name":
				og.SiteName = content
			}
		case "link":
			var itemprop, content string
			for _, attr := range token.Attr {
				switch attr.Key {
				case "itemprop":
					itemprop = attr.Val
				case "content":
					content = attr.Val
				}
			}
			if itemprop == "name" && content != "" {
				og.Author = content
			}
		case "body":
			// og tags live in the head; no point tokenizing the rest.
			return og
		}
	}
}
