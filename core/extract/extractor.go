// Package extract implements the Extractor interface.
// Some diagnosis backends answer with an HTML fragment instead of Markdown,
// and a guide saved with --format html can be fed back in. The extractor:
//  1. Removes elements that never carry repair text (scripts, media, form
//     controls, hidden nodes, the rendered diagnosis summary)
//  2. Flattens rendered step cards back into "Step N: ..." paragraphs
//  3. Keeps the best content container (.repair-guide, <main>, <article>,
//     or <body>)
package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are removed before extraction.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"nav", "footer", "header",
	"img", "picture", "svg", "canvas", "video", "audio", "iframe",
	"form", "button", "input", "select", "textarea",
	"[hidden]", `[aria-hidden="true"]`,
	".guide-summary",
}

// containerSelectors are tried in order; the first present wins.
var containerSelectors = []string{".repair-guide", "main", "article", "body"}

// HTMLExtractor strips noise from HTML repair text.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract returns the inner HTML of the content container with noise
// removed. Fragments fall back to <body>, which the HTML parser always
// synthesizes.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	flattenSteps(doc)

	var content *goquery.Selection
	for _, sel := range containerSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			content = found.First()
			break
		}
	}
	if content == nil {
		return "", fmt.Errorf("no content container found in HTML")
	}

	result, err := content.Html()
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return strings.TrimSpace(result), nil
}

// flattenSteps turns each rendered step card (badge number plus body
// paragraph) into a single "<p>Step N: body</p>".
func flattenSteps(doc *goquery.Document) {
	doc.Find("div.step").Each(func(_ int, step *goquery.Selection) {
		n, err := strconv.Atoi(strings.TrimSpace(step.Find(".step-badge").Text()))
		if err != nil {
			return
		}
		body, err := step.Find(".step-body p").First().Html()
		if err != nil {
			return
		}
		step.ReplaceWithHtml(fmt.Sprintf("<p>Step %d: %s</p>", n, strings.TrimSpace(body)))
	})
}
