package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors match page chrome that never carries posting content.
var noiseSelectors = []string{
	"script", "style", "noscript", "iframe",
	"nav", "header", "footer", "aside",
	"[role=navigation]", "[role=banner]", "[role=contentinfo]",
}

// contentSelectors are tried in order; the first non-trivial match wins.
var contentSelectors = []string{"main", "article", "[role=main]", "body"}

// ExtractPostingText pulls the readable text of a job-posting page out of
// its HTML.
func ExtractPostingText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	for _, sel := range contentSelectors {
		text := CleanText(doc.Find(sel).First().Text())
		if len(text) >= MinContentLength {
			return text, nil
		}
	}
	return "", fmt.Errorf("no usable content in page")
}

// FetchJobPosting downloads a job-posting URL and extracts its text.
// Static HTML only; postings rendered entirely client-side come back
// empty and surface as a no-usable-content error.
func FetchJobPosting(ctx context.Context, url string) (string, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; resume-studio/1.0)")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch posting: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch posting: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxUploadBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read posting body: %w", err)
	}

	return ExtractPostingText(string(body))
}
