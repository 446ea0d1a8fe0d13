package source

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ResolveDocumentURL scans an HTML landing page for the first link to a PDF
// whose file name matches fileName and returns it as an absolute URL. The
// registry PDF has been renamed in the past while the landing page stayed put.
func (c *Client) ResolveDocumentURL(ctx context.Context, indexURL, fileName string) (string, error) {
	body, err := c.Get(ctx, indexURL)
	if err != nil {
		return "", err
	}
	base, err := url.Parse(indexURL)
	if err != nil {
		return "", err
	}
	return findDocumentLink(body, base, fileName)
}

func findDocumentLink(html []byte, base *url.URL, fileName string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", err
	}

	want := strings.ToLower(strings.TrimSpace(fileName))
	found := ""
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		name := strings.ToLower(path.Base(ref.Path))
		if !strings.HasSuffix(name, ".pdf") {
			return true
		}
		if want != "" && name != want {
			return true
		}
		found = base.ResolveReference(ref).String()
		return false
	})

	if found == "" {
		return "", fmt.Errorf("no link to %q on %s", fileName, base.String())
	}
	return found, nil
}
