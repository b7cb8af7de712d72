// fetch-titles downloads competitor pages and extracts their title and meta
// description, for eyeballing how the competition titles a keyword. Output
// is JSONL, one page per line.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// PageTitle is the extracted head data for one competitor page.
type PageTitle struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FetchedAt   time.Time `json:"fetched_at"`
}

func main() {
	out := flag.String("out", "testdata/titles/pages.jsonl", "Output file")
	flag.Parse()

	urls := flag.Args()
	if len(urls) == 0 {
		log.Fatal("usage: fetch-titles [--out file] <url> [url...]")
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatal("Failed to create output directory:", err)
	}

	outFile, err := os.Create(*out)
	if err != nil {
		log.Fatal("Failed to create output file:", err)
	}
	defer outFile.Close()

	encoder := json.NewEncoder(outFile)
	client := &http.Client{Timeout: 10 * time.Second}
	fetched := 0

	for _, url := range urls {
		page, err := fetchPage(client, url)
		if err != nil {
			log.Printf("Failed to fetch %s: %v", url, err)
			continue
		}

		if err := encoder.Encode(page); err != nil {
			log.Printf("Failed to encode %s: %v", url, err)
			continue
		}
		fetched++

		// Be nice to the sites
		time.Sleep(200 * time.Millisecond)
	}

	log.Printf("✓ Fetched %d/%d pages to %s", fetched, len(urls), *out)
}

func fetchPage(client *http.Client, url string) (*PageTitle, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	page := &PageTitle{URL: url, FetchedAt: time.Now()}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if page.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					page.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				var name, content string
				for _, attr := range n.Attr {
					switch attr.Key {
					case "name":
						name = strings.ToLower(attr.Val)
					case "content":
						content = attr.Val
					}
				}
				if name == "description" && page.Description == "" {
					page.Description = strings.TrimSpace(content)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return page, nil
}
