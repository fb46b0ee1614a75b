package main

import (
	"encoding/xml"
)

const rssFile = "feed.rss"

type rssDocument struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	ContentNS string     `xml:"xmlns:content,attr"`
	Channel   rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title string `xml:"title"`
	Link  string `xml:"link"`
	GUID  string `xml:"guid"`
	// The raw front matter date. RSS wants RFC 822 here.
	PubDate    string     `xml:"pubDate"`
	Categories []string   `xml:"category"`
	Content    rssContent `xml:"content:encoded"`
}

type rssContent struct {
	HTML string `xml:",cdata"`
}

func (s *Site) renderRSS(items posts) ([]byte, error) {
	doc := rssDocument{
		Version:   "2.0",
		ContentNS: "http://purl.org/rss/1.0/modules/content/",
		Channel: rssChannel{
			Title: siteTitle,
			Link:  s.conf.BaseURL,
			Items: make([]rssItem, 0, len(items)),
		},
	}

	for _, p := range items {
		link := postLink(s.conf.BaseURL, p.Slug)
		doc.Channel.Items = append(doc.Channel.Items, rssItem{
			Title:      p.Meta.Title,
			Link:       link,
			GUID:       link,
			PubDate:    p.Meta.Date,
			Categories: p.Meta.Tags,
			Content:    rssContent{HTML: p.Content},
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

// RenderRSS writes the RSS feed with the most recent posts, newest first.
func (s *Site) RenderRSS() error {
	b, err := s.renderRSS(s.posts.recent(maxRecentPosts))
	if err != nil {
		return renderError(rssFile, err)
	}
	return writeFile(s.outPath(rssFile), b)
}
