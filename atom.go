package main

import (
	"log/slog"
	"net/url"
	"time"

	atom "github.com/thomas11/atomgenerator"
)

const atomFile = "feed.atom"

var atomDateLayouts = []string{dateLayout, time.RFC3339}

func parseFeedDate(date string) (time.Time, bool) {
	for _, layout := range atomDateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func absoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// buildAtomFeed assembles the Atom feed from the same posts as the RSS feed,
// or returns nil when none should be written. Atom needs real timestamps and
// absolute ids, so the feed is skipped when a date does not parse or the base
// URL is relative. The feed's own date is that of the newest post to keep
// output reproducible.
func (s *Site) buildAtomFeed() *atom.Feed {
	recent := s.posts.recent(maxRecentPosts)
	if len(recent) == 0 {
		s.logger.Debug("No posts, skipping Atom feed")
		return nil
	}
	if !absoluteURL(s.conf.BaseURL) {
		s.logger.Warn("Skipping Atom feed, base URL has no host",
			slog.String("base_url", s.conf.BaseURL))
		return nil
	}

	feed := &atom.Feed{
		Title: siteTitle,
		Link:  s.conf.BaseURL,
	}
	author := s.conf.Author
	if author == "" {
		author = siteTitle
	}
	feed.AddAuthor(atom.Author{
		Name: author,
		Uri:  s.conf.BaseURL,
	})

	for _, p := range recent {
		date, ok := parseFeedDate(p.Meta.Date)
		if !ok {
			s.logger.Warn("Skipping Atom feed, date is not a calendar date",
				slog.String("post", p.Source),
				slog.String("date", p.Meta.Date))
			return nil
		}
		if date.After(feed.PubDate) {
			feed.PubDate = date
		}
		feed.AddEntry(s.entryForPost(p, date))
	}

	if errs := feed.Validate(); len(errs) > 0 {
		for _, e := range errs {
			s.logger.Warn("Atom feed is not valid", slog.String("error", e.Error()))
		}
		return nil
	}
	return feed
}

// RenderAtom writes feed.atom if ReadSite could build one.
func (s *Site) RenderAtom() error {
	if s.atomFeed == nil {
		return nil
	}
	atomXml, err := s.atomFeed.GenXml()
	if err != nil {
		return renderError(atomFile, err)
	}
	return writeFile(s.outPath(atomFile), atomXml)
}

func (s *Site) entryForPost(p *post, date time.Time) *atom.Entry {
	e := &atom.Entry{
		Title:   p.Meta.Title,
		Link:    postLink(s.conf.BaseURL, p.Slug),
		PubDate: date,
		Content: p.Content,
	}
	for _, tag := range p.Meta.Tags {
		e.AddCategory(atom.Category{Term: tag})
	}
	return e
}
