package main

import (
	"log/slog"
	"slices"
	"strings"
)

type meta struct {
	Title  string   `json:"title"`
	Tags   []string `json:"tags"`
	Date   string   `json:"date"`
	Origin string   `json:"origin"`
}

// HasTag reports whether tag is among the post's tags. Tags are kept sorted.
func (m *meta) HasTag(tag string) bool {
	_, found := slices.BinarySearch(m.Tags, tag)
	return found
}

type post struct {
	Meta    meta
	Content string
	Slug    string
	Source  string
}

func (p *post) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("title", p.Meta.Title),
		slog.String("date", p.Meta.Date),
		slog.String("tags", strings.Join(p.Meta.Tags, ",")),
		slog.String("source", p.Source),
		slog.Int("content_bytes", len(p.Content)),
	)
}

// posts is the collection for one run, in the order the files were found.
type posts []*post

// byAge returns the posts newest first. Dates compare as strings, so they
// must be zero-padded. Posts with equal dates end up in reverse insertion
// order: the slice is stable-sorted ascending and then reversed.
func (ps posts) byAge() posts {
	sorted := slices.Clone(ps)
	slices.SortStableFunc(sorted, func(a, b *post) int {
		return strings.Compare(a.Meta.Date, b.Meta.Date)
	})
	slices.Reverse(sorted)
	return sorted
}

// recent returns at most n posts from byAge.
func (ps posts) recent(n int) posts {
	sorted := ps.byAge()
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func (ps posts) latestDate() string {
	var d string
	for _, p := range ps {
		if p.Meta.Date > d {
			d = p.Meta.Date
		}
	}
	return d
}
