package main

import (
	"bytes"
	"slices"
)

type categoryWithPosts struct {
	Tag   string
	Posts posts
}

// Used by the category template.
func (c categoryWithPosts) LatestDate() string {
	return c.Posts.latestDate()
}

// Posts grouped by tag, in lexicographic tag order. Each list is newest
// first with the same tie-break as byAge. Create using byTag.
type postsByCategory []categoryWithPosts

func (pc postsByCategory) String() string {
	b := new(bytes.Buffer)
	for _, c := range pc {
		b.WriteString(c.Tag)
		b.WriteString(": ")
		for i, p := range c.Posts {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Meta.Title)
		}
		b.WriteString("\n")
	}
	return b.String()
}

type tagCount struct {
	Tag   string
	Count int
}

func (pc postsByCategory) counts() []tagCount {
	counts := make([]tagCount, len(pc))
	for i, c := range pc {
		counts[i] = tagCount{Tag: c.Tag, Count: len(c.Posts)}
	}
	return counts
}

func (ps posts) tags() []string {
	var tags []string
	for _, p := range ps {
		tags = append(tags, p.Meta.Tags...)
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}

func (ps posts) byTag() postsByCategory {
	tags := ps.tags()
	byCat := make(postsByCategory, 0, len(tags))

	for _, tag := range tags {
		tagged := make(posts, 0, len(ps))
		for _, p := range ps {
			if p.Meta.HasTag(tag) {
				tagged = append(tagged, p)
			}
		}
		byCat = append(byCat, categoryWithPosts{Tag: tag, Posts: tagged.byAge()})
	}

	return byCat
}

func (ps posts) tagCounts() []tagCount {
	return ps.byTag().counts()
}
