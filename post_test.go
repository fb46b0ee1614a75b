package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByAge_DistinctDatesDescending(t *testing.T) {
	ps := postsOf(
		newPost("march", "2024-03-07"),
		newPost("january", "2024-01-15"),
		newPost("december", "2023-12-31"),
		newPost("february", "2024-02-01"),
	)

	assert.Equal(t, []string{"march", "february", "january", "december"}, titles(ps.byAge()))
	// The collection itself keeps insertion order.
	assert.Equal(t, []string{"march", "january", "december", "february"}, titles(ps))
}

func TestByAge_EqualDatesReverseInsertionOrder(t *testing.T) {
	ps := postsOf(
		newPost("a", "2024-01-01"),
		newPost("b", "2024-01-01"),
		newPost("newest", "2024-02-01"),
		newPost("c", "2024-01-01"),
	)

	assert.Equal(t, []string{"newest", "c", "b", "a"}, titles(ps.byAge()))
}

func TestRecent(t *testing.T) {
	var ps posts
	for day := 1; day <= 25; day++ {
		ps = append(ps, newPost(fmt.Sprintf("day %02d", day), fmt.Sprintf("2024-01-%02d", day)))
	}

	recent := ps.recent(maxRecentPosts)
	require.Len(t, recent, 20)
	assert.Equal(t, "day 25", recent[0].Meta.Title)
	assert.Equal(t, "day 06", recent[19].Meta.Title)

	assert.Len(t, ps[:3].recent(maxRecentPosts), 3)
	assert.Empty(t, posts(nil).recent(maxRecentPosts))
}

func TestLatestDate(t *testing.T) {
	ps := postsOf(newPost("a", "2024-01-01"), newPost("b", "2024-05-01"), newPost("c", "2023-05-01"))
	assert.Equal(t, "2024-05-01", ps.latestDate())
	assert.Equal(t, "", posts(nil).latestDate())
}

func TestMetaHasTag(t *testing.T) {
	m := meta{Tags: []string{"go", "rust", "web"}}
	assert.True(t, m.HasTag("rust"))
	assert.False(t, m.HasTag("zig"))
	assert.False(t, (&meta{}).HasTag("go"))
}
