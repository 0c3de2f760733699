// Package model defines core data structures and types for the blog list client.
package model

import "strings"

type BlogID string

// Blog is a single post as returned by the remote service. The ID is
// assigned server-side; two blogs are the same entity iff their IDs match.
type Blog struct {
	ID     BlogID `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// Draft mirrors Blog minus the server-assigned ID. It holds uncommitted
// form state and is reset to its zero value after a successful create.
type Draft struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

func (d *Draft) Reset() {
	*d = Draft{}
}

// Complete reports whether the draft can be submitted.
func (d Draft) Complete() bool {
	return strings.TrimSpace(d.Title) != "" &&
		strings.TrimSpace(d.Author) != "" &&
		strings.TrimSpace(d.URL) != "" &&
		d.Likes >= 0
}

type SortKey string

const (
	SortByTitle  SortKey = "title"
	SortByAuthor SortKey = "author"
	SortByLikes  SortKey = "likes"
)

// ParseSortKey maps user input onto a SortKey, defaulting to title.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByTitle:
		return SortByTitle, true
	case SortByAuthor:
		return SortByAuthor, true
	case SortByLikes:
		return SortByLikes, true
	}
	return SortByTitle, false
}

// Filter is pure UI state. It is never persisted and never sent to the
// remote service.
type Filter struct {
	SortBy SortKey
	Author string
}
