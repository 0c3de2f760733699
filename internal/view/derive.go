// Package view derives the displayed blog list and renders application
// state as terminal output. Everything here is pure: no state, no side
// effects, safe to call repeatedly.
package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Andebugulin/bloglist/internal/model"
)

// NewCollator builds the collator used for title/author ordering.
// Unknown locales fall back through language matching rather than failing.
func NewCollator(locale string) *collate.Collator {
	return collate.New(language.Make(locale))
}

// DeriveList filters by case-insensitive author substring, then sorts:
// title or author ascending under locale collation, likes descending with
// missing likes treated as 0. The sort is stable so ties retain input
// order. The input slice is never mutated.
func DeriveList(blogs []model.Blog, filter model.Filter, collator *collate.Collator) []model.Blog {
	derived := make([]model.Blog, 0, len(blogs))

	needle := strings.ToLower(filter.Author)
	for _, b := range blogs {
		if needle == "" || strings.Contains(strings.ToLower(b.Author), needle) {
			derived = append(derived, b)
		}
	}

	sort.SliceStable(derived, func(i, j int) bool {
		switch filter.SortBy {
		case model.SortByLikes:
			return derived[i].Likes > derived[j].Likes
		case model.SortByAuthor:
			return collator.CompareString(derived[i].Author, derived[j].Author) < 0
		default:
			return collator.CompareString(derived[i].Title, derived[j].Title) < 0
		}
	})

	return derived
}
