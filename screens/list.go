// ABOUTME: List/filter controller shared by every master-data screen
// ABOUTME: Loading/Ready/Error state machine, client-side filtering, pagination
package screens

import (
	"strings"

	"github.com/voyagehq/tripdesk/api"
)

// State is where a screen's list currently stands.
type State int

const (
	StateLoading State = iota
	StateReady
	StateError
)

// List owns one screen's fetched collection and its filter state. It never
// performs network calls itself: the owner starts a fetch, runs it, and
// hands the result back with the token the fetch was started under.
type List[T any] struct {
	state      State
	loaded     bool
	generation int

	items []T
	page  api.PageMeta
	err   error

	// Search is matched case-insensitively as a substring across the
	// display fields. Empty matches everything.
	Search     string
	ActiveOnly bool

	displayFields func(T) []string
	isActive      func(T) bool
	refFilter     func(T) bool
}

// NewList builds a controller. displayFields enumerates the name-like and
// code-like strings search runs over; isActive reads the soft-delete flag
// (nil when the resource has none).
func NewList[T any](displayFields func(T) []string, isActive func(T) bool) *List[T] {
	return &List[T]{state: StateLoading, displayFields: displayFields, isActive: isActive}
}

func (l *List[T]) State() State { return l.state }
func (l *List[T]) Err() error   { return l.err }

// BeginFetch marks the list loading and returns the token identifying
// this fetch. A token that is no longer current when the fetch resolves
// means a newer action superseded it.
func (l *List[T]) BeginFetch() int {
	l.generation++
	l.state = StateLoading
	return l.generation
}

// Resolve applies a finished fetch. Stale resolutions are discarded and
// reported as such so the caller skips notifications for them. A failed
// refetch keeps the last-known-good collection; only a failed first load
// lands in StateError.
func (l *List[T]) Resolve(token int, result api.ListResult[T], err error) bool {
	if token != l.generation {
		return false
	}
	if err != nil {
		l.err = err
		if l.loaded {
			l.state = StateReady
		} else {
			l.state = StateError
		}
		return true
	}
	l.err = nil
	l.loaded = true
	l.items = result.Items
	l.page = result.Page
	l.state = StateReady
	return true
}

// Items is the raw fetched collection.
func (l *List[T]) Items() []T { return l.items }

// SetRefFilter installs a client-side foreign-key filter, or clears it
// when nil. It re-derives the visible subset without a network call.
func (l *List[T]) SetRefFilter(keep func(T) bool) {
	l.refFilter = keep
}

// Visible derives the filtered view from the already-fetched collection.
func (l *List[T]) Visible() []T {
	needle := strings.ToLower(l.Search)
	var out []T
	for _, item := range l.items {
		if l.ActiveOnly && l.isActive != nil && !l.isActive(item) {
			continue
		}
		if l.refFilter != nil && !l.refFilter(item) {
			continue
		}
		if needle != "" && !l.matches(item, needle) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (l *List[T]) matches(item T, needle string) bool {
	for _, field := range l.displayFields(item) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (l *List[T]) CurrentPage() int { return l.page.CurrentPage }
func (l *List[T]) TotalPages() int  { return l.page.TotalPages }
func (l *List[T]) Count() int       { return l.page.Count }

// GoToPage validates a page jump. Outside [1, TotalPages] it is a no-op
// and returns 0; otherwise it returns the page the caller must refetch
// with. Paging is a server-side filter, so it always costs a round-trip.
func (l *List[T]) GoToPage(page int) int {
	if page < 1 || page > l.page.TotalPages || !l.loaded {
		return 0
	}
	return page
}

// NextPage and PrevPage are GoToPage relative to the current page.
func (l *List[T]) NextPage() int { return l.GoToPage(l.page.CurrentPage + 1) }
func (l *List[T]) PrevPage() int { return l.GoToPage(l.page.CurrentPage - 1) }
