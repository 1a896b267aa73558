// Package ordering holds the list arithmetic behind board ordering. The
// server engine applies it to id sequences and the client reducer applies it
// to card slices; both must agree index for index.
//
// Every function returns a fresh slice and leaves its input untouched.
package ordering

import "slices"

// Clamp limits pos to the insert range [0, n] of a list of length n.
func Clamp(pos, n int) int {
	if pos < 0 {
		return 0
	}
	if pos > n {
		return n
	}
	return pos
}

// RemoveFunc returns s without the elements for which match is true.
func RemoveFunc[S ~[]E, E any](s S, match func(E) bool) S {
	out := make(S, 0, len(s))
	for _, v := range s {
		if !match(v) {
			out = append(out, v)
		}
	}
	return out
}

// Remove returns s without every occurrence of v.
func Remove[S ~[]E, E comparable](s S, v E) S {
	return RemoveFunc(s, func(x E) bool { return x == v })
}

// InsertAt returns s with v inserted at pos, clamped to [0, len(s)].
func InsertAt[S ~[]E, E any](s S, pos int, v E) S {
	out := slices.Clone(s)
	if out == nil {
		out = S{}
	}
	return slices.Insert(out, Clamp(pos, len(s)), v)
}

// Prepend returns s with v at index 0 and any earlier occurrence removed.
func Prepend[S ~[]E, E comparable](s S, v E) S {
	return InsertAt(Remove(s, v), 0, v)
}

// Move removes v from src and inserts it into dst at pos. When same is true
// dst is ignored and v is reinserted into the filtered src, so pos indexes the
// list after removal. A stale copy of v already in dst is dropped before the
// insert. It returns the new source and destination lists; for a same-list
// move both results are the same slice.
func Move[S ~[]E, E comparable](src, dst S, v E, pos int, same bool) (S, S) {
	filtered := Remove(src, v)
	if same {
		moved := InsertAt(filtered, pos, v)
		return moved, moved
	}
	return filtered, InsertAt(Remove(dst, v), pos, v)
}

// Arrange returns the elements of items in the sequence given by order,
// matched through key. Keys in order without a matching item are dropped and
// items whose key is absent from order are left out.
func Arrange[E any, K comparable](order []K, items []E, key func(E) K) []E {
	byKey := make(map[K]E, len(items))
	for _, it := range items {
		byKey[key(it)] = it
	}

	out := make([]E, 0, len(order))
	seen := make(map[K]struct{}, len(order))
	for _, k := range order {
		if _, dup := seen[k]; dup {
			continue
		}
		it, ok := byKey[k]
		if !ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}

// IndexFunc reports the position of the first element matching match, or -1.
func IndexFunc[S ~[]E, E any](s S, match func(E) bool) int {
	return slices.IndexFunc(s, match)
}
