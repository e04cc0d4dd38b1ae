// Package textutil provides small text helpers for building output file
// names and container titles: filesystem sanitization, whitespace folding,
// and title casing of all-lowercase release names.
package textutil
