// Package c3 implements the C3 linearization merge used to order
// parametrized ancestors deterministically.
package c3

import (
	"errors"
	"fmt"
)

// ErrInconsistent reports that no valid linearization exists for the
// provided sequences.
var ErrInconsistent = errors.New("c3: inconsistent hierarchy")

// Merge combines the given precedence sequences into a single linearization
// using the C3 rule: repeatedly take the earliest head that appears in no
// other sequence's tail. Empty sequences are skipped. When no head is
// eligible the hierarchy is inconsistent and Merge fails without producing
// a partial result.
func Merge[T comparable](seqs [][]T) ([]T, error) {
	work := make([][]T, 0, len(seqs))
	total := 0
	for _, s := range seqs {
		if len(s) == 0 {
			continue
		}
		cp := make([]T, len(s))
		copy(cp, s)
		work = append(work, cp)
		total += len(s)
	}

	out := make([]T, 0, total)
	for len(work) > 0 {
		head, ok := pickHead(work)
		if !ok {
			return nil, fmt.Errorf("%w: no eligible candidate among %d sequences", ErrInconsistent, len(work))
		}
		out = append(out, head)
		work = dropHead(work, head)
	}
	return out, nil
}

// pickHead returns the first sequence head that occurs in no tail.
func pickHead[T comparable](work [][]T) (T, bool) {
	for _, s := range work {
		head := s[0]
		if !inAnyTail(work, head) {
			return head, true
		}
	}
	var zero T
	return zero, false
}

func inAnyTail[T comparable](work [][]T, v T) bool {
	for _, s := range work {
		for _, x := range s[1:] {
			if x == v {
				return true
			}
		}
	}
	return false
}

// dropHead removes v from the head of every sequence it leads and discards
// sequences that become empty.
func dropHead[T comparable](work [][]T, v T) [][]T {
	next := work[:0]
	for _, s := range work {
		if s[0] == v {
			s = s[1:]
		}
		if len(s) > 0 {
			next = append(next, s)
		}
	}
	return next
}
