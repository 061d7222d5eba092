/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package segmenttrie is a segment-aware prefix index for slash-separated
// keys such as "Explorer/Query/Execute".
package segmenttrie

import (
	"errors"
	"strings"
)

// Separator splits keys into segments.
const Separator = '/'

// Wildcard matches exactly one segment.
const Wildcard = "*"

// Trie supports longest-prefix-match on segment boundaries, so a more
// specific rule wins over a shorter one. At equal depth an exact segment
// beats the wildcard.
type Trie[T any] struct {
	children map[string]*Trie[T]
	hasVal   bool
	val      T
	// pattern is the prefix as inserted, set only when hasVal is true.
	pattern string
}

// ErrInvalidPrefix is returned for empty prefixes, empty or malformed
// segments, and prefixes made only of wildcards.
var ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")

// New creates an empty trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{children: make(map[string]*Trie[T])}
}

// Insert associates val with prefix, e.g. "Explorer/Query" or
// "Explorer/*/Execute". Inserting the same prefix twice keeps the last value.
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil || prefix == "" {
		return ErrInvalidPrefix
	}
	segs := strings.Split(prefix, string(Separator))
	allWild := true
	for _, s := range segs {
		if s == Wildcard {
			continue
		}
		if !validSegment(s) {
			return ErrInvalidPrefix
		}
		allWild = false
	}
	if allWild {
		return ErrInvalidPrefix
	}

	cur := t
	for _, s := range segs {
		child, ok := cur.children[s]
		if !ok {
			child = New[T]()
			cur.children[s] = child
		}
		cur = child
	}
	cur.hasVal = true
	cur.val = val
	cur.pattern = prefix
	return nil
}

// Match finds the deepest prefix matching key.
func (t *Trie[T]) Match(key string) (T, bool) {
	v, ok, _ := t.MatchWithPattern(key)
	return v, ok
}

// MatchWithPattern is Match plus the stored pattern of the winning rule.
// Malformed keys stop matching at the first bad segment.
func (t *Trie[T]) MatchWithPattern(key string) (T, bool, string) {
	var zero T
	if t == nil {
		return zero, false, ""
	}

	var best *Trie[T]
	bestDepth := -1

	var walk func(n *Trie[T], off, depth int)
	walk = func(n *Trie[T], off, depth int) {
		if n.hasVal && depth > bestDepth {
			best, bestDepth = n, depth
		}
		if off >= len(key) {
			return
		}
		end := strings.IndexByte(key[off:], Separator)
		if end < 0 {
			end = len(key)
		} else {
			end += off
		}
		seg := key[off:end]
		if !validSegment(seg) {
			return
		}
		next := end
		if next < len(key) {
			next++
		}
		if c, ok := n.children[seg]; ok {
			walk(c, next, depth+1)
		}
		if c, ok := n.children[Wildcard]; ok {
			walk(c, next, depth+1)
		}
	}
	walk(t, 0, 0)

	if best == nil {
		return zero, false, ""
	}
	return best.val, true, best.pattern
}

// validSegment accepts [A-Za-z][A-Za-z0-9_]*.
func validSegment(seg string) bool {
	if seg == "" || !isLetter(seg[0]) {
		return false
	}
	for i := 1; i < len(seg); i++ {
		c := seg[i]
		if isLetter(c) || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
