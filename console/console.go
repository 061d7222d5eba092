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

// Package console is the operator-facing notification console: a bounded,
// ordered log of info, error and in-progress entries.
//
// In-progress entries are transient and are removed by id once the
// operation they describe finishes. Every entry is mirrored to a zerolog
// logger. A Console is safe for concurrent use.
package console

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Kind is the type of a console entry.
type Kind int

const (
	Info Kind = iota
	Error
	InProgress
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Info:
		return "info"
	case Error:
		return "error"
	case InProgress:
		return "in_progress"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// DefaultMaxEntries bounds a Console created with a non-positive limit.
const DefaultMaxEntries = 500

// Entry is one console line.
type Entry struct {
	ID      string
	Kind    Kind
	Time    time.Time
	Message string
}

// Console is the notification console.
type Console struct {
	mu   sync.Mutex
	ring []Entry // len max; the oldest entry is at head
	head int
	n    int
	max  int
	log  zerolog.Logger
	now  func() time.Time
}

// Option configures a Console.
type Option func(*Console)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Console) { c.now = now }
}

// New creates a Console keeping at most maxEntries entries.
func New(maxEntries int, log zerolog.Logger, opts ...Option) *Console {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	c := &Console{max: maxEntries, log: log, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Log appends an entry and returns its id. When the console is full the
// oldest entry is dropped.
func (c *Console) Log(kind Kind, message string) string {
	e := Entry{
		ID:      uuid.NewString(),
		Kind:    kind,
		Time:    c.now(),
		Message: message,
	}

	c.mu.Lock()
	if c.ring == nil {
		c.ring = make([]Entry, c.max)
	}
	if c.n < c.max {
		c.ring[c.at(c.n)] = e
		c.n++
	} else {
		c.ring[c.head] = e
		c.head = (c.head + 1) % c.max
	}
	c.mu.Unlock()

	ev := c.log.Info()
	if kind == Error {
		ev = c.log.Error()
	}
	ev.Str("console_id", e.ID).Str("kind", kind.String()).Msg(message)
	return e.ID
}

// Logf is Log with fmt formatting.
func (c *Console) Logf(kind Kind, format string, args ...any) string {
	return c.Log(kind, fmt.Sprintf(format, args...))
}

// ClearInProgress removes the in-progress entry with the given id. It
// reports whether an entry was removed; ids of other kinds are left alone.
func (c *Console) ClearInProgress(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := 0; i < c.n; i++ {
		e := c.ring[c.at(i)]
		if e.ID != id || e.Kind != InProgress {
			continue
		}
		for j := i; j < c.n-1; j++ {
			c.ring[c.at(j)] = c.ring[c.at(j+1)]
		}
		c.n--
		c.ring[c.at(c.n)] = Entry{}
		return true
	}
	return false
}

// Entries returns a snapshot of the console, oldest first.
func (c *Console) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, c.n)
	for i := range out {
		out[i] = c.ring[c.at(i)]
	}
	return out
}

// Len returns the number of entries.
func (c *Console) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// at maps the i-th oldest entry to its ring slot.
func (c *Console) at(i int) int {
	return (c.head + i) % c.max
}
