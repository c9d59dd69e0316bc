// Package leaderboard keeps the persistent top-score list. The list holds
// at most five entries, sorted best first, and survives restarts through
// the key/value store.
package leaderboard

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/colorlines/colorlines/storage"
)

// MaxEntries is the number of scores the board retains.
const MaxEntries = 5

// storageKey is the key/value slot holding the serialized list.
const storageKey = "leaderboard"

// Entry is one recorded score. Date marshals as RFC 3339.
type Entry struct {
	Score int       `json:"score"`
	Date  time.Time `json:"date"`
}

// storedEntry tolerates malformed date strings when loading; the score
// still counts with a zero date.
type storedEntry struct {
	Score int    `json:"score"`
	Date  string `json:"date"`
}

// Leaderboard is a persistent top-score list, safe for concurrent use.
type Leaderboard struct {
	mu      sync.Mutex
	store   storage.Store
	entries []Entry
	now     func() time.Time
}

// New creates a leaderboard over the given store, loading any persisted
// entries. Corrupt persisted data degrades to an empty list rather than
// failing.
func New(store storage.Store) *Leaderboard {
	l := &Leaderboard{
		store: store,
		now:   time.Now,
	}
	l.load()
	return l
}

// Add offers a final score to the list. The score is admitted when the
// list is not full yet or when it beats the current lowest entry; ties
// with the lowest entry of a full list are rejected. Add reports whether
// the score entered the list and persists the change when it did.
func (l *Leaderboard) Add(score int) bool {
	if score < 0 {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) >= MaxEntries && score <= l.entries[len(l.entries)-1].Score {
		return false
	}

	l.entries = append(l.entries, Entry{Score: score, Date: l.now().UTC()})
	sortEntries(l.entries)
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[:MaxEntries]
	}
	l.persist()
	return true
}

// Top returns the entries best first.
func (l *Leaderboard) Top() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Best returns the highest recorded score, or 0 for an empty list.
func (l *Leaderboard) Best() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return 0
	}
	return l.entries[0].Score
}

// Clear empties the list and persists the empty state.
func (l *Leaderboard) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.persist()
}

// load reads the persisted list. A missing key yields an empty list; a
// malformed document or malformed fields degrade per entry and are logged.
func (l *Leaderboard) load() {
	raw, ok := l.store.Get(storageKey)
	if !ok {
		return
	}

	var stored []storedEntry
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Printf("[LEADERBOARD] malformed persisted data, starting empty: %v", err)
		return
	}

	entries := make([]Entry, 0, len(stored))
	for _, s := range stored {
		if s.Score < 0 {
			log.Printf("[LEADERBOARD] dropping entry with negative score %d", s.Score)
			continue
		}
		date, err := time.Parse(time.RFC3339, s.Date)
		if err != nil {
			log.Printf("[LEADERBOARD] entry with unreadable date %q, keeping score %d", s.Date, s.Score)
			date = time.Time{}
		}
		entries = append(entries, Entry{Score: s.Score, Date: date})
	}

	sortEntries(entries)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	l.entries = entries
}

// persist writes the list back to the store. Persistence failures are
// logged and never surfaced to the game.
func (l *Leaderboard) persist() {
	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		log.Printf("[LEADERBOARD] failed to serialize: %v", err)
		return
	}
	if err := l.store.Set(storageKey, string(data)); err != nil {
		log.Printf("[LEADERBOARD] failed to persist: %v", err)
	}
}

// sortEntries orders best first, keeping insertion order between equal
// scores so an incoming tie never displaces an existing entry.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}

// String renders the board for logs and CLI output.
func (l *Leaderboard) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return "leaderboard: empty"
	}
	out := "leaderboard:"
	for i, e := range l.entries {
		out += fmt.Sprintf(" #%d=%d", i+1, e.Score)
	}
	return out
}
