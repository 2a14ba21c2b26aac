package recency

import (
	"time"

	"asset-selector-be/internal/entity"
)

const (
	DefaultGlobalCapacity   = 50
	DefaultCategoryCapacity = 10
)

// SetID names one bounded set: the global set or a category set.
type SetID struct {
	category string
	global   bool
}

// Global is the set tracking every recent selection.
var Global = SetID{global: true}

// Category names the per-category set for c.
func Category(c string) SetID {
	return SetID{category: c}
}

// State is a detached copy of the tracker contents. Slices are oldest first.
type State struct {
	GlobalRecent      []string
	PerCategoryRecent map[string][]string
	LastUsedAt        map[string]time.Time
	UsageCount        map[string]int
}

// Tracker holds the global and per-category recency sets. It is not safe for
// concurrent use; callers serialize access.
type Tracker struct {
	globalCap   int
	categoryCap int

	global     *boundedSet
	categories map[string]*boundedSet
	lastUsedAt map[string]time.Time
	usageCount map[string]int
}

// NewTracker builds an empty tracker. Non-positive capacities fall back to the defaults.
func NewTracker(globalCap, categoryCap int) *Tracker {
	if globalCap <= 0 {
		globalCap = DefaultGlobalCapacity
	}
	if categoryCap <= 0 {
		categoryCap = DefaultCategoryCapacity
	}
	return &Tracker{
		globalCap:   globalCap,
		categoryCap: categoryCap,
		global:      newBoundedSet(globalCap),
		categories:  make(map[string]*boundedSet),
		lastUsedAt:  make(map[string]time.Time),
		usageCount:  make(map[string]int),
	}
}

func (t *Tracker) GlobalCapacity() int   { return t.globalCap }
func (t *Tracker) CategoryCapacity() int { return t.categoryCap }

func (t *Tracker) set(id SetID, create bool) *boundedSet {
	if id.global {
		return t.global
	}
	s, ok := t.categories[id.category]
	if !ok && create {
		s = newBoundedSet(t.categoryCap)
		t.categories[id.category] = s
	}
	return s
}

func (t *Tracker) Contains(id SetID, url string) bool {
	s := t.set(id, false)
	return s != nil && s.contains(url)
}

// Insert adds url to the set, evicting the oldest entry when full. Inserting
// a url that is already present changes nothing.
func (t *Tracker) Insert(id SetID, url string) {
	t.set(id, true).insert(url)
}

func (t *Tracker) Size(id SetID) int {
	s := t.set(id, false)
	if s == nil {
		return 0
	}
	return s.len()
}

func (t *Tracker) LastUsedAt(url string) (time.Time, bool) {
	at, ok := t.lastUsedAt[url]
	return at, ok
}

func (t *Tracker) UsageCount(url string) int {
	return t.usageCount[url]
}

// Record marks a as selected at the given time.
func (t *Tracker) Record(a entity.Asset, at time.Time) {
	t.lastUsedAt[a.URL] = at
	t.usageCount[a.URL]++
	t.Insert(Global, a.URL)
	t.Insert(Category(a.Category), a.URL)
}

// Snapshot copies the current state.
func (t *Tracker) Snapshot() State {
	st := State{
		GlobalRecent:      t.global.items(),
		PerCategoryRecent: make(map[string][]string, len(t.categories)),
		LastUsedAt:        make(map[string]time.Time, len(t.lastUsedAt)),
		UsageCount:        make(map[string]int, len(t.usageCount)),
	}
	for c, s := range t.categories {
		if s.len() > 0 {
			st.PerCategoryRecent[c] = s.items()
		}
	}
	for k, v := range t.lastUsedAt {
		st.LastUsedAt[k] = v
	}
	for k, v := range t.usageCount {
		st.UsageCount[k] = v
	}
	return st
}

// Restore replaces the tracker contents with st. Sets longer than their
// capacity keep only their newest entries.
func (t *Tracker) Restore(st State) {
	t.global = newBoundedSet(t.globalCap)
	for _, u := range st.GlobalRecent {
		t.global.insert(u)
	}
	t.categories = make(map[string]*boundedSet, len(st.PerCategoryRecent))
	for c, urls := range st.PerCategoryRecent {
		s := newBoundedSet(t.categoryCap)
		for _, u := range urls {
			s.insert(u)
		}
		t.categories[c] = s
	}
	t.lastUsedAt = make(map[string]time.Time, len(st.LastUsedAt))
	for k, v := range st.LastUsedAt {
		t.lastUsedAt[k] = v
	}
	t.usageCount = make(map[string]int, len(st.UsageCount))
	for k, v := range st.UsageCount {
		t.usageCount[k] = v
	}
}

// ToSnapshot converts st to the persisted shape.
func ToSnapshot(st State, at time.Time) *entity.RecencySnapshot {
	snap := &entity.RecencySnapshot{
		LastUpdated:       at.UTC(),
		GlobalRecent:      append([]string{}, st.GlobalRecent...),
		PerCategoryRecent: make(map[string][]string, len(st.PerCategoryRecent)),
	}
	for c, urls := range st.PerCategoryRecent {
		snap.PerCategoryRecent[c] = append([]string{}, urls...)
	}
	return snap
}

// FromSnapshot converts the persisted shape back. Usage maps start empty.
func FromSnapshot(snap *entity.RecencySnapshot) State {
	st := State{
		PerCategoryRecent: make(map[string][]string),
		LastUsedAt:        make(map[string]time.Time),
		UsageCount:        make(map[string]int),
	}
	if snap == nil {
		return st
	}
	st.GlobalRecent = append([]string{}, snap.GlobalRecent...)
	for c, urls := range snap.PerCategoryRecent {
		st.PerCategoryRecent[c] = append([]string{}, urls...)
	}
	return st
}
