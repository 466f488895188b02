package leaderboard

import (
	"time"
)

// BonusHoldDuration is how long the Cleaner role has to be held before
// the double experience bonus kicks in
const BonusHoldDuration = 7 * 24 * time.Hour

type EventKind int

const (
	EventAssigned EventKind = iota
	EventRotated
	EventVacated
)

func (k EventKind) String() string {
	switch k {
	case EventAssigned:
		return "assigned"
	case EventRotated:
		return "rotated"
	case EventVacated:
		return "vacated"
	default:
		return "unknown"
	}
}

// RotationEvent fires when the leaderboard leader changes between
// successive builds. From is empty for Assigned, To is empty for
// Vacated, and HeldFor is zero for Assigned
type RotationEvent struct {
	Kind    EventKind
	From    string
	To      string
	HeldFor time.Duration
}

// Tracker follows which identity holds the leader position across
// successive leaderboard builds. It only decides whether a rotation
// fires and how long the position was held; moving the actual role
// and announcing are the caller's business
type Tracker struct {
	leader string
	since  time.Time
	held   bool
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// RestoreTracker rebuilds a tracker from persisted state so a process
// restart does not reset the hold timer
func RestoreTracker(leader string, since time.Time) *Tracker {
	if leader == "" {
		return &Tracker{}
	}
	return &Tracker{leader: leader, since: since, held: true}
}

// Update feeds the leader of a freshly built leaderboard into the
// tracker. It returns a rotation event exactly once per change of
// leader, nil when the leader is unchanged
func (t *Tracker) Update(leader string, now time.Time) *RotationEvent {
	switch {
	case !t.held && leader == "":
		return nil
	case !t.held:
		t.leader = leader
		t.since = now
		t.held = true
		return &RotationEvent{Kind: EventAssigned, To: leader}
	case leader == t.leader:
		return nil
	case leader == "":
		event := &RotationEvent{Kind: EventVacated, From: t.leader, HeldFor: now.Sub(t.since)}
		t.leader = ""
		t.held = false
		return event
	default:
		event := &RotationEvent{Kind: EventRotated, From: t.leader, To: leader, HeldFor: now.Sub(t.since)}
		t.leader = leader
		t.since = now
		return event
	}
}

// Leader returns the current holder, or false if the position is empty
func (t *Tracker) Leader() (string, bool) {
	return t.leader, t.held
}

// HeldSince returns when the current holder took the position
func (t *Tracker) HeldSince() (time.Time, bool) {
	return t.since, t.held
}

// BonusEligible reports whether the current holder has kept the
// position long enough to earn the double experience bonus
func (t *Tracker) BonusEligible(now time.Time) bool {
	return t.held && now.Sub(t.since) >= BonusHoldDuration
}
