// Package tournament manages the server's Fortnite tournaments
// (BritBowl, Crew Up, Winterfest and whatever the mods invent next)
package tournament

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"sweeperleader/internal/common"
	"sweeperleader/internal/store"
)

// Tournament is a named event players can sign up for while it is open
type Tournament struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Open         bool      `json:"open"`
	CreatedAt    time.Time `json:"created_at"`
	Participants []string  `json:"participants"`
}

func (t *Tournament) registered(userID string) bool {
	for _, participant := range t.Participants {
		if participant == userID {
			return true
		}
	}
	return false
}

// Registry persists tournaments in the backing store, one JSON value
// per tournament keyed by its id
type Registry struct {
	kv store.KV
}

func NewRegistry(kv store.KV) *Registry {
	return &Registry{kv: kv}
}

// Create opens a new tournament. Names are unique among open
// tournaments, case-insensitively
func (r *Registry) Create(ctx context.Context, name string, now time.Time) (Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Tournament{}, fmt.Errorf("%w: tournament name is empty", common.ErrInvalidArgument)
	}
	if existing, err := r.findOpen(ctx, name); err != nil {
		return Tournament{}, err
	} else if existing != nil {
		return Tournament{}, fmt.Errorf("tournament %q is already open", name)
	}

	tournament := Tournament{
		ID:        uuid.NewString(),
		Name:      name,
		Open:      true,
		CreatedAt: now,
	}
	if err := r.save(ctx, tournament); err != nil {
		return Tournament{}, err
	}
	return tournament, nil
}

// Join signs a user up for an open tournament
func (r *Registry) Join(ctx context.Context, name, userID string) (Tournament, error) {
	tournament, err := r.findOpen(ctx, name)
	if err != nil {
		return Tournament{}, err
	}
	if tournament == nil {
		return Tournament{}, fmt.Errorf("no open tournament named %q", name)
	}
	if tournament.registered(userID) {
		return *tournament, fmt.Errorf("already registered in %q", tournament.Name)
	}
	tournament.Participants = append(tournament.Participants, userID)
	if err := r.save(ctx, *tournament); err != nil {
		return Tournament{}, err
	}
	return *tournament, nil
}

// Close stops signups for an open tournament
func (r *Registry) Close(ctx context.Context, name string) (Tournament, error) {
	tournament, err := r.findOpen(ctx, name)
	if err != nil {
		return Tournament{}, err
	}
	if tournament == nil {
		return Tournament{}, fmt.Errorf("no open tournament named %q", name)
	}
	tournament.Open = false
	if err := r.save(ctx, *tournament); err != nil {
		return Tournament{}, err
	}
	return *tournament, nil
}

// List returns every tournament, newest first
func (r *Registry) List(ctx context.Context) ([]Tournament, error) {
	all, err := r.kv.List(ctx, store.BucketTournaments)
	if err != nil {
		return nil, err
	}
	tournaments := make([]Tournament, 0, len(all))
	for _, raw := range all {
		var tournament Tournament
		if err := json.Unmarshal([]byte(raw), &tournament); err != nil {
			return nil, fmt.Errorf("stored tournament is corrupt: %w", err)
		}
		tournaments = append(tournaments, tournament)
	}
	sort.Slice(tournaments, func(i, j int) bool {
		return tournaments[i].CreatedAt.After(tournaments[j].CreatedAt)
	})
	return tournaments, nil
}

func (r *Registry) findOpen(ctx context.Context, name string) (*Tournament, error) {
	tournaments, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, tournament := range tournaments {
		if tournament.Open && strings.EqualFold(tournament.Name, strings.TrimSpace(name)) {
			return &tournament, nil
		}
	}
	return nil, nil
}

func (r *Registry) save(ctx context.Context, tournament Tournament) error {
	raw, err := json.Marshal(tournament)
	if err != nil {
		return err
	}
	return r.kv.Put(ctx, store.BucketTournaments, tournament.ID, string(raw))
}
