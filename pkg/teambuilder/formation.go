// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package teambuilder

import (
	"fmt"

	"github.com/futcuervo/club-trivia/pkg/catalog"
)

// Slot is one position of a formation.
type Slot struct {
	ID       string           `json:"id"`
	Position catalog.Position `json:"position"`
}

// Formation is an ordered list of slots. Vacancies are filled in slot order.
type Formation struct {
	Name  string `json:"name"`
	Slots []Slot `json:"slots"`
}

var formations = map[string]Formation{
	"4-3-3": {
		Name: "4-3-3",
		Slots: []Slot{
			{"gk", catalog.GK},
			{"rb", catalog.RB}, {"rcb", catalog.CB}, {"lcb", catalog.CB}, {"lb", catalog.LB},
			{"rcm", catalog.CM}, {"cm", catalog.CM}, {"lcm", catalog.CM},
			{"rw", catalog.RW}, {"st", catalog.ST}, {"lw", catalog.LW},
		},
	},
	"4-4-2": {
		Name: "4-4-2",
		Slots: []Slot{
			{"gk", catalog.GK},
			{"rb", catalog.RB}, {"rcb", catalog.CB}, {"lcb", catalog.CB}, {"lb", catalog.LB},
			{"rm", catalog.RM}, {"rcm", catalog.CM}, {"lcm", catalog.CM}, {"lm", catalog.LM},
			{"rst", catalog.ST}, {"lst", catalog.ST},
		},
	},
	"3-5-2": {
		Name: "3-5-2",
		Slots: []Slot{
			{"gk", catalog.GK},
			{"rcb", catalog.CB}, {"cb", catalog.CB}, {"lcb", catalog.CB},
			{"rm", catalog.RM}, {"rcm", catalog.CM}, {"dm", catalog.DM}, {"lcm", catalog.CM}, {"lm", catalog.LM},
			{"rst", catalog.ST}, {"lst", catalog.ST},
		},
	},
}

// DefaultFormation is used when a request does not name one.
const DefaultFormation = "4-3-3"

// LookupFormation returns a formation by name.
func LookupFormation(name string) (Formation, error) {
	if name == "" {
		name = DefaultFormation
	}
	f, ok := formations[name]
	if !ok {
		return Formation{}, fmt.Errorf("%w: %q", ErrUnknownFormation, name)
	}
	return f, nil
}

// Lineup maps slot IDs to the player IDs placed in them.
type Lineup map[string]string

// Has reports whether playerID is already placed.
func (l Lineup) Has(playerID string) bool {
	for _, id := range l {
		if id == playerID {
			return true
		}
	}
	return false
}

// Vacant returns the first empty slot the player can occupy.
func (f Formation) Vacant(lineup Lineup, player catalog.Player) (Slot, bool) {
	for _, slot := range f.Slots {
		if lineup[slot.ID] != "" {
			continue
		}
		if player.CanPlay(slot.Position) {
			return slot, true
		}
	}
	return Slot{}, false
}

// Complete reports whether every slot is filled.
func (f Formation) Complete(lineup Lineup) bool {
	for _, slot := range f.Slots {
		if lineup[slot.ID] == "" {
			return false
		}
	}
	return true
}
