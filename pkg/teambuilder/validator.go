// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package teambuilder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/futcuervo/club-trivia/pkg/catalog"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyName        = errors.New("empty player name")
	ErrNotFound         = errors.New("player not found")
	ErrWrongClub        = errors.New("player does not fit the team")
	ErrAlreadyUsed      = errors.New("player already used")
	ErrAmbiguous        = errors.New("name matches several players")
	ErrNoVacantPosition = errors.New("no vacant position for player")
	ErrUnknownFormation = errors.New("unknown formation")
)

// Placement is an accepted guess.
type Placement struct {
	PlayerID   string           `json:"playerId"`
	PlayerName string           `json:"playerName"`
	SlotID     string           `json:"slotId"`
	Position   catalog.Position `json:"position"`
}

// Request is one typed guess together with the team built so far.
type Request struct {
	Input     string
	Target    Target
	Formation Formation
	Lineup    Lineup
	Used      []string
}

// Validate matches a typed name against the roster and finds a slot for it.
// The scan is linear; rosters are small in-memory sets.
func Validate(req Request, roster []catalog.Player) (Placement, error) {
	needle := Normalize(req.Input)
	if needle == "" {
		return Placement{}, ErrEmptyName
	}

	matches := lo.Filter(roster, func(p catalog.Player, _ int) bool {
		return nameMatches(p, needle)
	})
	if len(matches) == 0 {
		return Placement{}, fmt.Errorf("%w: %q", ErrNotFound, req.Input)
	}

	eligible := lo.Filter(matches, func(p catalog.Player, _ int) bool {
		return req.Target.Eligible(p)
	})
	if len(eligible) == 0 {
		return Placement{}, fmt.Errorf("%w: %q is not eligible for %s", ErrWrongClub, req.Input, req.Target)
	}

	unused := lo.Reject(eligible, func(p catalog.Player, _ int) bool {
		return lo.Contains(req.Used, p.ID) || req.Lineup.Has(p.ID)
	})
	if len(unused) == 0 {
		return Placement{}, fmt.Errorf("%w: %q", ErrAlreadyUsed, req.Input)
	}

	type candidate struct {
		player catalog.Player
		slot   Slot
	}
	placeable := lo.FilterMap(unused, func(p catalog.Player, _ int) (candidate, bool) {
		slot, ok := req.Formation.Vacant(req.Lineup, p)
		return candidate{player: p, slot: slot}, ok
	})
	if len(placeable) == 0 {
		return Placement{}, fmt.Errorf("%w: %q", ErrNoVacantPosition, req.Input)
	}
	if len(placeable) > 1 {
		names := lo.Map(placeable, func(c candidate, _ int) string { return c.player.Name })
		return Placement{}, fmt.Errorf("%w: %s", ErrAmbiguous, strings.Join(names, ", "))
	}

	player, slot := placeable[0].player, placeable[0].slot
	logrus.Debugf("placed %s in %s for %s", player.Name, slot.ID, req.Target)
	return Placement{
		PlayerID:   player.ID,
		PlayerName: player.Name,
		SlotID:     slot.ID,
		Position:   slot.Position,
	}, nil
}

// nameMatches compares against the full name, the nickname and the surname.
func nameMatches(p catalog.Player, needle string) bool {
	full := Normalize(p.Name)
	if full == needle {
		return true
	}
	if p.Nickname != "" && Normalize(p.Nickname) == needle {
		return true
	}
	if i := strings.LastIndexByte(full, ' '); i >= 0 && full[i+1:] == needle {
		return true
	}
	return false
}
