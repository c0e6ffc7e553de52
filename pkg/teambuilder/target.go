// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package teambuilder

import (
	"fmt"
	"strings"

	"github.com/futcuervo/club-trivia/pkg/catalog"

	"github.com/samber/lo"
)

// Target decides which players are eligible for a team.
type Target interface {
	Eligible(p catalog.Player) bool
	String() string
}

// ClubTarget accepts players who played for one club.
type ClubTarget struct {
	ClubID string
}

func (t ClubTarget) Eligible(p catalog.Player) bool {
	return p.PlayedFor(t.ClubID)
}

func (t ClubTarget) String() string {
	return "club " + t.ClubID
}

// LeagueTarget accepts players who played for any club of a league.
type LeagueTarget struct {
	LeagueID string
	ClubIDs  []string
}

func (t LeagueTarget) Eligible(p catalog.Player) bool {
	return lo.SomeBy(p.Career, func(c catalog.CareerEntry) bool {
		return lo.Contains(t.ClubIDs, c.ClubID)
	})
}

func (t LeagueTarget) String() string {
	return "league " + t.LeagueID
}

// NationalTarget accepts players of one nationality.
type NationalTarget struct {
	Country string
}

func (t NationalTarget) Eligible(p catalog.Player) bool {
	return strings.EqualFold(p.Nationality, t.Country)
}

func (t NationalTarget) String() string {
	return fmt.Sprintf("national team %s", t.Country)
}
