// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package teambuilder

import (
	"errors"
	"testing"

	"github.com/futcuervo/club-trivia/pkg/catalog"
)

func testRoster() []catalog.Player {
	return []catalog.Player{
		{
			ID: "p1", Name: "Néstor Ortigoza", Nickname: "Ortigol", Nationality: "Paraguay",
			Positions: []catalog.Position{catalog.CM, catalog.DM},
			Career:    []catalog.CareerEntry{{ClubID: "slo"}},
		},
		{
			ID: "p2", Name: "Ángel Correa", Nationality: "Argentina",
			Positions: []catalog.Position{catalog.RW, catalog.ST},
			Career:    []catalog.CareerEntry{{ClubID: "slo"}, {ClubID: "atm"}},
		},
		{
			ID: "p3", Name: "Joaquín Correa", Nationality: "Argentina",
			Positions: []catalog.Position{catalog.LW, catalog.ST},
			Career:    []catalog.CareerEntry{{ClubID: "est"}, {ClubID: "laz"}},
		},
		{
			ID: "p4", Name: "Sebastián Torrico", Nationality: "Argentina",
			Positions: []catalog.Position{catalog.GK},
			Career:    []catalog.CareerEntry{{ClubID: "slo"}},
		},
		{
			ID: "p5", Name: "Leandro Romagnoli", Nationality: "Argentina",
			Positions: []catalog.Position{catalog.AM},
			Career:    []catalog.CareerEntry{{ClubID: "slo"}},
		},
		{
			ID: "p6", Name: "Juan Gomez", Nationality: "Argentina",
			Positions: []catalog.Position{catalog.GK},
			Career:    []catalog.CareerEntry{{ClubID: "slo"}},
		},
		{
			ID: "p7", Name: "Pedro Gomez", Nationality: "Argentina",
			Positions: []catalog.Position{catalog.ST},
			Career:    []catalog.CareerEntry{{ClubID: "slo"}},
		},
	}
}

func mustFormation(t *testing.T, name string) Formation {
	t.Helper()
	f, err := LookupFormation(name)
	if err != nil {
		t.Fatalf("LookupFormation(%q) error = %v", name, err)
	}
	return f
}

func TestValidate(t *testing.T) {
	f433 := mustFormation(t, "4-3-3")

	tests := []struct {
		name         string
		req          Request
		expectedErr  error
		expectedID   string
		expectedSlot string
	}{
		{
			name:         "full name with accents",
			req:          Request{Input: "nestor ortigoza", Target: ClubTarget{ClubID: "slo"}},
			expectedID:   "p1",
			expectedSlot: "rcm",
		},
		{
			name:         "nickname",
			req:          Request{Input: "ORTIGOL", Target: ClubTarget{ClubID: "slo"}},
			expectedID:   "p1",
			expectedSlot: "rcm",
		},
		{
			name:         "surname resolved by club",
			req:          Request{Input: "Correa", Target: ClubTarget{ClubID: "slo"}},
			expectedID:   "p2",
			expectedSlot: "rw",
		},
		{
			name:        "surname ambiguous across league",
			req:         Request{Input: "correa", Target: LeagueTarget{LeagueID: "arg", ClubIDs: []string{"slo", "est"}}},
			expectedErr: ErrAmbiguous,
		},
		{
			name:         "surname narrowed by used list",
			req:          Request{Input: "correa", Target: LeagueTarget{LeagueID: "arg", ClubIDs: []string{"slo", "est"}}, Used: []string{"p2"}},
			expectedID:   "p3",
			expectedSlot: "st",
		},
		{
			name:         "national team",
			req:          Request{Input: "Torrico", Target: NationalTarget{Country: "argentina"}},
			expectedID:   "p4",
			expectedSlot: "gk",
		},
		{
			name:        "surname ambiguous while both fit",
			req:         Request{Input: "gomez", Target: ClubTarget{ClubID: "slo"}},
			expectedErr: ErrAmbiguous,
		},
		{
			name:         "surname narrowed by vacant slots",
			req:          Request{Input: "gomez", Target: ClubTarget{ClubID: "slo"}, Lineup: Lineup{"gk": "p9"}},
			expectedID:   "p7",
			expectedSlot: "st",
		},
		{
			name:        "surname with no vacant slot for any match",
			req:         Request{Input: "gomez", Target: ClubTarget{ClubID: "slo"}, Lineup: Lineup{"gk": "p9", "st": "p8"}},
			expectedErr: ErrNoVacantPosition,
		},
		{
			name:        "unknown player",
			req:         Request{Input: "Messi", Target: ClubTarget{ClubID: "slo"}},
			expectedErr: ErrNotFound,
		},
		{
			name:        "wrong club",
			req:         Request{Input: "Joaquin Correa", Target: ClubTarget{ClubID: "slo"}},
			expectedErr: ErrWrongClub,
		},
		{
			name:        "wrong nationality",
			req:         Request{Input: "Ortigoza", Target: NationalTarget{Country: "Argentina"}},
			expectedErr: ErrWrongClub,
		},
		{
			name:        "already used",
			req:         Request{Input: "Torrico", Target: ClubTarget{ClubID: "slo"}, Used: []string{"p4"}},
			expectedErr: ErrAlreadyUsed,
		},
		{
			name:        "already in lineup",
			req:         Request{Input: "Torrico", Target: ClubTarget{ClubID: "slo"}, Lineup: Lineup{"gk": "p4"}},
			expectedErr: ErrAlreadyUsed,
		},
		{
			name:        "position filled",
			req:         Request{Input: "Torrico", Target: ClubTarget{ClubID: "slo"}, Lineup: Lineup{"gk": "p9"}},
			expectedErr: ErrNoVacantPosition,
		},
		{
			name:        "position not in formation",
			req:         Request{Input: "Romagnoli", Target: ClubTarget{ClubID: "slo"}},
			expectedErr: ErrNoVacantPosition,
		},
		{
			name:        "empty input",
			req:         Request{Input: "  ", Target: ClubTarget{ClubID: "slo"}},
			expectedErr: ErrEmptyName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.Formation = f433
			if req.Lineup == nil {
				req.Lineup = Lineup{}
			}

			placement, err := Validate(req, testRoster())
			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("Validate() error = %v, expected %v", err, tt.expectedErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error = %v", err)
			}
			if placement.PlayerID != tt.expectedID {
				t.Errorf("PlayerID = %v, expected %v", placement.PlayerID, tt.expectedID)
			}
			if placement.SlotID != tt.expectedSlot {
				t.Errorf("SlotID = %v, expected %v", placement.SlotID, tt.expectedSlot)
			}
		})
	}
}

func TestValidate_FillsSlotsInOrder(t *testing.T) {
	f := mustFormation(t, "4-3-3")
	lineup := Lineup{"rcm": "p8"}

	placement, err := Validate(Request{
		Input:     "Ortigoza",
		Target:    ClubTarget{ClubID: "slo"},
		Formation: f,
		Lineup:    lineup,
	}, testRoster())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if placement.SlotID != "cm" {
		t.Errorf("SlotID = %v, expected cm", placement.SlotID)
	}
}

func TestFormations(t *testing.T) {
	for _, name := range []string{"", "4-3-3", "4-4-2", "3-5-2"} {
		f := mustFormation(t, name)
		if len(f.Slots) != 11 {
			t.Errorf("%s has %d slots, expected 11", f.Name, len(f.Slots))
		}
		seen := map[string]bool{}
		for _, s := range f.Slots {
			if seen[s.ID] {
				t.Errorf("%s has duplicate slot %s", f.Name, s.ID)
			}
			seen[s.ID] = true
		}
	}

	if _, err := LookupFormation("2-3-5"); !errors.Is(err, ErrUnknownFormation) {
		t.Errorf("LookupFormation(2-3-5) error = %v, expected %v", err, ErrUnknownFormation)
	}
}

func TestFormation_Complete(t *testing.T) {
	f := mustFormation(t, "4-3-3")
	lineup := Lineup{}
	for i, s := range f.Slots {
		if f.Complete(lineup) {
			t.Fatalf("Complete() = true with %d players", i)
		}
		lineup[s.ID] = s.ID
	}
	if !f.Complete(lineup) {
		t.Error("Complete() = false with full lineup")
	}
}
