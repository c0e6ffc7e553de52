// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Position is a pitch position a player can occupy.
type Position string

const (
	GK Position = "GK"
	RB Position = "RB"
	CB Position = "CB"
	LB Position = "LB"
	DM Position = "DM"
	CM Position = "CM"
	AM Position = "AM"
	RM Position = "RM"
	LM Position = "LM"
	RW Position = "RW"
	LW Position = "LW"
	ST Position = "ST"
)

// CareerEntry is one club affiliation of a player or coach.
// Dates are YYYY-MM-DD; an empty LeftDate means still at the club.
type CareerEntry struct {
	ClubID     string `json:"clubId"`
	JoinedDate string `json:"joinedDate,omitempty"`
	LeftDate   string `json:"leftDate,omitempty"`
}

// League groups clubs of one competition.
type League struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Club is a football club a site can be themed for.
type Club struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName,omitempty"`
	Country   string `json:"country,omitempty"`
	LeagueID  string `json:"leagueId,omitempty"`
	CrestURL  string `json:"crestUrl,omitempty"`
}

// Player is a footballer with the clubs and positions the games ask about.
type Player struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Nickname    string        `json:"nickname,omitempty"`
	Nationality string        `json:"nationality,omitempty"`
	BirthDate   string        `json:"birthDate,omitempty"`
	Positions   []Position    `json:"positions"`
	Career      []CareerEntry `json:"career"`
	Goals       int           `json:"goals"`
	Appearances int           `json:"appearances"`
}

// PlayedFor reports whether the player has a career entry at clubID.
func (p Player) PlayedFor(clubID string) bool {
	for _, c := range p.Career {
		if c.ClubID == clubID {
			return true
		}
	}
	return false
}

// CanPlay reports whether the player can occupy pos.
func (p Player) CanPlay(pos Position) bool {
	for _, own := range p.Positions {
		if own == pos {
			return true
		}
	}
	return false
}

// Coach is a manager with the clubs they coached.
type Coach struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Nationality string        `json:"nationality,omitempty"`
	CareerPath  []CareerEntry `json:"careerPath"`
}

// Shirt is a kit used by a club in one season.
type Shirt struct {
	ID       string `json:"id"`
	ClubID   string `json:"clubId"`
	Season   string `json:"season"`
	Brand    string `json:"brand,omitempty"`
	Sponsor  string `json:"sponsor,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// DailyGame is the puzzle of one game type for one club on one date.
type DailyGame struct {
	GameType string          `json:"gameType"`
	ClubID   string          `json:"clubId"`
	Date     string          `json:"date"`
	Payload  json.RawMessage `json:"payload"`
}

// User is an account that can save attempts remotely.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Admin        bool   `json:"admin"`
}

// Validate checks required fields of a player.
func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: player name is required", ErrInvalid)
	}
	for _, c := range p.Career {
		if c.ClubID == "" {
			return fmt.Errorf("%w: career entry without club", ErrInvalid)
		}
	}
	return nil
}

// Validate checks required fields of a coach.
func (c Coach) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: coach name is required", ErrInvalid)
	}
	return nil
}

// Validate checks required fields of a club.
func (c Club) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: club name is required", ErrInvalid)
	}
	return nil
}

// Validate checks required fields of a league.
func (l League) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("%w: league name is required", ErrInvalid)
	}
	return nil
}

// Validate checks required fields of a shirt.
func (s Shirt) Validate() error {
	if s.ClubID == "" || s.Season == "" {
		return fmt.Errorf("%w: shirt needs clubId and season", ErrInvalid)
	}
	return nil
}

// Validate checks the schedule key and that the payload is JSON.
func (g DailyGame) Validate() error {
	if g.GameType == "" || g.ClubID == "" {
		return fmt.Errorf("%w: daily game needs gameType and clubId", ErrInvalid)
	}
	if _, err := time.Parse("2006-01-02", g.Date); err != nil {
		return fmt.Errorf("%w: daily game date %q", ErrInvalid, g.Date)
	}
	if !json.Valid(g.Payload) {
		return fmt.Errorf("%w: daily game payload is not JSON", ErrInvalid)
	}
	return nil
}
