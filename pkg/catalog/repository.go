// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Repository is the catalog of reference entities, daily games and users.
type Repository struct {
	db *DB

	Leagues *Table[League]
	Clubs   *Table[Club]
	Players *Table[Player]
	Coaches *Table[Coach]
	Shirts  *Table[Shirt]
}

// NewRepository builds a repository on an opened and migrated database.
func NewRepository(db *DB) *Repository {
	return &Repository{
		db:      db,
		Leagues: newTable(db, leagueEntity),
		Clubs:   newTable(db, clubEntity),
		Players: newTable(db, playerEntity),
		Coaches: newTable(db, coachEntity),
		Shirts:  newTable(db, shirtEntity),
	}
}

var leagueEntity = entity[League]{
	table:   "leagues",
	columns: []string{"id", "name", "country"},
	values: func(l League) ([]any, error) {
		return []any{l.ID, l.Name, l.Country}, nil
	},
	scan: func(s scanner) (League, error) {
		var l League
		err := s.Scan(&l.ID, &l.Name, &l.Country)
		return l, err
	},
	id:    func(l *League) *string { return &l.ID },
	check: League.Validate,
}

var clubEntity = entity[Club]{
	table:   "clubs",
	columns: []string{"id", "name", "short_name", "country", "league_id", "crest_url"},
	values: func(c Club) ([]any, error) {
		return []any{c.ID, c.Name, c.ShortName, c.Country, c.LeagueID, c.CrestURL}, nil
	},
	scan: func(s scanner) (Club, error) {
		var c Club
		err := s.Scan(&c.ID, &c.Name, &c.ShortName, &c.Country, &c.LeagueID, &c.CrestURL)
		return c, err
	},
	id:    func(c *Club) *string { return &c.ID },
	check: Club.Validate,
}

var playerEntity = entity[Player]{
	table:   "players",
	columns: []string{"id", "name", "nickname", "nationality", "birth_date", "positions", "career", "goals", "appearances"},
	values: func(p Player) ([]any, error) {
		positions, err := encodeJSON(p.Positions)
		if err != nil {
			return nil, err
		}
		career, err := encodeJSON(p.Career)
		if err != nil {
			return nil, err
		}
		return []any{p.ID, p.Name, p.Nickname, p.Nationality, p.BirthDate, positions, career, p.Goals, p.Appearances}, nil
	},
	scan: func(s scanner) (Player, error) {
		var (
			p                 Player
			positions, career string
		)
		if err := s.Scan(&p.ID, &p.Name, &p.Nickname, &p.Nationality, &p.BirthDate, &positions, &career, &p.Goals, &p.Appearances); err != nil {
			return p, err
		}
		if err := json.Unmarshal([]byte(positions), &p.Positions); err != nil {
			return p, fmt.Errorf("player %s positions: %w", p.ID, err)
		}
		if err := json.Unmarshal([]byte(career), &p.Career); err != nil {
			return p, fmt.Errorf("player %s career: %w", p.ID, err)
		}
		return p, nil
	},
	id:    func(p *Player) *string { return &p.ID },
	check: Player.Validate,
}

var coachEntity = entity[Coach]{
	table:   "coaches",
	columns: []string{"id", "name", "nationality", "career_path"},
	values: func(c Coach) ([]any, error) {
		path, err := encodeJSON(c.CareerPath)
		if err != nil {
			return nil, err
		}
		return []any{c.ID, c.Name, c.Nationality, path}, nil
	},
	scan: func(s scanner) (Coach, error) {
		var (
			c    Coach
			path string
		)
		if err := s.Scan(&c.ID, &c.Name, &c.Nationality, &path); err != nil {
			return c, err
		}
		if err := json.Unmarshal([]byte(path), &c.CareerPath); err != nil {
			return c, fmt.Errorf("coach %s career path: %w", c.ID, err)
		}
		return c, nil
	},
	id:    func(c *Coach) *string { return &c.ID },
	check: Coach.Validate,
}

var shirtEntity = entity[Shirt]{
	table:   "shirts",
	columns: []string{"id", "club_id", "season", "brand", "sponsor", "image_url"},
	values: func(s Shirt) ([]any, error) {
		return []any{s.ID, s.ClubID, s.Season, s.Brand, s.Sponsor, s.ImageURL}, nil
	},
	scan: func(sc scanner) (Shirt, error) {
		var s Shirt
		err := sc.Scan(&s.ID, &s.ClubID, &s.Season, &s.Brand, &s.Sponsor, &s.ImageURL)
		return s, err
	},
	id:    func(s *Shirt) *string { return &s.ID },
	check: Shirt.Validate,
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(b) == "null" {
		return "[]", nil
	}
	return string(b), nil
}

// ClubsInLeague returns the clubs registered under a league.
func (r *Repository) ClubsInLeague(ctx context.Context, leagueID string) ([]Club, error) {
	return r.Clubs.where(ctx, "league_id = ?", leagueID)
}

// ShirtsForClub returns a club's shirts.
func (r *Repository) ShirtsForClub(ctx context.Context, clubID string) ([]Shirt, error) {
	return r.Shirts.where(ctx, "club_id = ?", clubID)
}

// PlayersForClubs returns players with a career entry at any of clubIDs.
// Career is a JSON column, so the filter runs in memory.
func (r *Repository) PlayersForClubs(ctx context.Context, clubIDs []string) ([]Player, error) {
	all, err := r.Players.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []Player
	for _, p := range all {
		for _, id := range clubIDs {
			if p.PlayedFor(id) {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

// PlayersByNationality returns players of one country, case-insensitive.
func (r *Repository) PlayersByNationality(ctx context.Context, country string) ([]Player, error) {
	return r.Players.where(ctx, "LOWER(nationality) = ?", strings.ToLower(country))
}

// DailyGame returns the puzzle scheduled for a game type, club and date.
func (r *Repository) DailyGame(ctx context.Context, gameType, clubID, date string) (DailyGame, error) {
	g := DailyGame{GameType: gameType, ClubID: clubID, Date: date}
	var payload string
	err := r.db.queryRow(ctx,
		`SELECT payload FROM daily_games WHERE game_type = ? AND club_id = ? AND date = ?`,
		gameType, clubID, date).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return g, fmt.Errorf("daily %s for %s on %s: %w", gameType, clubID, date, ErrNotFound)
	}
	if err != nil {
		return g, fmt.Errorf("failed to get daily game: %w", err)
	}
	g.Payload = []byte(payload)
	return g, nil
}

// PutDailyGames schedules puzzles, replacing any already set for the same
// game type, club and date.
func (r *Repository) PutDailyGames(ctx context.Context, games []DailyGame) error {
	for _, g := range games {
		if err := g.Validate(); err != nil {
			return err
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin daily games tx: %w", err)
	}
	del := r.db.Rebind(`DELETE FROM daily_games WHERE game_type = ? AND club_id = ? AND date = ?`)
	ins := r.db.Rebind(`INSERT INTO daily_games (game_type, club_id, date, payload) VALUES (?, ?, ?, ?)`)
	for _, g := range games {
		if _, err := tx.ExecContext(ctx, del, g.GameType, g.ClubID, g.Date); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to replace daily game: %w", err)
		}
		if _, err := tx.ExecContext(ctx, ins, g.GameType, g.ClubID, g.Date, string(g.Payload)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert daily game: %w", err)
		}
	}
	return tx.Commit()
}

// CreateUser stores a new account. Usernames are unique.
func (r *Repository) CreateUser(ctx context.Context, u User) (User, error) {
	if _, err := r.UserByUsername(ctx, u.Username); err == nil {
		return u, fmt.Errorf("user %s: %w", u.Username, ErrConflict)
	} else if !errors.Is(err, ErrNotFound) {
		return u, err
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := r.db.exec(ctx,
		`INSERT INTO users (id, username, password_hash, admin) VALUES (?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, u.Admin)
	if err != nil {
		return u, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// UserByUsername looks up an account by its login name.
func (r *Repository) UserByUsername(ctx context.Context, username string) (User, error) {
	return r.user(ctx, "username", username)
}

// UserByID looks up an account by ID.
func (r *Repository) UserByID(ctx context.Context, id string) (User, error) {
	return r.user(ctx, "id", id)
}

func (r *Repository) user(ctx context.Context, column, value string) (User, error) {
	var u User
	err := r.db.queryRow(ctx,
		fmt.Sprintf(`SELECT id, username, password_hash, admin FROM users WHERE %s = ?`, column),
		value).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Admin)
	if errors.Is(err, sql.ErrNoRows) {
		return u, fmt.Errorf("user %s: %w", value, ErrNotFound)
	}
	if err != nil {
		return u, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
