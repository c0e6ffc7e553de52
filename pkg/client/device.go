// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/futcuervo/club-trivia/pkg/attempt"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

const deviceSchema = `
CREATE TABLE IF NOT EXISTS device_attempts (
	club_id   TEXT NOT NULL,
	game_type TEXT NOT NULL,
	date      TEXT NOT NULL,
	data      TEXT NOT NULL,
	PRIMARY KEY (club_id, game_type, date)
)`

// DeviceStore keeps the attempts of an anonymous player on the device.
// The owner part of a key is ignored: a device has a single owner.
type DeviceStore struct {
	db *sql.DB
}

// OpenDeviceStore opens (or creates) the SQLite file at path. ":memory:" is accepted.
func OpenDeviceStore(ctx context.Context, path string) (*DeviceStore, error) {
	db, err := sql.Open("sqlite", strings.TrimPrefix(path, "sqlite://"))
	if err != nil {
		return nil, fmt.Errorf("failed to open device store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, deviceSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create device store schema: %w", err)
	}
	return &DeviceStore{db: db}, nil
}

// Close closes the underlying database.
func (s *DeviceStore) Close() error {
	return s.db.Close()
}

// Latest returns the most recent attempt, or nil.
func (s *DeviceStore) Latest(ctx context.Context, key attempt.Key) (*attempt.Attempt, error) {
	return s.one(ctx, `SELECT data FROM device_attempts WHERE club_id = ? AND game_type = ?
		ORDER BY date DESC LIMIT 1`, key.ClubID, string(key.GameType))
}

// Get returns the attempt of a given date, or nil.
func (s *DeviceStore) Get(ctx context.Context, key attempt.Key, date string) (*attempt.Attempt, error) {
	return s.one(ctx, `SELECT data FROM device_attempts WHERE club_id = ? AND game_type = ? AND date = ?`,
		key.ClubID, string(key.GameType), date)
}

// LatestBefore returns the most recent attempt dated strictly before date, or nil.
func (s *DeviceStore) LatestBefore(ctx context.Context, key attempt.Key, date string) (*attempt.Attempt, error) {
	return s.one(ctx, `SELECT data FROM device_attempts WHERE club_id = ? AND game_type = ? AND date < ?
		ORDER BY date DESC LIMIT 1`, key.ClubID, string(key.GameType), date)
}

// Put stores a, replacing any attempt of the same date.
func (s *DeviceStore) Put(ctx context.Context, key attempt.Key, a attempt.Attempt) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal attempt: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO device_attempts (club_id, game_type, date, data) VALUES (?, ?, ?, ?)
		ON CONFLICT (club_id, game_type, date) DO UPDATE SET data = excluded.data`,
		key.ClubID, string(key.GameType), a.Date, string(data))
	if err != nil {
		return fmt.Errorf("failed to store attempt: %w", err)
	}
	return nil
}

// History returns up to limit attempts, newest first. limit <= 0 means all.
func (s *DeviceStore) History(ctx context.Context, key attempt.Key, limit int) ([]attempt.Attempt, error) {
	if limit <= 0 {
		// SQLite treats a negative LIMIT as no limit.
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM device_attempts WHERE club_id = ? AND game_type = ?
		ORDER BY date DESC LIMIT ?`, key.ClubID, string(key.GameType), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []attempt.Attempt
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var a attempt.Attempt
		if err := json.Unmarshal([]byte(data), &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func (s *DeviceStore) one(ctx context.Context, query string, args ...any) (*attempt.Attempt, error) {
	var data string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read attempt: %w", err)
	}

	var a attempt.Attempt
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attempt: %w", err)
	}
	return &a, nil
}
