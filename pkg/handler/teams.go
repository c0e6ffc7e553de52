// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/futcuervo/club-trivia/pkg/attempt"
	"github.com/futcuervo/club-trivia/pkg/catalog"
	"github.com/futcuervo/club-trivia/pkg/metrics"
	"github.com/futcuervo/club-trivia/pkg/teambuilder"

	"github.com/samber/lo"
)

type validateRequest struct {
	Input     string             `json:"input"`
	ClubID    string             `json:"clubId"`
	LeagueID  string             `json:"leagueId"`
	Country   string             `json:"country"`
	Formation string             `json:"formation"`
	Lineup    teambuilder.Lineup `json:"lineup"`
	Used      []string           `json:"used"`
}

type validateResponse struct {
	Placement teambuilder.Placement `json:"placement"`
	Complete  bool                  `json:"complete"`
}

type rejectionBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// rejectionReason is the machine-readable reason a guess was refused.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, teambuilder.ErrNotFound):
		return "not-found"
	case errors.Is(err, teambuilder.ErrWrongClub):
		return "wrong-club"
	case errors.Is(err, teambuilder.ErrAlreadyUsed):
		return "already-used"
	case errors.Is(err, teambuilder.ErrAmbiguous):
		return "ambiguous"
	case errors.Is(err, teambuilder.ErrNoVacantPosition):
		return "no-vacant-position"
	default:
		return ""
	}
}

func (h *Handler) validateTeam(w http.ResponseWriter, r *http.Request) {
	gameType, err := pathGameType(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req validateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	target, err := h.teamTarget(r, gameType, req)
	if err != nil {
		writeError(w, err)
		return
	}
	formation, err := teambuilder.LookupFormation(req.Formation)
	if err != nil {
		writeError(w, err)
		return
	}
	roster, err := h.catalog.Players.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if req.Lineup == nil {
		req.Lineup = teambuilder.Lineup{}
	}

	placement, err := teambuilder.Validate(teambuilder.Request{
		Input:     req.Input,
		Target:    target,
		Formation: formation,
		Lineup:    req.Lineup,
		Used:      req.Used,
	}, roster)
	if reason := rejectionReason(err); reason != "" {
		metrics.ValidationsTotal.WithLabelValues(string(gameType), reason).Inc()
		writeJSON(w, http.StatusUnprocessableEntity, rejectionBody{Error: err.Error(), Reason: reason})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.ValidationsTotal.WithLabelValues(string(gameType), "placed").Inc()
	req.Lineup[placement.SlotID] = placement.PlayerID
	writeJSON(w, http.StatusOK, validateResponse{Placement: placement, Complete: formation.Complete(req.Lineup)})
}

func (h *Handler) teamTarget(r *http.Request, gameType attempt.GameType, req validateRequest) (teambuilder.Target, error) {
	switch gameType {
	case attempt.GameLeagueTeam:
		if req.LeagueID == "" {
			return nil, fmt.Errorf("%w: leagueId is required", errBadRequest)
		}
		clubs, err := h.catalog.ClubsInLeague(r.Context(), req.LeagueID)
		if err != nil {
			return nil, err
		}
		if len(clubs) == 0 {
			return nil, fmt.Errorf("league %s: %w", req.LeagueID, catalog.ErrNotFound)
		}
		ids := lo.Map(clubs, func(c catalog.Club, _ int) string { return c.ID })
		return teambuilder.LeagueTarget{LeagueID: req.LeagueID, ClubIDs: ids}, nil
	case attempt.GameNationalTeam:
		if req.Country == "" {
			return nil, fmt.Errorf("%w: country is required", errBadRequest)
		}
		return teambuilder.NationalTarget{Country: req.Country}, nil
	default:
		if req.ClubID == "" {
			return nil, fmt.Errorf("%w: %s has no team builder", errBadRequest, gameType)
		}
		return teambuilder.ClubTarget{ClubID: req.ClubID}, nil
	}
}
