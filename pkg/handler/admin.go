// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/futcuervo/club-trivia/pkg/catalog"
)

// adminResource is the CRUD surface of one catalog kind.
type adminResource interface {
	list(ctx context.Context) (any, error)
	get(ctx context.Context, id string) (any, error)
	create(ctx context.Context, r *http.Request) (any, error)
	update(ctx context.Context, id string, r *http.Request) (any, error)
	remove(ctx context.Context, id string) error
}

type tableResource[T any] struct {
	table *catalog.Table[T]
}

func (t tableResource[T]) list(ctx context.Context) (any, error) {
	items, err := t.table.List(ctx)
	if items == nil {
		items = []T{}
	}
	return items, err
}

func (t tableResource[T]) get(ctx context.Context, id string) (any, error) {
	return t.table.Get(ctx, id)
}

func (t tableResource[T]) create(ctx context.Context, r *http.Request) (any, error) {
	var item T
	if err := decodeJSON(r, &item); err != nil {
		return nil, err
	}
	return t.table.Create(ctx, item)
}

func (t tableResource[T]) update(ctx context.Context, id string, r *http.Request) (any, error) {
	var item T
	if err := decodeJSON(r, &item); err != nil {
		return nil, err
	}
	t.table.SetID(&item, id)
	return t.table.Update(ctx, item)
}

func (t tableResource[T]) remove(ctx context.Context, id string) error {
	return t.table.Delete(ctx, id)
}

func adminResources(repo *catalog.Repository) map[string]adminResource {
	if repo == nil {
		return nil
	}
	return map[string]adminResource{
		repo.Players.Kind(): tableResource[catalog.Player]{repo.Players},
		repo.Coaches.Kind(): tableResource[catalog.Coach]{repo.Coaches},
		repo.Clubs.Kind():   tableResource[catalog.Club]{repo.Clubs},
		repo.Leagues.Kind(): tableResource[catalog.League]{repo.Leagues},
		repo.Shirts.Kind():  tableResource[catalog.Shirt]{repo.Shirts},
	}
}

func (h *Handler) resource(r *http.Request) (adminResource, error) {
	kind := r.PathValue("kind")
	res, ok := h.admin[kind]
	if !ok {
		return nil, fmt.Errorf("admin kind %q: %w", kind, catalog.ErrNotFound)
	}
	return res, nil
}

func (h *Handler) adminList(w http.ResponseWriter, r *http.Request) {
	res, err := h.resource(r)
	if err != nil {
		writeError(w, err)
		return
	}
	items, err := res.list(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) adminGet(w http.ResponseWriter, r *http.Request) {
	res, err := h.resource(r)
	if err != nil {
		writeError(w, err)
		return
	}
	item, err := res.get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) adminCreate(w http.ResponseWriter, r *http.Request) {
	res, err := h.resource(r)
	if err != nil {
		writeError(w, err)
		return
	}
	item, err := res.create(r.Context(), r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) adminUpdate(w http.ResponseWriter, r *http.Request) {
	res, err := h.resource(r)
	if err != nil {
		writeError(w, err)
		return
	}
	item, err := res.update(r.Context(), r.PathValue("id"), r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) adminDelete(w http.ResponseWriter, r *http.Request) {
	res, err := h.resource(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := res.remove(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// putDailyGames schedules a batch of daily puzzles.
func (h *Handler) putDailyGames(w http.ResponseWriter, r *http.Request) {
	var games []catalog.DailyGame
	if err := decodeJSON(r, &games); err != nil {
		writeError(w, err)
		return
	}
	if err := h.catalog.PutDailyGames(r.Context(), games); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"scheduled": len(games)})
}
