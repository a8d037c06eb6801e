package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hooprank/hooprank/controller"
	"github.com/hooprank/hooprank/db"
	"github.com/hooprank/hooprank/model"
	"github.com/unrolled/render"
)

func rootHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		editions, err := ctrl.ListEditions(r.Context())
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}

		data := map[string]any{
			"editions": editions,
			"editor":   ctrl.EditorSignedIn(r.Context()),
		}
		render.HTML(w, http.StatusOK, "home", data)
	}
}

func playerSearchHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")

		var err error
		var results []model.Player = nil
		if query != "" {
			results, err = ctrl.Search(r.Context(), query)
			if err != nil {
				render.HTML(w, http.StatusInternalServerError, "500", err.Error())
				return
			}
		}

		data := map[string]any{
			"q":       query,
			"results": results,
		}
		render.HTML(w, http.StatusOK, "playerSearch", data)
	}
}

func getPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerID")
		p, err := ctrl.GetPlayer(r.Context(), playerID)
		if err != nil {
			if errors.Is(err, db.ErrPlayerNotFound) {
				render.HTML(w, http.StatusNotFound, "404", "player not found")
			} else {
				render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			}
			return
		}

		stats, err := ctrl.GetStatLines(r.Context(), playerID)
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}

		histories := make(map[string]*model.RankHistory)
		for _, list := range []string{model.ListTop100, model.ListTradeValue} {
			h, err := ctrl.GetRankHistory(r.Context(), playerID, list)
			if err != nil {
				render.HTML(w, http.StatusInternalServerError, "500", err.Error())
				return
			}
			if len(h.Points) > 0 {
				histories[list] = h
			}
		}

		data := map[string]any{
			"player":    p,
			"age":       p.Age(time.Now()),
			"stats":     stats,
			"histories": histories,
		}
		render.HTML(w, http.StatusOK, "player", data)
	}
}

func updatePlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}

		playerID := chi.URLParam(r, "playerID")

		updating := r.PostForm.Get("update")
		if updating == "nickname" {
			nn := r.PostForm.Get("nickname")
			err := ctrl.UpdatePlayerNickname(r.Context(), playerID, nn)
			if err != nil {
				render.HTML(w, http.StatusInternalServerError, "500", err.Error())
				return
			}
		} else {
			render.HTML(w, http.StatusBadRequest, "400", fmt.Sprintf("unknown update type: %s", updating))
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/players/%s", playerID), http.StatusSeeOther)
	}
}

func rankHistoryHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerID")
		list := r.URL.Query().Get("list")
		if list == "" {
			list = model.ListTop100
		}

		h, err := ctrl.GetRankHistory(r.Context(), playerID, list)
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}

		data := map[string]any{
			"playerID": playerID,
			"history":  h,
		}
		render.HTML(w, http.StatusOK, "history", data)
	}
}

func editionsRootHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		editions, err := ctrl.ListEditions(r.Context())
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}
		render.HTML(w, http.StatusOK, "editions", editions)
	}
}

// tierGroup is an edition's entries bucketed for display. The top 100 list
// has a single unnamed group.
type tierGroup struct {
	Name    string
	Entries []model.Entry
}

func editionHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "editionID"))
		if err != nil {
			render.HTML(w, http.StatusBadRequest, "400", fmt.Sprintf("error parsing edition id: %v", err))
			return
		}

		edition, err := ctrl.GetEdition(r.Context(), int32(id))
		if err != nil {
			if errors.Is(err, db.ErrEditionNotFound) {
				render.HTML(w, http.StatusNotFound, "404", "edition not found")
			} else {
				render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			}
			return
		}

		data := map[string]any{
			"edition": edition,
			"groups":  groupEntries(edition),
		}
		render.HTML(w, http.StatusOK, "edition", data)
	}
}

func groupEntries(e *model.Edition) []tierGroup {
	if len(e.Tiers) == 0 {
		return []tierGroup{{Entries: e.Entries}}
	}

	groups := make([]tierGroup, 0, len(e.Tiers))
	for _, t := range e.Tiers {
		g := tierGroup{Name: t.Name}
		for _, entry := range e.Entries {
			if entry.Tier == t.Name {
				g.Entries = append(g.Entries, entry)
			}
		}
		groups = append(groups, g)
	}
	return groups
}

func editionPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "editionID"))
		if err != nil {
			render.HTML(w, http.StatusBadRequest, "400", fmt.Sprintf("error parsing edition id: %v", err))
			return
		}
		playerID := chi.URLParam(r, "playerID")

		edition, err := ctrl.GetEdition(r.Context(), int32(id))
		if err != nil {
			render.HTML(w, http.StatusNotFound, "404", fmt.Sprintf("edition not found: %v", err))
			return
		}

		var entry *model.Entry
		for i := range edition.Entries {
			if edition.Entries[i].PlayerID == playerID {
				entry = &edition.Entries[i]
				break
			}
		}
		if entry == nil {
			render.HTML(w, http.StatusNotFound, "404", "player is not in this edition")
			return
		}

		commentary, err := ctrl.GetCommentary(r.Context(), int32(id), playerID)
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}

		data := map[string]any{
			"edition":    edition,
			"entry":      entry,
			"commentary": commentary,
		}
		render.HTML(w, http.StatusOK, "editionPlayer", data)
	}
}

func ingestEditionHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}

		pageURL := r.PostForm.Get("page-url")
		if pageURL == "" {
			render.HTML(w, http.StatusBadRequest, "400", "page-url is required")
			return
		}

		edition, err := ctrl.IngestEdition(r.Context(), pageURL)
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/editions/%d", edition.ID), http.StatusSeeOther)
	}
}

func deleteEditionHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "editionID"))
		if err != nil {
			render.HTML(w, http.StatusBadRequest, "400", fmt.Sprintf("error parsing edition id: %v", err))
			return
		}

		if err := ctrl.DeleteEdition(r.Context(), int32(id)); err != nil {
			if errors.Is(err, db.ErrEditionNotFound) {
				render.HTML(w, http.StatusNotFound, "404", "edition not found")
			} else {
				render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			}
			return
		}

		http.Redirect(w, r, "/editions", http.StatusSeeOther)
	}
}
