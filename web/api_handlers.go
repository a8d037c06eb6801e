package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hooprank/hooprank/controller"
	"github.com/hooprank/hooprank/db"
	"github.com/hooprank/hooprank/model"
	"github.com/unrolled/render"
)

// JSON shapes for the /api routes. Kept separate from the model types so the
// wire format stays stable when the model changes.

type playerJSON struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Nickname string         `json:"nickname,omitempty"`
	Position string         `json:"position"`
	Team     string         `json:"team"`
	Height   int            `json:"height_inches,omitempty"`
	Weight   int            `json:"weight_lbs,omitempty"`
	Seasons  int            `json:"seasons,omitempty"`
	Stats    []statLineJSON `json:"stats,omitempty"`
}

type statLineJSON struct {
	Season       string  `json:"season"`
	GamesPlayed  int     `json:"games_played,omitempty"`
	Points       float64 `json:"pts"`
	Rebounds     float64 `json:"reb"`
	Assists      float64 `json:"ast"`
	TrueShooting float64 `json:"ts_pct,omitempty"`
	EffectiveFG  float64 `json:"efg_pct,omitempty"`
}

type editionJSON struct {
	ID        int32       `json:"id"`
	ListName  string      `json:"list"`
	Label     string      `json:"label"`
	Published time.Time   `json:"published"`
	Tiers     []string    `json:"tiers,omitempty"`
	Entries   []entryJSON `json:"entries,omitempty"`
}

type entryJSON struct {
	Rank     int32  `json:"rank"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Team     string `json:"team"`
	Tier     string `json:"tier,omitempty"`
	Movement *int32 `json:"movement,omitempty"`
}

type historyJSON struct {
	PlayerID string          `json:"player_id"`
	ListName string          `json:"list"`
	Trend    model.Trend     `json:"trend"`
	Points   []rankPointJSON `json:"points"`
}

type rankPointJSON struct {
	EditionID int32     `json:"edition_id"`
	Label     string    `json:"label"`
	Published time.Time `json:"published"`
	Rank      int32     `json:"rank"`
}

type errorJSON struct {
	Error string `json:"error"`
}

func toPlayerJSON(p *model.Player) playerJSON {
	out := playerJSON{
		ID:       p.ID,
		Name:     p.FullName(),
		Nickname: p.Nickname1,
		Position: string(p.Position),
		Height:   p.Height,
		Weight:   p.Weight,
		Seasons:  p.Seasons,
	}
	if p.Team != nil {
		out.Team = p.Team.String()
	}
	return out
}

func toStatLineJSON(s *model.StatLine) statLineJSON {
	return statLineJSON{
		Season:       s.Season,
		GamesPlayed:  s.GamesPlayed,
		Points:       s.Points,
		Rebounds:     s.Rebounds,
		Assists:      s.Assists,
		TrueShooting: s.TrueShooting,
		EffectiveFG:  s.EffectiveFG,
	}
}

func toEditionJSON(e *model.Edition, includeEntries bool) editionJSON {
	out := editionJSON{
		ID:        e.ID,
		ListName:  e.ListName,
		Label:     e.Label,
		Published: e.Published,
	}
	for _, t := range e.Tiers {
		out.Tiers = append(out.Tiers, t.Name)
	}
	if !includeEntries {
		return out
	}
	for _, entry := range e.Entries {
		ej := entryJSON{
			Rank:     entry.Rank,
			PlayerID: entry.PlayerID,
			Name:     entry.FirstName + " " + entry.LastName,
			Position: string(entry.Position),
			Tier:     entry.Tier,
			Movement: entry.Movement,
		}
		if entry.Team != nil {
			ej.Team = entry.Team.String()
		}
		out.Entries = append(out.Entries, ej)
	}
	return out
}

func searchPlayersJSONHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			render.JSON(w, http.StatusBadRequest, errorJSON{Error: "q is required"})
			return
		}

		results, err := ctrl.Search(r.Context(), query)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorJSON{Error: err.Error()})
			return
		}

		out := make([]playerJSON, 0, len(results))
		for i := range results {
			out = append(out, toPlayerJSON(&results[i]))
		}
		render.JSON(w, http.StatusOK, out)
	}
}

func getPlayerJSONHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerID")
		p, err := ctrl.GetPlayer(r.Context(), playerID)
		if err != nil {
			if errors.Is(err, db.ErrPlayerNotFound) {
				render.JSON(w, http.StatusNotFound, errorJSON{Error: "player not found"})
			} else {
				render.JSON(w, http.StatusInternalServerError, errorJSON{Error: err.Error()})
			}
			return
		}

		out := toPlayerJSON(p)
		stats, err := ctrl.GetStatLines(r.Context(), playerID)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorJSON{Error: err.Error()})
			return
		}
		for i := range stats {
			out.Stats = append(out.Stats, toStatLineJSON(&stats[i]))
		}

		render.JSON(w, http.StatusOK, out)
	}
}

func rankHistoryJSONHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerID")
		list := r.URL.Query().Get("list")
		if list == "" {
			list = model.ListTop100
		}

		h, err := ctrl.GetRankHistory(r.Context(), playerID, list)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorJSON{Error: err.Error()})
			return
		}

		out := historyJSON{
			PlayerID: h.PlayerID,
			ListName: h.ListName,
			Trend:    h.Trend(),
			Points:   make([]rankPointJSON, 0, len(h.Points)),
		}
		for _, p := range h.Points {
			out.Points = append(out.Points, rankPointJSON{
				EditionID: p.EditionID,
				Label:     p.Label,
				Published: p.Published,
				Rank:      p.Rank,
			})
		}
		render.JSON(w, http.StatusOK, out)
	}
}

func listEditionsJSONHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		editions, err := ctrl.ListEditions(r.Context())
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorJSON{Error: err.Error()})
			return
		}

		out := make([]editionJSON, 0, len(editions))
		for i := range editions {
			out = append(out, toEditionJSON(&editions[i], false))
		}
		render.JSON(w, http.StatusOK, out)
	}
}

func editionJSONHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "editionID"))
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorJSON{Error: "invalid edition id"})
			return
		}

		edition, err := ctrl.GetEdition(r.Context(), int32(id))
		if err != nil {
			if errors.Is(err, db.ErrEditionNotFound) {
				render.JSON(w, http.StatusNotFound, errorJSON{Error: "edition not found"})
			} else {
				render.JSON(w, http.StatusInternalServerError, errorJSON{Error: err.Error()})
			}
			return
		}

		render.JSON(w, http.StatusOK, toEditionJSON(edition, true))
	}
}
