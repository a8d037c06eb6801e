package web

import (
	"net/http"

	"github.com/hooprank/hooprank/controller"
	"github.com/unrolled/render"
)

func oauthLoginHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, err := ctrl.OAuthStart()
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}
		http.Redirect(w, r, url, http.StatusTemporaryRedirect)
	}
}

func oauthRedirectHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := r.URL.Query().Get("state")
		code := r.URL.Query().Get("code")
		if state == "" || code == "" {
			render.HTML(w, http.StatusBadRequest, "400", "missing state or code")
			return
		}

		if err := ctrl.OAuthExchange(r.Context(), state, code); err != nil {
			render.HTML(w, http.StatusUnauthorized, "401", err.Error())
			return
		}

		// The state doubles as the session id once the exchange succeeds.
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    state,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
