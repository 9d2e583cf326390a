// internal/adapters/http_server/handlers.go
package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hbnb_web/internal/app"
	"hbnb_web/internal/domain"
	"hbnb_web/internal/session"
)

type Handlers struct {
	Views      *app.ViewService
	Auth       *app.AuthService
	Reviews    *app.ReviewService
	Tokens     session.Store
	SessionTTL time.Duration
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.index)
	s.mux.Get("/login", h.loginPage)
	s.mux.Post("/login", h.login)
	s.mux.Post("/logout", h.logout)
	s.mux.Get("/place", h.placeDetail)
	s.mux.Get("/add-review", h.addReviewPage)
	s.mux.Post("/reviews", h.submitReview)
	s.mux.Handle("/static/*", http.FileServer(http.FS(staticFS)))
}

// token reads the bearer token; an error degrades to anonymous rather than
// breaking the page.
func (h *Handlers) token(r *http.Request) string {
	tok, err := h.Tokens.Get(r)
	if err != nil {
		log.Warn().Err(err).Msg("token store read failed")
		return ""
	}
	return tok
}

type NoticeView struct {
	Authenticated bool
	Message       *Message
	Target        string
}

// notice renders a one-message page that continues to target after delay
// seconds. The delay rides in the Refresh header (and the meta tag), so the
// behavior is response data, not a server-side timer.
func (h *Handlers) notice(w http.ResponseWriter, r *http.Request, status int, m Message, target string, delaySec int) {
	w.Header().Set("Refresh", fmt.Sprintf("%d; url=%s", delaySec, target))
	h.render(w, status, "notice", NoticeView{
		Authenticated: h.token(r) != "",
		Message:       &m,
		Target:        target,
	})
}

// ---- places list ----

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	token := h.token(r)

	filterValue := r.URL.Query().Get("max_price")
	var (
		places []domain.Place
		err    error
	)
	if filterValue == "" {
		// plain page load
		filterValue = "all"
		places, err = h.Views.ListPlaces(r.Context(), token)
	} else {
		// filter change; local vs refetch profile decided by the service
		places, err = h.Views.PlacesForFilter(r.Context(), token)
	}
	if err != nil {
		msg := "Failed to load places."
		if errors.Is(err, domain.ErrInvalidFormat) {
			msg = "Invalid data format."
		}
		v := BuildPlacesView(nil, domain.PriceFilter{All: true}, h.Views.FilterMode(), token != "", "all")
		v.Message = &Message{Text: msg, Kind: "error"}
		h.render(w, http.StatusBadGateway, "index", v)
		return
	}

	v := BuildPlacesView(places, ParsePriceFilter(filterValue), h.Views.FilterMode(), token != "", filterValue)
	v.Message = popFlash(w, r)
	h.render(w, http.StatusOK, "index", v)
}

// ---- auth ----

func (h *Handlers) loginPage(w http.ResponseWriter, r *http.Request) {
	v := LoginView{Authenticated: h.token(r) != ""}
	v.Message = popFlash(w, r)
	h.render(w, http.StatusOK, "login", v)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, "login", LoginView{Message: &Message{Text: "Invalid form.", Kind: "error"}})
		return
	}
	email := r.FormValue("email")
	password := r.FormValue("password")

	token, err := h.Auth.Login(r.Context(), email, password)
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		h.render(w, http.StatusUnauthorized, "login", LoginView{Message: &Message{Text: "Wrong credentials.", Kind: "error"}})
		return
	case errors.Is(err, domain.ErrInvalidFormat):
		h.render(w, http.StatusBadGateway, "login", LoginView{Message: &Message{Text: "No token received.", Kind: "error"}})
		return
	case err != nil:
		h.render(w, http.StatusBadGateway, "login", LoginView{Message: &Message{Text: "Connection failed.", Kind: "error"}})
		return
	}

	if err := h.Tokens.Set(w, r, token, h.SessionTTL); err != nil {
		log.Error().Err(err).Msg("token store write failed")
		h.render(w, http.StatusInternalServerError, "login", LoginView{Message: &Message{Text: "Connection failed.", Kind: "error"}})
		return
	}
	h.notice(w, r, http.StatusOK, Message{Text: "Welcome to the lab!", Kind: "success"}, "/", 1)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Tokens.Clear(w, r); err != nil {
		log.Warn().Err(err).Msg("token store clear failed")
	}
	w.Header().Set("Refresh", "1; url=/")
	h.render(w, http.StatusOK, "notice", NoticeView{
		Authenticated: false,
		Message:       &Message{Text: "Logged out successfully!", Kind: "success"},
		Target:        "/",
	})
}

// ---- place detail ----

func placeID(r *http.Request) (string, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func (h *Handlers) placeDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := placeID(r)
	if !ok {
		h.notice(w, r, http.StatusOK, Message{Text: "No place ID provided.", Kind: "error"}, "/", 2)
		return
	}
	token := h.token(r)

	place, err := h.Views.GetPlace(r.Context(), token, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.notice(w, r, http.StatusNotFound, Message{Text: "Place not found.", Kind: "error"}, "/", 2)
		return
	case err != nil:
		h.notice(w, r, http.StatusBadGateway, Message{Text: "Failed to load.", Kind: "error"}, "/", 2)
		return
	}

	v := BuildDetailView(place, token != "")
	v.Message = popFlash(w, r)
	h.render(w, http.StatusOK, "place", v)
}

// ---- review submission ----

func (h *Handlers) addReviewPage(w http.ResponseWriter, r *http.Request) {
	token := h.token(r)
	if token == "" {
		h.notice(w, r, http.StatusOK, Message{Text: "You must be logged in.", Kind: "warning"}, "/", 2)
		return
	}
	id, ok := placeID(r)
	if !ok {
		h.notice(w, r, http.StatusOK, Message{Text: "No place ID provided.", Kind: "error"}, "/", 2)
		return
	}
	v := AddReviewView{PlaceID: id, Authenticated: true}
	v.Message = popFlash(w, r)
	h.render(w, http.StatusOK, "add_review", v)
}

func (h *Handlers) submitReview(w http.ResponseWriter, r *http.Request) {
	token := h.token(r)
	if token == "" {
		h.notice(w, r, http.StatusOK, Message{Text: "You must be logged in.", Kind: "warning"}, "/", 2)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.notice(w, r, http.StatusOK, Message{Text: "Please fill all fields.", Kind: "warning"}, "/", 2)
		return
	}

	id := r.FormValue("place_id")
	if _, err := uuid.Parse(id); id == "" || err != nil {
		h.notice(w, r, http.StatusOK, Message{Text: "No place ID provided.", Kind: "error"}, "/", 2)
		return
	}
	source := r.FormValue("source") // detail | page
	origin := "/place?id=" + id
	if source == "page" {
		origin = "/add-review?id=" + id
	}

	rating, _ := strconv.Atoi(r.FormValue("rating"))
	draft := domain.ReviewDraft{
		PlaceID: id,
		Text:    r.FormValue("text"),
		Rating:  rating,
	}

	err := h.Reviews.Submit(r.Context(), token, draft)
	switch {
	case errors.Is(err, domain.ErrValidationFailed):
		// local precondition, no network call happened
		setFlash(w, Message{Text: "Please fill all fields.", Kind: "warning"})
		http.Redirect(w, r, origin, http.StatusSeeOther)
		return
	case errors.Is(err, domain.ErrUnauthorized):
		setFlash(w, Message{Text: "Please login again.", Kind: "error"})
		http.Redirect(w, r, origin, http.StatusSeeOther)
		return
	case err != nil:
		setFlash(w, Message{Text: "Failed to submit.", Kind: "error"})
		http.Redirect(w, r, origin, http.StatusSeeOther)
		return
	}

	// success: the two entry points part ways only in wording and delay
	if source == "page" {
		h.notice(w, r, http.StatusOK, Message{Text: "Review submitted! Redirecting...", Kind: "success"}, "/place?id="+id, 2)
		return
	}
	h.notice(w, r, http.StatusOK, Message{Text: "Review submitted!", Kind: "success"}, "/place?id="+id, 1)
}
