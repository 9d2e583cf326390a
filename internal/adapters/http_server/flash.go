package httpserver

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

// One status message at a time, carried in a cookie that expires after five
// seconds. A new message overwrites the old one, and a page rendered after
// the window sees nothing.

const (
	flashCookie = "hbnb_flash"
	flashTTL    = 5 * time.Second
)

type Message struct {
	Text string
	Kind string // success | warning | error
}

func setFlash(w http.ResponseWriter, m Message) {
	v := base64.URLEncoding.EncodeToString([]byte(m.Kind + "|" + m.Text))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    v,
		Path:     "/",
		MaxAge:   int(flashTTL.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads the pending message, if any, and expires the cookie so it
// shows exactly once.
func popFlash(w http.ResponseWriter, r *http.Request) *Message {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:    flashCookie,
		Value:   "",
		Path:    "/",
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	})
	b, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	kind, text, ok := strings.Cut(string(b), "|")
	if !ok {
		return nil
	}
	switch kind {
	case "success", "warning", "error":
		return &Message{Text: text, Kind: kind}
	}
	return nil
}
