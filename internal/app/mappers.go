package app

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hbnb_web/internal/domain"
)

/********** alias registries (single source of truth) **********/

// Resolution order matters: the first non-empty alias wins. These encode the
// scattered per-call-site fallbacks of the two legacy front ends.
var placeAliases = map[string][]string{
	"id":          {"id", "place_id", "uuid"},
	"name":        {"name", "title"},
	"description": {"description", "desc"},
	"image":       {"image_url", "image", "picture_url"},
}

var placePriceAliases = []string{"price", "price_per_night", "price_by_night"}

var reviewAliases = map[string][]string{
	"text":   {"text", "comment", "review", "content"},
	"first":  {"user.first_name", "user.firstName", "author.first_name", "first_name"},
	"last":   {"user.last_name", "user.lastName", "author.last_name", "last_name"},
	"rating": {"rating", "rate", "score"},
}

var ownerKeys = []string{"owner", "host", "user"}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

/********** place mappers **********/

// MapPlace normalizes one raw place payload (summary or detail) into the
// canonical shape. Unknown shapes degrade to zero fields, never errors: the
// render layer owns the user-facing fallbacks.
func MapPlace(p map[string]any) domain.Place {
	raw, err := json.Marshal(p)
	if err != nil {
		log.Error().Err(err).Str("context", "MapPlace").Msg("failed to marshal place to JSON")
	}

	pl := domain.Place{
		ID:          firstNonEmptyAlias(p, placeAliases, "id"),
		Name:        firstNonEmptyAlias(p, placeAliases, "name"),
		Description: firstNonEmptyAlias(p, placeAliases, "description"),
		ImageURL:    firstNonEmptyAlias(p, placeAliases, "image"),
		Price:       getFloatFlexible(p, placePriceAliases...),
		RawJSON:     raw,
	}

	for _, k := range ownerKeys {
		if o, ok := lookupAny(p, k).(map[string]any); ok {
			pl.Owner = mapPerson(o)
			break
		}
	}

	if raw, ok := lookupAny(p, "amenities").([]any); ok {
		pl.Amenities = mapAmenities(raw)
	}

	if raw, ok := lookupAny(p, "reviews").([]any); ok {
		for _, it := range raw {
			if rm, ok := it.(map[string]any); ok {
				pl.Reviews = append(pl.Reviews, MapReview(rm))
			}
		}
	}

	return pl
}

// MapPlaces normalizes a whole collection.
func MapPlaces(in []map[string]any) []domain.Place {
	out := make([]domain.Place, 0, len(in))
	for _, p := range in {
		out = append(out, MapPlace(p))
	}
	return out
}

// mapAmenities accepts objects with a name field or bare strings.
func mapAmenities(raw []any) []domain.Amenity {
	out := make([]domain.Amenity, 0, len(raw))
	for _, it := range raw {
		switch t := it.(type) {
		case string:
			if t != "" {
				out = append(out, domain.Amenity{Name: t})
			}
		case map[string]any:
			if n, ok := t["name"].(string); ok && n != "" {
				out = append(out, domain.Amenity{Name: n})
				continue
			}
			out = append(out, domain.Amenity{}) // render layer shows "Unknown"
		}
	}
	return out
}

func mapPerson(m map[string]any) *domain.Person {
	first := lookupStr(m, "first_name")
	if first == "" {
		first = lookupStr(m, "firstName")
	}
	last := lookupStr(m, "last_name")
	if last == "" {
		last = lookupStr(m, "lastName")
	}
	if first == "" && last == "" {
		return nil
	}
	return &domain.Person{FirstName: first, LastName: last}
}

/********** review mapper **********/

func MapReview(r map[string]any) domain.Review {
	raw, err := json.Marshal(r)
	if err != nil {
		log.Error().Err(err).Str("context", "MapReview").Msg("marshal review failed")
	}

	rv := domain.Review{
		Text:    firstNonEmptyAlias(r, reviewAliases, "text"),
		RawJSON: raw,
	}

	if f := getFloatFlexible(r, reviewAliases["rating"]...); f != nil {
		rv.Rating = int(*f)
	}

	first := firstNonEmptyAlias(r, reviewAliases, "first")
	last := firstNonEmptyAlias(r, reviewAliases, "last")
	if first != "" || last != "" {
		rv.User = &domain.Person{FirstName: first, LastName: last}
	}

	return rv
}

func MapReviews(in []map[string]any) []domain.Review {
	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		out = append(out, MapReview(r))
	}
	return out
}

/********** login payload **********/

// ExtractToken pulls the access token out of a raw login payload.
func ExtractToken(payload map[string]any) (string, bool) {
	for _, k := range []string{"access_token", "token"} {
		if s, ok := payload[k].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}
