package app

import "testing"

func TestMapPlace_PriceAliasOrder(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]any
		want    *float64
	}{
		{"price wins", map[string]any{"price": 80.0, "price_per_night": 99.0}, pfloat(80)},
		{"price_per_night fallback", map[string]any{"price_per_night": 99.0}, pfloat(99)},
		{"price_by_night legacy", map[string]any{"price_by_night": 42.0}, pfloat(42)},
		{"string price", map[string]any{"price": "120"}, pfloat(120)},
		{"absent", map[string]any{"name": "x"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapPlace(tc.payload)
			if (got.Price == nil) != (tc.want == nil) {
				t.Fatalf("price presence mismatch: %+v", got.Price)
			}
			if tc.want != nil && *got.Price != *tc.want {
				t.Fatalf("price = %v, want %v", *got.Price, *tc.want)
			}
		})
	}
}

func TestMapPlace_OwnerAliases(t *testing.T) {
	withOwner := MapPlace(map[string]any{
		"id":    "p1",
		"owner": map[string]any{"first_name": "Walter", "last_name": "White"},
	})
	if withOwner.Owner == nil || withOwner.Owner.FullName() != "Walter White" {
		t.Fatalf("owner: %+v", withOwner.Owner)
	}

	withHost := MapPlace(map[string]any{
		"id":   "p2",
		"host": map[string]any{"first_name": "Gus"},
	})
	if withHost.Owner == nil || withHost.Owner.FullName() != "Gus" {
		t.Fatalf("host alias: %+v", withHost.Owner)
	}
}

func TestMapPlace_Amenities(t *testing.T) {
	got := MapPlace(map[string]any{
		"amenities": []any{
			map[string]any{"name": "WiFi"},
			"Fume hood",
			map[string]any{"id": "a3"}, // nameless
		},
	})
	if len(got.Amenities) != 3 {
		t.Fatalf("amenities: %+v", got.Amenities)
	}
	if got.Amenities[0].Name != "WiFi" || got.Amenities[1].Name != "Fume hood" || got.Amenities[2].Name != "" {
		t.Fatalf("amenities: %+v", got.Amenities)
	}
}

func TestMapPlace_EmbeddedReviews(t *testing.T) {
	got := MapPlace(map[string]any{
		"id": "p1",
		"reviews": []any{
			map[string]any{
				"text":   "Great lab.",
				"rating": 5.0,
				"user":   map[string]any{"first_name": "Jesse", "last_name": "Pinkman"},
			},
		},
	})
	if len(got.Reviews) != 1 {
		t.Fatalf("reviews: %+v", got.Reviews)
	}
	r := got.Reviews[0]
	if r.Text != "Great lab." || r.Rating != 5 || r.User == nil || r.User.FullName() != "Jesse Pinkman" {
		t.Fatalf("review: %+v", r)
	}
}

func TestMapReview_RatingFromString(t *testing.T) {
	r := MapReview(map[string]any{"text": "ok", "rating": "4"})
	if r.Rating != 4 {
		t.Fatalf("rating = %d", r.Rating)
	}
}

func TestExtractToken(t *testing.T) {
	if tok, ok := ExtractToken(map[string]any{"access_token": "tok123"}); !ok || tok != "tok123" {
		t.Fatalf("got %q %v", tok, ok)
	}
	if _, ok := ExtractToken(map[string]any{"error": "nope"}); ok {
		t.Fatal("expected no token")
	}
}

func pfloat(f float64) *float64 { return &f }
