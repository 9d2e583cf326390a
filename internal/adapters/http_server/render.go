package httpserver

import (
	"strconv"

	"hbnb_web/internal/domain"
)

// View construction is pure: domain models in, template-ready descriptions
// out. The handlers own nothing but plumbing, so all the fallback rules below
// are testable without a server.

const (
	defaultImage       = "/static/images/default.png"
	fallbackName       = "Unnamed place"
	fallbackDesc       = "No description."
	fallbackPrice      = "N/A"
	fallbackAuthor     = "Anonymous"
	fallbackAmenity    = "Unknown"
	emptyPlacesNote    = "No places available."
	emptyAmenitiesNote = "No amenities"
	emptyReviewsNote   = "No reviews yet. Be the first!"
)

type PlaceCard struct {
	ID          string
	Name        string
	Description string
	Price       string
	ImageURL    string
	DataPrice   float64
	Hidden      bool // local filter profile hides instead of dropping
}

type PlacesView struct {
	Cards         []PlaceCard
	Empty         bool
	EmptyNote     string
	Filter        string
	Authenticated bool
	Message       *Message
}

type ReviewRow struct {
	Author string
	Rating int
	Text   string
}

type DetailView struct {
	PlaceID        string
	Title          string
	Host           string
	Price          string
	Description    string
	Amenities      []string
	AmenitiesEmpty bool
	EmptyAmenities string
	Reviews        []ReviewRow
	ReviewsEmpty   bool
	EmptyReviews   string
	CanReview      bool
	Authenticated  bool
	Message        *Message
}

type LoginView struct {
	Authenticated bool
	Message       *Message
}

type AddReviewView struct {
	PlaceID       string
	Authenticated bool
	Message       *Message
}

func priceLabel(p *float64) string {
	if p == nil {
		return fallbackPrice
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func buildCard(p domain.Place) PlaceCard {
	c := PlaceCard{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       priceLabel(p.Price),
		ImageURL:    p.ImageURL,
	}
	if c.Name == "" {
		c.Name = fallbackName
	}
	if c.Description == "" {
		c.Description = fallbackDesc
	}
	if c.ImageURL == "" {
		c.ImageURL = defaultImage
	}
	if p.Price != nil {
		c.DataPrice = *p.Price
	}
	return c
}

// BuildPlacesView projects the latest fetch. In local mode every place stays
// in the view and the filter only toggles Hidden, mirroring the front end
// that filtered already-rendered cards; in refetch mode filtered-out places
// are dropped outright.
func BuildPlacesView(places []domain.Place, f domain.PriceFilter, mode domain.FilterMode, authenticated bool, filterValue string) PlacesView {
	v := PlacesView{Authenticated: authenticated, Filter: filterValue}
	for _, p := range places {
		card := buildCard(p)
		if !f.Allows(p) {
			if mode != domain.FilterLocal {
				continue
			}
			card.Hidden = true
		}
		v.Cards = append(v.Cards, card)
	}
	if len(v.Cards) == 0 {
		v.Empty = true
		v.EmptyNote = emptyPlacesNote
	}
	return v
}

// BuildDetailView projects one place. The add-review section is only offered
// to browsers holding a token.
func BuildDetailView(p domain.Place, authenticated bool) DetailView {
	v := DetailView{
		PlaceID:       p.ID,
		Title:         p.Name,
		Host:          p.Owner.FullName(),
		Price:         priceLabel(p.Price),
		Description:   p.Description,
		CanReview:     authenticated,
		Authenticated: authenticated,
	}
	if v.Title == "" {
		v.Title = fallbackName
	}
	if v.Description == "" {
		v.Description = fallbackDesc
	}

	for _, a := range p.Amenities {
		name := a.Name
		if name == "" {
			name = fallbackAmenity
		}
		v.Amenities = append(v.Amenities, name)
	}
	if len(v.Amenities) == 0 {
		v.AmenitiesEmpty = true
		v.EmptyAmenities = emptyAmenitiesNote
	}

	for _, r := range p.Reviews {
		author := r.User.FullName()
		if author == "" {
			author = fallbackAuthor
		}
		v.Reviews = append(v.Reviews, ReviewRow{Author: author, Rating: r.Rating, Text: r.Text})
	}
	if len(v.Reviews) == 0 {
		v.ReviewsEmpty = true
		v.EmptyReviews = emptyReviewsNote
	}
	return v
}

// ParsePriceFilter turns the filter control's value into a filter. "all",
// the empty string and garbage all pass everything.
func ParsePriceFilter(value string) domain.PriceFilter {
	if value == "" || value == "all" {
		return domain.PriceFilter{All: true}
	}
	max, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return domain.PriceFilter{All: true}
	}
	return domain.PriceFilter{Max: max}
}
