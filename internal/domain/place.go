package domain

import "strings"

type Place struct {
	ID          string
	Name        string
	Description string
	Price       *float64 // nil when the payload carried no price alias
	ImageURL    string
	Owner       *Person
	Amenities   []Amenity
	Reviews     []Review
	RawJSON     []byte // full backend payload
}

type Person struct {
	FirstName string
	LastName  string
}

// FullName joins first and last name, dropping empty parts.
func (p *Person) FullName() string {
	if p == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	for _, s := range []string{p.FirstName, p.LastName} {
		if t := strings.TrimSpace(s); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

type Amenity struct {
	Name string
}
