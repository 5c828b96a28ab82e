// Package scheme holds the read-only welfare scheme catalog and the
// free-text matching used to attach a scheme to a conversation turn.
package scheme

import (
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when a scheme id is not in the catalog.
var ErrNotFound = errors.New("scheme: not found")

// Categories shown in the catalog browser. CategoryAll disables filtering.
const (
	CategoryAll                = "All"
	CategoryAgriculture        = "Agriculture"
	CategoryHealthcare         = "Healthcare"
	CategoryEducation          = "Education"
	CategoryHousing            = "Housing"
	CategoryEnergy             = "Energy"
	CategoryEmployment         = "Employment"
	CategorySocialSecurity     = "Social Security"
	CategoryFinancialInclusion = "Financial Inclusion"
	CategorySanitation         = "Sanitation"
	CategoryBusiness           = "Business"
	CategoryWomenChild         = "Women & Child"
)

// Scheme is one government welfare scheme.
type Scheme struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	TargetGroup string     `json:"target_group"`
	Eligibility []string   `json:"eligibility"`
	Benefits    string     `json:"benefits"`
	Documents   []Document `json:"documents"`
	HowToApply  []string   `json:"how_to_apply"`
	Contact     Contact    `json:"contact"`
	Keywords    []string   `json:"keywords"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// Document is a supporting document and its sample image.
type Document struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Contact is the scheme helpdesk.
type Contact struct {
	Name   string `json:"name"`
	Number string `json:"number,omitempty"`
	Email  string `json:"email,omitempty"`
}

// DocumentNames returns the document names in order.
func (s *Scheme) DocumentNames() []string {
	names := make([]string, len(s.Documents))
	for i, d := range s.Documents {
		names[i] = d.Name
	}
	return names
}

// Catalog is an ordered, immutable list of schemes. Order is significant:
// it breaks ties when several schemes match a query.
type Catalog struct {
	schemes []Scheme
	byID    map[string]int
}

// NewCatalog builds a catalog preserving the given order.
func NewCatalog(schemes []Scheme) *Catalog {
	c := &Catalog{
		schemes: make([]Scheme, len(schemes)),
		byID:    make(map[string]int, len(schemes)),
	}
	copy(c.schemes, schemes)
	for i, s := range c.schemes {
		c.byID[s.ID] = i
	}
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return NewCatalog(builtin())
}

// All returns every scheme in catalog order.
func (c *Catalog) All() []Scheme {
	out := make([]Scheme, len(c.schemes))
	copy(out, c.schemes)
	return out
}

// Len returns the number of schemes.
func (c *Catalog) Len() int {
	return len(c.schemes)
}

// Get returns a scheme by id.
func (c *Catalog) Get(id string) (*Scheme, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	s := c.schemes[i]
	return &s, nil
}

// ByCategory filters by category name, case-insensitively.
// An empty category or CategoryAll returns everything.
func (c *Catalog) ByCategory(category string) []Scheme {
	if category == "" || strings.EqualFold(category, CategoryAll) {
		return c.All()
	}
	var out []Scheme
	for _, s := range c.schemes {
		if strings.EqualFold(s.Category, category) {
			out = append(out, s)
		}
	}
	return out
}

// Categories returns CategoryAll followed by each distinct category in catalog order.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	out := []string{CategoryAll}
	for _, s := range c.schemes {
		if !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	return out
}
