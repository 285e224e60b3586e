// Package catalog holds the immutable graph of cooking competition shows, their seasons, the competing chefs and
// the chefs' restaurants, together with the lookups the web pages need.
package catalog

import (
	"log/slog"

	"github.com/myrjola/spoonmap/internal/errors"
	"gopkg.in/yaml.v3"
)

// ChefClass is the competition class of a chef.
type ChefClass string

const (
	ClassBlackSpoon ChefClass = "Black Spoon"
	ClassWhiteSpoon ChefClass = "White Spoon"
	ClassJudge      ChefClass = "Judge"
	ClassIronChef   ChefClass = "Iron Chef"
)

// noWebsite is the sentinel the catalog uses for restaurants without a website.
const noWebsite = "#"

// defaultBookingURL is linked when a restaurant has no booking page of its own.
const defaultBookingURL = "https://resy.com"

// Show is a television cooking competition.
type Show struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Platform    string   `yaml:"platform" json:"platform"`
	Banner      string   `yaml:"banner" json:"banner"`
	Description string   `yaml:"description" json:"description"`
	Seasons     []Season `yaml:"seasons" json:"seasons"`
}

// Season is one season of a Show. Chefs lists chef ids in roster order.
type Season struct {
	Number int      `yaml:"number" json:"number"`
	Name   string   `yaml:"name" json:"name"`
	Chefs  []string `yaml:"chefs" json:"chefs"`
}

// Season returns the season with the given number.
func (s Show) Season(number int) (Season, bool) {
	for _, season := range s.Seasons {
		if season.Number == number {
			return season, true
		}
	}
	return Season{}, false //nolint:exhaustruct // not found
}

// FirstSeason returns the lowest season number of the show, or 1 when the show has no seasons.
func (s Show) FirstSeason() int {
	if len(s.Seasons) == 0 {
		return 1
	}
	first := s.Seasons[0].Number
	for _, season := range s.Seasons[1:] {
		first = min(first, season.Number)
	}
	return first
}

// Chef is a competitor or judge.
type Chef struct {
	ID          string       `yaml:"id" json:"id"`
	Moniker     string       `yaml:"moniker,omitempty" json:"moniker,omitempty"`
	RealName    string       `yaml:"real_name" json:"real_name"`
	Class       ChefClass    `yaml:"class" json:"class"`
	Rank        string       `yaml:"rank" json:"rank"`
	Bio         string       `yaml:"bio" json:"bio"`
	Image       string       `yaml:"image" json:"image"`
	Restaurants []Restaurant `yaml:"restaurants" json:"restaurants"`
	Appearances []Appearance `yaml:"appearances" json:"appearances"`
}

// DisplayName is the moniker, or the real name for chefs without one.
func (c Chef) DisplayName() string {
	if c.Moniker != "" {
		return c.Moniker
	}
	return c.RealName
}

// HasRank reports whether the chef has a rank or result label.
func (c Chef) HasRank() bool {
	return c.Rank != ""
}

// Restaurant returns the chef's restaurant with the given uid, see [Restaurant.UID].
func (c Chef) Restaurant(uid string) (Restaurant, bool) {
	for _, r := range c.Restaurants {
		if r.UID() == uid {
			return r, true
		}
	}
	return Restaurant{}, false //nolint:exhaustruct // not found
}

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UnmarshalYAML reads the [lat, lng] pair notation used in catalog documents.
func (c *Coordinate) UnmarshalYAML(value *yaml.Node) error {
	var pair []float64
	if err := value.Decode(&pair); err != nil {
		return errors.Wrap(err, "decode coordinate pair", slog.Int("line", value.Line))
	}
	if len(pair) != 2 { //nolint:mnd // latitude and longitude
		return errors.Wrap(ErrInvalidCoordinate, "coordinate pair length",
			slog.Int("line", value.Line), slog.Int("length", len(pair)))
	}
	c.Lat, c.Lng = pair[0], pair[1]
	return nil
}

// MarshalYAML writes the [lat, lng] pair notation.
func (c Coordinate) MarshalYAML() (any, error) {
	return []float64{c.Lat, c.Lng}, nil
}

// Restaurant is owned by exactly one Chef.
type Restaurant struct {
	ID         string      `yaml:"id,omitempty" json:"id,omitempty"`
	Name       string      `yaml:"name" json:"name"`
	Location   string      `yaml:"location" json:"location"`
	Coords     *Coordinate `yaml:"coords,omitempty" json:"coords,omitempty"`
	Cuisine    string      `yaml:"cuisine" json:"cuisine"`
	Specialty  string      `yaml:"specialty" json:"specialty"`
	WebsiteURL string      `yaml:"website_url,omitempty" json:"website_url,omitempty"`
	BookingRef string      `yaml:"resy_url,omitempty" json:"resy_url,omitempty"`
}

// UID is the key of the restaurant within a trip: the id, or the name for restaurants without one.
func (r Restaurant) UID() string {
	if r.ID != "" {
		return r.ID
	}
	return r.Name
}

// Website returns the website URL unless the restaurant has none.
func (r Restaurant) Website() (string, bool) {
	if r.WebsiteURL == "" || r.WebsiteURL == noWebsite {
		return "", false
	}
	return r.WebsiteURL, true
}

// BookingURL returns the reservation page, falling back to the booking service front page.
func (r Restaurant) BookingURL() string {
	if r.BookingRef == "" || r.BookingRef == noWebsite {
		return defaultBookingURL
	}
	return r.BookingRef
}

// Highlight is the specialty, or the cuisine when no specialty is listed.
func (r Restaurant) Highlight() string {
	if r.Specialty != "" {
		return r.Specialty
	}
	return r.Cuisine
}

// Appearance denotes participation of a chef in one season of one show. Result is spoiler-sensitive.
type Appearance struct {
	ShowID string `yaml:"showId" json:"showId"`
	Season int    `yaml:"season" json:"season"`
	Result string `yaml:"result" json:"result"`
}

// Catalog is the read-only data table the whole application queries. Construct it with [Parse], [Load] or
// [Default]; the zero value is an empty catalog.
type Catalog struct {
	shows []Show
	chefs []Chef
}

// New builds a catalog from shows and chefs. The slices are copied.
func New(shows []Show, chefs []Chef) *Catalog {
	return &Catalog{
		shows: append([]Show(nil), shows...),
		chefs: append([]Chef(nil), chefs...),
	}
}

// Shows returns the shows in catalog order.
func (c *Catalog) Shows() []Show {
	return append([]Show(nil), c.shows...)
}

// Chefs returns the chefs in catalog order.
func (c *Catalog) Chefs() []Chef {
	return append([]Chef(nil), c.chefs...)
}
