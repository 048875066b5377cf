// Package catalog holds the read-only data the tour is built from:
// celebrities, cars, tour narration, video stages and the conversation
// script. A default catalog is embedded; a YAML file can override any
// top-level section of it.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mark3labs/celebtour/internal/conversation"
	"github.com/mark3labs/celebtour/internal/template"
)

//go:embed catalog.yaml
var defaultYAML []byte

//go:embed home.md
var homeMarkdown string

// Car categories.
const (
	Luxury   = "luxury"
	Sports   = "sports"
	Electric = "electric"
)

// Categories lists the car filter tabs in display order.
var Categories = []string{"all", Luxury, Sports, Electric}

// CategoryLabel returns the tab label for a car category.
func CategoryLabel(category string) string {
	switch category {
	case "all":
		return "All Cars"
	case Luxury:
		return "Luxury"
	case Sports:
		return "Sports"
	case Electric:
		return "Electric"
	default:
		return category
	}
}

// Celebrity is an AI-generated tour guide.
type Celebrity struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Specialty string  `yaml:"specialty"`
	Rating    float64 `yaml:"rating"`
	Image     string  `yaml:"image"`
}

// ItemID implements selection.Item.
func (c Celebrity) ItemID() string { return c.ID }

// Car is a vehicle available for a virtual tour.
type Car struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Type         string  `yaml:"type"`
	Description  string  `yaml:"description"`
	Rating       float64 `yaml:"rating"`
	Exterior     string  `yaml:"exterior"`
	Interior     string  `yaml:"interior"`
	Category     string  `yaml:"category"`
	Engine       string  `yaml:"engine"`
	Horsepower   string  `yaml:"horsepower"`
	Acceleration string  `yaml:"acceleration"`
}

// ItemID implements selection.Item.
func (c Car) ItemID() string { return c.ID }

// Badge is the short tagline shown for the car's category.
func (c Car) Badge() string {
	switch c.Category {
	case Luxury:
		return "Premium Luxury"
	case Sports:
		return "High Performance"
	default:
		return "Eco Friendly"
	}
}

// Tour describes the guided tour stages and what the guide says in each.
type Tour struct {
	Stages    []string `yaml:"stages"`
	Headings  []string `yaml:"headings"`
	Narration []string `yaml:"narration"`
}

// Video lists the simulated video generation stages.
type Video struct {
	Stages []string `yaml:"stages"`
}

// Catalog is the complete read-only data set.
type Catalog struct {
	Celebrities  []Celebrity         `yaml:"celebrities"`
	Cars         []Car               `yaml:"cars"`
	Tour         Tour                `yaml:"tour"`
	Video        Video               `yaml:"video"`
	Conversation []conversation.Turn `yaml:"conversation"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
		return nil, fmt.Errorf("parsing embedded catalog: %w", err)
	}
	return &c, nil
}

// MustDefault returns the embedded catalog and panics if it is malformed.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Load returns the embedded catalog with sections from path laid over it.
// An empty path returns the embedded catalog unchanged.
func Load(path string) (*Catalog, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the invariants the pages rely on.
func (c *Catalog) Validate() error {
	var errs []error
	if len(c.Celebrities) == 0 {
		errs = append(errs, errors.New("no celebrities"))
	}
	if len(c.Cars) == 0 {
		errs = append(errs, errors.New("no cars"))
	}

	seen := map[string]bool{}
	for _, cel := range c.Celebrities {
		if cel.ID == "" || seen[cel.ID] {
			errs = append(errs, fmt.Errorf("celebrity id %q missing or duplicated", cel.ID))
		}
		seen[cel.ID] = true
	}
	for _, car := range c.Cars {
		if car.ID == "" || seen[car.ID] {
			errs = append(errs, fmt.Errorf("car id %q missing or duplicated", car.ID))
		}
		seen[car.ID] = true
		switch car.Category {
		case Luxury, Sports, Electric:
		default:
			errs = append(errs, fmt.Errorf("car %s: unknown category %q", car.ID, car.Category))
		}
	}

	if len(c.Tour.Stages) == 0 {
		errs = append(errs, errors.New("tour has no stages"))
	}
	if len(c.Tour.Narration) != len(c.Tour.Stages) {
		errs = append(errs, fmt.Errorf("tour has %d stages but %d narrations", len(c.Tour.Stages), len(c.Tour.Narration)))
	}
	if len(c.Tour.Headings) != len(c.Tour.Stages) {
		errs = append(errs, fmt.Errorf("tour has %d stages but %d headings", len(c.Tour.Stages), len(c.Tour.Headings)))
	}
	if len(c.Video.Stages) == 0 {
		errs = append(errs, errors.New("video has no stages"))
	}
	for i, turn := range c.Conversation {
		if turn.Speaker != conversation.Celebrity && turn.Speaker != conversation.User {
			errs = append(errs, fmt.Errorf("conversation turn %d: unknown speaker %q", i, turn.Speaker))
		}
	}
	return errors.Join(errs...)
}

// Celebrity looks up a celebrity by id.
func (c *Catalog) Celebrity(id string) (Celebrity, bool) {
	for _, cel := range c.Celebrities {
		if cel.ID == id {
			return cel, true
		}
	}
	return Celebrity{}, false
}

// Car looks up a car by id.
func (c *Catalog) Car(id string) (Car, bool) {
	for _, car := range c.Cars {
		if car.ID == id {
			return car, true
		}
	}
	return Car{}, false
}

// Vars builds template variables for a celebrity and car pair.
func Vars(cel Celebrity, car Car) template.Variables {
	return template.Variables{
		Car:          car.Name,
		CarType:      car.Type,
		Engine:       car.Engine,
		Horsepower:   car.Horsepower,
		Acceleration: car.Acceleration,
		Celebrity:    cel.Name,
		Specialty:    cel.Specialty,
	}
}

// Narration returns what the guide says during tour stage i.
func (c *Catalog) Narration(i int, cel Celebrity, car Car) string {
	if i < 0 || i >= len(c.Tour.Narration) {
		return ""
	}
	return template.Render(c.Tour.Narration[i], Vars(cel, car))
}

// Heading returns the title shown above the narration for stage i.
func (c *Catalog) Heading(i int) string {
	if i < 0 || i >= len(c.Tour.Headings) {
		return ""
	}
	return c.Tour.Headings[i]
}

// Home returns the markdown shown on the home and informational pages.
func Home() string {
	return homeMarkdown
}
