package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mark3labs/celebtour/internal/conversation"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	require.Len(t, c.Celebrities, 4)
	require.Len(t, c.Cars, 4)
	require.Len(t, c.Tour.Stages, 4)
	require.Len(t, c.Video.Stages, 6)
	require.Len(t, c.Conversation, 9)

	cel, ok := c.Celebrity("cel2")
	require.True(t, ok)
	require.Equal(t, "James Wilson", cel.Name)
	require.Equal(t, "Luxury Sedans", cel.Specialty)

	car, ok := c.Car("car1")
	require.True(t, ok)
	require.Equal(t, "Elegance S600", car.Name)
	require.Equal(t, "4.0L V8 Biturbo", car.Engine)
	require.Equal(t, "496 hp", car.Horsepower)
	require.Equal(t, "4.3 seconds", car.Acceleration)
	require.Equal(t, "/img/cars/luxury-car-exterior.jpg", car.Exterior)

	_, ok = c.Car("car9")
	require.False(t, ok)
	_, ok = c.Celebrity("")
	require.False(t, ok)
}

func TestDefault_TourStages(t *testing.T) {
	c := MustDefault()
	require.Equal(t, []string{
		"Celebrity introduction",
		"Exterior tour",
		"Interior tour",
		"Feature demonstration",
	}, c.Tour.Stages)
	require.Equal(t, "Feature Highlights", c.Heading(3))
	require.Equal(t, "", c.Heading(4))
}

func TestDefault_ConversationShape(t *testing.T) {
	c := MustDefault()
	speakers := make([]conversation.Speaker, len(c.Conversation))
	for i, turn := range c.Conversation {
		speakers[i] = turn.Speaker
		if turn.React {
			require.Equal(t, conversation.Celebrity, turn.Speaker, "turn %d", i)
		}
	}
	require.Equal(t, []conversation.Speaker{
		conversation.Celebrity, conversation.User, conversation.Celebrity,
		conversation.Celebrity, conversation.User, conversation.Celebrity,
		conversation.Celebrity, conversation.User, conversation.Celebrity,
	}, speakers)
}

func TestNarration(t *testing.T) {
	c := MustDefault()
	cel, _ := c.Celebrity("cel1")
	car, _ := c.Car("car1")

	intro := c.Narration(0, cel, car)
	require.True(t, strings.HasPrefix(intro, "Welcome to your personalized tour of the Elegance S600!"), intro)
	require.Contains(t, intro, "Luxury Sedan")
	require.NotContains(t, intro, "{{")
	require.NotContains(t, intro, "\n")

	require.Equal(t, "", c.Narration(-1, cel, car))
	require.Equal(t, "", c.Narration(4, cel, car))
}

func TestCarBadge(t *testing.T) {
	require.Equal(t, "Premium Luxury", Car{Category: Luxury}.Badge())
	require.Equal(t, "High Performance", Car{Category: Sports}.Badge())
	require.Equal(t, "Eco Friendly", Car{Category: Electric}.Badge())
	require.Equal(t, "All Cars", CategoryLabel("all"))
	require.Equal(t, "Sports", CategoryLabel(Sports))
}

func TestLoad_EmptyPath(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Len(t, c.Cars, 4)
}

func TestLoad_OverridesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	override := `cars:
  - id: car7
    name: Nimbus Roadster
    type: Convertible
    category: sports
    exterior: /img/nimbus.jpg
`
	require.NoError(t, os.WriteFile(path, []byte(override), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Cars, 1)
	require.Equal(t, "Nimbus Roadster", c.Cars[0].Name)
	// Untouched sections keep their defaults
	require.Len(t, c.Celebrities, 4)
	require.Len(t, c.Conversation, 9)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("cars:\n  - id: car1\n    category: hover\n"), 0644))
	_, err = Load(bad)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown category")

	broken := filepath.Join(dir, "broken.yml")
	require.NoError(t, os.WriteFile(broken, []byte("cars: [\n"), 0644))
	_, err = Load(broken)
	require.Error(t, err)
}

func TestValidate_DuplicateIDs(t *testing.T) {
	c := MustDefault()
	c.Cars = append(c.Cars, c.Cars[0])
	err := c.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicated")
}

func TestHome(t *testing.T) {
	require.Contains(t, Home(), "How It Works")
}
