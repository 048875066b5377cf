package template

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/celebtour/internal/logger"
)

// Variables holds the data to be injected into template placeholders.
type Variables struct {
	Car          string // Car display name
	CarType      string // Body style, e.g. "Luxury Sedan"
	Engine       string // Engine description
	Horsepower   string // Horsepower rating
	Acceleration string // 0-60 mph time
	Celebrity    string // Celebrity guide name
	Specialty    string // Celebrity specialty
	ShareURL     string // Public link to the finished tour
}

// Render replaces {{variable}} placeholders in template with actual values.
// Supports the following variables:
// - {{car}} - Car display name
// - {{type}} - Car body style
// - {{engine}} - Engine description
// - {{horsepower}} - Horsepower rating
// - {{acceleration}} - 0-60 mph time
// - {{celebrity}} - Celebrity guide name
// - {{specialty}} - Celebrity specialty
// - {{share_url}} - Public link to the finished tour
func Render(template string, vars Variables) string {
	result := template

	replacements := map[string]string{
		"{{car}}":          vars.Car,
		"{{type}}":         vars.CarType,
		"{{engine}}":       vars.Engine,
		"{{horsepower}}":   vars.Horsepower,
		"{{acceleration}}": vars.Acceleration,
		"{{celebrity}}":    vars.Celebrity,
		"{{specialty}}":    vars.Specialty,
		"{{share_url}}":    vars.ShareURL,
	}

	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	return result
}

// LoadFromFile loads a template from a file.
// If the file doesn't exist or can't be read, returns an error.
func LoadFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template file %s: %w", path, err)
	}
	return string(data), nil
}

// GetTemplate returns the template content.
// If customPath is non-empty, loads from that file.
// Otherwise returns fallback.
func GetTemplate(customPath, fallback string) (string, error) {
	if customPath == "" {
		return fallback, nil
	}
	return LoadFromFile(customPath)
}

// Email is a rendered share email.
type Email struct {
	To      string
	Subject string
	Body    string
}

// BuildEmail renders the default share email for a finished tour.
// Empty subject or body fall back to the embedded defaults.
func BuildEmail(to, subject, body string, vars Variables) Email {
	if strings.TrimSpace(subject) == "" {
		subject = DefaultEmailSubject
	}
	if strings.TrimSpace(body) == "" {
		body = DefaultEmailBody
	}
	email := Email{
		To:      to,
		Subject: Render(subject, vars),
		Body:    Render(body, vars),
	}
	logger.Debug("Share email rendered: %d characters", len(email.Body))
	return email
}

// Summary renders the short description shown next to a finished video.
func Summary(vars Variables) string {
	return Render(DefaultSummary, vars)
}

// TimeAgo formats a duration into a human-readable "time ago" string.
func TimeAgo(d time.Duration) string {
	if d < time.Minute {
		return "just now"
	} else if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1min ago"
		}
		return fmt.Sprintf("%dmin ago", mins)
	} else if d < 24*time.Hour {
		hours := int(d.Hours())
		if hours == 1 {
			return "1hr ago"
		}
		return fmt.Sprintf("%dhr ago", hours)
	} else {
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
}
