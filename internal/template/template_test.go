package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     Variables
		want     string
	}{
		{
			name:     "simple substitution",
			template: "Welcome to the {{car}} with {{celebrity}}!",
			vars: Variables{
				Car:       "Elegance S600",
				Celebrity: "Alex Morgan",
			},
			want: "Welcome to the Elegance S600 with Alex Morgan!",
		},
		{
			name:     "all variables",
			template: "{{car}}|{{type}}|{{engine}}|{{horsepower}}|{{acceleration}}|{{celebrity}}|{{specialty}}|{{share_url}}",
			vars: Variables{
				Car:          "c",
				CarType:      "t",
				Engine:       "e",
				Horsepower:   "h",
				Acceleration: "a",
				Celebrity:    "n",
				Specialty:    "s",
				ShareURL:     "u",
			},
			want: "c|t|e|h|a|n|s|u",
		},
		{
			name:     "empty values",
			template: "Tour{{share_url}}",
			vars:     Variables{},
			want:     "Tour",
		},
		{
			name:     "repeated placeholder",
			template: "{{car}} and {{car}}",
			vars:     Variables{Car: "Aurora EV"},
			want:     "Aurora EV and Aurora EV",
		},
		{
			name:     "unknown placeholder left alone",
			template: "{{unknown}} {{car}}",
			vars:     Variables{Car: "Royal SUV"},
			want:     "{{unknown}} Royal SUV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.template, tt.vars)
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetTemplate(t *testing.T) {
	t.Run("fallback when no path", func(t *testing.T) {
		got, err := GetTemplate("", DefaultEmailBody)
		if err != nil {
			t.Fatalf("GetTemplate() error = %v", err)
		}
		if got != DefaultEmailBody {
			t.Errorf("GetTemplate() did not return fallback")
		}
	})

	t.Run("custom file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "email.txt")
		if err := os.WriteFile(path, []byte("Hi from {{celebrity}}"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		got, err := GetTemplate(path, DefaultEmailBody)
		if err != nil {
			t.Fatalf("GetTemplate() error = %v", err)
		}
		if got != "Hi from {{celebrity}}" {
			t.Errorf("GetTemplate() = %q", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := GetTemplate(filepath.Join(t.TempDir(), "nope.txt"), DefaultEmailBody)
		if err == nil {
			t.Error("GetTemplate() expected error for missing file")
		}
	})
}

func TestBuildEmail(t *testing.T) {
	vars := Variables{
		Car:       "Velocity GT",
		Celebrity: "Emma Rodriguez",
		ShareURL:  "https://celebtour.app/shared-tour/abc123defg",
	}

	email := BuildEmail("friend@example.com", "", "", vars)
	if email.To != "friend@example.com" {
		t.Errorf("To = %q", email.To)
	}
	if email.Subject != DefaultEmailSubject {
		t.Errorf("Subject = %q, want default", email.Subject)
	}
	if !strings.HasPrefix(email.Body, "I just experienced an amazing virtual tour") {
		t.Errorf("Body does not start with default message: %q", email.Body)
	}
	for _, want := range []string{"Velocity GT with Emma Rodriguez", vars.ShareURL} {
		if !strings.Contains(email.Body, want) {
			t.Errorf("Body missing %q:\n%s", want, email.Body)
		}
	}

	custom := BuildEmail("a@b.co", "My {{car}}", "See {{share_url}}", vars)
	if custom.Subject != "My Velocity GT" {
		t.Errorf("Subject = %q", custom.Subject)
	}
	if custom.Body != "See "+vars.ShareURL {
		t.Errorf("Body = %q", custom.Body)
	}
}

func TestSummary(t *testing.T) {
	got := Summary(Variables{Car: "Elegance S600", Celebrity: "Alex Morgan"})
	want := "You toured the luxurious Elegance S600 with celebrity guide Alex Morgan."
	if !strings.HasPrefix(got, want) {
		t.Errorf("Summary() = %q", got)
	}
}

func TestTimeAgo(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{time.Minute, "1min ago"},
		{5 * time.Minute, "5min ago"},
		{time.Hour, "1hr ago"},
		{3 * time.Hour, "3hr ago"},
		{24 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
	}
	for _, tt := range tests {
		if got := TimeAgo(tt.d); got != tt.want {
			t.Errorf("TimeAgo(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
