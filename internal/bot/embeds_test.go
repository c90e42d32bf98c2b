package bot

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestBulletList(t *testing.T) {
	t.Run("renders bullets", func(t *testing.T) {
		got := bulletList([]string{"eggs", "flour"}, 0)
		if got != "• eggs\n• flour" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("truncates with a tail note", func(t *testing.T) {
		got := bulletList([]string{"a", "b", "c", "d"}, 2)
		if !strings.Contains(got, "and 2 more") {
			t.Errorf("missing truncation note: %q", got)
		}
		if strings.Contains(got, "• c") {
			t.Errorf("truncated item rendered: %q", got)
		}
	})
}

func TestNumberedList(t *testing.T) {
	got := numberedList([]string{"boil", "serve"})
	if got != "1. boil\n2. serve" {
		t.Errorf("got %q", got)
	}
}

func TestClampField(t *testing.T) {
	long := strings.Repeat("x", 2000)
	got := clampField(long)
	if len(got) > embedFieldLimit {
		t.Errorf("clamped value is %d bytes, limit %d", len(got), embedFieldLimit)
	}
	if clampField("short") != "short" {
		t.Error("short values must pass through")
	}
}

func TestStars(t *testing.T) {
	cases := []struct {
		importance int
		want       int
	}{
		{1, 1}, {3, 3}, {5, 5}, {0, 1}, {9, 5},
	}
	for _, tc := range cases {
		got := strings.Count(stars(tc.importance), "⭐")
		if got != tc.want {
			t.Errorf("stars(%d) = %d glyphs, want %d", tc.importance, got, tc.want)
		}
	}
}

func TestCommands(t *testing.T) {
	cmds := commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		if names[c.Name] {
			t.Errorf("duplicate command name %q", c.Name)
		}
		names[c.Name] = true
		if c.Description == "" {
			t.Errorf("command %q has no description", c.Name)
		}
	}
	for _, want := range []string{"event", "cooking", "todo", "plan", "help"} {
		if !names[want] {
			t.Errorf("command %q not registered", want)
		}
	}
}

func TestOptionHelpers(t *testing.T) {
	opts := optionMap([]*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "title", Type: discordgo.ApplicationCommandOptionString, Value: "Movie Night"},
		{Name: "minutes", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(45)},
	})

	if got := stringOption(opts, "title"); got != "Movie Night" {
		t.Errorf("got %q", got)
	}
	if got := stringOption(opts, "absent"); got != "" {
		t.Errorf("absent string option = %q, want empty", got)
	}
	if got := intOption(opts, "minutes", 30); got != 45 {
		t.Errorf("got %d, want 45", got)
	}
	if got := intOption(opts, "absent", 30); got != 30 {
		t.Errorf("absent int option = %d, want default 30", got)
	}
}
