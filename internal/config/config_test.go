package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.FocalLengthPx != 700 {
		t.Errorf("focal length: got %v, want 700", cfg.FocalLengthPx)
	}
	if cfg.AnnounceCooldown != 10*time.Second {
		t.Errorf("cooldown: got %v, want 10s", cfg.AnnounceCooldown)
	}
	if len(cfg.KnownWidths) != 5 {
		t.Errorf("known widths: got %d entries, want 5", len(cfg.KnownWidths))
	}
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.OpenAIKey = "sk-test"

	t.Run("valid config passes", func(t *testing.T) {
		if err := valid.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing API key", func(t *testing.T) {
		cfg := valid
		cfg.OpenAIKey = ""
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for missing API key")
		}
	})

	t.Run("missing model path", func(t *testing.T) {
		cfg := valid
		cfg.ModelPath = ""
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for missing model path")
		}
	})

	t.Run("bad focal length", func(t *testing.T) {
		cfg := valid
		cfg.FocalLengthPx = 0
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for zero focal length")
		}
	})

	t.Run("empty width table", func(t *testing.T) {
		cfg := valid
		cfg.KnownWidths = nil
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for empty width table")
		}
	})
}

func TestPlayerArgs(t *testing.T) {
	t.Run("command with flags splits into argv", func(t *testing.T) {
		cfg := Default()
		cfg.PlayerCommand = "mpg123 -q"
		got := cfg.PlayerArgs()
		if len(got) != 2 || got[0] != "mpg123" || got[1] != "-q" {
			t.Errorf("got %v, want [mpg123 -q]", got)
		}
	})

	t.Run("empty command means autodetect", func(t *testing.T) {
		cfg := Default()
		if got := cfg.PlayerArgs(); len(got) != 0 {
			t.Errorf("got %v, want empty", got)
		}
	})
}

func TestParseKnownWidths(t *testing.T) {
	t.Run("order preserved", func(t *testing.T) {
		entries, err := ParseKnownWidths("car=1.8, person=0.5,bottle=0.08")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("got %d entries, want 3", len(entries))
		}
		if entries[0].Label != "car" || entries[1].Label != "person" || entries[2].Label != "bottle" {
			t.Errorf("order not preserved: %v", entries)
		}
		if entries[2].WidthMeters != 0.08 {
			t.Errorf("bottle width: got %v, want 0.08", entries[2].WidthMeters)
		}
	})

	t.Run("multi-word label", func(t *testing.T) {
		entries, err := ParseKnownWidths("stop sign=0.76")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entries[0].Label != "stop sign" {
			t.Errorf("label: got %q, want %q", entries[0].Label, "stop sign")
		}
	})

	t.Run("malformed entry", func(t *testing.T) {
		if _, err := ParseKnownWidths("person"); err == nil {
			t.Error("expected error for entry without =")
		}
	})

	t.Run("non-numeric width", func(t *testing.T) {
		if _, err := ParseKnownWidths("person=wide"); err == nil {
			t.Error("expected error for non-numeric width")
		}
	})

	t.Run("negative width", func(t *testing.T) {
		if _, err := ParseKnownWidths("person=-1"); err == nil {
			t.Error("expected error for negative width")
		}
	})

	t.Run("empty table", func(t *testing.T) {
		if _, err := ParseKnownWidths(" , "); err == nil {
			t.Error("expected error for empty table")
		}
	})
}
