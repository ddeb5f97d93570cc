package collection

import (
	"testing"

	"github.com/kbukum/collectionkit/errors"
)

func TestPriority_StringAndParse(t *testing.T) {
	all := []Priority{
		PriorityUnspecified, PriorityBackground, PriorityLow,
		PriorityMedium, PriorityHigh, PriorityUserInitiated,
	}
	for _, p := range all {
		got, err := ParsePriority(p.String())
		if err != nil {
			t.Errorf("ParsePriority(%q): %v", p.String(), err)
		}
		if got != p {
			t.Errorf("round trip of %s gave %s", p, got)
		}
	}

	if p, err := ParsePriority("  HIGH "); err != nil || p != PriorityHigh {
		t.Errorf("expected case-insensitive parse, got %s, %v", p, err)
	}
	if p, err := ParsePriority(""); err != nil || p != PriorityUnspecified {
		t.Errorf("expected empty string to be unspecified, got %s, %v", p, err)
	}
	if _, err := ParsePriority("urgent"); !errors.IsCode(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("expected INVALID_ARGUMENT for unknown name, got %v", err)
	}
	if s := Priority(42).String(); s != "priority(42)" {
		t.Errorf("unexpected name for unknown priority: %q", s)
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Priority != "unspecified" {
		t.Errorf("expected default priority 'unspecified', got %q", cfg.Priority)
	}
	if cfg.Limit != 0 {
		t.Errorf("expected unbounded default, got %d", cfg.Limit)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero value", Config{}, false},
		{"bounded", Config{Limit: 4, Priority: "high"}, false},
		{"negative limit", Config{Limit: -1}, true},
		{"unknown priority", Config{Priority: "urgent"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				if !errors.IsCode(err, errors.ErrCodeInvalidArgument) {
					t.Errorf("expected INVALID_ARGUMENT, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Options(t *testing.T) {
	t.Run("zero limit stays unbounded", func(t *testing.T) {
		cfg := Config{Priority: "background"}
		opts, err := cfg.Options()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		o := newOptions("test", opts)
		if o.bounded {
			t.Error("expected unbounded executor")
		}
		if o.priority != PriorityBackground {
			t.Errorf("expected background priority, got %s", o.priority)
		}
	})

	t.Run("positive limit selects bounded", func(t *testing.T) {
		cfg := Config{Limit: 3}
		opts, err := cfg.Options()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		o := newOptions("test", opts)
		if !o.bounded || o.limit != 3 {
			t.Errorf("expected bounded executor with limit 3, got bounded=%v limit=%d", o.bounded, o.limit)
		}
		if o.executor() != "bounded" {
			t.Errorf("unexpected executor name %q", o.executor())
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := Config{Limit: -2}
		if _, err := cfg.Options(); err == nil {
			t.Error("expected error for negative limit")
		}
	})
}

func TestOptions_Defaults(t *testing.T) {
	o := newOptions("concurrent_map", []Option{WithLauncher(nil), WithLogger(nil), WithName("")})
	if o.name != "concurrent_map" {
		t.Errorf("empty name must keep the default, got %q", o.name)
	}
	if _, ok := o.launcher.(GoLauncher); !ok {
		t.Errorf("nil launcher must keep GoLauncher, got %T", o.launcher)
	}
	if o.log == nil {
		t.Error("nil logger must keep the no-op logger")
	}
	if o.executor() != "unbounded" {
		t.Errorf("expected unbounded by default, got %q", o.executor())
	}
}
