package drawer

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "drawer.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("config = %+v, want defaults", cfg)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawer.toml")
	if err := os.WriteFile(path, []byte("snap = {"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Error("malformed file must still yield defaults")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawer.toml")

	cfg := DefaultConfig()
	cfg.Heights.Collapsed = 80
	cfg.Snap.Mode = "threshold"
	cfg.Snap.Threshold = 32
	cfg.Transition.Easing = "bounce"
	cfg.Layout.Positions = []string{"collapsed", "open"}

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Heights.Collapsed != 80 {
		t.Errorf("collapsed height = %v, want 80", loaded.Heights.Collapsed)
	}
	if loaded.Snap.Mode != "threshold" || loaded.Snap.Threshold != 32 {
		t.Errorf("snap = %+v, want threshold/32", loaded.Snap)
	}
	if loaded.Transition.Easing != "bounce" {
		t.Errorf("easing = %q, want bounce", loaded.Transition.Easing)
	}
	if len(loaded.Layout.Positions) != 2 {
		t.Errorf("positions = %v, want 2 entries", loaded.Layout.Positions)
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawer.toml")
	data := "[snap]\nmode = \"threshold\"\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Snap.Mode != "threshold" {
		t.Errorf("snap mode = %q, want threshold", cfg.Snap.Mode)
	}
	// Untouched sections keep their defaults.
	if cfg.Heights.Collapsed != DefaultCollapsedHeight {
		t.Errorf("collapsed height = %v, want default", cfg.Heights.Collapsed)
	}
	if cfg.Dimming.MaxOpacity != DefaultMaxDimmingOpacity {
		t.Errorf("max opacity = %v, want default", cfg.Dimming.MaxOpacity)
	}
}

func TestConfigApplyPositionsSurviveModeChange(t *testing.T) {
	d := New(ContentConfig{})
	d.SetContainerSize(600, 500)

	cfg := DefaultConfig()
	cfg.Layout.Positions = []string{"collapsed", "open"}
	cfg.Layout.Mode = "panel"
	cfg.Apply(d)

	assertSupported := func(context string) {
		t.Helper()
		got := d.SupportedPositions()
		want := []Position{Collapsed, Open}
		if len(got) != len(want) {
			t.Fatalf("%s: supported = %v, want %v", context, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: supported[%d] = %v, want %v", context, i, got[i], want[i])
			}
		}
	}

	// The mode change inside Apply re-polls the supported set; the
	// configured restriction must survive it.
	if got := d.ResolvedDisplayMode(); got != ModePanel {
		t.Fatalf("resolved mode = %v, want panel", got)
	}
	assertSupported("after apply")

	d.SetSupportedPositionsNeedsUpdate()
	assertSupported("after re-poll")

	d.SetContainerSize(300, 500)
	assertSupported("after resize")
}

func TestConfigApplyUnknownSnapMode(t *testing.T) {
	d := New(ContentConfig{})

	var diagnostics bytes.Buffer
	d.SetDiagnosticOutput(&diagnostics)

	cfg := DefaultConfig()
	cfg.Snap.Mode = "magnetic"
	cfg.Apply(d)

	if d.snapMode != SnapNearest {
		t.Errorf("snap mode = %v, want fallback SnapNearest", d.snapMode)
	}
	if !strings.Contains(diagnostics.String(), "snap mode") {
		t.Errorf("expected a snap-mode diagnostic, got %q", diagnostics.String())
	}
}

func TestConfigApply(t *testing.T) {
	d := New(ContentConfig{})

	cfg := DefaultConfig()
	cfg.Heights.Collapsed = 90
	cfg.Heights.PartiallyRevealed = 320
	cfg.Snap.Mode = "threshold"
	cfg.Snap.Threshold = 25
	cfg.Dimming.MaxOpacity = 0.8
	cfg.Transition.DurationMillis = 150
	cfg.Transition.Easing = "cubic"
	cfg.Layout.Mode = "drawer"
	cfg.Layout.Positions = []string{"collapsed", "open", "closed"}

	cfg.Apply(d)
	d.SetContainerSize(600, 500)

	if d.snapMode != SnapNearestUnlessExceeded || d.snapThreshold != 25 {
		t.Errorf("snap = %v/%v, want threshold/25", d.snapMode, d.snapThreshold)
	}
	if d.maxDimmingOpacity != 0.8 {
		t.Errorf("max dimming = %v, want 0.8", d.maxDimmingOpacity)
	}
	if d.duration != 150*time.Millisecond {
		t.Errorf("duration = %v, want 150ms", d.duration)
	}
	if d.ResolvedDisplayMode() != ModeDrawer {
		t.Errorf("mode = %v, want drawer", d.ResolvedDisplayMode())
	}

	stops := d.Stops()
	if stops[Collapsed] != 90 {
		t.Errorf("collapsed stop = %v, want configured 90", stops[Collapsed])
	}
	if _, ok := stops[PartiallyRevealed]; ok {
		t.Error("partial stop present despite restricted position set")
	}

	supported := d.SupportedPositions()
	want := []Position{Collapsed, Open, Closed}
	if len(supported) != len(want) {
		t.Fatalf("supported = %v, want %v", supported, want)
	}
	for i := range want {
		if supported[i] != want[i] {
			t.Errorf("supported[%d] = %v, want %v", i, supported[i], want[i])
		}
	}
}
