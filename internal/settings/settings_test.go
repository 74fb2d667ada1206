package settings

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
)

func openTestStore(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)

	store, err := gdata.Open(gdata.Config{AppName: "airplane_test"})
	if err != nil {
		t.Fatalf("gdata.Open() failed: %v", err)
	}
	return store
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestDefaults(t *testing.T) {
	m := New(nil, quietLogger())

	if !m.Enabled(Music) {
		t.Error("music should default to on")
	}
	if !m.Enabled(Sound) {
		t.Error("sound should default to on")
	}
	if m.Enabled("volume") {
		t.Error("unknown setting should read false")
	}
}

func TestSetAndToggle(t *testing.T) {
	m := New(nil, quietLogger())

	if err := m.Set(Music, false); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if m.Enabled(Music) {
		t.Error("music should be off")
	}

	if on := m.Toggle(Music); !on {
		t.Error("Toggle should return true")
	}
	if on := m.Toggle(Sound); on {
		t.Error("Toggle should return false")
	}
	if m.Enabled(Sound) {
		t.Error("sound should be off")
	}

	if err := m.Set("volume", true); err == nil {
		t.Error("expected error for unknown setting")
	}
}

func TestMemoryOnlySave(t *testing.T) {
	m := New(nil, quietLogger())
	m.Set(Sound, false)
	if err := m.Save(); err != nil {
		t.Errorf("Save() on memory-only manager = %v", err)
	}
}

func TestPersistRoundTrip(t *testing.T) {
	store := openTestStore(t)

	m := New(store, quietLogger())
	if v := m.Values(); v != Defaults() {
		t.Errorf("first run values = %+v, want defaults", v)
	}
	m.Set(Music, false)
	if err := m.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	reloaded := New(store, quietLogger())
	if reloaded.Enabled(Music) {
		t.Error("music toggle not persisted")
	}
	if !reloaded.Enabled(Sound) {
		t.Error("sound toggle changed unexpectedly")
	}
}

func TestLoadCorrupt(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveObjectProp(settingsObject, settingsProperty, []byte("music_enabled: [")); err != nil {
		t.Fatalf("SaveObjectProp() failed: %v", err)
	}

	m := New(store, quietLogger())
	if v := m.Values(); v != Defaults() {
		t.Errorf("corrupt data should fall back to defaults, got %+v", v)
	}
	if err := m.Load(); err == nil {
		t.Error("expected decode error")
	}
}
