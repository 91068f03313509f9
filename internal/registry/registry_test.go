package registry

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/greedycat/internal/core"
)

func TestBuiltinProfiles(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		interval time.Duration
	}{
		{"phone", 20, 20, 150 * time.Millisecond},
		{"tablet", 30, 30, 120 * time.Millisecond},
		{"desktop", 32, 32, 100 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Get(tc.name)
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tc.name, err)
			}
			if s.GridWidth != tc.w || s.GridHeight != tc.h || s.TickInterval != tc.interval {
				t.Errorf("Get(%q) = %+v, expected %dx%d/%s", tc.name, s, tc.w, tc.h, tc.interval)
			}
		})
	}

	if !Exists(DefaultProfile) {
		t.Errorf("default profile %q is not registered", DefaultProfile)
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("watch")
	if !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("Get(watch) error = %v, expected ErrUnknownProfile", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register() with a duplicate name should panic")
		}
	}()
	Register("phone", core.DefaultSettings())
}

func TestDefine(t *testing.T) {
	if err := Define("tiny", core.Settings{GridWidth: 0, GridHeight: 5, TickInterval: time.Millisecond}); err == nil {
		t.Error("Define() with zero width should fail")
	}

	s := core.Settings{GridWidth: 8, GridHeight: 6, TickInterval: 80 * time.Millisecond}
	if err := Define("tiny", s); err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	got, err := Get("tiny")
	if err != nil || got != s {
		t.Errorf("Get(tiny) = %+v, %v, expected %+v", got, err, s)
	}

	list := List()
	if len(list) == 0 || list[0].Name != "tiny" {
		t.Errorf("List()[0] = %+v, expected the smallest grid first", list)
	}
}
