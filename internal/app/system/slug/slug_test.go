package slug

import (
	"context"
	"testing"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"simple title", []string{"Hello World"}, "hello-world"},
		{"title with username", []string{"Hello World", "johndoe"}, "hello-world-johndoe"},
		{"punctuation removed", []string{"What's New? (2024)!"}, "whats-new-2024"},
		{"extra whitespace", []string{"  Spaces   Everywhere  "}, "spaces-everywhere"},
		{"mixed case", []string{"Go Modules: A Guide"}, "go-modules-a-guide"},
		{"unicode collapses", []string{"café au lait"}, "caf-au-lait"},
		{"empty", []string{""}, ""},
		{"only punctuation", []string{"!?!"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Make(tt.parts...)
			if got != tt.want {
				t.Errorf("Make(%v) = %q, want %q", tt.parts, got, tt.want)
			}
		})
	}
}

func TestUnique_NoCollision(t *testing.T) {
	exists := func(ctx context.Context, s string) (bool, error) { return false, nil }

	got, err := Unique(context.Background(), "hello-world", exists)
	if err != nil {
		t.Fatalf("Unique failed: %v", err)
	}
	if got != "hello-world" {
		t.Errorf("got %q, want %q", got, "hello-world")
	}
}

func TestUnique_CollisionSuffixes(t *testing.T) {
	taken := map[string]bool{
		"hello-world":   true,
		"hello-world-1": true,
	}
	exists := func(ctx context.Context, s string) (bool, error) { return taken[s], nil }

	got, err := Unique(context.Background(), "hello-world", exists)
	if err != nil {
		t.Fatalf("Unique failed: %v", err)
	}
	if got != "hello-world-2" {
		t.Errorf("got %q, want %q", got, "hello-world-2")
	}
}

func TestUnique_FirstSuffix(t *testing.T) {
	taken := map[string]bool{"base": true}
	exists := func(ctx context.Context, s string) (bool, error) { return taken[s], nil }

	got, err := Unique(context.Background(), "base", exists)
	if err != nil {
		t.Fatalf("Unique failed: %v", err)
	}
	if got != "base-1" {
		t.Errorf("got %q, want %q", got, "base-1")
	}
}
