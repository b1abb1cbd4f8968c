package util

import (
	"errors"
	"testing"
)

func TestShortID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		n    int
		want string
	}{
		{
			name: "default length truncates",
			id:   "0192f3a4-7b1c-7def-8000-123456789abc",
			n:    0,
			want: "0192f3a4",
		},
		{
			name: "negative uses default",
			id:   "0192f3a4-7b1c-7def-8000-123456789abc",
			n:    -1,
			want: "0192f3a4",
		},
		{
			name: "explicit length 10",
			id:   "0192f3a4-7b1c-7def-8000-123456789abc",
			n:    10,
			want: "0192f3a4-7",
		},
		{
			name: "length longer than ID",
			id:   "task-3",
			n:    20,
			want: "task-3",
		},
		{
			name: "empty ID",
			id:   "",
			n:    8,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortID(tt.id, tt.n); got != tt.want {
				t.Errorf("ShortID(%q, %d) = %q, want %q", tt.id, tt.n, got, tt.want)
			}
		})
	}
}

func TestResolvePrefix(t *testing.T) {
	ids := []string{
		"0192f3a4-aaaa",
		"0192f3a4-bbbb",
		"0192f3b0-cccc",
		"abc",
		"abcd",
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "full id", input: "0192f3b0-cccc", want: "0192f3b0-cccc"},
		{name: "unique prefix", input: "0192f3b", want: "0192f3b0-cccc"},
		{name: "ambiguous prefix", input: "0192f3a4", wantErr: ErrAmbiguousID},
		{name: "exact match beats prefix", input: "abc", want: "abc"},
		{name: "no match", input: "ffff", wantErr: ErrNotFound},
		{name: "empty", input: "  ", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePrefix(tt.input, ids, "project")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolvePrefix(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolvePrefix(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ResolvePrefix(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
