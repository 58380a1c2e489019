package ui

import "testing"

func TestPrefixLength(t *testing.T) {
	tests := []struct {
		name   string
		length map[string]int
		id     string
		want   int
	}{
		{
			name:   "case insensitive lookup",
			length: map[string]int{"abc123": 4},
			id:     "ABC123",
			want:   4,
		},
		{
			name:   "missing id",
			length: map[string]int{"abc123": 4},
			id:     "",
			want:   0,
		},
		{
			name:   "nil map",
			length: nil,
			id:     "ABC123",
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrefixLength(tt.length, tt.id); got != tt.want {
				t.Fatalf("PrefixLength() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUniqueIDPrefixLengths(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want map[string]int
	}{
		{
			name: "distinct first characters",
			ids:  []string{"abc", "xyz"},
			want: map[string]int{"abc": 1, "xyz": 1},
		},
		{
			name: "shared prefix extends length",
			ids:  []string{"abc123", "abd456", "xyz"},
			want: map[string]int{"abc123": 3, "abd456": 3, "xyz": 1},
		},
		{
			name: "one id is a prefix of another",
			ids:  []string{"ab", "abcd"},
			want: map[string]int{"ab": 2, "abcd": 3},
		},
		{
			name: "duplicates and blanks collapse",
			ids:  []string{"abc", "ABC", ""},
			want: map[string]int{"abc": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UniqueIDPrefixLengths(tt.ids)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d entries, got %d (%v)", len(tt.want), len(got), got)
			}
			for id, want := range tt.want {
				if got[id] != want {
					t.Errorf("prefix length for %q = %d, want %d", id, got[id], want)
				}
			}
		})
	}
}
