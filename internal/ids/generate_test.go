package ids

import (
	"strings"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	t.Run("is deterministic", func(t *testing.T) {
		first := Generate("weakness", DefaultLength)
		second := Generate("weakness", DefaultLength)
		if first != second {
			t.Errorf("Generate not deterministic: %q vs %q", first, second)
		}
	})

	t.Run("respects length", func(t *testing.T) {
		id := Generate("challenge", 12)
		if len(id) != 12 {
			t.Errorf("len = %d, want 12", len(id))
		}
	})

	t.Run("zero length returns empty", func(t *testing.T) {
		if id := Generate("x", 0); id != "" {
			t.Errorf("Generate with length 0 = %q, want empty", id)
		}
	})

	t.Run("is lowercase", func(t *testing.T) {
		id := Generate("pressure", 32)
		if id != strings.ToLower(id) {
			t.Errorf("id %q contains uppercase", id)
		}
	})

	t.Run("different inputs differ", func(t *testing.T) {
		if Generate("a", DefaultLength) == Generate("b", DefaultLength) {
			t.Error("distinct inputs produced the same id")
		}
	})
}

func TestGenerateWithTimestamp(t *testing.T) {
	base := time.Date(2024, 1, 12, 9, 30, 0, 0, time.UTC)

	first := GenerateWithTimestamp("impact", base, DefaultLength)
	same := GenerateWithTimestamp("impact", base, DefaultLength)
	if first != same {
		t.Errorf("same timestamp produced different ids: %q vs %q", first, same)
	}

	later := GenerateWithTimestamp("impact", base.Add(time.Nanosecond), DefaultLength)
	if first == later {
		t.Error("different timestamps produced the same id")
	}
}
