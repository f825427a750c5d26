package template

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"
)

var enUS = language.AmericanEnglish

func apply(tb testing.TB, m Modifier, value any, argument string, locale language.Tag) any {
	tb.Helper()
	result, err := m(value, argument, locale)
	if err != nil {
		tb.Fatalf("modifier failed: %v", err)
	}
	return result
}

func TestFormatModifierNumbers(t *testing.T) {
	t.Run("NoArgumentPassesThrough", func(t *testing.T) {
		if got := apply(t, formatModifier, 42, "", enUS); got != 42 {
			t.Errorf("got %v, want 42", got)
		}
	})

	t.Run("Percent", func(t *testing.T) {
		if got := apply(t, formatModifier, 0.5, "percent", enUS); got != "50%" {
			t.Errorf("got %q, want %q", got, "50%")
		}
	})

	t.Run("Decimal", func(t *testing.T) {
		if got := apply(t, formatModifier, 1234.5, "decimal", enUS); got != "1,234.5" {
			t.Errorf("got %q, want %q", got, "1,234.5")
		}
	})

	t.Run("Currency", func(t *testing.T) {
		got := apply(t, formatModifier, 12.5, "currency", enUS).(string)
		if !strings.Contains(got, "$") || !strings.Contains(got, "12.5") {
			t.Errorf("got %q, want a dollar amount", got)
		}
	})

	t.Run("IntegersAccepted", func(t *testing.T) {
		if got := apply(t, formatModifier, 1000000, "decimal", enUS); got != "1,000,000" {
			t.Errorf("got %q, want %q", got, "1,000,000")
		}
	})

	t.Run("NonNumericFails", func(t *testing.T) {
		if _, err := formatModifier("abc", "percent", enUS); err == nil {
			t.Error("expected an error for non-numeric input")
		}
	})
}

func TestFormatModifierDates(t *testing.T) {
	moment := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		argument string
		value    any
		want     string
	}{
		{"isoDate", moment, "2024-03-05"},
		{"mediumDate", moment, "Mar 5, 2024"},
		{"longDate", moment, "March 5, 2024"},
		{"fullDate", moment, "Tuesday, March 5, 2024"},
		{"shortTime", moment, "2:30 PM"},
		{"isoTime", moment, "14:30:00"},
		{"mediumDateTime", moment, "Mar 5, 2024, 2:30:00 PM"},

		// String input parses per style family.
		{"mediumDate", "2024-03-05", "Mar 5, 2024"},
		{"isoTime", "14:30", "14:30:00"},
		{"isoDateTime", "2024-03-05T14:30:00Z", "2024-03-05T14:30:00Z"},

		// Numeric input is epoch milliseconds.
		{"isoDate", 0, "1970-01-01"},
	}

	for _, tt := range tests {
		got := apply(t, formatModifier, tt.value, tt.argument, enUS)
		if got != tt.want {
			t.Errorf("format %s(%v) = %q, want %q", tt.argument, tt.value, got, tt.want)
		}
	}

	t.Run("UnparseableStringFails", func(t *testing.T) {
		if _, err := formatModifier("yesterday", "mediumDate", enUS); err == nil {
			t.Error("expected an error for unparseable date input")
		}
	})
}

func TestFormatModifierPattern(t *testing.T) {
	if got := apply(t, formatModifier, 3.14159, "%.2f", enUS); got != "3.14" {
		t.Errorf("got %q, want %q", got, "3.14")
	}
	if got := apply(t, formatModifier, "x", "<%s>", enUS); got != "<x>" {
		t.Errorf("got %q, want %q", got, "<x>")
	}
}

func TestEscapeModifiers(t *testing.T) {
	t.Run("Markup", func(t *testing.T) {
		got := apply(t, markupEscapeModifier, `<a href="x">&</a>`, "", enUS)
		want := "&lt;a href=&quot;x&quot;&gt;&amp;&lt;/a&gt;"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		got := apply(t, jsonEscapeModifier, "line\none\t\"quoted\"\\", "", enUS)
		want := `line\none\t\"quoted\"\\`
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("CSV", func(t *testing.T) {
		got := apply(t, csvEscapeModifier, `plain "quoted", comma`, "", enUS)
		want := `"plain ""quoted"", comma"`
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("URL", func(t *testing.T) {
		got := apply(t, urlEscapeModifier, "a b&c", "", enUS)
		want := "a+b%26c"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("NonStringsPassThrough", func(t *testing.T) {
		if got := apply(t, markupEscapeModifier, 42, "", enUS); got != 42 {
			t.Errorf("got %v, want 42", got)
		}
		if got := apply(t, csvEscapeModifier, true, "", enUS); got != true {
			t.Errorf("got %v, want true", got)
		}
	})
}

func TestTextModifiers(t *testing.T) {
	if got := apply(t, upperModifier, "straße", "", language.German); got != "STRASSE" {
		t.Errorf("upper: got %q, want %q", got, "STRASSE")
	}
	if got := apply(t, lowerModifier, "LOUD", "", enUS); got != "loud" {
		t.Errorf("lower: got %q, want %q", got, "loud")
	}
	if got := apply(t, trimModifier, "\t padded \n", "", enUS); got != "padded" {
		t.Errorf("trim: got %q, want %q", got, "padded")
	}
}

func TestMarkdownModifier(t *testing.T) {
	got := apply(t, markdownModifier, "# Title", "", enUS).(string)
	if !strings.Contains(got, "<h1>Title</h1>") {
		t.Errorf("got %q, want an <h1> fragment", got)
	}

	if got := apply(t, markdownModifier, 7, "", enUS); got != 7 {
		t.Errorf("non-string input: got %v, want 7", got)
	}
}

func TestRegistryCloneIsIndependent(t *testing.T) {
	base := DefaultModifiers()
	derived := base.clone()

	derived.Register("only-here", func(value any, _ string, _ language.Tag) (any, error) {
		return value, nil
	})

	if _, ok := derived.lookup("only-here"); !ok {
		t.Error("derived registry lost its registration")
	}
	if _, ok := base.lookup("only-here"); ok {
		t.Error("registration leaked into the source registry")
	}
	if _, ok := DefaultModifiers().lookup("only-here"); ok {
		t.Error("registration leaked into the defaults")
	}
}
