//go:build unit

package i18n

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeList(t *testing.T) {
	t.Run("empty stored value decodes to empty slice", func(t *testing.T) {
		got, err := DecodeList("highlights", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("expected non-nil empty slice, got %#v", got)
		}
	})

	t.Run("stored null decodes to empty slice", func(t *testing.T) {
		got, err := DecodeList("highlights", "null")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("expected non-nil empty slice, got %#v", got)
		}
	})

	t.Run("malformed value surfaces a DecodeError", func(t *testing.T) {
		_, err := DecodeList("highlights", `["寺庙",`)
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("expected DecodeError, got %v", err)
		}
		if de.Field != "highlights" {
			t.Errorf("expected field 'highlights', got %q", de.Field)
		}
	})
}

func TestListRoundTrip(t *testing.T) {
	cases := [][]string{
		{"寺庙", "长城"},
		{"Temples", "Great Wall"},
		{},
		{"", "mixed", "值"},
	}
	for _, in := range cases {
		encoded, err := EncodeList(in)
		if err != nil {
			t.Fatalf("EncodeList(%v) failed: %v", in, err)
		}
		decoded, err := DecodeList("test", encoded)
		if err != nil {
			t.Fatalf("DecodeList(%q) failed: %v", encoded, err)
		}
		if !reflect.DeepEqual(decoded, in) {
			t.Errorf("round trip of %v gave %v", in, decoded)
		}
	}
}

func TestEncodeList_NilStoresNull(t *testing.T) {
	encoded, err := EncodeList(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if encoded != "" {
		t.Errorf("expected empty string for nil input, got %q", encoded)
	}
}

func TestDecodeRaw(t *testing.T) {
	t.Run("empty decodes to empty array", func(t *testing.T) {
		got, err := DecodeRaw("itinerary", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != "[]" {
			t.Errorf("expected [], got %s", got)
		}
	})

	t.Run("valid document passes through unchanged", func(t *testing.T) {
		doc := `[{"day":1,"title":"长城"}]`
		got, err := DecodeRaw("itinerary", doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != doc {
			t.Errorf("expected document unchanged, got %s", got)
		}
	})

	t.Run("invalid document surfaces a DecodeError", func(t *testing.T) {
		_, err := DecodeRaw("itinerary", `{"day":`)
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("expected DecodeError, got %v", err)
		}
	})
}

func TestTranslateLabel(t *testing.T) {
	rows := []LabelRow{
		{Name: "科学技术", NameEn: "STEM"},
		{Name: "商科", NameEn: "Business"},
		{Name: "人文"},
	}

	cases := []struct {
		name string
		raw  string
		lang string
		want string
	}{
		{"canonical name, alternate language", "科学技术", "en", "STEM"},
		{"english name, alternate language", "STEM", "en", "STEM"},
		{"english name, canonical language", "STEM", "zh", "科学技术"},
		{"no english name falls back to canonical", "人文", "en", "人文"},
		{"unmatched value passes through", "Robotics", "en", "Robotics"},
		{"unmatched value, canonical language", "航天", "zh", "航天"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TranslateLabel(tc.raw, rows, tc.lang, "zh"); got != tc.want {
				t.Errorf("TranslateLabel(%q, %q) = %q, want %q", tc.raw, tc.lang, got, tc.want)
			}
		})
	}
}

func TestTranslateLabels(t *testing.T) {
	rows := []LabelRow{{Name: "科学技术", NameEn: "STEM"}}
	got := TranslateLabels([]string{"科学技术", "Robotics"}, rows, "en", "zh")
	want := []string{"STEM", "Robotics"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TranslateLabels = %v, want %v", got, want)
	}
}
