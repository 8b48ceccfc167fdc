package index

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"punctuation only", "?!., ;", nil},
		{"lowercases and splits", "Who are my Target Customers?", []string{"who", "are", "my", "target", "customers"}},
		{"keeps duplicates in order", "shop to shop", []string{"shop", "to", "shop"}},
		{"underscore is a word character", "gyb_chunks v2", []string{"gyb_chunks", "v2"}},
		{"digits", "2 tailors, 5 years", []string{"2", "tailors", "5", "years"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Tokenize(tc.input); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestTokenSetDeduplicates(t *testing.T) {
	set := TokenSet("shop to shop to shop")
	if len(set) != 2 {
		t.Fatalf("expected 2 distinct tokens, got %d", len(set))
	}
	for _, token := range []string{"shop", "to"} {
		if _, ok := set[token]; !ok {
			t.Fatalf("missing token %q", token)
		}
	}
}

func TestIndexStatistics(t *testing.T) {
	idx := New(passages(
		"small shop pricing",
		"shop location",
	), Params{})

	if idx.Size() != 2 {
		t.Fatalf("expected 2 passages, got %d", idx.Size())
	}
	if idx.avgLen != 2.5 {
		t.Fatalf("expected avgdl 2.5, got %v", idx.avgLen)
	}
	if idx.docFreq["shop"] != 2 {
		t.Fatalf("expected df(shop)=2, got %d", idx.docFreq["shop"])
	}
	if idx.docFreq["pricing"] != 1 {
		t.Fatalf("expected df(pricing)=1, got %d", idx.docFreq["pricing"])
	}
}

func TestParamsNormalizeDefaults(t *testing.T) {
	p := Params{}.normalize()
	if p.K1 != 1.5 || p.B != 0.75 {
		t.Fatalf("unexpected defaults: k1=%v b=%v", p.K1, p.B)
	}

	p = Params{K1: 1.2, B: 0.5}.normalize()
	if p.K1 != 1.2 || p.B != 0.5 {
		t.Fatalf("explicit params overridden: k1=%v b=%v", p.K1, p.B)
	}
}
