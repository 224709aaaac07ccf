package signing

import "testing"

func TestParseVariant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{in: "debug", want: Debug},
		{in: "Release", want: Release},
		{in: " RELEASE ", want: Release},
		{in: "profile", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseVariant(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseVariant(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseVariant(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestVariantText(t *testing.T) {
	t.Parallel()

	var v Variant
	if err := v.UnmarshalText([]byte("release")); err != nil || v != Release {
		t.Fatalf("expected release, got %v (%v)", v, err)
	}

	text, err := Debug.MarshalText()
	if err != nil || string(text) != "debug" {
		t.Fatalf("expected debug, got %q (%v)", text, err)
	}

	if got := Variant(7).String(); got != "variant(7)" {
		t.Fatalf("unexpected string for unknown variant: %s", got)
	}
	if err := v.UnmarshalText([]byte("bogus")); err == nil {
		t.Fatalf("expected error for unknown variant name")
	}
}
