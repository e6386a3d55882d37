package phone

import "testing"

func TestStrictGhanaNumber(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"0591234567", true},
		{"0512345678", true},
		{"059-123-4567", true}, // non-digits stripped first
		{"059 123 4567", true},
		{"(059) 123-4567", true},
		{"1234567890", false}, // wrong prefix
		{"0491234567", false}, // wrong prefix
		{"059123456", false},  // too short
		{"05912345678", false},
		{"591234567", false}, // no leading zero: strict does not derive it
		{"", false},
		{"abcdefghij", false},
	}
	for _, tc := range cases {
		if got := StrictGhanaNumber(tc.in); got != tc.valid {
			t.Errorf("StrictGhanaNumber(%q) = %v, want %v", tc.in, got, tc.valid)
		}
	}
}

func TestLenientGhanaNumberNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"0591234567", "0591234567", true},
		{"591234567", "0591234567", true},        // 9-digit local, leading zero derived
		{"233591234567", "3591234567", false},     // last 10 digits kept, no country-code stripping
		{"+233 59 123 4567", "3591234567", false}, // same: country code is not understood
		{"059 123 4567", "0591234567", true},
		{"123", "123", false},
		{"0491234567", "0491234567", false},
	}
	for _, tc := range cases {
		got, ok := LenientGhanaNumberNormalize(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("LenientGhanaNumberNormalize(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
