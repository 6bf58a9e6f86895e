package phone

import "testing"

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"901234567", true},
		{"+998901234567", true},
		{"call me 33", true},
		{"no number here", false},
		{"", false},
		{"+-()", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.in); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plus_kept_verbatim", "+998901234567", "+998901234567"},
		{"foreign_plus_kept", "+79161234567", "+79161234567"},
		{"nine_digits_prefixed", "901234567", "+998901234567"},
		{"longer_takes_last_nine", "998901234567", "+998901234567"},
		{"shorter_prefixed_whole", "1234567", "+9981234567"},
		{"trims_whitespace", "  901234567  ", "+998901234567"},
		{"plus_after_trim", " +998901234567 ", "+998901234567"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in, "+998"); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
