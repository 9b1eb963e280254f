package trivia

import "testing"

func TestNormalizeArabic(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hamza alef", "أحمد", "احمد"},
		{"alef madda", "آمين", "امين"},
		{"hamza under", "إيمان", "ايمان"},
		{"ta marbuta", "مكة", "مكه"},
		{"alef maksura", "موسى", "موسي"},
		{"punctuation", "الحفرة!", "الحفره"},
		{"diacritics", "راعِيّ", "راعي"},
		{"latin lowered", "  Hello  ", "hello"},
		{"inner space kept", "الراعي الصالح", "الراعي الصالح"},
		{"trailing after strip", "احمد !", "احمد"},
		{"empty", "؟!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeArabic(tt.in); got != tt.want {
				t.Errorf("NormalizeArabic(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeArabicEquivalence(t *testing.T) {
	pairs := [][2]string{
		{"أحمد", "احمد"},
		{"مكة", "مكه"},
		{"الساعة", "الساعه!"},
		{"يونان.", "يونان"},
	}
	for _, p := range pairs {
		if NormalizeArabic(p[0]) != NormalizeArabic(p[1]) {
			t.Errorf("expected %q and %q to normalize equal, got %q vs %q",
				p[0], p[1], NormalizeArabic(p[0]), NormalizeArabic(p[1]))
		}
	}
}
