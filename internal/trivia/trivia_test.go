package trivia

import (
	"reflect"
	"testing"
)

func TestCategoryStage(t *testing.T) {
	if got := Riddles.Stage(); got != 0 {
		t.Errorf("Riddles.Stage() = %d, want 0", got)
	}
	if got := Wheel.Stage(); got != WheelStage {
		t.Errorf("Wheel.Stage() = %d, want %d", got, WheelStage)
	}
	if got := Category("bogus").Stage(); got != -1 {
		t.Errorf("unknown category stage = %d, want -1", got)
	}
	if Category("bogus").Valid() {
		t.Error("unknown category reported valid")
	}
	if Wheel.Editable() {
		t.Error("wheel must not be editable")
	}
	if !Math.Editable() {
		t.Error("math must be editable")
	}
}

func TestRiddleCheck(t *testing.T) {
	r := Riddle{Answer: "الحفرة", Accepted: []string{"حفرة"}}

	tests := []struct {
		guess string
		want  bool
	}{
		{"الحفرة", true},
		{"الحفره", true},
		{"  الحفرة!  ", true},
		{"حفرة", true},
		{"حفره", true},
		{"الساعة", false},
		{"", false},
		{"!!", false},
	}
	for _, tt := range tests {
		if got := r.Check(tt.guess); got != tt.want {
			t.Errorf("Check(%q) = %v, want %v", tt.guess, got, tt.want)
		}
	}
}

func TestMathCheck(t *testing.T) {
	q := MathQuestion{Answer: 15}
	if !q.Check(" 15 ") {
		t.Error("expected trimmed numeric input to match")
	}
	if q.Check("fifteen") {
		t.Error("expected non-numeric input to fail")
	}
	if q.Check("16") {
		t.Error("expected wrong number to fail")
	}
}

func TestNextID(t *testing.T) {
	if got := NextID([]Riddle{}); got != 1 {
		t.Errorf("NextID(empty) = %d, want 1", got)
	}
	items := []Riddle{{ID: 3}, {ID: 7}, {ID: 2}}
	if got := NextID(items); got != 8 {
		t.Errorf("NextID = %d, want 8", got)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a, b ,c", []string{"a", "b", "c"}},
		{"a,,b,", []string{"a", "b"}},
		{"  ", nil},
		{"", nil},
		{"واحد, اثنان", []string{"واحد", "اثنان"}},
	}
	for _, tt := range tests {
		if got := SplitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDefaultVersesLevels(t *testing.T) {
	counts := map[int]int{}
	for _, v := range DefaultVerses {
		counts[v.Level]++
	}
	for lvl := 1; lvl <= VerseLevels; lvl++ {
		if counts[lvl] == 0 {
			t.Errorf("level %d has no verse challenges", lvl)
		}
	}
}
