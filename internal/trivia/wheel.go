package trivia

import "math/rand/v2"

// WheelSlice is one segment of the reward wheel. Points is the signed score
// delta the slice applies; zero means a non-point prize with no score
// effect.
type WheelSlice struct {
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// WheelSlices is the fixed slice list, clockwise from the top pointer.
var WheelSlices = []WheelSlice{
	{Label: "+50 نقطة", Points: 50},
	{Label: "بونبوني"},
	{Label: "قول ترنيمة"},
	{Label: "خسر الدور"},
	{Label: "دبل سكور"},
	{Label: "حظ سعيد"},
	{Label: "صلاة خاصة"},
	{Label: "-10 نقاط", Points: -10},
}

const wheelMinTurns = 4

// SpinRotation picks a total rotation in degrees: at least wheelMinTurns
// full turns plus a random offset under one turn.
func SpinRotation() int {
	return wheelMinTurns*360 + rand.IntN(360)
}

// WinningIndex maps a total rotation to the slice that ends up under the
// fixed top pointer.
func WinningIndex(rotation, sliceCount int) int {
	effective := (360 - rotation%360) % 360
	return effective / (360 / sliceCount)
}
