package domain

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidTemperature is returned for manual input that is not a finite number.
var ErrInvalidTemperature = errors.New("invalid temperature")

// bandInfo holds the fixed message and tips for each band. Classify copies
// the tip slice so callers cannot mutate these.
var bandInfo = map[Band]StatusInfo{
	BandNormal: {
		Band:    BandNormal,
		Message: "Your phone is cool. Everything is fine",
		Tips: []Tip{
			{Title: "Keep it up", Description: "Your device is running at an optimal temperature. Keep up the good usage habits!"},
		},
		Emoji: "😊",
		Tone:  "cool",
	},
	BandWarm: {
		Band:    BandWarm,
		Message: "Your phone is getting warm",
		Tips: []Tip{
			{Title: "Close background apps", Description: "Apps running in the background keep the processor busy and add heat."},
			{Title: "Lower screen brightness", Description: "The display is one of the largest heat sources; dimming it helps the phone cool down."},
		},
		Emoji: "😰",
		Tone:  "warm",
	},
	BandHot: {
		Band:    BandHot,
		Message: "Your phone is overheating!",
		Tips: []Tip{
			{Title: "Stop charging", Description: "Unplug the charger immediately; charging adds heat to an already hot battery."},
			{Title: "Close heavy apps", Description: "Quit games, video and navigation apps that load the processor."},
			{Title: "Move somewhere cooler", Description: "Let it cool down in a cooler environment, out of direct sunlight."},
		},
		Emoji: "🔥",
		Tone:  "hot",
	},
	BandDangerous: {
		Band:    BandDangerous,
		Message: "Your phone is dangerously hot!",
		Tips: []Tip{
			{Title: "Power off now", Description: "Turn the phone off to stop all heat generation."},
			{Title: "Unplug and remove the case", Description: "Disconnect every cable and take the phone out of its case so heat can escape."},
			{Title: "Do not cool it artificially", Description: "Never put the phone in a fridge or freezer; condensation can damage it."},
			{Title: "Get it checked", Description: "If it overheats again after cooling down, have the battery inspected."},
		},
		Emoji: "🚨",
		Tone:  "danger",
	},
}

// BandFor returns the band whose range contains t.
func BandFor(t float64) Band {
	switch {
	case t < WarmThreshold:
		return BandNormal
	case t < HotThreshold:
		return BandWarm
	case t < DangerousThreshold:
		return BandHot
	default:
		return BandDangerous
	}
}

// Classify maps a finite temperature in °C to its band, message and tips.
// It is pure: the same input always yields an equal result.
func Classify(t float64) StatusInfo {
	info := bandInfo[BandFor(t)]
	info.Tips = append([]Tip(nil), info.Tips...)
	return info
}

// decimalPattern is the accepted manual-entry grammar: plain decimal notation
// with an optional sign and exponent.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseTemperature validates manual input. Surrounding whitespace and one
// trailing "°C" or "C" unit are accepted.
func ParseTemperature(input string) (float64, error) {
	s := strings.TrimSpace(input)
	for _, unit := range []string{"°C", "°c", "C", "c"} {
		if trimmed, ok := strings.CutSuffix(s, unit); ok {
			s = strings.TrimSpace(trimmed)
			break
		}
	}
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidTemperature)
	}
	if !decimalPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidTemperature, input)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidTemperature, input)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrInvalidTemperature, input)
	}
	return v, nil
}
