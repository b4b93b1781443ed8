package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandFor(t *testing.T) {
	tests := []struct {
		name     string
		celsius  float64
		expected Band
	}{
		{"far below zero", -40, BandNormal},
		{"room temperature", 22, BandNormal},
		{"upper normal boundary", 34, BandNormal},
		{"fraction below warm", 34.9, BandNormal},
		{"lower warm boundary", 35, BandWarm},
		{"upper warm boundary", 44, BandWarm},
		{"fraction below hot", 44.99, BandWarm},
		{"lower hot boundary", 45, BandHot},
		{"upper hot boundary", 54, BandHot},
		{"lower dangerous boundary", 55, BandDangerous},
		{"extreme", 120, BandDangerous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BandFor(tt.celsius))
		})
	}
}

func TestClassify_BandRanges(t *testing.T) {
	for c := -10; c <= 34; c++ {
		assert.Equal(t, BandNormal, Classify(float64(c)).Band, "t=%d", c)
	}
	for c := 35; c <= 44; c++ {
		assert.Equal(t, BandWarm, Classify(float64(c)).Band, "t=%d", c)
	}
	for c := 45; c <= 54; c++ {
		assert.Equal(t, BandHot, Classify(float64(c)).Band, "t=%d", c)
	}
	for c := 55; c <= 90; c++ {
		assert.Equal(t, BandDangerous, Classify(float64(c)).Band, "t=%d", c)
	}
}

func TestClassify_Messages(t *testing.T) {
	assert.Equal(t, "Your phone is cool. Everything is fine", Classify(20).Message)
	assert.Equal(t, "Your phone is getting warm", Classify(40).Message)
	assert.Equal(t, "Your phone is overheating!", Classify(50).Message)
	assert.Equal(t, "Your phone is dangerously hot!", Classify(60).Message)
}

func TestClassify_TipsOrderedByUrgency(t *testing.T) {
	info := Classify(50)
	require.Len(t, info.Tips, 3)
	assert.Equal(t, "Stop charging", info.Tips[0].Title)

	info = Classify(70)
	require.NotEmpty(t, info.Tips)
	assert.Equal(t, "Power off now", info.Tips[0].Title)
}

func TestClassify_Deterministic(t *testing.T) {
	for _, c := range []float64{-5, 34, 35, 44.5, 45, 54, 55, 99} {
		assert.Equal(t, Classify(c), Classify(c))
	}
}

func TestClassify_ReturnsIndependentTips(t *testing.T) {
	first := Classify(40)
	first.Tips[0].Title = "mutated"

	second := Classify(40)
	assert.Equal(t, "Close background apps", second.Tips[0].Title)
}

func TestClassify_EveryBandHasPresentation(t *testing.T) {
	for _, c := range []float64{20, 40, 50, 60} {
		info := Classify(c)
		assert.NotEmpty(t, info.Emoji, "band %s", info.Band)
		assert.NotEmpty(t, info.Tone, "band %s", info.Band)
		assert.NotEmpty(t, info.Tips, "band %s", info.Band)
	}
}

func TestParseTemperature(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"integer", "44", 44},
		{"decimal", "38.5", 38.5},
		{"negative", "-3", -3},
		{"surrounding spaces", "  45 ", 45},
		{"celsius suffix", "41°C", 41},
		{"bare C suffix", "41 C", 41},
		{"lowercase suffix", "41c", 41},
		{"explicit sign", "+42", 42},
		{"leading dot", ".5", 0.5},
		{"trailing dot", "45.", 45},
		{"exponent", "4.2e1", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseTemperature(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestParseTemperature_Invalid(t *testing.T) {
	for _, input := range []string{
		"", "   ", "abc", "38abc", "NaN", "Inf", "-infinity", "°C",
		"0x2Cp0", "0x1_6p1", "4_4", "44cC", "44°C°C", "44 C C", "1e400",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseTemperature(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTemperature)
		})
	}
}

func TestBand_TextRoundTrip(t *testing.T) {
	data, err := json.Marshal(map[string]Band{"band": BandHot})
	require.NoError(t, err)
	assert.JSONEq(t, `{"band":"hot"}`, string(data))

	var b Band
	require.NoError(t, b.UnmarshalText([]byte("dangerous")))
	assert.Equal(t, BandDangerous, b)

	assert.Error(t, b.UnmarshalText([]byte("lukewarm")))
	_, err = Band(9).MarshalText()
	assert.Error(t, err)
}

func TestBand_Ordered(t *testing.T) {
	assert.True(t, BandNormal < BandWarm)
	assert.True(t, BandWarm < BandHot)
	assert.True(t, BandHot < BandDangerous)
}
