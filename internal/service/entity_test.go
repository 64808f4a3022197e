package service

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"nlu/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityExtractor_Extract(t *testing.T) {
	extractor := NewEntityExtractor(nil)

	tests := []struct {
		name      string
		utterance string
		want      []model.Entity
	}{
		{
			name:      "Bedroom count with inferred area",
			utterance: "I need a 3 bedroom clean",
			want: []model.Entity{
				{Name: model.EntityBedroomCount, Value: 3, RawValue: "3 bedroom", Confidence: 0.85, Start: intPtr(9), End: intPtr(18)},
				{Name: model.EntityHomeAreaM2, Value: 110, RawValue: "3 bedroom", Confidence: 0.75, Estimated: boolPtr(true)},
			},
		},
		{
			name:      "Literal area",
			utterance: "my flat is 95 sqm",
			want: []model.Entity{
				{Name: model.EntityHomeAreaM2, Value: 95, RawValue: "95 sqm", Confidence: 0.90, Start: intPtr(11), End: intPtr(17), Estimated: boolPtr(false)},
			},
		},
		{
			name:      "Booking reference is upper-cased",
			utterance: "booking ref BK-AB12C9",
			want: []model.Entity{
				{Name: model.EntityBookingRef, Value: "BK-AB12C9", RawValue: "bk-ab12c9", Confidence: 0.95, Start: intPtr(12), End: intPtr(21)},
			},
		},
		{
			name:      "Date word",
			utterance: "clean tomorrow please",
			want: []model.Entity{
				{Name: model.EntityDate, Value: "tomorrow", RawValue: "tomorrow", Confidence: 0.80, Start: intPtr(6), End: intPtr(14)},
			},
		},
		{
			name:      "Next followed by a word",
			utterance: "Next Friday",
			want: []model.Entity{
				{Name: model.EntityDate, Value: "next friday", RawValue: "next friday", Confidence: 0.80, Start: intPtr(0), End: intPtr(11)},
			},
		},
		{
			name:      "Bedroom count outside the table",
			utterance: "5br",
			want: []model.Entity{
				{Name: model.EntityBedroomCount, Value: 5, RawValue: "5br", Confidence: 0.85, Start: intPtr(0), End: intPtr(3)},
				{Name: model.EntityHomeAreaM2, Value: 200, RawValue: "5br", Confidence: 0.75, Estimated: boolPtr(true)},
			},
		},
		{
			name:      "Nothing to extract",
			utterance: "hello there",
			want:      []model.Entity{},
		},
		{
			name:      "Empty utterance",
			utterance: "",
			want:      []model.Entity{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractor.Extract(tt.utterance, model.IntentQuoteHome)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntityExtractor_LiteralAndInferredAreaCoexist(t *testing.T) {
	extractor := NewEntityExtractor(nil)

	got := extractor.Extract("2 bed flat, about 75 m2, book it for monday", "")

	names := make([]string, len(got))
	for i, e := range got {
		names[i] = e.Name
	}
	assert.Equal(t, []string{
		model.EntityBedroomCount,
		model.EntityHomeAreaM2,
		model.EntityHomeAreaM2,
		model.EntityDate,
	}, names)

	assert.Equal(t, 80, got[1].Value)
	assert.True(t, *got[1].Estimated)
	assert.Nil(t, got[1].Start)

	assert.Equal(t, 75, got[2].Value)
	assert.False(t, *got[2].Estimated)
	assert.Equal(t, "monday", got[3].Value)
}

func TestEntityExtractor_MultipleMatchesLeftToRight(t *testing.T) {
	extractor := NewEntityExtractor(nil)

	got := extractor.Extract("monday or tuesday", "")

	require.Len(t, got, 2)
	assert.Equal(t, "monday", got[0].Value)
	assert.Equal(t, "tuesday", got[1].Value)
	assert.Equal(t, 10, *got[1].Start)
}

func TestEntityExtractor_IntentDoesNotChangeResult(t *testing.T) {
	extractor := NewEntityExtractor(nil)
	utterance := "3 bedroom, 100 sqm, next week, BK-ZZ99X1"

	base := extractor.Extract(utterance, "")
	for _, intent := range model.IntentLabels {
		assert.Equal(t, base, extractor.Extract(utterance, intent), intent)
	}
}

func TestEntityExtractor_RuneOffsets(t *testing.T) {
	extractor := NewEntityExtractor(nil)

	// "é" is two bytes but one character
	got := extractor.Extract("café tomorrow", "")

	require.Len(t, got, 1)
	assert.Equal(t, 5, *got[0].Start)
	assert.Equal(t, 13, *got[0].End)
}

func TestEntityExtractor_HugeNumberIsCapped(t *testing.T) {
	extractor := NewEntityExtractor(nil)
	digits := strings.Repeat("9", 40)

	got := extractor.Extract(digits+" bedroom", "")

	require.Len(t, got, 2)
	assert.Equal(t, math.MaxInt32, got[0].Value)
	assert.Equal(t, math.MaxInt32*areaPerBedroomM2, got[1].Value)
}

func TestEntityExtractor_Idempotent(t *testing.T) {
	extractor := NewEntityExtractor(nil)
	utterance := "4 bedroom house 120 square meter on sunday, ref bk-00aa11"

	first, err := json.Marshal(extractor.Extract(utterance, ""))
	require.NoError(t, err)
	second, err := json.Marshal(extractor.Extract(utterance, ""))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestEntity_JSONShape(t *testing.T) {
	extractor := NewEntityExtractor(nil)

	data, err := json.Marshal(extractor.Extract("1 bedroom", ""))
	require.NoError(t, err)

	assert.JSONEq(t, `[
		{"name":"bedroom_count","value":1,"raw_value":"1 bedroom","confidence":0.85,"start":0,"end":9},
		{"name":"home_area_m2","value":50,"raw_value":"1 bedroom","confidence":0.75,"estimated":true}
	]`, string(data))
}

func TestParseCapped(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"007", 7},
		{"2147483647", math.MaxInt32},
		{"2147483648", math.MaxInt32},
		{"99999999999999999999", math.MaxInt32},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseCapped(tt.in), tt.in)
	}
}
