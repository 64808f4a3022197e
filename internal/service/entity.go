package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"nlu/internal/model"

	"go.uber.org/zap"
)

const (
	bedroomConfidence       = 0.85
	estimatedAreaConfidence = 0.75
	areaConfidence          = 0.90
	dateConfidence          = 0.80
	bookingRefConfidence    = 0.95

	// areaPerBedroomM2 is used when the bedroom count is not in bedroomAreaM2
	areaPerBedroomM2 = 40
	// maxParsedNumber caps digit groups so huge numbers cannot overflow
	maxParsedNumber = math.MaxInt32
)

// bedroomAreaM2 is the typical floor area for a given bedroom count
var bedroomAreaM2 = map[int]int{
	1: 50,
	2: 80,
	3: 110,
	4: 140,
}

// entityMatch is a single regex hit in the lower-cased utterance
type entityMatch struct {
	text  string // full match
	group string // first capture group
	start int    // rune offsets
	end   int
}

// entityRule is one extraction strategy: a pattern, the confidence of its
// direct matches, how the value is derived and any entities inferred from it
type entityRule struct {
	name       string
	pattern    *regexp.Regexp
	confidence float64
	value      func(m entityMatch) any
	// literal adds estimated=false to direct matches
	literal bool
	derive  func(m entityMatch, value any) []model.Entity
}

// EntityExtractor extracts typed entities from an utterance.
// It is safe for concurrent use.
type EntityExtractor struct {
	rules  []entityRule
	logger *zap.Logger
}

// NewEntityExtractor compiles the entity rule table
func NewEntityExtractor(logger *zap.Logger) *EntityExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntityExtractor{
		rules: []entityRule{
			{
				name:       model.EntityBedroomCount,
				pattern:    regexp.MustCompile(`(?i)(\d+)\s*(bedroom|br|bed)`),
				confidence: bedroomConfidence,
				value:      intValue,
				derive:     inferHomeArea,
			},
			{
				name:       model.EntityHomeAreaM2,
				pattern:    regexp.MustCompile(`(?i)(\d+)\s*(m2|sqm|square meter)`),
				confidence: areaConfidence,
				value:      intValue,
				literal:    true,
			},
			{
				name:       model.EntityDate,
				pattern:    regexp.MustCompile(`(?i)(tomorrow|next\s+\w+|monday|tuesday|wednesday|thursday|friday|saturday|sunday)`),
				confidence: dateConfidence,
				value:      textValue,
			},
			{
				name:       model.EntityBookingRef,
				pattern:    regexp.MustCompile(`(?i)(bk-[a-z0-9]{6})`),
				confidence: bookingRefConfidence,
				value:      upperValue,
			},
		},
		logger: logger,
	}
}

// Extract returns every entity found in the utterance, in rule order and then
// left to right. intentName is accepted for callers that already know the
// intent; extraction does not depend on it.
func (e *EntityExtractor) Extract(utterance, intentName string) []model.Entity {
	text := strings.ToLower(utterance)
	entities := []model.Entity{}

	for _, rule := range e.rules {
		for _, loc := range rule.pattern.FindAllStringSubmatchIndex(text, -1) {
			m := newEntityMatch(text, loc)
			value := rule.value(m)

			entity := model.Entity{
				Name:       rule.name,
				Value:      value,
				RawValue:   m.text,
				Confidence: rule.confidence,
				Start:      intPtr(m.start),
				End:        intPtr(m.end),
			}
			if rule.literal {
				entity.Estimated = boolPtr(false)
			}
			entities = append(entities, entity)

			if rule.derive != nil {
				entities = append(entities, rule.derive(m, value)...)
			}
		}
	}

	e.logger.Debug("entities extracted",
		zap.String("intent", intentName),
		zap.Int("count", len(entities)),
	)

	return entities
}

// inferHomeArea estimates the floor area from a bedroom count
func inferHomeArea(m entityMatch, value any) []model.Entity {
	bedrooms, _ := value.(int)
	area, ok := bedroomAreaM2[bedrooms]
	if !ok {
		area = bedrooms * areaPerBedroomM2
	}
	return []model.Entity{{
		Name:       model.EntityHomeAreaM2,
		Value:      area,
		RawValue:   m.text,
		Confidence: estimatedAreaConfidence,
		Estimated:  boolPtr(true),
	}}
}

func newEntityMatch(text string, loc []int) entityMatch {
	m := entityMatch{
		text:  text[loc[0]:loc[1]],
		start: utf8.RuneCountInString(text[:loc[0]]),
		end:   utf8.RuneCountInString(text[:loc[1]]),
	}
	if len(loc) >= 4 && loc[2] >= 0 {
		m.group = text[loc[2]:loc[3]]
	}
	return m
}

func intValue(m entityMatch) any {
	return parseCapped(m.group)
}

func textValue(m entityMatch) any {
	return m.text
}

func upperValue(m entityMatch) any {
	return strings.ToUpper(m.text)
}

// parseCapped parses a run of ASCII digits, clamping at maxParsedNumber
func parseCapped(digits string) int {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n > maxParsedNumber {
		// only a range error is possible for a \d+ group
		return maxParsedNumber
	}
	return int(n)
}

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}
