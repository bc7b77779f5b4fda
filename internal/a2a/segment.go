package a2a

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
)

// ErrNoSegment means the message carried neither a segment object nor
// recognizable "key: value" text.
var ErrNoSegment = errors.New("no segment found in message")

var htmlTagReplacer = strings.NewReplacer("<p>", "", "</p>", "", "<br>", " ", "<br/>", " ")

// ExtractSegment reads a segment from a message. Data parts holding a JSON
// object win over text parts; a data part holding an array is treated as
// conversation history and its most recent usable text entry is parsed.
func ExtractSegment(msg A2AMessage) (models.SegmentInput, error) {
	var texts []string

	for _, part := range msg.Parts {
		switch part.Kind {
		case PartData:
			if len(part.Data) == 0 {
				continue
			}
			if seg, ok := segmentFromData(part.Data); ok {
				return seg, nil
			}
			if text := lastHistoryText(part.Data); text != "" {
				texts = append(texts, text)
			}
		case PartText:
			if text := cleanText(part.Text); text != "" {
				texts = append(texts, text)
			}
		}
	}

	// Later parts override earlier ones key by key.
	var (
		seg   models.SegmentInput
		found bool
	)
	for _, text := range texts {
		if applySegmentText(&seg, text) {
			found = true
		}
	}
	if !found {
		return models.SegmentInput{}, ErrNoSegment
	}
	return seg, nil
}

func segmentFromData(raw json.RawMessage) (models.SegmentInput, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return models.SegmentInput{}, false
	}
	if nested, ok := obj["segment"]; ok {
		raw = nested
	}
	var seg models.SegmentInput
	if err := json.Unmarshal(raw, &seg); err != nil {
		return models.SegmentInput{}, false
	}
	if seg == (models.SegmentInput{}) {
		return models.SegmentInput{}, false
	}
	return seg, true
}

func lastHistoryText(raw json.RawMessage) string {
	var history []MessagePart
	if err := json.Unmarshal(raw, &history); err != nil {
		return ""
	}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Kind != PartText {
			continue
		}
		text := cleanText(history[i].Text)
		if text == "" || !strings.Contains(text, ":") {
			continue
		}
		return text
	}
	return ""
}

func cleanText(text string) string {
	return strings.TrimSpace(htmlTagReplacer.Replace(text))
}

// ParseSegmentText parses "key: value, key: value" text into a segment.
// It reports false when no known key is present.
func ParseSegmentText(text string) (models.SegmentInput, bool) {
	var seg models.SegmentInput
	ok := applySegmentText(&seg, text)
	return seg, ok
}

func applySegmentText(seg *models.SegmentInput, text string) bool {
	found := false
	for _, pair := range strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == '\n' || r == ';' }) {
		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		key = normalizeKey(key)
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch key {
		case "domain":
			seg.Domain = value
		case "industry", "industrytype":
			seg.IndustryType = models.IndustryType(strings.ToUpper(value))
		case "age", "agegroup":
			seg.AgeGroup = normalizeAge(value)
		case "gender":
			seg.Gender = models.Gender(strings.ToLower(value))
		case "visit", "visitfrequency":
			seg.VisitFrequency = models.VisitFrequency(strings.ToLower(value))
		case "payment", "paymenttier":
			seg.PaymentTier = models.PaymentTier(strings.ToLower(value))
		case "goal":
			seg.Goal = value
		case "channel", "channelpreference":
			seg.ChannelPreference = normalizeChannel(value)
		case "note":
			seg.Note = value
		default:
			continue
		}
		found = true
	}
	return found
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
}

func normalizeAge(value string) models.AgeGroup {
	v := strings.ToLower(strings.ReplaceAll(value, " ", ""))
	switch v {
	case "50+", "50s", "50plus", "50s+":
		return models.Age50Plus
	}
	return models.AgeGroup(v)
}

func normalizeChannel(value string) models.ChannelPreference {
	v := strings.ToLower(value)
	v = strings.NewReplacer("-", "", "_", "", " ", "").Replace(v)
	return models.ChannelPreference(v)
}
