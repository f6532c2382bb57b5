package leads

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Normalizer turns raw provider text into Business records.
type Normalizer struct {
	// NewID returns a fresh identifier for each record. Defaults to a random UUID.
	NewID func() string
}

// Normalize uses a Normalizer with random UUID identifiers
func Normalize(raw string) ([]Business, error) {
	return Normalizer{}.Normalize(raw)
}

// Normalize parses raw into records, preserving the source order.
// An empty payload yields ErrEmptyResponse; anything that is not a JSON
// array of objects yields a *MalformedResponseError. There is no partial result.
func (n Normalizer) Normalize(raw string) ([]Business, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyResponse
	}

	items, err := decodeArray(StripCodeFences(raw))
	if err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	newID := n.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	businesses := make([]Business, 0, len(items))
	for _, item := range items {
		b := coerceBusiness(item)
		b.ID = newID()
		businesses = append(businesses, b)
	}
	return businesses, nil
}

// StripCodeFences removes markdown fences a model may wrap its JSON in
func StripCodeFences(raw string) string {
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	return strings.TrimSpace(clean)
}

func decodeArray(text string) ([]map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after json value")
	}

	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected json array, got %T", v)
	}

	items := make([]map[string]any, len(arr))
	for i, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("element %d is not an object", i)
		}
		items[i] = obj
	}
	return items, nil
}

// coerceBusiness applies the default table. Every field is optional in the source.
func coerceBusiness(item map[string]any) Business {
	return Business{
		Name:        stringOr(item["name"], DefaultName),
		Address:     stringOr(item["address"], DefaultAddress),
		PhoneNumber: stringOr(item["phoneNumber"], ""),
		Website:     stringOr(item["website"], ""),
		Rating:      rating(item["rating"]),
		ReviewCount: reviewCount(item["reviewCount"]),
		Category:    stringOr(item["category"], DefaultCategory),
		OpenStatus:  stringOr(item["openStatus"], ""),
		Email:       stringOr(item["email"], ""),
		SocialMedia: socialMedia(item["socialMedia"]),
	}
}

// stringOr keeps source strings verbatim; only "" and non-string values fall back to def
func stringOr(v any, def string) string {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	}
	if s == "" {
		return def
	}
	return s
}

func number(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", ""), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// rating treats zero like a missing value
func rating(v any) *float64 {
	f, ok := number(v)
	if !ok || f == 0 {
		return nil
	}
	return &f
}

func reviewCount(v any) int {
	f, ok := number(v)
	if !ok || f < 0 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}

func socialMedia(v any) SocialMedia {
	obj, ok := v.(map[string]any)
	if !ok {
		return SocialMedia{}
	}

	return SocialMedia{
		Instagram: stringOr(platform(obj, "instagram"), ""),
		Facebook:  stringOr(platform(obj, "facebook"), ""),
		Twitter:   stringOr(platform(obj, "twitter"), ""),
		LinkedIn:  stringOr(platform(obj, "linkedin"), ""),
	}
}

// platform looks key up exactly first, then case-insensitively picking the
// smallest matching key so the result does not depend on map order.
func platform(obj map[string]any, key string) any {
	if v, ok := obj[key]; ok {
		return v
	}
	var (
		match string
		found bool
	)
	for k := range obj {
		if strings.EqualFold(k, key) && (!found || k < match) {
			match, found = k, true
		}
	}
	if !found {
		return nil
	}
	return obj[match]
}
