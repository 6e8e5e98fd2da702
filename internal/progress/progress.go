package progress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Record is one completed skin analysis and maps to `user_progress`.
type Record struct {
	ID               int64            `json:"id,omitempty"`
	UserID           string           `json:"user_id"`
	SkinType         string           `json:"skin_type,omitempty"`
	AcneSeverity     float64          `json:"acne_severity"`
	OilinessLevel    float64          `json:"oiliness_level"`
	SkinTone         string           `json:"skin_tone,omitempty"`
	ImagePath        string           `json:"image_path,omitempty"`
	ConfidenceScores ConfidenceScores `json:"confidence_scores"`
	Timestamp        *time.Time       `json:"timestamp,omitempty"`
}

// ConfidenceScores holds per-attribute model certainty. Values is set when
// the stored form decoded cleanly; Raw keeps the stored text verbatim when it
// did not, so one corrupt row still reaches the caller.
type ConfidenceScores struct {
	Values map[string]float64
	Raw    string
}

func NewConfidenceScores(values map[string]float64) ConfidenceScores {
	return ConfidenceScores{Values: values}
}

// Decoded reports whether the scores are available as a mapping.
func (c ConfidenceScores) Decoded() bool {
	return c.Raw == ""
}

func (c ConfidenceScores) IsZero() bool {
	return c.Values == nil && c.Raw == ""
}

// Encode returns the JSON text form used by SQL backends. ok is false when
// there is nothing to store. Undecoded raw text is written back unchanged.
func (c ConfidenceScores) Encode() (text string, ok bool, err error) {
	if c.Raw != "" {
		return c.Raw, true, nil
	}
	if c.Values == nil {
		return "", false, nil
	}
	b, err := json.Marshal(c.Values)
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

// DecodeError reports stored confidence text that is not a JSON object of
// numbers.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode confidence scores: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeConfidenceScores parses the stored text form. On failure it still
// returns a usable value carrying the raw text, together with a *DecodeError.
func DecodeConfidenceScores(text string) (ConfidenceScores, error) {
	if text == "" {
		return ConfidenceScores{}, nil
	}
	var values map[string]float64
	if err := json.Unmarshal([]byte(text), &values); err != nil {
		return ConfidenceScores{Raw: text}, &DecodeError{Raw: text, Err: err}
	}
	if values == nil {
		return ConfidenceScores{}, nil
	}
	return ConfidenceScores{Values: values}, nil
}

func (c ConfidenceScores) MarshalJSON() ([]byte, error) {
	if c.Raw != "" {
		return json.Marshal(c.Raw)
	}
	if c.Values == nil {
		return []byte("null"), nil
	}
	return json.Marshal(c.Values)
}

// UnmarshalJSON accepts a native object, a JSON-encoded string holding an
// object, or null. Strings that do not decode are kept as Raw.
func (c *ConfidenceScores) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*c = ConfidenceScores{}
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c, _ = DecodeConfidenceScores(s)
		return nil
	default:
		*c, _ = DecodeConfidenceScores(string(data))
		return nil
	}
}
