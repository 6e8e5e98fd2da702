package storage

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/wichananm65/skincare-backend/internal/platform/logger"
	"github.com/wichananm65/skincare-backend/internal/product"
	"github.com/wichananm65/skincare-backend/internal/progress"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// parseTimestamp normalizes whatever a driver or JSON payload hands back for
// a timestamp column. Unparsable or empty values map to nil.
func parseTimestamp(v any) *time.Time {
	var s string
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return &t
	case *time.Time:
		return t
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts
		}
	}
	return nil
}

// toFloat normalizes a numeric column. SQLite happily stores text in REAL
// columns, so strings are parsed and blanks treated as absent.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	case []byte:
		return parseFloat(string(t))
	case string:
		return parseFloat(t)
	default:
		return 0, false
	}
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

type rowScanner interface {
	Scan(dest ...any) error
}

const productSelectColumns = `id, name, brand, category, skin_type, concerns, price, rating, description, ingredients, purchase_link, image_url, created_at, updated_at`

func scanProduct(scanner rowScanner) (product.Product, error) {
	p := product.Product{}
	var (
		name, brand, category, skinType, concerns sql.NullString
		description, ingredients, link, image     sql.NullString
		price, rating, createdAt, updatedAt       any
	)
	if err := scanner.Scan(
		&p.ID,
		&name,
		&brand,
		&category,
		&skinType,
		&concerns,
		&price,
		&rating,
		&description,
		&ingredients,
		&link,
		&image,
		&createdAt,
		&updatedAt,
	); err != nil {
		return product.Product{}, err
	}
	p.Name = name.String
	p.Brand = brand.String
	p.Category = category.String
	p.SkinType = skinType.String
	p.Concerns = concerns.String
	p.Price, _ = toFloat(price)
	p.Rating, _ = toFloat(rating)
	p.Description = description.String
	p.Ingredients = ingredients.String
	p.PurchaseLink = link.String
	p.ImageURL = image.String
	p.CreatedAt = parseTimestamp(createdAt)
	p.UpdatedAt = parseTimestamp(updatedAt)
	return p, nil
}

const progressSelectColumns = `id, user_id, skin_type, acne_severity, oiliness_level, skin_tone, image_path, confidence_scores, timestamp`

// scanProgress maps one user_progress row. Confidence text that does not
// decode is kept raw on the record and reported through onDecodeErr; the row
// itself is still returned.
func scanProgress(scanner rowScanner, onDecodeErr func(progress.Record, error)) (progress.Record, error) {
	rec := progress.Record{}
	var (
		userID, skinType, skinTone, imagePath, scores sql.NullString
		acne, oiliness, ts                            any
	)
	if err := scanner.Scan(
		&rec.ID,
		&userID,
		&skinType,
		&acne,
		&oiliness,
		&skinTone,
		&imagePath,
		&scores,
		&ts,
	); err != nil {
		return progress.Record{}, err
	}
	rec.UserID = userID.String
	rec.SkinType = skinType.String
	rec.AcneSeverity, _ = toFloat(acne)
	rec.OilinessLevel, _ = toFloat(oiliness)
	rec.SkinTone = skinTone.String
	rec.ImagePath = imagePath.String
	rec.Timestamp = parseTimestamp(ts)
	var err error
	if rec.ConfidenceScores, err = progress.DecodeConfidenceScores(scores.String); err != nil && onDecodeErr != nil {
		onDecodeErr(rec, err)
	}
	return rec, nil
}

// warnUndecodable is the diagnostic for rows whose confidence scores came
// back raw.
func warnUndecodable(log *logger.Logger, backend string) func(progress.Record, error) {
	return func(rec progress.Record, err error) {
		log.Warn("confidence scores not decodable",
			"backend", backend,
			"record_id", rec.ID,
			"error", err,
		)
	}
}

// flexFloat accepts a JSON number, a numeric string or null.
type flexFloat struct {
	Value float64
	Valid bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = flexFloat{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f.Value, f.Valid = parseFloat(s)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Value, f.Valid = v, true
	return nil
}

// restProduct is a products row as PostgREST returns it.
type restProduct struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	Category     string    `json:"category"`
	SkinType     string    `json:"skin_type"`
	Concerns     string    `json:"concerns"`
	Price        flexFloat `json:"price"`
	Rating       flexFloat `json:"rating"`
	Description  string    `json:"description"`
	Ingredients  string    `json:"ingredients"`
	PurchaseLink string    `json:"purchase_link"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
}

func (r restProduct) toProduct() product.Product {
	return product.Product{
		ID:           r.ID,
		Name:         r.Name,
		Brand:        r.Brand,
		Category:     r.Category,
		SkinType:     r.SkinType,
		Concerns:     r.Concerns,
		Price:        r.Price.Value,
		Rating:       r.Rating.Value,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		PurchaseLink: r.PurchaseLink,
		ImageURL:     r.ImageURL,
		CreatedAt:    parseTimestamp(r.CreatedAt),
		UpdatedAt:    parseTimestamp(r.UpdatedAt),
	}
}

// restProgress is a user_progress row as PostgREST returns it. The scores
// column may be native JSON or text depending on how the table was created.
type restProgress struct {
	ID               int64           `json:"id"`
	UserID           string          `json:"user_id"`
	SkinType         string          `json:"skin_type"`
	AcneSeverity     flexFloat       `json:"acne_severity"`
	OilinessLevel    flexFloat       `json:"oiliness_level"`
	SkinTone         string          `json:"skin_tone"`
	ImagePath        string          `json:"image_path"`
	ConfidenceScores json.RawMessage `json:"confidence_scores"`
	Timestamp        string          `json:"timestamp"`
}

func (r restProgress) toRecord(onDecodeErr func(progress.Record, error)) progress.Record {
	rec := progress.Record{
		ID:            r.ID,
		UserID:        r.UserID,
		SkinType:      r.SkinType,
		AcneSeverity:  r.AcneSeverity.Value,
		OilinessLevel: r.OilinessLevel.Value,
		SkinTone:      r.SkinTone,
		ImagePath:     r.ImagePath,
		Timestamp:     parseTimestamp(r.Timestamp),
	}
	raw := bytes.TrimSpace(r.ConfidenceScores)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return rec
	}
	text := string(raw)
	if raw[0] == '"' {
		// text column: the JSON string holds the encoded object
		if err := json.Unmarshal(raw, &text); err != nil {
			text = string(raw)
		}
	}
	var err error
	if rec.ConfidenceScores, err = progress.DecodeConfidenceScores(text); err != nil && onDecodeErr != nil {
		onDecodeErr(rec, err)
	}
	return rec
}
