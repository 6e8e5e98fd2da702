package progress

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingUserID = errors.New("user id is required")
	ErrScoreRange    = errors.New("score must be between 0 and 1")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewUserID issues an opaque, session-scoped user identifier.
func NewUserID() string {
	return "user_" + uuid.NewString()
}

// Record stores one analysis. The id and timestamp are assigned by the
// backend, so any caller-supplied values are dropped.
func (s *Service) Record(ctx context.Context, rec Record) (Record, error) {
	rec.UserID = strings.TrimSpace(rec.UserID)
	if rec.UserID == "" {
		return Record{}, ErrMissingUserID
	}
	if !unitRange(rec.AcneSeverity) {
		return Record{}, fmt.Errorf("acne_severity: %w", ErrScoreRange)
	}
	if !unitRange(rec.OilinessLevel) {
		return Record{}, fmt.Errorf("oiliness_level: %w", ErrScoreRange)
	}
	rec.ID = 0
	rec.Timestamp = nil
	if err := s.repo.InsertProgress(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// History returns a user's analyses, oldest first.
func (s *Service) History(ctx context.Context, userID string) ([]Record, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrMissingUserID
	}
	return s.repo.GetUserProgress(ctx, userID)
}

// Point is one sample of a trend line.
type Point struct {
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Value     float64    `json:"value"`
}

// Summary is what the progress view shows: the latest analysis and the
// acne/oiliness trends over time.
type Summary struct {
	UserID        string  `json:"user_id"`
	Count         int     `json:"count"`
	Latest        *Record `json:"latest,omitempty"`
	AcneTrend     []Point `json:"acne_trend"`
	OilinessTrend []Point `json:"oiliness_trend"`
}

func (s *Service) Summary(ctx context.Context, userID string) (Summary, error) {
	records, err := s.History(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(strings.TrimSpace(userID), records), nil
}

// Summarize builds a Summary from records already in ascending order.
func Summarize(userID string, records []Record) Summary {
	sum := Summary{
		UserID:        userID,
		Count:         len(records),
		AcneTrend:     make([]Point, 0, len(records)),
		OilinessTrend: make([]Point, 0, len(records)),
	}
	for _, r := range records {
		sum.AcneTrend = append(sum.AcneTrend, Point{Timestamp: r.Timestamp, Value: r.AcneSeverity})
		sum.OilinessTrend = append(sum.OilinessTrend, Point{Timestamp: r.Timestamp, Value: r.OilinessLevel})
	}
	if n := len(records); n > 0 {
		latest := records[n-1]
		sum.Latest = &latest
	}
	return sum
}

func unitRange(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
