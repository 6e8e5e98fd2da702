// Package analysis produces a mock skin analysis from image brightness. No
// model is involved; the confidences are random within fixed bands.
package analysis

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math/rand"
	"sync"
	"time"

	_ "golang.org/x/image/webp"

	"github.com/wichananm65/skincare-backend/internal/progress"
)

type SkinTypeResult struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
}

type AcneResult struct {
	Prediction string  `json:"prediction"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

type SkinToneResult struct {
	Tone       string  `json:"tone"`
	Confidence float64 `json:"confidence"`
}

type Result struct {
	SkinType      SkinTypeResult `json:"skin_type"`
	AcneSeverity  AcneResult     `json:"acne_severity"`
	SkinTone      SkinToneResult `json:"skin_tone"`
	OilinessLevel float64        `json:"oiliness_level"`
	Brightness    float64        `json:"brightness"`
}

// Progress turns the result into a record ready to store.
func (r Result) Progress(userID, imagePath string) progress.Record {
	return progress.Record{
		UserID:        userID,
		SkinType:      r.SkinType.Prediction,
		AcneSeverity:  r.AcneSeverity.Score,
		OilinessLevel: r.OilinessLevel,
		SkinTone:      r.SkinTone.Tone,
		ImagePath:     imagePath,
		ConfidenceScores: progress.NewConfidenceScores(map[string]float64{
			"skin_type": r.SkinType.Confidence,
			"acne":      r.AcneSeverity.Confidence,
			"skin_tone": r.SkinTone.Confidence,
		}),
	}
}

type Analyzer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewAnalyzer uses rng for the confidence values; nil seeds from the clock.
func NewAnalyzer(rng *rand.Rand) *Analyzer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Analyzer{rng: rng}
}

func (a *Analyzer) Analyze(img image.Image) Result {
	b := MeanBrightness(img)

	skinType, oiliness, acne := "Dry", 0.2, 0.2
	switch {
	case b > 160:
		skinType, oiliness, acne = "Normal", 0.4, 0.1
	case b < 80:
		skinType, oiliness, acne = "Oily", 0.8, 0.6
	}

	tone := "Dark"
	switch {
	case b > 170:
		tone = "Fair"
	case b > 140:
		tone = "Light"
	case b > 100:
		tone = "Medium"
	}

	acneLabel := "Clear"
	if acne > 0.4 {
		acneLabel = "Mild"
	}

	return Result{
		SkinType:      SkinTypeResult{Prediction: skinType, Confidence: a.uniform(0.8, 0.95)},
		AcneSeverity:  AcneResult{Prediction: acneLabel, Score: acne, Confidence: a.uniform(0.75, 0.9)},
		SkinTone:      SkinToneResult{Tone: tone, Confidence: a.uniform(0.85, 0.98)},
		OilinessLevel: oiliness,
		Brightness:    b,
	}
}

func (a *Analyzer) uniform(lo, hi float64) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return lo + a.rng.Float64()*(hi-lo)
}

// MeanBrightness is the mean of every R, G and B sample on a 0..255 scale.
// Alpha is ignored and colors are read unpremultiplied, so a transparent
// pixel counts with the color it stores.
func MeanBrightness(img image.Image) float64 {
	bounds := img.Bounds()
	n := bounds.Dx() * bounds.Dy()
	if n <= 0 {
		return 0
	}
	var sum uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			sum += uint64(c.R) + uint64(c.G) + uint64(c.B)
		}
	}
	return float64(sum) / float64(3*n)
}

// MaxPixels caps the decoded size of an upload.
const MaxPixels = 4096 * 4096

// ErrImageTooLarge is returned by Decode for images above MaxPixels.
var ErrImageTooLarge = errors.New("image too large")

// Decode reads a JPEG, PNG or WebP image and reports its format. The header
// is checked against MaxPixels before any pixel data is decoded.
func Decode(r io.ReadSeeker) (image.Image, string, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, "", fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, MaxPixels)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("rewind image: %w", err)
	}
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}
