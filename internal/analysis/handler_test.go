package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"math/rand"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/skincare-backend/internal/progress"
)

type fakeRecorder struct {
	records []progress.Record
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, rec progress.Record) (progress.Record, error) {
	if f.err != nil {
		return progress.Record{}, f.err
	}
	f.records = append(f.records, rec)
	return rec, nil
}

func multipartBody(t *testing.T, userID, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if userID != "" {
		if err := w.WriteField("userId", userID); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write(data)
	}
	w.Close()
	return &buf, w.FormDataContentType()
}

func pngBytes(t *testing.T, v uint8) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(v)); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func newTestApp(rec Recorder, uploadDir string) *fiber.App {
	app := fiber.New()
	NewHandler(NewAnalyzer(rand.New(rand.NewSource(1))), rec, uploadDir, nil).RegisterPublicRoutes(app)
	return app
}

func TestAnalyzeHandler_SavesUploadAndProgress(t *testing.T) {
	rec := &fakeRecorder{}
	dir := t.TempDir()
	app := newTestApp(rec, dir)

	body, ct := multipartBody(t, "user_1", "Selfie.PNG", pngBytes(t, 200))
	req := httptest.NewRequest("POST", "/api/v1/analysis", body)
	req.Header.Set("Content-Type", ct)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	var out analysisResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !out.Saved || out.Warning != "" || out.UserID != "user_1" {
		t.Fatalf("unexpected response %+v", out)
	}
	if out.Analysis.SkinType.Prediction != "Normal" {
		t.Fatalf("unexpected analysis %+v", out.Analysis)
	}
	if filepath.Dir(out.ImagePath) != dir || filepath.Ext(out.ImagePath) != ".png" {
		t.Fatalf("upload should be stored under %s, got %s", dir, out.ImagePath)
	}
	if _, err := os.Stat(out.ImagePath); err != nil {
		t.Fatalf("upload missing on disk: %v", err)
	}
	if len(rec.records) != 1 || rec.records[0].ImagePath != out.ImagePath {
		t.Fatalf("unexpected stored records %+v", rec.records)
	}
}

func TestAnalyzeHandler_StorageFailureIsSoft(t *testing.T) {
	app := newTestApp(&fakeRecorder{err: errors.New("sqlite insert_progress: disk full")}, "")

	body, ct := multipartBody(t, "", "me.png", pngBytes(t, 50))
	req := httptest.NewRequest("POST", "/api/v1/analysis", body)
	req.Header.Set("Content-Type", ct)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	var out analysisResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Saved || out.Warning == "" {
		t.Fatalf("expected a warning, got %+v", out)
	}
	if out.UserID == "" || out.ImagePath != "me.png" {
		t.Fatalf("expected generated user id and original name, got %+v", out)
	}
}

func TestAnalyzeHandler_BadInput(t *testing.T) {
	app := newTestApp(&fakeRecorder{}, "")

	body, ct := multipartBody(t, "user_1", "", nil)
	req := httptest.NewRequest("POST", "/api/v1/analysis", body)
	req.Header.Set("Content-Type", ct)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("missing file: expected 400, got %d", res.StatusCode)
	}

	body, ct = multipartBody(t, "user_1", "notes.txt", []byte("hello"))
	req = httptest.NewRequest("POST", "/api/v1/analysis", body)
	req.Header.Set("Content-Type", ct)
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnsupportedMediaType {
		t.Fatalf("non-image: expected 415, got %d", res.StatusCode)
	}
}

func TestAnalyzeHandler_OversizedImage(t *testing.T) {
	rec := &fakeRecorder{}
	dir := t.TempDir()
	app := newTestApp(rec, dir)

	body, ct := multipartBody(t, "user_1", "huge.png", oversizedPNG(t))
	req := httptest.NewRequest("POST", "/api/v1/analysis", body)
	req.Header.Set("Content-Type", ct)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", res.StatusCode)
	}
	if len(rec.records) != 0 {
		t.Fatalf("nothing should be recorded, got %+v", rec.records)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Fatalf("upload should not be saved, found %d files", len(entries))
	}
}

func TestRoutineHandler(t *testing.T) {
	app := newTestApp(&fakeRecorder{}, "")

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/routine?skinType=Dry", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var r Routine
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if r.SkinType != "Dry" || len(r.Evening) == 0 {
		t.Fatalf("unexpected routine %+v", r)
	}
}
