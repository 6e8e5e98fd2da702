package analysis

import (
	"context"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/wichananm65/skincare-backend/internal/platform/logger"
	"github.com/wichananm65/skincare-backend/internal/progress"
)

// Recorder stores a finished analysis. *progress.Service satisfies it.
type Recorder interface {
	Record(ctx context.Context, rec progress.Record) (progress.Record, error)
}

type Handler struct {
	analyzer  *Analyzer
	recorder  Recorder
	uploadDir string
	log       *logger.Logger
}

// NewHandler wires the analysis endpoints. Uploads are written under
// uploadDir when it is set and discarded otherwise.
func NewHandler(analyzer *Analyzer, recorder Recorder, uploadDir string, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{analyzer: analyzer, recorder: recorder, uploadDir: uploadDir, log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/analysis", h.analyze)
	app.Get("/api/v1/routine", h.getRoutine)
}

type analysisResponse struct {
	UserID    string `json:"user_id"`
	ImagePath string `json:"image_path"`
	Analysis  Result `json:"analysis"`
	Saved     bool   `json:"saved"`
	Warning   string `json:"warning,omitempty"`
}

func (h *Handler) analyze(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "file is required"})
	}
	userID := strings.TrimSpace(c.FormValue("userId"))
	if userID == "" {
		userID = progress.NewUserID()
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	img, _, err := Decode(f)
	f.Close()
	if errors.Is(err, ErrImageTooLarge) {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"message": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{"message": err.Error()})
	}

	res := h.analyzer.Analyze(img)
	resp := analysisResponse{UserID: userID, ImagePath: filepath.Base(fh.Filename), Analysis: res}

	if h.uploadDir != "" {
		path, err := h.saveUpload(c, fh)
		if err != nil {
			h.log.Warn("upload not saved", "user_id", userID, "error", err)
		} else {
			resp.ImagePath = path
		}
	}

	// the analysis is still useful when it cannot be stored
	if _, err := h.recorder.Record(c.UserContext(), res.Progress(userID, resp.ImagePath)); err != nil {
		h.log.Warn("analysis not saved", "user_id", userID, "error", err)
		resp.Warning = "could not save results: " + err.Error()
	} else {
		resp.Saved = true
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *Handler) saveUpload(c *fiber.Ctx, fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(h.uploadDir, uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
	if err := c.SaveFile(fh, path); err != nil {
		return "", err
	}
	return path, nil
}

func (h *Handler) getRoutine(c *fiber.Ctx) error {
	return c.JSON(RoutineFor(c.Query("skinType")))
}
