package web

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-voxtend/pkg/centers"
	"github.com/teslashibe/go-voxtend/pkg/hub"
	"github.com/teslashibe/go-voxtend/pkg/language"
	"github.com/teslashibe/go-voxtend/pkg/reminder"
	"github.com/teslashibe/go-voxtend/pkg/scheme"
	"github.com/teslashibe/go-voxtend/pkg/tts"
)

const ttsTimeout = 30 * time.Second

func (s *Server) handleHealth(c *fiber.Ctx) error {
	sessions := 0
	if s.cfg.Bridge != nil {
		sessions = s.cfg.Bridge.ClientCount()
	}
	return c.JSON(fiber.Map{
		"status":     "ok",
		"version":    Version,
		"sessions":   sessions,
		"dashboards": s.statusHub.ClientCount(),
		"tts":        s.cfg.Synthesizer != nil,
		"reminders":  s.cfg.Reminders != nil,
	})
}

func (s *Server) handleLanguages(c *fiber.Ctx) error {
	return c.JSON(language.All())
}

func (s *Server) handleCategories(c *fiber.Ctx) error {
	return c.JSON(s.cfg.Catalog.Categories())
}

// schemeView adds deadline fields computed at request time.
type schemeView struct {
	scheme.Scheme
	DaysLeft *int `json:"days_left,omitempty"`
	Urgent   bool `json:"urgent"`
}

func (s *Server) view(sc scheme.Scheme) schemeView {
	now := s.cfg.Now()
	v := schemeView{Scheme: sc, Urgent: sc.IsUrgent(now)}
	if days, ok := sc.DaysLeft(now); ok {
		v.DaysLeft = &days
	}
	return v
}

func (s *Server) handleSchemes(c *fiber.Ctx) error {
	list := s.cfg.Catalog.ByCategory(c.Query("category"))
	out := make([]schemeView, 0, len(list))
	for _, sc := range list {
		out = append(out, s.view(sc))
	}
	return c.JSON(out)
}

func (s *Server) handleScheme(c *fiber.Ctx) error {
	sc, err := s.cfg.Catalog.Get(c.Params("id"))
	if errors.Is(err, scheme.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}
	return c.JSON(s.view(*sc))
}

// TTSRequest is the body of POST /api/tts.
type TTSRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

func (s *Server) handleTTS(c *fiber.Ctx) error {
	if s.cfg.Synthesizer == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "speech synthesis not configured")
	}

	var req TTSRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "text is required")
	}
	if req.Lang == "" {
		req.Lang = language.Default
	}
	lang, ok := language.Lookup(req.Lang)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "unknown language: "+req.Lang)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), ttsTimeout)
	defer cancel()

	result, err := s.cfg.Synthesizer.Synthesize(ctx, &tts.Request{
		Text:     req.Text,
		Language: lang.Code,
		Locale:   lang.SpeechLocale,
	})
	if err != nil {
		s.logger.Warn("synthesis failed", "lang", lang.Code, "error", err)
		var apiErr *tts.APIError
		if errors.As(err, &apiErr) && apiErr.IsRateLimited() {
			c.Set(fiber.HeaderRetryAfter, "5")
			return fiber.NewError(fiber.StatusServiceUnavailable, "speech synthesis busy")
		}
		return fiber.NewError(fiber.StatusBadGateway, "speech synthesis failed")
	}

	c.Set(fiber.HeaderContentType, result.MIME)
	return c.Send(result.Audio)
}

// ReminderRequest is the body of POST /api/reminders. Name and deadline
// default to the catalog entry.
type ReminderRequest struct {
	SchemeID   string `json:"scheme_id"`
	SchemeName string `json:"scheme_name"`
	Deadline   string `json:"deadline"`
}

func (s *Server) reminders() (reminder.Store, error) {
	if s.cfg.Reminders == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "reminders not configured")
	}
	return s.cfg.Reminders, nil
}

func (s *Server) handleListReminders(c *fiber.Ctx) error {
	store, err := s.reminders()
	if err != nil {
		return err
	}
	return c.JSON(store.List())
}

func (s *Server) handleAddReminder(c *fiber.Ctx) error {
	store, err := s.reminders()
	if err != nil {
		return err
	}

	var req ReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	r, err := s.buildReminder(req)
	if err != nil {
		return err
	}

	saved, added, err := store.Add(r)
	if errors.Is(err, reminder.ErrMissingScheme) || errors.Is(err, reminder.ErrMissingDeadline) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if added {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(saved)
}

func (s *Server) buildReminder(req ReminderRequest) (reminder.Reminder, error) {
	if req.SchemeID == "" {
		return reminder.Reminder{}, fiber.NewError(fiber.StatusBadRequest, reminder.ErrMissingScheme.Error())
	}

	r := reminder.Reminder{SchemeID: req.SchemeID, SchemeName: req.SchemeName}
	if sc, err := s.cfg.Catalog.Get(req.SchemeID); err == nil {
		if r.SchemeName == "" {
			r.SchemeName = sc.Name
		}
		if sc.Deadline != nil {
			r.Deadline = *sc.Deadline
		}
	}

	if req.Deadline != "" {
		d, err := parseDate(req.Deadline)
		if err != nil {
			return reminder.Reminder{}, fiber.NewError(fiber.StatusBadRequest, "invalid deadline: "+req.Deadline)
		}
		r.Deadline = d
	}
	if r.SchemeName == "" {
		r.SchemeName = r.SchemeID
	}
	return r, nil
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, v)
}

func (s *Server) handleRemoveReminder(c *fiber.Ctx) error {
	store, err := s.reminders()
	if err != nil {
		return err
	}
	err = store.Remove(c.Params("schemeId"))
	if errors.Is(err, reminder.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleDueReminders(c *fiber.Ctx) error {
	store, err := s.reminders()
	if err != nil {
		return err
	}
	due := store.Due(s.cfg.Now())
	if due == nil {
		due = []reminder.Notification{}
	}
	return c.JSON(due)
}

func (s *Server) handleCenters(c *fiber.Ctx) error {
	from := centers.DefaultCenter
	radius := centers.DefaultRadiusKm

	var err error
	if v := c.Query("lat"); v != "" {
		if from.Lat, err = strconv.ParseFloat(v, 64); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid lat")
		}
	}
	if v := c.Query("lng"); v != "" {
		if from.Lng, err = strconv.ParseFloat(v, 64); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid lng")
		}
	}
	if v := c.Query("radius"); v != "" {
		if radius, err = strconv.ParseFloat(v, 64); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid radius")
		}
	}

	return c.JSON(fiber.Map{
		"from":      from,
		"radius_km": radius,
		"centers":   s.cfg.Centers.Near(from, radius),
	})
}

// handleStatusWS streams reminder and status broadcasts to a dashboard.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	hub.NewClient(s.statusHub, c).Run()
}
