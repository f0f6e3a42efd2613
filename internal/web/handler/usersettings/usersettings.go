// Package usersettings serves the settings screen.
package usersettings

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoSecureSettings/GoSecureSettings/internal/config"
	"github.com/GoSecureSettings/GoSecureSettings/internal/form"
	"github.com/GoSecureSettings/GoSecureSettings/internal/settings"
	"github.com/GoSecureSettings/GoSecureSettings/internal/web/handler"
)

const (
	// Path is the path of the settings screen.
	Path = handler.RootPath + "settings"

	// FieldPath applies a single edit.
	FieldPath = Path + "/:field"

	// TemplateName is the name of the settings template.
	TemplateName = "settings"
)

var (
	// ErrFieldNotEditable is returned for fields the screen only displays.
	ErrFieldNotEditable = errors.New("field is read-only on this screen")

	errBadBool = errors.New("value must be a boolean")
)

// Service is the settings screen handler service.
type Service struct {
	cfg  *config.Config
	form *form.Form
}

var _ handler.Service = (*Service)(nil)

// Init registers the routes of the settings screen.
func (s *Service) Init(app *fiber.App, cfg *config.Config, f *form.Form) {
	if app == nil || cfg == nil || f == nil {
		log.Fatal().Msg(handler.ErrNilACFFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.form = f

	app.Get(Path, s.Get)
	app.Post(Path, s.Post)
	app.Post(FieldPath, s.PostField)
}

// Get renders the settings screen from the form state.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(TemplateName, s.bind(""), handler.BaseLayout)
}

// FieldResponse is the answer to a single field edit.
type FieldResponse struct {
	Field   string `json:"field"`
	Value   any    `json:"value"`
	Display string `json:"display"`
}

// ErrorResponse is returned for rejected edits.
type ErrorResponse struct {
	Field string `json:"field,omitempty"`
	Error string `json:"error"`
}

// PostField applies one edit submitted as form value "value" and answers with JSON.
func (s *Service) PostField(c *fiber.Ctx) error {
	name := c.Params("field")

	field, err := settings.ParseField(name)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Field: name, Error: err.Error()})
	}

	resp, err := s.apply(field, c.FormValue("value"))
	if err != nil {
		status := statusOf(err)
		if status == fiber.StatusInternalServerError {
			log.Error().Err(err).Str("field", name).Msg("failed to store setting")
		}

		return c.Status(status).JSON(ErrorResponse{Field: name, Error: err.Error()})
	}

	return c.JSON(resp)
}

// submission is the whole screen posted without javascript.
type submission struct {
	UserName           string `form:"userName"`
	IsDarkTheme        string `form:"isDarkTheme"`
	PreferredLanguage  string `form:"preferredLanguage"`
	NotificationVolume string `form:"notificationVolume"`
}

// Post applies a whole submitted screen field by field and redirects back to it.
func (s *Service) Post(c *fiber.Ctx) error {
	var sub submission

	if err := c.BodyParser(&sub); err != nil {
		log.Error().Err(err).Msg("failed to parse settings form")

		return c.Status(fiber.StatusBadRequest).Render(TemplateName, s.bind("Formulario inválido"), handler.BaseLayout)
	}

	// an unchecked checkbox is not submitted
	if sub.IsDarkTheme == "" {
		sub.IsDarkTheme = "false"
	}

	edits := []struct {
		field settings.Field
		value string
	}{
		{settings.FieldUserName, sub.UserName},
		{settings.FieldDarkTheme, sub.IsDarkTheme},
		{settings.FieldPreferredLanguage, sub.PreferredLanguage},
		{settings.FieldNotificationVolume, sub.NotificationVolume},
	}

	for _, e := range edits {
		if _, err := s.apply(e.field, e.value); err != nil {
			status := statusOf(err)
			if status == fiber.StatusInternalServerError {
				log.Error().Err(err).Str("field", string(e.field)).Msg("failed to store setting")
			}

			return c.Status(status).Render(TemplateName, s.bind(err.Error()), handler.BaseLayout)
		}
	}

	return c.Redirect(Path, fiber.StatusSeeOther)
}

// apply parses raw for field and forwards it to the form.
func (s *Service) apply(field settings.Field, raw string) (*FieldResponse, error) {
	resp := &FieldResponse{Field: string(field)}

	switch field {
	case settings.FieldUserName:
		if err := s.form.SetUserName(raw); err != nil {
			return nil, err
		}

		resp.Value, resp.Display = raw, raw
	case settings.FieldDarkTheme:
		v, err := parseBool(raw)
		if err != nil {
			return nil, err
		}

		if err := s.form.SetDarkTheme(v); err != nil {
			return nil, err
		}

		resp.Value, resp.Display = v, strconv.FormatBool(v)
	case settings.FieldPreferredLanguage:
		if err := s.form.SetLanguage(raw); err != nil {
			return nil, err
		}

		resp.Value, resp.Display = raw, languageLabel(raw)
	case settings.FieldNotificationVolume:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
		if err != nil {
			return nil, errors.Join(settings.ErrInvalidInput, settings.ErrInvalidVolume)
		}

		stored, err := s.form.SetVolume(float32(v))
		if err != nil {
			return nil, err
		}

		resp.Value, resp.Display = stored, s.form.VolumeLabel()
	default:
		return nil, errors.Join(settings.ErrInvalidInput, ErrFieldNotEditable)
	}

	return resp, nil
}

// parseBool accepts strconv booleans plus the checkbox values on and off.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.Join(settings.ErrInvalidInput, errBadBool)
	}

	return v, nil
}

func statusOf(err error) int {
	if errors.Is(err, settings.ErrInvalidInput) {
		return fiber.StatusBadRequest
	}

	return fiber.StatusInternalServerError
}

func languageLabel(code string) string {
	for _, o := range form.Languages() {
		if o.Value == code {
			return o.Label
		}
	}

	return code
}
