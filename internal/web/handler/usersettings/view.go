package usersettings

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoSecureSettings/GoSecureSettings/internal/form"
)

// View is what the settings template renders.
type View struct {
	UserName           string
	IsDarkTheme        bool
	PreferredLanguage  string
	NotificationVolume float32
	VolumeLabel        string
	LastAccessTime     string
	LastLocation       string
	Usage              string
	Languages          []form.Option
}

// Labels of the screen, keyed by template name.
var labels = fiber.Map{ //nolint:gochecknoglobals
	"UserName":     form.LabelUserName,
	"DarkTheme":    form.LabelDarkTheme,
	"Language":     form.LabelLanguage,
	"LastAccess":   form.LabelLastAccess,
	"LastLocation": form.LabelLastLocation,
	"Usage":        form.LabelUsage,
}

func (s *Service) view() View {
	state := s.form.State()

	return View{
		UserName:           state.UserName,
		IsDarkTheme:        state.IsDarkTheme,
		PreferredLanguage:  state.PreferredLanguage,
		NotificationVolume: state.NotificationVolume,
		VolumeLabel:        s.form.VolumeLabel(),
		LastAccessTime:     form.OrPlaceholder(state.LastAccessTime),
		LastLocation:       s.form.LastLocationDisplay(),
		Usage:              s.form.UsageDisplay(),
		Languages:          form.Languages(),
	}
}

func (s *Service) bind(errMsg string) fiber.Map {
	m := fiber.Map{
		"Title":    form.Title,
		"AppTitle": s.cfg.Title,
		"Settings": s.view(),
		"Labels":   labels,
		"Dark":     s.form.State().IsDarkTheme,
	}

	if errMsg != "" {
		m["Error"] = errMsg
	}

	return m
}
