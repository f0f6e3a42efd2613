package settings

// Field names a user facing setting.
type Field string

// Fields, in the order the form shows them.
const (
	FieldUserName           Field = "userName"
	FieldDarkTheme          Field = "isDarkTheme"
	FieldPreferredLanguage  Field = "preferredLanguage"
	FieldNotificationVolume Field = "notificationVolume"
	FieldLastAccessTime     Field = "lastAccessTime"
	FieldLastLocation       Field = "lastLocation"
	FieldTotalUsageTime     Field = "totalUsageTime"
)

// Supported language codes.
const (
	LanguageSpanish = "es"
	LanguageEnglish = "en"
)

// Defaults of fields that were never written.
const (
	DefaultUserName           = ""
	DefaultDarkTheme          = false
	DefaultPreferredLanguage  = LanguageSpanish
	DefaultNotificationVolume = float32(0.5)
	DefaultLastAccessTime     = ""
	DefaultLastLocation       = ""
	DefaultTotalUsageTime     = int64(0)
)

// LastAccessLayout formats lastAccessTime.
const LastAccessLayout = "2006-01-02T15:04:05.000"

// persisted names inside the encrypted namespace
const (
	keyUserName           = "user_name"
	keyDarkTheme          = "dark_theme"
	keyPreferredLanguage  = "preferred_language"
	keyNotificationVolume = "notification_volume"
	keyLastAccess         = "last_access"
	keyLastLocation       = "last_location"
	keyTotalUsageTime     = "total_usage_time"
	keyLastOpenTime       = "last_open_time"
)

var allFields = []Field{ //nolint:gochecknoglobals
	FieldUserName,
	FieldDarkTheme,
	FieldPreferredLanguage,
	FieldNotificationVolume,
	FieldLastAccessTime,
	FieldLastLocation,
	FieldTotalUsageTime,
}

// Fields returns every user facing field.
func Fields() []Field {
	out := make([]Field, len(allFields))
	copy(out, allFields)

	return out
}

// ParseField maps a field name to its Field.
func ParseField(name string) (Field, error) {
	for _, f := range allFields {
		if string(f) == name {
			return f, nil
		}
	}

	return "", ErrUnknownField
}

// ReadOnly reports whether only the store itself writes f.
func (f Field) ReadOnly() bool {
	return f == FieldLastAccessTime || f == FieldTotalUsageTime
}

// Settings is a snapshot of every user facing field.
type Settings struct {
	UserName           string  `json:"userName"`
	IsDarkTheme        bool    `json:"isDarkTheme"`
	PreferredLanguage  string  `json:"preferredLanguage"  validate:"oneof=es en"`
	NotificationVolume float32 `json:"notificationVolume" validate:"gte=0,lte=1"`
	LastAccessTime     string  `json:"lastAccessTime"`
	LastLocation       string  `json:"lastLocation"`
	TotalUsageTime     int64   `json:"totalUsageTime"`
}

// Defaults returns the settings of a namespace that was never written.
func Defaults() Settings {
	return Settings{
		UserName:           DefaultUserName,
		IsDarkTheme:        DefaultDarkTheme,
		PreferredLanguage:  DefaultPreferredLanguage,
		NotificationVolume: DefaultNotificationVolume,
		LastAccessTime:     DefaultLastAccessTime,
		LastLocation:       DefaultLastLocation,
		TotalUsageTime:     DefaultTotalUsageTime,
	}
}

// Value returns the value of f inside the snapshot.
func (s Settings) Value(f Field) (any, error) {
	switch f {
	case FieldUserName:
		return s.UserName, nil
	case FieldDarkTheme:
		return s.IsDarkTheme, nil
	case FieldPreferredLanguage:
		return s.PreferredLanguage, nil
	case FieldNotificationVolume:
		return s.NotificationVolume, nil
	case FieldLastAccessTime:
		return s.LastAccessTime, nil
	case FieldLastLocation:
		return s.LastLocation, nil
	case FieldTotalUsageTime:
		return s.TotalUsageTime, nil
	default:
		return nil, ErrUnknownField
	}
}
