package form

// Labels of the settings screen.
const (
	Title             = "Configuración de Usuario"
	LabelUserName     = "Nombre de Usuario"
	LabelDarkTheme    = "Tema Oscuro"
	LabelLanguage     = "Idioma Preferido"
	LabelSpanish      = "Español"
	LabelEnglish      = "English"
	LabelVolume       = "Volumen de Notificaciones"
	LabelLastAccess   = "Último acceso"
	LabelLastLocation = "Última ubicación"
	LabelUsage        = "Tiempo total de uso"
	NotAvailable      = "No disponible"
)

// Option is one choice of the language selector.
type Option struct {
	Value string
	Label string
}
