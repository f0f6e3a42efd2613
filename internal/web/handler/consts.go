package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// ErrNilACFFatalLogMsg is used if app, cfg or form pointer is nil.
	ErrNilACFFatalLogMsg = "app, cfg or form is nil"
)
