package model

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

type Preferences struct {
	Theme Theme `json:"theme"`
}

// Route is the first screen a client should show.
type Route string

const (
	RouteOnboarding Route = "onboarding"
	RouteLogin      Route = "login"
	RouteTabs       Route = "tabs"
)
