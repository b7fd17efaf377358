package tui

// Route is one navigable page.
type Route struct {
	Path  string
	Title string
	// Layout routes render inside the header, tab bar and status line.
	Layout bool
}

// Route paths.
const (
	PathLogin           = "/login"
	PathDashboard       = "/"
	PathProducts        = "/products"
	PathRecommendations = "/recommendations"
	PathAnalytics       = "/analytics"
	PathSettings        = "/settings"
)

// Routes lists every page. The layout routes appear as tabs in this order.
var Routes = []Route{
	{Path: PathLogin, Title: "Login"},
	{Path: PathDashboard, Title: "Dashboard", Layout: true},
	{Path: PathProducts, Title: "Products", Layout: true},
	{Path: PathRecommendations, Title: "Recommendations", Layout: true},
	{Path: PathAnalytics, Title: "Analytics", Layout: true},
	{Path: PathSettings, Title: "Settings", Layout: true},
}

// TabRoutes returns the routes shown in the tab bar.
func TabRoutes() []Route {
	tabs := make([]Route, 0, len(Routes))
	for _, r := range Routes {
		if r.Layout {
			tabs = append(tabs, r)
		}
	}
	return tabs
}

// FindRoute looks up a route by path. Unknown paths fall back to the
// dashboard, matching the index route.
func FindRoute(path string) (Route, bool) {
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Routes[1], false
}
