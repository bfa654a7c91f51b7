package api

// Config holds the HTTP API settings.
type Config struct {
	UpgradeURL    string `env:"UPGRADE_URL" envDefault:"/app/subscriptions"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
	VisitorCookie string `env:"VISITOR_COOKIE" envDefault:"sk_visitor"`
	SecureCookies bool   `env:"SECURE_COOKIES" envDefault:"false"`
}
