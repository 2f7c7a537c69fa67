package account

// Config configures the account module.
type Config struct {
	SessionCookieName string `env:"SESSION_COOKIE_NAME" envDefault:"better-auth.session_token"`
	SignInPath        string `env:"SIGN_IN_PATH" envDefault:"/sign-in"`
}
