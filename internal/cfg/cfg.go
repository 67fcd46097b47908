package cfg

import (
	"errors"
	"flag"
	"fmt"
)

// Config holds the application configuration beyond the common
// cfg.Registerable and cfg.Validatable pieces from go-core.
type Config struct {
	DrainSeconds          int
	ShutdownBudgetSeconds int
	APIPort               int
	APIToken              string
	ClaudeAPIKey          string
	ClaudeModel           string
	NewsAPIKey            string
	NewsAPIBaseURL        string
	GoogleNewsBaseURL     string
	DiscoveryEnabled      bool
	ProviderLimit         int
	TopK                  int
	DatabaseURL           string
	TwilioAccountSID      string
	TwilioAuthToken       string
	TwilioFromNumber      string
	TwilioToNumber        string
}

// RegisterFlags binds Config fields to the given FlagSet with defaults inline
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.DrainSeconds, "drain-seconds", 60, "seconds to wait for in-flight requests to drain before shutdown (1..300)")
	fs.IntVar(&c.ShutdownBudgetSeconds, "shutdown-budget-seconds", 90, "total seconds for component shutdown after drain (1..300)")
	fs.IntVar(&c.APIPort, "http-port", 8080, "API listen TCP port (1..65535)")
	fs.StringVar(&c.APIToken, "api-token", "", "bearer token required on API requests (empty = no auth)")
	fs.StringVar(&c.ClaudeAPIKey, "claude-api-key", "", "API key for accessing the Claude LLM provider")
	fs.StringVar(&c.ClaudeModel, "claude-model", "claude-sonnet-4-20250514", "Claude model to use")
	fs.StringVar(&c.NewsAPIKey, "newsapi-key", "", "NewsAPI key (empty = provider disabled)")
	fs.StringVar(&c.NewsAPIBaseURL, "newsapi-base-url", "https://newsapi.org", "NewsAPI base URL")
	fs.StringVar(&c.GoogleNewsBaseURL, "googlenews-base-url", "https://news.google.com", "Google News base URL")
	fs.BoolVar(&c.DiscoveryEnabled, "discovery-enabled", true, "enable the LLM-backed discovery provider")
	fs.IntVar(&c.ProviderLimit, "provider-limit", 10, "max records kept per provider (1..100)")
	fs.IntVar(&c.TopK, "top-k", 5, "number of ranked records per assessment (1..50)")
	fs.StringVar(&c.DatabaseURL, "database-url", "", "PostgreSQL connection URL (empty = in-memory evidence log)")
	fs.StringVar(&c.TwilioAccountSID, "twilio-account-sid", "", "Twilio account SID for SMS alerts")
	fs.StringVar(&c.TwilioAuthToken, "twilio-auth-token", "", "Twilio auth token for SMS alerts")
	fs.StringVar(&c.TwilioFromNumber, "twilio-from-number", "", "Twilio sender phone number")
	fs.StringVar(&c.TwilioToNumber, "twilio-to-number", "", "phone number receiving dispatched alerts")
}

// Validate checks all configuration fields for correctness.
// It returns an error if any field is invalid, or nil if all fields are valid.
func (c *Config) Validate() error {
	var errs []error

	// Drain and shutdown budgets
	if c.DrainSeconds <= 0 || c.DrainSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid DRAIN_SECONDS %d (must be 1..300)", c.DrainSeconds))
	}
	if c.ShutdownBudgetSeconds <= 0 || c.ShutdownBudgetSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid SHUTDOWN_BUDGET_SECONDS %d (must be 1..300)", c.ShutdownBudgetSeconds))
	}

	// Shutdown budget must be greater than drain time
	if c.ShutdownBudgetSeconds <= c.DrainSeconds {
		errs = append(errs, fmt.Errorf("SHUTDOWN_BUDGET_SECONDS %d must be greater than DRAIN_SECONDS %d", c.ShutdownBudgetSeconds, c.DrainSeconds))
	}

	// API port must be valid TCP port number
	if c.APIPort <= 0 || c.APIPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT %d (must be 1..65535)", c.APIPort))
	}

	// Claude API key is required for summarization and discovery
	if c.ClaudeAPIKey == "" {
		errs = append(errs, errors.New("CLAUDE_API_KEY is required"))
	}

	if c.ClaudeModel == "" {
		errs = append(errs, errors.New("CLAUDE_MODEL is required"))
	}

	if c.ProviderLimit <= 0 || c.ProviderLimit > 100 {
		errs = append(errs, fmt.Errorf("invalid PROVIDER_LIMIT %d (must be 1..100)", c.ProviderLimit))
	}
	if c.TopK <= 0 || c.TopK > 50 {
		errs = append(errs, fmt.Errorf("invalid TOP_K %d (must be 1..50)", c.TopK))
	}

	// Twilio settings are all-or-none
	if err := c.validateTwilio(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// TwilioEnabled reports whether SMS dispatch is configured.
func (c *Config) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" || c.TwilioAuthToken != "" ||
		c.TwilioFromNumber != "" || c.TwilioToNumber != ""
}

func (c *Config) validateTwilio() error {
	if !c.TwilioEnabled() {
		return nil
	}
	if c.TwilioAccountSID == "" || c.TwilioAuthToken == "" ||
		c.TwilioFromNumber == "" || c.TwilioToNumber == "" {
		return errors.New("TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN, TWILIO_FROM_NUMBER and TWILIO_TO_NUMBER must all be set to enable SMS dispatch")
	}
	return nil
}
