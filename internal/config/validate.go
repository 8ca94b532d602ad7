package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Defaults fills zero values that have sensible fallbacks. Validation
// runs on the defaulted copy.
func Defaults(cfg Config) Config {
	out := cfg
	if out.App.LogLevel == "" {
		out.App.LogLevel = "info"
	}
	if out.Fetch.TimeoutSeconds <= 0 {
		out.Fetch.TimeoutSeconds = 30
	}
	if out.Fetch.RatePerHost <= 0 {
		out.Fetch.RatePerHost = 1.0
	}
	if out.Fetch.Burst <= 0 {
		out.Fetch.Burst = 2
	}
	if out.State.Backend == "" {
		out.State.Backend = "file"
	}
	if out.State.Path == "" {
		out.State.Path = "state/sent.json"
	}
	if out.State.Policy == "" {
		out.State.Policy = "window"
	}
	if out.State.Policy == "window" && out.State.Window == 0 {
		out.State.Window = 50
	}
	if out.Digest.SubjectPrefix == "" {
		out.Digest.SubjectPrefix = "[Jobs Digest]"
	}
	if out.SMTP.Port == 0 {
		out.SMTP.Port = 587
	}
	out.SMTP.Recipients = trimList(out.SMTP.Recipients)
	return out
}

// Validate checks a defaulted config. dryRun relaxes the delivery
// fields since nothing will be sent.
func Validate(cfg Config, dryRun bool) error {
	var errs []string

	if len(cfg.Sources) == 0 {
		errs = append(errs, "at least one source url is required")
	}
	for i, s := range cfg.Sources {
		u, err := url.Parse(s.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("sources[%d].url is not a valid absolute url", i))
		}
	}

	switch cfg.State.Backend {
	case "file", "sqlite":
	default:
		errs = append(errs, "state.backend must be file or sqlite")
	}
	switch cfg.State.Policy {
	case "window":
		if cfg.State.Window <= 0 {
			errs = append(errs, "state.window must be > 0 with the window policy")
		}
	case "accumulate":
	default:
		errs = append(errs, "state.policy must be window or accumulate")
	}

	if !dryRun {
		if strings.TrimSpace(cfg.SMTP.Host) == "" {
			errs = append(errs, "smtp.host is required")
		}
		if cfg.SMTP.Port <= 0 || cfg.SMTP.Port > 65535 {
			errs = append(errs, "smtp.port must be 1..65535")
		}
		if strings.TrimSpace(cfg.SMTP.Username) == "" {
			errs = append(errs, "smtp.username is required")
		}
		if len(cfg.SMTP.Recipients) == 0 {
			errs = append(errs, "smtp.recipients must have at least one address")
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

func trimList(xs []string) []string {
	seen := map[string]bool{}
	var ys []string
	for _, x := range xs {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		key := strings.ToLower(x)
		if seen[key] {
			continue
		}
		seen[key] = true
		ys = append(ys, x)
	}
	return ys
}
