package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jobdigest/internal/config"
	"jobdigest/internal/digest"
	"jobdigest/internal/fetch"
	"jobdigest/internal/mail"
	"jobdigest/internal/run"
	"jobdigest/internal/secrets"
	"jobdigest/internal/state"
	"jobdigest/pkg/logging"
)

func main() {
	var (
		cfgPath     = flag.String("config", "", "config file (default: <data>/config.yml, seeded from config/config.yml)")
		dataDir     = flag.String("data", "", "data directory (default: $JOBDIGEST_DATA_DIR or .)")
		dryRun      = flag.Bool("dry-run", false, "render the digest to stdout; skip SMTP and state persist")
		setPassword = flag.Bool("set-password", false, "read an SMTP password from stdin, store it in the OS keychain, and exit")
	)
	flag.Parse()

	if *dataDir == "" {
		*dataDir = os.Getenv("JOBDIGEST_DATA_DIR")
	}
	if *dataDir == "" {
		*dataDir = "."
	}

	if *cfgPath == "" {
		p, err := config.EnsureUserConfig(*dataDir, filepath.Join("config", "config.yml"))
		if err != nil {
			fatal("config bootstrap failed: %v", err)
		}
		*cfgPath = p
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal("config load failed (%s): %v", *cfgPath, err)
	}
	cfg = config.Defaults(cfg)
	if err := config.Validate(cfg, *dryRun); err != nil {
		fatal("%v", err)
	}

	log := logging.New(cfg.App.LogLevel)
	defer func() { _ = log.Sync() }()

	if *setPassword {
		if err := storePassword(cfg); err != nil {
			fatal("%v", err)
		}
		fmt.Println("password stored")
		return
	}

	lock, err := state.AcquireRunLock(*dataDir)
	if err != nil {
		fatal("%v", err)
	}
	defer func() { _ = lock.Release() }()

	store, closeStore, err := openStore(cfg, *dataDir)
	if err != nil {
		fatal("%v", err)
	}
	defer closeStore()
	if *dryRun {
		store = previewStore{store}
	}

	sender, err := buildSender(cfg, *dryRun, log)
	if err != nil {
		fatal("%v", err)
	}

	limiter := fetch.NewHostLimiter(cfg.Fetch.RatePerHost, cfg.Fetch.Burst)
	runner := run.New(run.Deps{
		Cfg:     cfg,
		Fetcher: fetch.NewClient(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second, limiter, log.With("component", "fetch")),
		Store:   store,
		Renderer: digest.NewRenderer(
			cfg.Digest.TemplatePath, cfg.Digest.NoNewTemplatePath, nil, log.With("component", "digest")),
		Sender: sender,
		Log:    log.With("component", "run"),
	})

	rep, err := runner.Once(context.Background())
	if err != nil {
		log.Error("run failed", "error", err)
		_ = log.Sync()
		os.Exit(1)
	}
	log.Info("done", "total", rep.TotalRows, "new", rep.NewRows)
}

func openStore(cfg config.Config, dataDir string) (state.Store, func(), error) {
	path := cfg.State.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(dataDir, path)
	}

	if cfg.State.Backend == "sqlite" {
		s, err := state.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	}
	return state.NewFileStore(path), func() {}, nil
}

func buildSender(cfg config.Config, dryRun bool, log *logging.Logger) (mail.Sender, error) {
	if dryRun {
		return stdoutSender{}, nil
	}

	password, err := secrets.SMTPPassword(secrets.SMTPKeyringAccount(cfg))
	if err != nil {
		return nil, err
	}
	return mail.NewSMTPSender(mail.SMTPConfig{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Username,
		Password:   password,
		From:       cfg.SMTP.From,
		Recipients: cfg.SMTP.Recipients,
	}, log.With("component", "mail"))
}

func storePassword(cfg config.Config) error {
	fmt.Fprint(os.Stderr, "SMTP password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("read password: %w", err)
	}
	return secrets.SetSMTPPassword(secrets.SMTPKeyringAccount(cfg), strings.TrimSpace(line))
}

// previewStore loads real state but drops saves; used by -dry-run so a
// preview never consumes pending notifications.
type previewStore struct{ state.Store }

func (p previewStore) Save(context.Context, state.IDSet) error { return nil }

// stdoutSender prints instead of delivering; used by -dry-run.
type stdoutSender struct{}

func (stdoutSender) Send(_ context.Context, subject, htmlBody string) error {
	fmt.Printf("Subject: %s\n\n%s\n", subject, htmlBody)
	return nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "jobdigest: "+format+"\n", args...)
	os.Exit(1)
}
