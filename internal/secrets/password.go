package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"jobdigest/internal/config"
)

const (
	// KeyringService groups this app's secrets in the OS keychain.
	KeyringService = "jobdigest"

	passwordEnv = "JOBDIGEST_SMTP_PASSWORD"
)

// SMTPPassword resolves the SMTP password: environment first (CI and
// containers), then the OS keychain under the configured account.
func SMTPPassword(keyringAccount string) (string, error) {
	if pw := strings.TrimSpace(os.Getenv(passwordEnv)); pw != "" {
		return pw, nil
	}

	if strings.TrimSpace(keyringAccount) != "" {
		pw, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(pw) != "" {
			return pw, nil
		}
	}

	return "", errors.New("SMTP password not found (set " + passwordEnv + " or store it in the keychain)")
}

func SetSMTPPassword(keyringAccount, password string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, password)
}

func DeleteSMTPPassword(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}

// SMTPKeyringAccount derives the default keychain account name from the
// SMTP identity when the config leaves it unset.
func SMTPKeyringAccount(cfg config.Config) string {
	if cfg.SMTP.KeyringAccount != "" {
		return cfg.SMTP.KeyringAccount
	}
	return fmt.Sprintf("jobdigest:smtp:%s@%s", cfg.SMTP.Username, cfg.SMTP.Host)
}
