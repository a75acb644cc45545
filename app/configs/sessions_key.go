package configs

import (
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gorilla/securecookie"
)

type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
	// CSRFKey is nil when CSRF_KEY is unset.
	CSRFKey []byte
}

func LoadSessionKeys(env ENV) (*SessionKeys, error) {
	if env.AppAuthKey == "" {
		return nil, fmt.Errorf("APP_AUTH_KEY environment variable not set")
	}
	if env.AppEncKey == "" {
		return nil, fmt.Errorf("APP_ENC_KEY environment variable not set")
	}

	authKey, err := base64.URLEncoding.DecodeString(env.AppAuthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_AUTH_KEY from Base64: %w", err)
	}
	encKey, err := base64.URLEncoding.DecodeString(env.AppEncKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_ENC_KEY from Base64: %w", err)
	}
	if len(encKey) != 16 && len(encKey) != 24 && len(encKey) != 32 {
		return nil, fmt.Errorf("APP_ENC_KEY has invalid length %d after decoding. Must be 16, 24, or 32 bytes for AES encryption", len(encKey))
	}

	keys := &SessionKeys{AuthKey: authKey, EncKey: encKey}
	if env.CSRFKey != "" {
		csrfKey, err := base64.URLEncoding.DecodeString(env.CSRFKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode CSRF_KEY from Base64: %w", err)
		}
		if len(csrfKey) != 32 {
			return nil, fmt.Errorf("CSRF_KEY has invalid length %d after decoding. Must be 32 bytes", len(csrfKey))
		}
		keys.CSRFKey = csrfKey
	}

	log.Println("✅ Session keys loaded and decoded successfully.")
	return keys, nil
}

// GenerateAndPrintSessionKeys prints fresh keys to out and writes them to envFilePath.
func GenerateAndPrintSessionKeys(out io.Writer, envFilePath string) error {
	fmt.Fprintln(out, "Generating new session keys...")

	authKey := securecookie.GenerateRandomKey(64)
	if authKey == nil {
		return fmt.Errorf("error: could not generate authentication key")
	}
	encKey := securecookie.GenerateRandomKey(32)
	if encKey == nil {
		return fmt.Errorf("error: could not generate encryption key")
	}
	csrfKey := securecookie.GenerateRandomKey(32)
	if csrfKey == nil {
		return fmt.Errorf("error: could not generate csrf key")
	}

	lines := fmt.Sprintf("APP_AUTH_KEY=%s\nAPP_ENC_KEY=%s\nCSRF_KEY=%s\n",
		base64.URLEncoding.EncodeToString(authKey),
		base64.URLEncoding.EncodeToString(encKey),
		base64.URLEncoding.EncodeToString(csrfKey),
	)

	fmt.Fprintln(out, "\n================================================")
	fmt.Fprintln(out, "Generated keys:")
	fmt.Fprint(out, lines)
	fmt.Fprintln(out, "================================================")

	if err := os.WriteFile(envFilePath, []byte(lines), 0o600); err != nil {
		return fmt.Errorf("failed to write keys to file %s: %w", envFilePath, err)
	}

	fmt.Fprintf(out, "\n✅ Keys have been written to '%s'.\n", envFilePath)
	fmt.Fprintln(out, "REMINDER: Store these keys securely. Regenerating them invalidates existing admin sessions.")
	return nil
}
