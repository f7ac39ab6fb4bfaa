// Package identity resolves the authenticated owner. Authentication itself
// happens outside this process; the terminal session is trusted and the
// owner id comes from the environment.
package identity

import (
	"os"
	"strings"

	"github.com/sandeepkv93/focusd/internal/model"
)

const EnvOwner = "FOCUSD_OWNER"

// Resolve returns the owner id for this process: FOCUSD_OWNER when set,
// otherwise the login user. No identity means every core operation would be
// rejected, so it is an error here.
func Resolve() (string, error) {
	if owner := strings.TrimSpace(os.Getenv(EnvOwner)); owner != "" {
		return owner, nil
	}
	if owner := strings.TrimSpace(os.Getenv("USER")); owner != "" {
		return owner, nil
	}
	return "", model.ErrUnauthorized
}
