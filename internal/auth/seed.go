package auth

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	DefaultUsername = "admin"
	DefaultPassword = "password123"
)

// EnsureDefaultUser creates the bootstrap account unless it already exists.
func EnsureDefaultUser(store UserStore, username, password string, log *zap.Logger) error {
	if store.Exists(username) {
		return nil
	}
	if err := store.Create(username, password); err != nil {
		return fmt.Errorf("seed default user: %w", err)
	}
	if log != nil {
		log.Info("default user created", zap.String("username", username))
	}
	return nil
}
