package cli

import (
	"fmt"
	"time"

	"trip-track/internal/domain/user"
	"trip-track/internal/general/jwt"
)

// GenerateUserToken mints a short-lived JWT for a seeded portal user,
// driver or operator. It backs the key utility (cmd/key) used to produce
// bearer tokens against a local stack; production tokens come from the
// services' own /tokens endpoints, never from here.
func GenerateUserToken(secret string, userID string, roleStr string) (string, jwt.Claims, error) {
	// parse and validate the role
	role, err := user.ParseRole(roleStr)
	if err != nil {
		return "", jwt.Claims{}, fmt.Errorf("invalid role %q: %w", roleStr, err)
	}

	// set up a new JWT manager
	mgr := jwt.NewManager(secret, 2*time.Hour)

	// generate the JWT token given the user ID and its role
	token, claims, err := mgr.IssueUserToken(userID, role)
	if err != nil {
		return "", jwt.Claims{}, fmt.Errorf("issue token: %w", err)
	}

	return token, *claims, nil
}
