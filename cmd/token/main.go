// Package main mints access tokens for operators and integrations.
// User administration is handled outside the service, so tokens are
// issued from the shared secret.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	appcontext "stockmark/internal/core/context"
	"stockmark/internal/core/id"
	"stockmark/internal/domain/auth"
)

func main() {
	_ = godotenv.Load()

	var (
		userID   = flag.String("user", "", "user id (defaults to a new uuid)")
		username = flag.String("name", "", "display name")
		role     = flag.String("role", string(appcontext.RoleOperator), "role: admin, operator or viewer")
		ttl      = flag.Duration("ttl", 12*time.Hour, "token lifetime")
	)
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET not set")
		os.Exit(1)
	}
	if *username == "" {
		fmt.Fprintln(os.Stderr, "-name is required")
		os.Exit(1)
	}

	uid := *userID
	if uid == "" {
		uid = id.New().String()
	}

	cfg := auth.DefaultJWTConfig(secret)
	cfg.AccessTokenTTL = *ttl

	token, expiresAt, err := auth.NewJWTService(cfg).GenerateAccessToken(uid, *username, appcontext.Role(*role))
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "user=%s role=%s expires=%s\n", uid, *role, expiresAt.Format(time.RFC3339))
}
