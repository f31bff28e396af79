// Command token mints bearer tokens for the bot and for reviewers, and revokes
// them when REDIS_URL is configured.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"gamecontest/internal/auth"
	"gamecontest/internal/logging"
)

func main() {
	var (
		sub    = flag.String("sub", "", "player id the token is issued to")
		name   = flag.String("name", "", "display name")
		role   = flag.String("role", auth.RoleUser, "USER or ADMIN")
		ttl    = flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
		revoke = flag.String("revoke", "", "token id (jti) to revoke instead of minting")
	)
	flag.Parse()

	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
	log := logging.NewLogger("token")

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("missing required environment variable: JWT_SECRET")
	}

	if *revoke != "" {
		if err := revokeToken(context.Background(), *revoke, time.Now().Add(*ttl)); err != nil {
			log.WithError(err).Fatal("revoke token")
		}
		log.WithField("jti", *revoke).Info("token revoked")
		return
	}

	if *sub == "" {
		log.Fatal("-sub is required")
	}
	token, jti, err := auth.GenerateNamedToken(secret, *sub, *name, *role, *ttl)
	if err != nil {
		log.WithError(err).Fatal("generate token")
	}
	log.WithFields(logrus.Fields{"sub": *sub, "role": *role, "jti": jti}).Info("token issued")
	fmt.Println(token)
}

func revokeToken(ctx context.Context, jti string, until time.Time) error {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		return fmt.Errorf("REDIS_URL is required to revoke tokens")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return fmt.Errorf("REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	defer rdb.Close()
	return auth.NewRedisRevocations(rdb).Revoke(ctx, jti, until)
}
