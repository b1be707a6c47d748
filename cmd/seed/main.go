// Command seed bootstraps the initial admin account. Admins have no
// registration endpoint; this is the only way one gets created.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/joho/godotenv/autoload"

	"jobdesk/internal/database"
	"jobdesk/internal/models"
	"jobdesk/internal/repositories"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	name := flag.String("name", "", "admin display name")
	username := flag.String("username", "", "admin username")
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	twoFactor := flag.Bool("2fa", false, "enable two-factor login for this admin")
	flag.Parse()

	if *name == "" || *username == "" || *email == "" || *password == "" {
		log.Fatal().Msg("name, username, email and password are required")
	}

	db := database.New()
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adminRepo := repositories.NewAdminRepository(db)
	if err := adminRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin indexes")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), 10)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	admin, err := adminRepo.Create(ctx, &models.Admin{
		Name:               *name,
		Username:           *username,
		Email:              *email,
		Password:           string(hashed),
		IsTwoFactorEnabled: *twoFactor,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	log.Info().Str("admin_id", admin.ID.Hex()).Str("email", admin.Email).Bool("two_factor", admin.IsTwoFactorEnabled).Msg("Admin created")
}
