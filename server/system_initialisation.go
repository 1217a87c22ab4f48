package server

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-care-portal/apps"
	"github.com/rs/zerolog/log"
)

// InitialiseSystem warns about development signing secrets and creates the
// configured seed accounts. Seeding is skipped for accounts that already exist.
func (s *Server) InitialiseSystem(ctx context.Context) error {
	for _, app := range apps.All() {
		if s.config.IsDefaultSecret(app) {
			log.Warn().
				Str("app", app.String()).
				Str("variable", app.SecretEnvVar()).
				Msg("Using the development signing secret")
		}

		email, password := s.config.GetSeedAccount(app)
		if email == "" || password == "" {
			continue
		}
		created, err := s.service.Seed(ctx, app, email, password)
		if err != nil {
			return fmt.Errorf("[Server InitialiseSystem] failed to seed %s account: %w", app, err)
		}
		if created {
			log.Info().Str("app", app.String()).Str("email", email).Msg("Seed account created")
		}
	}
	return nil
}
