// Command seed fills the venue catalogue and issues local credentials.
package main

import (
	"fmt"
	"os"
	"time"

	"datecourse/internal/config"
	"datecourse/internal/infra"
	"datecourse/internal/repositories"
	"datecourse/internal/services"
	"datecourse/pkg/logger"
	"datecourse/pkg/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Development helpers for the date-course planner",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(venuesCmd(), adminKeyCmd(), tokenCmd())
}

func venuesCmd() *cobra.Command {
	var (
		lat, lng, radius float64
		count            int
		seed             int64
		district         string
	)

	cmd := &cobra.Command{
		Use:   "venues",
		Short: "Generate demo venues around a centre point and store them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.AppEnv)
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := infra.InitPostgresql(cfg, log)
			if err != nil {
				return err
			}
			defer infra.ClosePostgresql(db, log)

			svc := services.NewVenueService(repositories.NewVenueRepository(db), log)
			requests := services.NewVenueGenerator(seed).Generate(lat, lng, radius, count, district)

			created := 0
			for _, req := range requests {
				if _, err := svc.CreateVenue(cmd.Context(), req); err != nil {
					log.Warn("skipping venue", "name", req.Name, "error", err)
					continue
				}
				created++
			}
			log.Info("seeded venues", "created", created, "requested", count, "district", district)
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 37.5665, "centre latitude")
	cmd.Flags().Float64Var(&lng, "lng", 126.9780, "centre longitude")
	cmd.Flags().Float64Var(&radius, "radius", 2, "scatter radius in km")
	cmd.Flags().IntVarP(&count, "count", "n", 60, "number of venues")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&district, "district", "", "district tag for the generated venues")
	return cmd
}

func adminKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "admin-key",
		Short: "Print a fresh admin key and the ADMIN_KEY_HASH to configure",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := utils.GenerateSecureToken(24)
			if err != nil {
				return err
			}
			hash, err := utils.HashSecret(key)
			if err != nil {
				return err
			}
			fmt.Printf("X-Admin-Key:    %s\nADMIN_KEY_HASH=%s\n", key, hash)
			return nil
		},
	}
}

func tokenCmd() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a bearer token with JWT_SECRET for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if len(cfg.JWTSecret) == 0 {
				return fmt.Errorf("JWT_SECRET is empty")
			}

			id := uuid.New()
			if userID != "" {
				if id, err = uuid.Parse(userID); err != nil {
					return fmt.Errorf("--user: %w", err)
				}
			}

			token, err := utils.CreateToken(cfg.JWTSecret, id, "member", ttl)
			if err != nil {
				return err
			}
			fmt.Printf("user_id: %s\nBearer %s\n", id, token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id (random when empty)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
