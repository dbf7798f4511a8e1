package main

import (
	"context"
	"fmt"
	"recipe/internal/model"
	"recipe/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	superuserEmail    string
	superuserPassword string
	superuserName     string
)

var createSuperuserCmd = &cobra.Command{
	Use:   "create-superuser",
	Short: "Create a staff superuser account",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := model.InitRepository(&cfg)
		if err != nil {
			return fmt.Errorf("failed to initialise repository: %w", err)
		}
		defer repo.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		identity := service.NewIdentityService(repo, cfg.MinPasswordLength)
		user, err := identity.CreateSuperuser(ctx, superuserEmail, superuserPassword, service.UserFields{Name: superuserName})
		if err != nil {
			return err
		}

		logrus.WithField("user_id", user.ID).Info("superuser created")
		fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s created (id %d)\n", user.Email, user.ID)
		return nil
	},
}

func init() {
	createSuperuserCmd.Flags().StringVar(&superuserEmail, "email", "", "superuser email")
	createSuperuserCmd.Flags().StringVar(&superuserPassword, "password", "", "superuser password")
	createSuperuserCmd.Flags().StringVar(&superuserName, "name", "", "display name")
	_ = createSuperuserCmd.MarkFlagRequired("email")
	_ = createSuperuserCmd.MarkFlagRequired("password")
}
