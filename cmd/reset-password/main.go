package main

import (
	"fmt"

	"go-gudang/internal/config"
	"go-gudang/internal/repository"
	"go-gudang/internal/service"
	"go-gudang/pkg/database"
	"go-gudang/pkg/logger"

	"github.com/spf13/cobra"
)

type resetFlags struct {
	username string
	password string
}

// NewResetPasswordCommand sets a user's password straight in the database.
// Shell access to the database is the authorization, so no secret is asked.
func NewResetPasswordCommand() *cobra.Command {
	f := &resetFlags{}

	cmd := &cobra.Command{
		Use:          "reset-password",
		Short:        "Reset a user's password directly in the database",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.LogLevel, cfg.LogPretty)

			db, err := database.Connect(cfg.Database, log)
			if err != nil {
				return err
			}
			defer database.Close(db)

			users := service.NewUserService(
				db,
				repository.NewUserRepo(db),
				repository.NewItemRepo(db),
				repository.NewActivityLogRepo(db),
				cfg.ResetSecret,
				log,
			)
			if err := users.SetPassword(f.username, f.password); err != nil {
				return fmt.Errorf("failed to reset password for %s: %w", f.username, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Password %s diganti!\n", f.username)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.username, "username", "", "username whose password is reset")
	cmd.Flags().StringVar(&f.password, "password", "", "new password (at least 6 characters)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func main() {
	cobra.CheckErr(NewResetPasswordCommand().Execute())
}
