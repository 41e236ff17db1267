package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oksasatya/estate-listing-api/config"
	"github.com/oksasatya/estate-listing-api/internal/container"
	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/internal/domain/valueobject"
	pginfra "github.com/oksasatya/estate-listing-api/internal/infrastructure/postgres"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

type seedUser struct {
	Email     string
	Password  string
	FirstName string
	Role      entity.Role
}

// defaultAttributes is the starter attribute catalog.
var defaultAttributes = []entity.PropertyAttribute{
	{Name: "Parking spaces", DataType: entity.AttributeNumber},
	{Name: "Swimming pool", DataType: entity.AttributeBoolean},
	{Name: "Furnished", DataType: entity.AttributeBoolean},
	{Name: "Land area", DataType: entity.AttributeNumber, Unit: "sqm"},
	{Name: "Heating", DataType: entity.AttributeText},
}

func seedCmd(cfg *config.Config, log *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the admin and agent accounts and the attribute catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")
			adminEmail, _ := cmd.Flags().GetString("admin-email")
			agentEmail, _ := cmd.Flags().GetString("agent-email")

			ctx := cmd.Context()
			pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer pool.Close()

			users := []seedUser{
				{Email: adminEmail, Password: password, FirstName: "Admin", Role: entity.RoleAdmin},
				{Email: agentEmail, Password: password, FirstName: "Agent", Role: entity.RoleAgent},
			}
			store := pginfra.NewStore(pool)
			repos := container.Repos{Users: store.Users, Attributes: store.Attributes}
			if err := seed(ctx, repos, users, cmd.OutOrStdout()); err != nil {
				return err
			}
			log.Info("seed complete")
			return nil
		},
	}
	cmd.Flags().String("admin-email", "admin@example.com", "admin account email")
	cmd.Flags().String("agent-email", "agent@example.com", "agent account email")
	cmd.Flags().String("password", "password123", "password for seeded accounts")
	return cmd
}

// seed is idempotent: existing users keep their password and only get their role set.
func seed(ctx context.Context, r container.Repos, users []seedUser, out io.Writer) error {
	for _, su := range users {
		u, err := seedAccount(ctx, r.Users, su)
		if err != nil {
			return fmt.Errorf("seed %s: %w", su.Email, err)
		}
		fmt.Fprintf(out, "user id=%s email=%s role=%s\n", u.ID, u.Email, u.Role)
	}
	for _, a := range defaultAttributes {
		existing, err := r.Attributes.FindByName(ctx, a.Name)
		if err == nil {
			fmt.Fprintf(out, "attribute %q exists (%s)\n", existing.Name, existing.ID)
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		attr := a
		if _, err := r.Attributes.Save(ctx, &attr); err != nil {
			return fmt.Errorf("seed attribute %s: %w", a.Name, err)
		}
		fmt.Fprintf(out, "attribute %q created (%s)\n", attr.Name, attr.ID)
	}
	return nil
}

func seedAccount(ctx context.Context, users repository.UserRepository, su seedUser) (*entity.User, error) {
	email, err := valueobject.NewEmail(su.Email)
	if err != nil {
		return nil, err
	}
	u, err := users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		hash, err := helpers.HashPassword(su.Password)
		if err != nil {
			return nil, err
		}
		u = entity.NewUser(email, hash, su.FirstName, "")
		u.MarkVerified()
	case err != nil:
		return nil, err
	}
	if err := u.ChangeRole(su.Role); err != nil {
		return nil, err
	}
	return users.Save(ctx, u)
}
