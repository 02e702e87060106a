package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/testdeck/session-gateway/session"
)

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange credentials for tokens and persist them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), email, password)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func runLogin(ctx context.Context, email, password string) error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "[runLogin] loadConfig")
	}

	store, err := credentialStore(cfg)
	if err != nil {
		return errors.Wrap(err, "[runLogin] credentialStore")
	}

	api, err := backendClient(cfg)
	if err != nil {
		return errors.Wrap(err, "[runLogin] backendClient")
	}

	sess, err := session.New(store, api)
	if err != nil {
		return errors.Wrap(err, "[runLogin] session.New")
	}

	if err := sess.Login(ctx, email, password); err != nil {
		return errors.Wrap(err, "[runLogin] login")
	}

	user := sess.User()
	fmt.Printf("Logged in as %s %s <%s>\n", user.FirstName, user.LastName, user.Email)
	if roles := sess.Gate().Roles().Strings(); len(roles) > 0 {
		fmt.Printf("Roles: %s\n", strings.Join(roles, ", "))
	}
	return nil
}
