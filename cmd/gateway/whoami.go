package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/testdeck/session-gateway/internal/utils"
	"github.com/testdeck/session-gateway/session"
)

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity behind the persisted credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(cmd.Context())
		},
	}
}

func runWhoami(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "[runWhoami] loadConfig")
	}

	store, err := credentialStore(cfg)
	if err != nil {
		return errors.Wrap(err, "[runWhoami] credentialStore")
	}

	api, err := backendClient(cfg)
	if err != nil {
		return errors.Wrap(err, "[runWhoami] backendClient")
	}

	sess, err := session.New(store, api)
	if err != nil {
		return errors.Wrap(err, "[runWhoami] session.New")
	}

	if err := sess.Bootstrap(ctx); err != nil {
		return errors.Wrap(err, "[runWhoami] bootstrap")
	}

	if !sess.IsAuthenticated() {
		return errors.New("not logged in (token missing, expired, or rejected)")
	}

	user := sess.User()
	fmt.Printf("%s %s <%s>\n", user.FirstName, user.LastName, user.Email)
	if user.IsSuperuser {
		fmt.Println("Superuser: yes")
	}
	if company := utils.Value(user.Company); company.Name != "" {
		fmt.Printf("Company: %s\n", company.Name)
	}
	if roles := sess.Gate().Roles().Strings(); len(roles) > 0 {
		fmt.Printf("Roles: %s\n", strings.Join(roles, ", "))
	}
	if id, ok := sess.SelectedProjectID(); ok {
		fmt.Printf("Selected project: %d\n", id)
	}
	return nil
}
