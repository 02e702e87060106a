package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/testdeck/session-gateway/tokens"
)

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove persisted credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout()
		},
	}
}

func runLogout() error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "[runLogout] loadConfig")
	}

	store, err := credentialStore(cfg)
	if err != nil {
		return errors.Wrap(err, "[runLogout] credentialStore")
	}

	for _, key := range []string{tokens.KeyAccessToken, tokens.KeyRefreshToken, tokens.KeySelectedProjectID} {
		if err := store.Delete(key); err != nil {
			return errors.Wrapf(err, "[runLogout] delete %s", key)
		}
	}

	fmt.Println("Logged out")
	return nil
}
