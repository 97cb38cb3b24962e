package main

import (
	"errors"
	"fmt"
	"time"

	"cattlecloud.net/go/webguard/guard"
	"cattlecloud.net/go/webguard/internal/config"
	"cattlecloud.net/go/webguard/middles"
	"github.com/spf13/cobra"
)

// tokenCommand mints a bearer token for an actor, for exercising the API
// from the command line.
func tokenCommand(load func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generate a bearer token for the given actor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := load()
			if cfg.Bearer.Secret == "" {
				return errors.New("bearer secret is not configured")
			}

			actor, _ := cmd.Flags().GetString("actor")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			signed, err := middles.IssueBearer(
				[]byte(cfg.Bearer.Secret),
				cfg.Bearer.Issuer,
				guard.Actor(actor),
				time.Now(),
				ttl,
			)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), signed)
			return err
		},
	}

	cmd.Flags().String("actor", "", "actor the token is issued to")
	cmd.Flags().Duration("ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("actor")

	return cmd
}
