// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"
	"time"

	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/spf13/cobra"
)

var (
	tokenUser string
	tokenRole string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the REST API",
	Long: `Issue an HS256 signed bearer token for the given user id and
role, using the key file and token-ttl of the auth section.
The token is printed on the standard output.`,
	RunE: issueToken,
	Args: cobra.NoArgs,
}

func issueToken(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	role, err := model.ParseRole(tokenRole)
	if err != nil {
		return fmt.Errorf("role: %w", err)
	}
	a, err := c.Auth.NewAuthenticator()
	if err != nil {
		return fmt.Errorf("creating authenticator: %w", err)
	}
	tok, err := a.Sign(
		model.Caller{UserID: tokenUser, Role: role},
		time.Duration(*c.Auth.TokenTTL),
	)
	if err != nil {
		return fmt.Errorf("signing token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenUser, "user", "u", "", "user id")
	tokenCmd.Flags().StringVarP(
		&tokenRole, "role", "r", "customer",
		"customer, driver, admin, or super-admin",
	)
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}
