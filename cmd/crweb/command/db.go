// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/car-rental/pkg/core/usecase/schemauc"
	"github.com/spf13/cobra"
)

const credsRenewalMessage = `
The database passwords of the admin and normal roles are renewed and
stored in the .pgpass.new file of the configured pass-dir first. The
new file replaces the .pgpass file after a successful initialization.`

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used.`,
}

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development data",
	Long: `Initialize database contents with sample cars, locations, and
bookings which are suitable for a development environment.
` + credsRenewalMessage + `

The crwebX schema (X being the configured database major version) is
dropped and created again, so all of its existing data will be lost.`,
	RunE: initDB((*schemauc.UseCase).InitDev),
	Args: cobra.NoArgs,
}

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize the database tables without any sample records,
for the database schema version which is specified in the configuration
file. No changes will be made to the config file itself.
` + credsRenewalMessage,
	RunE: initDB((*schemauc.UseCase).InitProd),
	Args: cobra.NoArgs,
}

func initDB(
	action func(*schemauc.UseCase, context.Context) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		if err = action(schemauc.New(c), cmd.Context()); err != nil {
			return fmt.Errorf("%s: %w", cmd.Name(), err)
		}
		return nil
	}
}

func init() {
	dbCmd.AddCommand(initDevCmd)
	dbCmd.AddCommand(initProdCmd)
	rootCmd.AddCommand(dbCmd)
}
