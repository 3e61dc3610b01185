// Package configcmder provides the config command for managing persistent
// rocksolid configuration stored in the .rocksolid/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent rocksolid configuration.

Configuration is stored as config.toml in the .rocksolid/ directory and
provides default values for command flags. CLI flags and ROCKSOLID_*
environment variables take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  sources.exercise_url, sources.yoga_base,
  storage.driver, storage.sqlite_path, storage.postgres_dsn,
  storage.firestore_project,
  api.listen, client.api_target, search.limit,
  eventstream.kafka_brokers, eventstream.kafka_topic

Use subcommands to get, set, or list configuration values:
  rocksolid config set <key> <value>    Set a configuration value
  rocksolid config get <key>            Get a configuration value
  rocksolid config list                 List all configuration values

Examples:
  rocksolid config set storage.driver postgres
  rocksolid config set eventstream.kafka_brokers kafka-1:9092,kafka-2:9092
  rocksolid config get client.api_target
  rocksolid config list`

const configShortDesc string = "Manage persistent rocksolid configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
