package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/collectionkit/collection"
	"github.com/kbukum/collectionkit/config"
	"github.com/kbukum/collectionkit/observability"
	"github.com/kbukum/collectionkit/version"
)

const serviceName = "collectionkit"

// appConfig is the on-disk configuration of the CLI.
type appConfig struct {
	config.BaseConfig `mapstructure:",squash"`
	Collection        collection.Config    `yaml:"collection" mapstructure:"collection"`
	Observability     observability.Config `yaml:"observability" mapstructure:"observability"`
}

func (c *appConfig) ApplyDefaults() {
	c.BaseConfig.ApplyDefaults()
	c.Collection.ApplyDefaults()
	c.Observability.ApplyDefaults(c.Name)
	if c.Observability.ServiceVersion == "dev" {
		c.Observability.ServiceVersion = version.Get().Short()
	}
}

func (c *appConfig) Validate() error {
	if err := c.BaseConfig.Validate(); err != nil {
		return err
	}
	if err := c.Collection.Validate(); err != nil {
		return err
	}
	return c.Observability.Validate()
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Concurrent collection operations from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: search standard locations)")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(newHashCmd(&configFile), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", serviceName, version.Get())
		},
	}
}
