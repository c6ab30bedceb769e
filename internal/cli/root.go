package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/course-home-api/pkg/config"
)

// Options holds the dependencies commands resolve at run time.
type Options struct {
	LoadConfig func() (*config.Config, error)
	Now        func() time.Time

	outputFormat string
}

// NewRootCmd builds the coursehome-cli command tree.
func NewRootCmd(opts *Options) *cobra.Command {
	if opts == nil {
		opts = &Options{}
	}
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.Load
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	rootCmd := &cobra.Command{
		Use:   "coursehome-cli",
		Short: "Course home operator tooling",
		Long: `coursehome-cli evaluates the learning assistant and outline alert
rules offline, mints development access tokens and purges cached course data.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.outputFormat {
			case "json", "yaml":
				return nil
			}
			return fmt.Errorf("unsupported output format %q (want json or yaml)", opts.outputFormat)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.outputFormat, "output", "o", "json", "output format: json, yaml")

	rootCmd.AddCommand(newChatVisibilityCmd(opts))
	rootCmd.AddCommand(newOutlineAlertCmd(opts))
	rootCmd.AddCommand(newTokenCmd(opts))
	rootCmd.AddCommand(newPurgeCacheCmd(opts))
	return rootCmd
}

// Execute runs the CLI with default options.
func Execute() error {
	return NewRootCmd(nil).Execute()
}
