// Package cli provides the command-line interface for swatch.
package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/logging"
	"github.com/jmylchreest/swatch/internal/version"
)

// rootOptions holds the persistent flags shared by all commands.
type rootOptions struct {
	verbose bool
	quiet   bool
	logJSON bool
}

// logger builds the command logger, writing to the command's error stream.
func (o *rootOptions) logger(cmd *cobra.Command) hclog.Logger {
	return logging.New(logging.Options{
		Name:    "swatch",
		Verbose: o.verbose,
		Quiet:   o.quiet,
		JSON:    o.logJSON,
		Output:  cmd.ErrOrStderr(),
	})
}

// NewRootCmd builds the swatch command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "swatch",
		Short: "Extract dominant colour palettes from images",
		Long: `swatch samples the pixels of an image, clusters them with k-means and
prints the dominant colours with hex, RGB and CMYK encodings and the share
of the image each colour covers.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "write log lines as JSON")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd(opts))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
