// Package cli wires dtop's cobra command surface to the config loader and
// the dashboard runner. Grounded on internal/cli/root.go + commands.go's
// command registration pattern.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	hostFlag   []string
	filterFlag []string
	allFlag    bool
	iconsFlag  string
	sortFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "dtop",
	Short: "A terminal dashboard for Docker containers across local and remote daemons",
	Long: `dtop is a live terminal dashboard for Docker containers across one or
more daemons reachable over a local socket, tcp, tls, or ssh.

Running dtop with no subcommand starts the dashboard.

Examples:
  dtop
  dtop --host local --host ssh://build-box
  dtop -f label=env=prod -a`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(dashboardOptions{
			hosts:      hostFlag,
			hostsSet:   cmd.Flags().Changed("host"),
			filters:    filterFlag,
			sort:       sortFlag,
			sortSet:    cmd.Flags().Changed("sort"),
			icons:      iconsFlag,
			iconsSet:   cmd.Flags().Changed("icons"),
			all:        allFlag,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&hostFlag, "host", "H", nil,
		"target host (repeatable): local | tcp://host:port | tls://host:port | ssh://[user@]host[:port]")
	rootCmd.PersistentFlags().StringArrayVarP(&filterFlag, "filter", "f", nil,
		"listing filter key=value (repeatable), applied to all hosts")
	rootCmd.PersistentFlags().BoolVarP(&allFlag, "all", "a", false, "show stopped containers (one-way enable)")
	rootCmd.PersistentFlags().StringVarP(&iconsFlag, "icons", "i", "", "icon set: unicode | nerd")
	rootCmd.PersistentFlags().StringVarP(&sortFlag, "sort", "s", "", "sort field: uptime | name | cpu | memory (synonyms u|n|c|m)")
}

// Execute runs the root command; main calls this and translates the result
// into a process exit code.
func Execute() error {
	return rootCmd.Execute()
}
