package cli

import (
	"fmt"

	"rentdesk/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit local configuration",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			// Never echo the token; a presence marker is enough for doctoring.
			redacted := *cfg
			if redacted.Token != "" {
				redacted.Token = "(set)"
			}
			path, err := config.Path()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := writeOut(cmd, app, &redacted); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "config file: %s\n", path)
			return err
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	var (
		apiURL   string
		token    string
		timeout  int
		pageSize int
		cacheDir string
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update configuration values and save the file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			if cmd.Flags().Changed("api-url") {
				cfg.APIURL = apiURL
			}
			if cmd.Flags().Changed("token") {
				cfg.Token = token
			}
			if cmd.Flags().Changed("timeout-seconds") {
				cfg.TimeoutSeconds = timeout
			}
			if cmd.Flags().Changed("page-size") {
				cfg.PageSize = pageSize
			}
			if cmd.Flags().Changed("cache-dir") {
				cfg.CacheDir = cacheDir
			}
			if err := config.Save(cfg); err != nil {
				return writeErr(cmd, err)
			}
			path, err := config.Path()
			if err != nil {
				return writeErr(cmd, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
			return err
		},
	}
	cmd.Flags().StringVar(&apiURL, "api-url", "", "Base URL of the admin API")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token")
	cmd.Flags().IntVar(&timeout, "timeout-seconds", 0, "HTTP timeout in seconds")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Default list page size")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Snapshot cache directory")
	return cmd
}
