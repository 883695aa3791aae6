package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"rentdesk/internal/format"
	"rentdesk/internal/model"
	"rentdesk/internal/mutate"
	"rentdesk/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	APIURL     string
	Token      string
	Format     string
	PrettyJSON bool
	Cached     bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "rentdesk",
		Short:        "Rentdesk marketplace admin console (TUI + CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive console
  rentdesk

  # Scriptable commands
  rentdesk properties list --status pending
  rentdesk properties approve prop-42
  rentdesk properties reject prop-42 --reason "Missing title deed"
  rentdesk subscriptions cancel sub-7
  rentdesk users suspend user-3 --reason "Chargeback abuse"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive console.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", envOr("RENTDESK_API_URL", ""), "Base URL of the admin API (overrides config file)")
	cmd.PersistentFlags().StringVar(&app.Token, "token", envOr("RENTDESK_TOKEN", ""), "Bearer token (overrides config file)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("RENTDESK_FORMAT", "table"), "Output format (table|json|edn)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVar(&app.Cached, "cached", false, "Serve reads from the local snapshot cache without touching the network")

	cmd.AddCommand(newPropertiesCmd(app))
	cmd.AddCommand(newSubscriptionsCmd(app))
	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

func runTUI(app *App) error {
	sess, err := newSession(app)
	if err != nil {
		return err
	}
	return tui.Run(sess.TUIDeps())
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

// writeFooter appends the pagination line below a table. JSON output carries
// the meta object instead, so the footer is table-only.
func writeFooter(cmd *cobra.Command, app *App, meta model.PaginationMeta) error {
	if app.Format != "" && app.Format != "table" {
		return nil
	}
	format.WritePageFooter(cmd.OutOrStdout(), meta)
	return nil
}

func writeOutcome(cmd *cobra.Command, app *App, out mutate.Outcome) error {
	if app.Format == "json" || app.Format == "edn" {
		payload := map[string]any{"message": out.Message}
		if len(out.Data) > 0 {
			payload["data"] = json.RawMessage(out.Data)
		}
		return writeOut(cmd, app, payload)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), out.Message)
	return err
}
