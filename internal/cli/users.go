package cli

import (
	"context"
	"encoding/json"
	"strings"

	"rentdesk/internal/lifecycle"
	"rentdesk/internal/model"
	"rentdesk/internal/mutate"

	"github.com/spf13/cobra"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Browse and moderate user accounts",
	}

	cmd.AddCommand(newUsersListCmd(app))
	cmd.AddCommand(newUsersShowCmd(app))
	cmd.AddCommand(newUserActionCmd(app, "activate", lifecycle.ActionActivate, "Activate (or reinstate) an account", false))
	cmd.AddCommand(newUserActionCmd(app, "reject", lifecycle.ActionReject, "Reject a pending account (requires --reason)", true))
	cmd.AddCommand(newUserActionCmd(app, "suspend", lifecycle.ActionSuspend, "Suspend an account (requires --reason)", true))
	cmd.AddCommand(newUserActionCmd(app, "ban", lifecycle.ActionBan, "Ban an account (requires --reason)", true))

	return cmd
}

func newUsersListCmd(app *App) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			page, err := sess.client.ListUsers(cmd.Context(), flags.filter(sess.cfg.EffectivePageSize()))
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := writeOut(cmd, app, page.Items); err != nil {
				return err
			}
			return writeFooter(cmd, app, page.Meta)
		},
	}
	flags.register(cmd, false, false)
	return cmd
}

func newUsersShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <user-id>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			u, err := sess.client.GetUser(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, *u)
		},
	}
}

func newUserActionCmd(app *App, use string, action lifecycle.Action, short string, takesReason bool) *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   use + " <user-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			ref, err := userRef(cmd.Context(), sess, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := sess.coord.Dispatch(cmd.Context(), ref, action, mutate.Input{Text: reason})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOutcome(cmd, app, out)
		},
	}
	if takesReason {
		cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded with the change")
	}
	return cmd
}

func userRef(ctx context.Context, sess *session, id string) (mutate.EntityRef, error) {
	raw, err := sess.client.Client.Get(ctx, model.ResourceUsers, id)
	if err != nil {
		return mutate.EntityRef{}, err
	}
	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return mutate.EntityRef{}, err
	}
	return mutate.EntityRef{
		Resource: model.ResourceUsers,
		ID:       id,
		Status:   u.Status,
		Subtype:  u.Subtype(),
	}, nil
}
