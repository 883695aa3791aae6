package cli

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"rentdesk/internal/lifecycle"
	"rentdesk/internal/model"
	"rentdesk/internal/mutate"

	"github.com/spf13/cobra"
)

func newPropertiesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "properties",
		Aliases: []string{"props"},
		Short:   "Browse and moderate property listings",
	}

	cmd.AddCommand(newPropertiesListCmd(app))
	cmd.AddCommand(newPropertiesShowCmd(app))
	cmd.AddCommand(newPropertyActionCmd(app, "approve", lifecycle.ActionApprove, "Approve a pending listing"))
	cmd.AddCommand(newPropertyActionCmd(app, "reject", lifecycle.ActionReject, "Reject a pending listing (requires --reason)"))
	cmd.AddCommand(newPropertyActionCmd(app, "activate", lifecycle.ActionActivate, "Reactivate a listing"))
	cmd.AddCommand(newPropertyActionCmd(app, "deactivate", lifecycle.ActionDeactivate, "Take a listing off the market"))
	cmd.AddCommand(newPropertyActionCmd(app, "archive", lifecycle.ActionArchive, "Archive a listing"))
	cmd.AddCommand(newPropertyActionCmd(app, "repend", lifecycle.ActionMarkPending, "Return a listing to the moderation queue"))
	cmd.AddCommand(newPropertyActionCmd(app, "sold", lifecycle.ActionMarkSold, "Mark a sale listing as sold"))
	cmd.AddCommand(newPropertyActionCmd(app, "rented", lifecycle.ActionMarkRented, "Mark a rent/shortlet listing as rented"))
	cmd.AddCommand(newPropertiesFeatureCmd(app))

	return cmd
}

func newPropertiesListCmd(app *App) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List property listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			page, err := sess.client.ListProperties(cmd.Context(), flags.filter(sess.cfg.EffectivePageSize()))
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := writeOut(cmd, app, page.Items); err != nil {
				return err
			}
			return writeFooter(cmd, app, page.Meta)
		},
	}
	flags.register(cmd, true, true)
	return cmd
}

func newPropertiesShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <property-id>",
		Short: "Show one listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := sess.client.GetProperty(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, *p)
		},
	}
	return cmd
}

// newPropertyActionCmd builds one status-changing subcommand. All of them
// share the fetch-check-dispatch shape; only the action differs.
func newPropertyActionCmd(app *App, use string, action lifecycle.Action, short string) *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   use + " <property-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			ref, err := propertyRef(cmd.Context(), sess, id)
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
	cmd.Flags().StringVar(&reason, "reason", "", "Reason or note to attach to the change")
	return cmd
}

func newPropertiesFeatureCmd(app *App) *cobra.Command {
	var off bool
	var until string
	cmd := &cobra.Command{
		Use:   "feature <property-id>",
		Short: "Feature a listing (or clear the flag with --off)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			ref, err := propertyRef(cmd.Context(), sess, id)
			if err != nil {
				return writeErr(cmd, err)
			}

			input := mutate.Input{Featured: !off}
			if until != "" {
				t, err := time.Parse("2006-01-02", until)
				if err != nil {
					return writeErr(cmd, err)
				}
				input.FeaturedUntil = &t
			}
			out, err := sess.coord.Dispatch(cmd.Context(), ref, lifecycle.ActionSetFeatured, input)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOutcome(cmd, app, out)
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "Clear the featured flag instead of setting it")
	cmd.Flags().StringVar(&until, "until", "", "Feature expiry date (YYYY-MM-DD)")
	return cmd
}

// propertyRef fetches the listing over the network so the transition check
// runs against current status, not a stale snapshot.
func propertyRef(ctx context.Context, sess *session, id string) (mutate.EntityRef, error) {
	raw, err := sess.client.Client.Get(ctx, model.ResourceProperties, id)
	if err != nil {
		return mutate.EntityRef{}, err
	}
	var p model.Property
	if err := json.Unmarshal(raw, &p); err != nil {
		return mutate.EntityRef{}, err
	}
	return mutate.EntityRef{
		Resource: model.ResourceProperties,
		ID:       id,
		Status:   p.Status,
		Subtype:  p.Subtype(),
	}, nil
}
