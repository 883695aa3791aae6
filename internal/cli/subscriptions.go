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

func newSubscriptionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subs"},
		Short:   "Browse and manage billing subscriptions",
	}

	cmd.AddCommand(newSubscriptionsListCmd(app))
	cmd.AddCommand(newSubscriptionsShowCmd(app))
	cmd.AddCommand(newSubscriptionsCancelCmd(app))
	cmd.AddCommand(newSubscriptionsRenewCmd(app))
	cmd.AddCommand(newSubscriptionActionCmd(app, "activate", lifecycle.ActionActivate, "Activate a pending or inactive subscription"))

	return cmd
}

func newSubscriptionsListCmd(app *App) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			page, err := sess.client.ListSubscriptions(cmd.Context(), flags.filter(sess.cfg.EffectivePageSize()))
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

func newSubscriptionsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <subscription-id>",
		Short: "Show one subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := sess.client.GetSubscription(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, *s)
		},
	}
}

func newSubscriptionsCancelCmd(app *App) *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "cancel <subscription-id>",
		Short: "Cancel an active subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			ref, err := subscriptionRef(cmd.Context(), sess, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := sess.coord.Dispatch(cmd.Context(), ref, lifecycle.ActionCancel, mutate.Input{Text: reason})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOutcome(cmd, app, out)
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "Optional cancellation reason")
	return cmd
}

func newSubscriptionsRenewCmd(app *App) *cobra.Command {
	var cycle string
	cmd := &cobra.Command{
		Use:   "renew <subscription-id>",
		Short: "Renew a cancelled or expired subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			ref, err := subscriptionRef(cmd.Context(), sess, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := sess.coord.Dispatch(cmd.Context(), ref, lifecycle.ActionRenew, mutate.Input{BillingCycle: model.BillingCycle(cycle)})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOutcome(cmd, app, out)
		},
	}
	cmd.Flags().StringVar(&cycle, "cycle", "", "Billing cycle for the renewed term (monthly|quarterly|yearly; default: keep current)")
	return cmd
}

func newSubscriptionActionCmd(app *App, use string, action lifecycle.Action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <subscription-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			ref, err := subscriptionRef(cmd.Context(), sess, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := sess.coord.Dispatch(cmd.Context(), ref, action, mutate.Input{})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOutcome(cmd, app, out)
		},
	}
}

func subscriptionRef(ctx context.Context, sess *session, id string) (mutate.EntityRef, error) {
	raw, err := sess.client.Client.Get(ctx, model.ResourceSubscriptions, id)
	if err != nil {
		return mutate.EntityRef{}, err
	}
	var s model.Subscription
	if err := json.Unmarshal(raw, &s); err != nil {
		return mutate.EntityRef{}, err
	}
	return mutate.EntityRef{
		Resource: model.ResourceSubscriptions,
		ID:       id,
		Status:   s.Status,
		Subtype:  s.Subtype(),
	}, nil
}
