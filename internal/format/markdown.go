package format

import (
	"fmt"
	"strings"
	"time"

	"rentdesk/internal/model"
)

// PropertyMarkdown builds the markdown body the detail pane renders for a
// listing. Optional fields are omitted rather than printed blank.
func PropertyMarkdown(p model.Property) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", mdEscape(p.Title))
	row(&b, "ID", p.ID)
	row(&b, "Type", string(p.ListingType))
	row(&b, "Status", string(p.Status))
	row(&b, "Price", model.FormatAmount(p.Price))
	row(&b, "City", p.City)
	row(&b, "Owner", p.OwnerID)
	if p.Featured {
		until := "no expiry"
		if p.FeaturedUntil != nil {
			until = p.FeaturedUntil.Format("2006-01-02")
		}
		row(&b, "Featured", "yes (until "+until+")")
	}
	row(&b, "Created", stamp(p.CreatedAt))
	row(&b, "Updated", stamp(p.UpdatedAt))
	if p.RejectionReason != "" {
		fmt.Fprintf(&b, "\n## Rejection reason\n\n%s\n", mdEscape(p.RejectionReason))
	}
	if p.ModerationNotes != "" {
		fmt.Fprintf(&b, "\n## Moderation notes\n\n%s\n", mdEscape(p.ModerationNotes))
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "\n## Description\n\n%s\n", p.Description)
	}
	return b.String()
}

func SubscriptionMarkdown(s model.Subscription) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", mdEscape(s.Plan))
	row(&b, "ID", s.ID)
	row(&b, "User", s.UserID)
	row(&b, "Cycle", string(s.BillingCycle))
	row(&b, "Status", string(s.Status))
	row(&b, "Amount", model.FormatAmount(s.Amount))
	if s.AutoRenew {
		row(&b, "Auto-renew", "on")
	} else {
		row(&b, "Auto-renew", "off")
	}
	if s.CurrentPeriodEnd != nil {
		row(&b, "Period end", s.CurrentPeriodEnd.Format("2006-01-02"))
	}
	row(&b, "Created", stamp(s.CreatedAt))
	if s.CancellationReason != "" {
		fmt.Fprintf(&b, "\n## Cancellation reason\n\n%s\n", mdEscape(s.CancellationReason))
	}
	return b.String()
}

func UserMarkdown(u model.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", mdEscape(u.Name))
	row(&b, "ID", u.ID)
	row(&b, "Email", u.Email)
	row(&b, "Role", string(u.Role))
	row(&b, "Status", string(u.Status))
	row(&b, "Verified", yesNo(u.Verified))
	row(&b, "Created", stamp(u.CreatedAt))
	if u.SuspensionReason != "" {
		fmt.Fprintf(&b, "\n## Suspension reason\n\n%s\n", mdEscape(u.SuspensionReason))
	}
	if u.ModerationNotes != "" {
		fmt.Fprintf(&b, "\n## Moderation notes\n\n%s\n", mdEscape(u.ModerationNotes))
	}
	return b.String()
}

func row(b *strings.Builder, label, val string) {
	if val == "" {
		return
	}
	fmt.Fprintf(b, "- **%s:** %s\n", label, mdEscape(val))
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

// mdEscape keeps server-supplied text from being parsed as markdown
// structure inside the rendered pane.
func mdEscape(s string) string {
	r := strings.NewReplacer("*", "\\*", "_", "\\_", "`", "\\`", "#", "\\#", "\n", " ")
	return r.Replace(s)
}
