package cli

import (
	"rentdesk/internal/api"

	"github.com/spf13/cobra"
)

// listFlags is the filter surface shared by every `list` subcommand.
type listFlags struct {
	page     int
	limit    int
	status   string
	subtype  string
	search   string
	featured bool
	sort     string
}

func (f *listFlags) register(cmd *cobra.Command, withSubtype, withFeatured bool) {
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number (1-based)")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Items per page (0 = server default)")
	cmd.Flags().StringVar(&f.status, "status", "", "Filter by lifecycle status")
	cmd.Flags().StringVar(&f.search, "search", "", "Free-text search")
	cmd.Flags().StringVar(&f.sort, "sort", "", "Sort order (server-defined keys)")
	if withSubtype {
		cmd.Flags().StringVar(&f.subtype, "type", "", "Filter by subtype (e.g. rent|sale|shortlet)")
	}
	if withFeatured {
		cmd.Flags().BoolVar(&f.featured, "featured", false, "Only featured listings")
	}
}

func (f *listFlags) filter(pageSize int) api.ListFilter {
	if f.limit > 0 {
		pageSize = f.limit
	}
	lf := api.NewListFilter(pageSize).
		WithStatus(f.status).
		WithSubtype(f.subtype).
		WithSearch(f.search).
		WithFeaturedOnly(f.featured).
		WithSort(f.sort)
	// Page last: the With* setters above deliberately rewind to page 1.
	return lf.WithPage(f.page)
}
