package api

import "testing"

func TestParamsOmitEmptyFields(t *testing.T) {
	t.Parallel()

	f := NewListFilter(20)
	v := f.Params()
	if got := v.Get("page"); got != "1" {
		t.Fatalf("page = %q", got)
	}
	if got := v.Get("limit"); got != "20" {
		t.Fatalf("limit = %q", got)
	}
	for _, k := range []string{"status", "type", "search", "featured", "sort"} {
		if _, ok := v[k]; ok {
			t.Fatalf("empty filter must omit %q, got %q", k, v.Get(k))
		}
	}
}

func TestParamsTrimSearch(t *testing.T) {
	t.Parallel()

	v := NewListFilter(0).WithSearch("  lagos  ").Params()
	if got := v.Get("search"); got != "lagos" {
		t.Fatalf("search = %q, want trimmed", got)
	}
	v = NewListFilter(0).WithSearch("   ").Params()
	if _, ok := v["search"]; ok {
		t.Fatal("whitespace-only search must be omitted")
	}
}

// Changing any filter field resets the page to 1; changing the page leaves
// the filters alone.
func TestFilterChangeResetsPage(t *testing.T) {
	t.Parallel()

	base := NewListFilter(20).WithStatus("pending").WithPage(3)
	if base.Page() != 3 {
		t.Fatalf("page = %d, want 3", base.Page())
	}

	changed := []ListFilter{
		base.WithStatus("active"),
		base.WithSubtype("sale"),
		base.WithSearch("deed"),
		base.WithFeaturedOnly(true),
		base.WithSort("createdAt"),
	}
	for i, f := range changed {
		if f.Page() != 1 {
			t.Fatalf("case %d: filter change should reset page, got %d", i, f.Page())
		}
	}

	paged := base.WithPage(4)
	if paged.Status() != "pending" {
		t.Fatalf("page change must not alter filters, status = %q", paged.Status())
	}
	if paged.Page() != 4 {
		t.Fatalf("page = %d, want 4", paged.Page())
	}
}

func TestWithPageClampsToOne(t *testing.T) {
	t.Parallel()

	if got := NewListFilter(0).WithPage(0).Page(); got != 1 {
		t.Fatalf("page = %d, want 1", got)
	}
}
