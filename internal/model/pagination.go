package model

import "encoding/json"

// PaginationMeta is returned by the server on list responses. The client
// never recomputes these when present; ApproxMeta is the fallback for
// responses that omit them.
type PaginationMeta struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

// ApproxMeta computes a local approximation of pagination meta from what the
// client already knows. Used only when the server response carries no meta.
func ApproxMeta(totalItems, page, perPage int) PaginationMeta {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	pages := totalItems / perPage
	if totalItems%perPage != 0 || pages == 0 {
		pages++
	}
	return PaginationMeta{
		CurrentPage:  page,
		TotalPages:   pages,
		TotalItems:   totalItems,
		ItemsPerPage: perPage,
		HasNextPage:  page < pages,
		HasPrevPage:  page > 1,
	}
}

// Envelope is the mutation response shape shared by every write endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ListResponse is the raw list payload; items are decoded per resource.
type ListResponse struct {
	Items      []json.RawMessage `json:"items"`
	Pagination *PaginationMeta   `json:"pagination,omitempty"`
	Summary    json.RawMessage   `json:"summary,omitempty"`
}
