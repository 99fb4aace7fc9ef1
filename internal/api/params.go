// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

// Request parameter structs. Field names in validation errors come from the
// query tags. Engine-dependent bounds such as the n cap are checked by the
// engine and surface as INVALID_REQUEST.

// defaultSearchLimit is the page size of catalog search.
const defaultSearchLimit = 50

type topProductsParams struct {
	N               int  `query:"n" validate:"gte=0"`
	MinInteractions *int `query:"min_interactions" validate:"omitempty,gte=0"`
}

type recommendationsParams struct {
	UserID   string `query:"user_id" validate:"identifier"`
	Strategy string `query:"strategy" validate:"omitempty,oneof=neighborhood latent"`
	N        int    `query:"n" validate:"gte=0"`
	K        int    `query:"k" validate:"gte=0"`
}

type similarUsersParams struct {
	UserID string `query:"user_id" validate:"identifier"`
	Limit  int    `query:"limit" validate:"gte=0,lte=100"`
}

type searchParams struct {
	Query  string `query:"q" validate:"max=200"`
	Limit  int    `query:"limit" validate:"gte=1,lte=100"`
	Offset int    `query:"offset" validate:"gte=0"`
}

type productParams struct {
	ProductID string `query:"product_id" validate:"identifier"`
}
