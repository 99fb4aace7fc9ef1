// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package catalog

import (
	"fmt"
	"strings"
)

// User is a user id with a display name.
type User struct {
	ID   string `json:"user_id"`
	Name string `json:"name"`
}

// Directory maps user ids to display names.
type Directory struct {
	names map[string]string
}

// NewDirectory builds a directory. Blank names are skipped.
func NewDirectory(users []User) *Directory {
	d := &Directory{names: make(map[string]string, len(users))}
	for _, u := range users {
		if name := strings.TrimSpace(u.Name); name != "" {
			d.names[u.ID] = name
		}
	}
	return d
}

// Len returns the number of named users.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}

// DisplayName returns the name for id, or id itself when unknown.
func (d *Directory) DisplayName(id string) string {
	if d != nil {
		if name, ok := d.names[id]; ok {
			return name
		}
	}
	return id
}

// FormatPrice formats a price in cents as dollars, e.g. 1234 -> "$12.34".
func FormatPrice(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s$%d.%02d", sign, minor/100, minor%100)
}
