// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package inventory serves resource lookups from a local JSON export of
// Azure resources, the shape returned by ARM list calls: either a bare array
// or an object with a "value" array.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/azpipe/azpipe/internal/log"
	"github.com/azpipe/azpipe/internal/namespace"
	"github.com/azpipe/azpipe/internal/result"
)

var (
	// ErrBadDocument is returned when the input is not a resource document.
	ErrBadDocument = errors.New("not a resource document")

	// ErrMissingArgument is returned by Show without --ids or --name.
	ErrMissingArgument = errors.New("either --ids or --name is required")
)

// NotFoundError reports a lookup that matched no resource.
type NotFoundError struct {
	ID            string
	Name          string
	ResourceGroup string
}

func (e *NotFoundError) Error() string {
	switch {
	case e.ID != "":
		return fmt.Sprintf("resource %q not found", e.ID)
	case e.ResourceGroup != "":
		return fmt.Sprintf("resource %q not found in resource group %q", e.Name, e.ResourceGroup)
	default:
		return fmt.Sprintf("resource %q not found", e.Name)
	}
}

// Inventory is a loaded resource document.
type Inventory struct {
	Source    string
	Resources []any
}

// LoadFile reads the document at path. "-" reads stdin.
func LoadFile(path string) (*Inventory, error) {
	if path == "" || path == "-" {
		inv, err := Load(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		inv.Source = "-"
		return inv, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	inv, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	inv.Source = path
	return inv, nil
}

// Load parses a resource document. Non-object entries are skipped.
func Load(r io.Reader) (*Inventory, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(raw) {
		return nil, result.ErrInvalidJSON
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		doc = doc.Get("value")
		if !doc.IsArray() {
			return nil, ErrBadDocument
		}
	}

	inv := &Inventory{Resources: []any{}}
	for i, value := range doc.Array() {
		if !value.IsObject() {
			log.Warnf("inventory: skipping entry %d, not an object", i)
			continue
		}
		inv.Resources = append(inv.Resources, result.FromGJSON(value))
	}

	log.Debugf("inventory: loaded %d resources", len(inv.Resources))
	return inv, nil
}

// Show returns one resource, looked up by the "ids" field or by "name" and
// the optional "resource_group". Names and ids compare case-insensitively.
func (inv *Inventory) Show(_ context.Context, ns namespace.Namespace) (any, error) {
	if id := ns.String("ids"); id != "" {
		for _, res := range inv.Resources {
			if strings.EqualFold(field(res, "id"), id) {
				return res, nil
			}
		}
		return nil, &NotFoundError{ID: id}
	}

	name := ns.String("name")
	if name == "" {
		return nil, ErrMissingArgument
	}
	group := ns.String("resource_group")

	var matches []any
	for _, res := range inv.Resources {
		if !strings.EqualFold(field(res, "name"), name) {
			continue
		}
		if group != "" && !strings.EqualFold(ResourceGroup(res), group) {
			continue
		}
		matches = append(matches, res)
	}

	switch len(matches) {
	case 0:
		return nil, &NotFoundError{Name: name, ResourceGroup: group}
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%d resources named %q, use --resource-group or --ids", len(matches), name)
	}
}

// List returns every resource, or those in the "resource_group" field when
// it is set.
func (inv *Inventory) List(_ context.Context, ns namespace.Namespace) (any, error) {
	group := ns.String("resource_group")

	out := []any{}
	for _, res := range inv.Resources {
		if group == "" || strings.EqualFold(ResourceGroup(res), group) {
			out = append(out, res)
		}
	}
	return out, nil
}

// ResourceGroup returns the resource group of res from its resourceGroup
// field, falling back to the resourceGroups segment of its id.
func ResourceGroup(res any) string {
	if rg := field(res, "resourceGroup"); rg != "" {
		return rg
	}

	parts := strings.Split(field(res, "id"), "/")
	for i, p := range parts {
		if strings.EqualFold(p, "resourceGroups") && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

// field returns a top-level string field of res or "".
func field(res any, key string) string {
	v, ok := result.Drill(res, key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
