// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package hooks provides client-side result hooks that run on the
// events.TransformResult event: row filtering (--filter) and ordering
// (--sort). They only act on list results; other shapes pass through.
//
// Filters are key-operator-target expressions joined by a delimiter (default
// comma, override with AZPIPE_FILTER_DELIM). Keys are dot paths into each
// row, such as "properties.provisioningState". Operators:
//
//   - = : exact match (negate with !=)
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than (numeric when both sides are numbers)
//   - > : greater than (numeric when both sides are numbers)
//   - @ : contains, substring for strings and membership for lists/maps
//   - / : regular expression match
//
// Examples:
//
//   - "location=westus"
//   - "type^Microsoft.Compute/"
//   - "name!~VM1"
//   - "tags.env=prod,properties.sizeGb>100"
//
// Sort specs are comma-separated keys; a leading "-" sorts descending and a
// leading "!" compares strings case-sensitively.
package hooks
