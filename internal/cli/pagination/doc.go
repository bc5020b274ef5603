// Package pagination provides the cursor pagination flags of the orgs command.
//
// This package contains the pagination logic shared by the plain and JSON renderers:
//   - Params: --after/--before flag values and their validation
//   - Meta: the cursors and hints describing where a page sits in the listing
//
// Cursors are opaque; the server that issued them decides what they point at.
package pagination
