// Package orgs defines the organisation listing domain: the records returned by the
// organisations connection, the sort, filter and pagination inputs that parameterise it,
// and the GraphQL variable bindings built from those inputs.
//
// Sort fields and filter kinds are closed enumerations. Free-form values coming from
// flags or config are parsed into them at the edge (ParseSortField, ParseSortSpec,
// KitByLabel) so the rest of the program only handles known values.
package orgs
