package server

import (
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"github.com/rshade/orgboard/internal/orgs"
)

// CursorType is the opaque pagination cursor scalar.
var CursorType = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Cursor",
	Description: "Opaque position of a node in a connection.",
	Serialize: func(value interface{}) interface{} {
		if s, ok := value.(string); ok && s != "" {
			return s
		}
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		if s, ok := value.(string); ok {
			return s
		}
		return nil
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		if v, ok := valueAST.(*ast.StringValue); ok {
			return v.Value
		}
		return nil
	},
})

// SortDirectionType orders a sort field.
var SortDirectionType = graphql.NewEnum(graphql.EnumConfig{
	Name: "SortDirection",
	Values: graphql.EnumValueConfigMap{
		string(orgs.SortAsc):  &graphql.EnumValueConfig{Value: string(orgs.SortAsc)},
		string(orgs.SortDesc): &graphql.EnumValueConfig{Value: string(orgs.SortDesc)},
	},
})

// SortInputType selects exactly one field to sort by.
var SortInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name:   "OrganisationConnectionSort",
	Fields: sortInputFields(),
})

func sortInputFields() graphql.InputObjectConfigFieldMap {
	fields := graphql.InputObjectConfigFieldMap{}
	for _, f := range orgs.SortFields() {
		fields[string(f)] = &graphql.InputObjectFieldConfig{Type: SortDirectionType}
	}
	return fields
}

// DateRangeInputType bounds a timestamp; bounds are RFC 3339 or YYYY-MM-DD.
var DateRangeInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "DateRangeInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"from": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"to":   &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

// FilterInputType constrains the organisations listed.
var FilterInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrganisationConnectionFilter",
	Fields: graphql.InputObjectConfigFieldMap{
		orgs.FilterKit:       &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		orgs.FilterCreatedAt: &graphql.InputObjectFieldConfig{Type: DateRangeInputType},
		orgs.FilterProfile:   &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
	},
})

// ProfileType is an organisation's self-declared profile.
var ProfileType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Profile",
	Fields: graphql.Fields{
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"icon":        &graphql.Field{Type: graphql.String},
		"links":       &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
	},
})

// OrganisationType is one organisation.
var OrganisationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Organisation",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"address":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"ens":       &graphql.Field{Type: graphql.String},
		"kit":       &graphql.Field{Type: graphql.String},
		"createdAt": &graphql.Field{Type: graphql.String},
		"aum":       &graphql.Field{Type: graphql.Float},
		"activity":  &graphql.Field{Type: graphql.Int},
		"score":     &graphql.Field{Type: graphql.Float},
		"profile":   &graphql.Field{Type: ProfileType},
	},
})

// PageInfoType bounds a page of a connection.
var PageInfoType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PageInfo",
	Fields: graphql.Fields{
		"startCursor":     &graphql.Field{Type: CursorType},
		"endCursor":       &graphql.Field{Type: CursorType},
		"hasPreviousPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"hasNextPage":     &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

// ConnectionType is one page of organisations with totals over every match.
// Totals are floats because aggregate amounts overflow a 32-bit GraphQL Int.
var ConnectionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrganisationConnection",
	Fields: graphql.Fields{
		"nodes":         &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(OrganisationType)))},
		"pageInfo":      &graphql.Field{Type: graphql.NewNonNull(PageInfoType)},
		"totalCount":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"totalAUM":      &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"totalActivity": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

// NewSchema builds the schema with r resolving the organisations query.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"organisations": &graphql.Field{
				Type: graphql.NewNonNull(ConnectionType),
				Args: graphql.FieldConfigArgument{
					"before": &graphql.ArgumentConfig{Type: CursorType},
					"after":  &graphql.ArgumentConfig{Type: CursorType},
					"sort":   &graphql.ArgumentConfig{Type: SortInputType},
					"filter": &graphql.ArgumentConfig{Type: FilterInputType},
				},
				Resolve: r.ResolveOrganisations,
			},
		},
	})
	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}
