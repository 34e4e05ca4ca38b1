package schema

import (
	"strings"

	"github.com/hyperline-api/hyperline/internal/resource"
)

// Query parameter names, in the order they appear in href templates.
var listingQueryParams = []string{"filter", "sort", "page", "include"}

// positiveIntPattern matches the string form of a positive integer, the
// only shape accepted for page limits and offsets.
const positiveIntPattern = "^[1-9][0-9]*$"

// queryParams builds the query parameter property schemas for a route and
// the query suffix appended to its href template. Listing routes accept
// filter, sort, page, and include; linkage-mutation routes accept
// nothing; every other route accepts include only.
func (c *compiler) queryParams(res *resource.ResourceDefinition, route resource.RouteDefinition) (Fragment, string, error) {
	switch {
	case route.Kind.IsListing():
		filter, err := c.filterSchema(res)
		if err != nil {
			return nil, "", err
		}
		props := Fragment{
			"filter":  filter,
			"sort":    sortSchema(res),
			"page":    pageSchema(),
			"include": includeSchema(),
		}
		return props, "{?" + strings.Join(listingQueryParams, ",") + "}", nil

	case route.Kind.IsRelationshipMutation():
		return nil, "", nil

	default:
		return Fragment{"include": includeSchema()}, "{?include}", nil
	}
}

// filterSchema builds the filter object for a listing route, keyed by
// every field the resource declares. A field with no definition aborts
// compilation; silently skipping it would publish a filter surface that
// disagrees with the model.
func (c *compiler) filterSchema(res *resource.ResourceDefinition) (Fragment, error) {
	props := Fragment{}
	for _, name := range res.Fields {
		switch res.ClassOf(name) {
		case resource.FieldAttribute:
			pred, err := filterPredicate(res.Type, name, res.Attribute(name).Type)
			if err != nil {
				return nil, err
			}
			props[name] = pred
		case resource.FieldRelationship:
			// Relationship filters are opaque expressions over the
			// destination resource.
			props[name] = Fragment{"type": "string"}
		case resource.FieldAggregate:
			pred, err := filterPredicate(res.Type, name, res.Aggregate(name).ResultType())
			if err != nil {
				return nil, err
			}
			props[name] = pred
		default:
			return nil, NewUnknownField(res.Type, name)
		}
	}
	return Fragment{"type": "object", "properties": props}, nil
}

// filterPredicate maps a field type to the schema of its filter value.
// Arrays accept any predicate, so they map to the empty (wildcard)
// schema. Custom types normalize through typeSchema first, which also
// enforces the one-redirect cap for filters.
func filterPredicate(resourceType, field string, t resource.TypeDescriptor) (Fragment, error) {
	mapped, err := typeSchema(resourceType, field, t)
	if err != nil {
		return nil, err
	}
	if mapped["type"] == "array" {
		return Fragment{}, nil
	}
	return mapped, nil
}

// sortSchema builds the sort parameter schema. The format string
// enumerates every attribute-backed field in declaration order, each in
// ascending and descending ("-" prefixed) form. A resource with no
// sortable field gets a bare string schema; an empty alternation would
// be a pattern nothing satisfies.
func sortSchema(res *resource.ResourceDefinition) Fragment {
	var terms []string
	for _, name := range res.Fields {
		if res.ClassOf(name) != resource.FieldAttribute {
			continue
		}
		terms = append(terms, name, "-"+name)
	}

	schema := Fragment{"type": "string"}
	if len(terms) > 0 {
		schema["format"] = "(" + strings.Join(terms, "|") + "),*"
	}
	return schema
}

// pageSchema builds the pagination parameter schema.
func pageSchema() Fragment {
	return Fragment{
		"type": "object",
		"properties": Fragment{
			"limit":  Fragment{"type": "string", "pattern": positiveIntPattern},
			"offset": Fragment{"type": "string", "pattern": positiveIntPattern},
		},
	}
}

// includeSchema builds the include parameter schema. The format grammar
// is not pinned down yet, so the sentinel "pending" is emitted in its
// place.
func includeSchema() Fragment {
	return Fragment{"type": "string", "format": "pending"}
}
