package schema

import (
	"github.com/hyperline-api/hyperline/internal/resource"
)

// responseSchema builds the outbound payload schema for a route. Every
// response is a oneOf between the success shape and the shared errors
// document.
func (c *compiler) responseSchema(res *resource.ResourceDefinition, route resource.RouteDefinition) (Fragment, error) {
	switch {
	case route.Kind.IsListing():
		return Fragment{
			"oneOf": []any{
				Fragment{
					"properties": Fragment{
						"data": Fragment{
							"type":        "array",
							"items":       definitionRef(res.Type),
							"uniqueItems": true,
						},
					},
				},
				definitionRef("errors"),
			},
		}, nil

	case route.Kind == resource.RouteDelete:
		// A successful deletion has no body, expressed as an explicit
		// null schema branch.
		return Fragment{
			"oneOf": []any{
				Fragment{"type": "null"},
				definitionRef("errors"),
			},
		}, nil

	case route.Kind.IsRelationshipMutation():
		// Linkage mutations echo the linkage they were sent, so request
		// and response share one schema.
		return c.linkageMutationSchema(res, route)

	default:
		return Fragment{
			"oneOf": []any{
				Fragment{"properties": Fragment{"data": definitionRef(res.Type)}},
				definitionRef("errors"),
			},
		}, nil
	}
}

// definitionRef returns a $ref into the document's definitions.
func definitionRef(name string) Fragment {
	return Fragment{"$ref": "#/definitions/" + name}
}
