package schema

import (
	"github.com/hyperline-api/hyperline/internal/resource"
)

// resourceDefinition compiles the canonical object schema a resource is
// referenced by throughout the document. Attributes and aggregates become
// typed properties under "attributes"; relationships become linkage
// objects under "relationships"; non-nullable attributes are required.
func (c *compiler) resourceDefinition(res *resource.ResourceDefinition) (Fragment, error) {
	attrProps := Fragment{}
	var required []string
	relProps := Fragment{}

	for _, name := range res.Fields {
		switch res.ClassOf(name) {
		case resource.FieldAttribute:
			attr := res.Attribute(name)
			mapped, err := typeSchema(res.Type, name, attr.Type)
			if err != nil {
				return nil, err
			}
			attrProps[name] = mapped
			if !attr.Nullable {
				required = append(required, name)
			}
		case resource.FieldAggregate:
			mapped, err := typeSchema(res.Type, name, res.Aggregate(name).ResultType())
			if err != nil {
				return nil, err
			}
			attrProps[name] = mapped
		case resource.FieldRelationship:
			relProps[name] = Fragment{
				"properties": Fragment{"data": linkageData(res.Relationship(name))},
			}
		default:
			return nil, NewUnknownField(res.Type, name)
		}
	}

	attributes := Fragment{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           attrProps,
	}
	if len(required) > 0 {
		attributes["required"] = required
	}

	return Fragment{
		"additionalProperties": false,
		"required":             []string{"type", "id"},
		"properties": Fragment{
			// The type property stays unconstrained here; routes that
			// need an exact match pin it with a const in their own
			// payload schemas.
			"type":          Fragment{},
			"id":            Fragment{"type": "string"},
			"attributes":    attributes,
			"relationships": Fragment{"type": "object", "properties": relProps},
		},
	}, nil
}

// linkageData returns the schema of a relationship's "data" member. A
// to-one relationship is a nullable resource identifier; a to-many
// relationship is an array of unique identifiers.
func linkageData(rel *resource.RelationshipDefinition) Fragment {
	identifier := Fragment{
		"required": []string{"id", "type"},
		"properties": Fragment{
			"id":   Fragment{"type": "string"},
			"type": Fragment{"const": rel.Destination},
		},
	}

	if rel.Cardinality == resource.Many {
		identifier["type"] = "object"
		return Fragment{
			"type":        "array",
			"uniqueItems": true,
			"items":       identifier,
		}
	}

	identifier["type"] = []any{"null", "object"}
	return identifier
}
