package schema

import (
	"github.com/hyperline-api/hyperline/internal/resource"
)

// requestSchema builds the inbound payload schema for a route. Read-only
// routes accept any body (an empty schema); create and update routes
// accept a single-resource envelope; linkage-mutation routes accept an
// array of resource identifiers.
func (c *compiler) requestSchema(res *resource.ResourceDefinition, route resource.RouteDefinition) (Fragment, error) {
	switch route.Kind {
	case resource.RoutePost:
		return c.writeEnvelope(res, false)
	case resource.RoutePatch:
		return c.writeEnvelope(res, true)
	case resource.RoutePostToRelationship, resource.RoutePatchRelationship, resource.RouteDeleteFromRelationship:
		return c.linkageMutationSchema(res, route)
	default:
		return Fragment{}, nil
	}
}

// writeEnvelope builds the {"data": {...}} envelope shared by create and
// update routes. Updates additionally accept the resource id and require
// no attributes, since a patch may carry any subset of writable fields.
func (c *compiler) writeEnvelope(res *resource.ResourceDefinition, update bool) (Fragment, error) {
	attrProps := Fragment{}
	var required []string
	for _, name := range res.Fields {
		attr := res.Attribute(name)
		if attr == nil || !attr.Writable {
			continue
		}
		mapped, err := typeSchema(res.Type, name, attr.Type)
		if err != nil {
			return nil, err
		}
		attrProps[name] = mapped
		if !update && !attr.Nullable && !attr.HasDefault && !attr.Generated {
			required = append(required, name)
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

	relProps := Fragment{}
	for _, name := range res.Fields {
		rel := res.Relationship(name)
		if rel == nil {
			continue
		}
		relProps[name] = Fragment{
			"properties": Fragment{"data": linkageData(rel)},
		}
	}

	dataProps := Fragment{
		"type":          Fragment{"const": res.Type},
		"attributes":    attributes,
		"relationships": Fragment{"additionalProperties": false, "properties": relProps},
	}
	if update {
		id, err := c.identifierSchema(res)
		if err != nil {
			return nil, err
		}
		dataProps["id"] = id
	}

	return Fragment{
		"type":     "object",
		"required": []string{"data"},
		"properties": Fragment{
			"data": Fragment{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           dataProps,
			},
		},
	}, nil
}

// linkageMutationSchema builds the payload schema for routes that add,
// replace, or remove relationship linkage. The payload is an array of
// {type, id} identifiers; when the relationship runs through a join
// resource, each identifier may carry a meta object with the writable
// join attributes.
func (c *compiler) linkageMutationSchema(res *resource.ResourceDefinition, route resource.RouteDefinition) (Fragment, error) {
	rel := res.Relationship(route.Relationship)
	if rel == nil {
		return nil, NewUnknownField(res.Type, route.Relationship)
	}
	dest := c.model.Resource(rel.Destination)
	if dest == nil {
		return nil, NewUnknownField(res.Type, route.Relationship)
	}

	destID, err := c.identifierSchema(dest)
	if err != nil {
		return nil, err
	}
	itemProps := Fragment{
		"id":   destID,
		"type": Fragment{"const": rel.Destination},
	}

	if rel.Through != "" {
		join := c.model.Resource(rel.Through)
		if join == nil {
			return nil, NewUnknownField(res.Type, route.Relationship)
		}
		metaProps := Fragment{}
		for _, name := range rel.JoinAttributes {
			attr := join.Attribute(name)
			if attr == nil {
				return nil, NewUnknownField(rel.Through, name)
			}
			if !attr.Writable {
				continue
			}
			mapped, err := typeSchema(rel.Through, name, attr.Type)
			if err != nil {
				return nil, err
			}
			metaProps[name] = mapped
		}
		itemProps["meta"] = Fragment{
			"type":                 "object",
			"additionalProperties": false,
			"properties":           metaProps,
		}
	}

	return Fragment{
		"type":     "object",
		"required": []string{"data"},
		"properties": Fragment{
			"data": Fragment{
				"type": "array",
				"items": Fragment{
					"type":                 "object",
					"required":             []string{"id", "type"},
					"additionalProperties": false,
					"properties":           itemProps,
				},
			},
		},
	}, nil
}

// identifierSchema returns the schema of a resource's id value, typed
// after its "id" attribute when one is declared. An id attribute whose
// type cannot be mapped aborts compilation; the plain string fallback
// applies only when the resource declares no id attribute at all.
func (c *compiler) identifierSchema(res *resource.ResourceDefinition) (Fragment, error) {
	attr := res.Attribute("id")
	if attr == nil {
		return Fragment{"type": "string"}, nil
	}
	return typeSchema(res.Type, "id", attr.Type)
}
