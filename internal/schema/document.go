// Package schema compiles a resource model into a JSON Hyper-Schema
// (draft-06) document: one canonical object schema per exposed resource,
// shared base definitions, and one link description per route covering
// its href template, query parameters, and request/response payloads.
//
// Compilation is a pure function of the model. It performs no I/O, never
// mutates its input, and either returns a complete document or fails with
// a *CompileError; there is no partial output. Identical models compile
// to byte-identical documents, so callers may safely memoize results by
// model fingerprint and invoke the compiler from any number of
// goroutines.
package schema

import (
	"strings"

	"github.com/hyperline-api/hyperline/internal/resource"
)

const (
	// Dialect is the schema dialect every document declares.
	Dialect = "http://json-schema.org/draft-06/schema#"

	// DocumentID is the fixed $id of generated documents, kept stable
	// for consumers that key on it.
	DocumentID = "autogenerated_ash_json_api_schema"

	// mediaType is the media type the header schema pins requests and
	// responses to.
	mediaType = "application/vnd.api+json"

	// pendingDescription marks human-readable fields whose grammar is
	// not settled yet.
	pendingDescription = "pending"
)

// Document is a compiled schema document. Field order matches the wire
// layout; Definitions marshals with sorted keys and Links preserves
// model declaration order, which together make serialization
// deterministic.
type Document struct {
	Schema      string     `json:"$schema"`
	ID          string     `json:"$id"`
	Definitions Fragment   `json:"definitions"`
	Links       []Fragment `json:"links"`
}

type compiler struct {
	model *resource.Model
}

// Compile builds the schema document for a model. Every exposed resource
// contributes one definition, and every route of an exposed resource
// contributes one link description, in declaration order.
//
// The model is expected to have passed Validate; problems compilation
// detects on its own (unknown fields, unmapped types, unsupported route
// shapes) fail with a *CompileError.
func Compile(model *resource.Model) (*Document, error) {
	c := &compiler{model: model}

	definitions := baseDefinitions()
	var links []Fragment

	for _, res := range model.Exposed() {
		def, err := c.resourceDefinition(res)
		if err != nil {
			return nil, err
		}
		definitions[res.Type] = def

		for _, route := range res.Routes {
			link, err := c.routeLink(res, route)
			if err != nil {
				return nil, err
			}
			links = append(links, link)
		}
	}

	return &Document{
		Schema:      Dialect,
		ID:          DocumentID,
		Definitions: definitions,
		Links:       links,
	}, nil
}

// routeLink builds the link description object for one route.
func (c *compiler) routeLink(res *resource.ResourceDefinition, route resource.RouteDefinition) (Fragment, error) {
	tmpl := buildHref(c.model.Prefix, route.Path)

	if err := checkRouteShape(res, route, tmpl.Params); err != nil {
		return nil, err
	}

	queryProps, suffix, err := c.queryParams(res, route)
	if err != nil {
		return nil, err
	}

	hrefProps := Fragment{}
	for _, name := range tmpl.Params {
		hrefProps[name] = Fragment{"type": "string"}
	}
	for name, prop := range queryProps {
		hrefProps[name] = prop
	}
	hrefSchema := Fragment{"properties": hrefProps}
	if len(tmpl.Params) > 0 {
		hrefSchema["required"] = tmpl.Params
	}

	target, err := c.responseSchema(res, route)
	if err != nil {
		return nil, err
	}

	link := Fragment{
		"href":         tmpl.Href + suffix,
		"hrefSchema":   hrefSchema,
		"description":  pendingDescription,
		"method":       strings.ToUpper(route.Method),
		"rel":          string(route.Kind),
		"targetSchema": target,
		"headerSchema": headerSchema(),
	}

	// Fetch and delete requests carry no body worth describing.
	if route.Kind != resource.RouteGet && route.Kind != resource.RouteDelete {
		req, err := c.requestSchema(res, route)
		if err != nil {
			return nil, err
		}
		link["schema"] = req
	}

	return link, nil
}

// checkRouteShape rejects path parameter shapes the payload builders do
// not handle. Listing and deletion routes pass through; everything else
// must address either the collection or a single id.
func checkRouteShape(res *resource.ResourceDefinition, route resource.RouteDefinition, params []string) error {
	if route.Kind.IsListing() || route.Kind == resource.RouteDelete {
		return nil
	}
	if len(params) == 0 {
		return nil
	}
	if len(params) == 1 && params[0] == "id" {
		return nil
	}
	return NewUnsupportedRouteShape(res.Type, route.Method+" "+route.Path, params)
}

// headerSchema is the fixed header constraint every link carries:
// requests speak the pinned media type and may accept anything that
// includes it.
func headerSchema() Fragment {
	return Fragment{
		"type":                 "object",
		"additionalProperties": true,
		"properties": Fragment{
			"content-type": Fragment{"const": []any{mediaType}},
			"accept": Fragment{
				"type":  "array",
				"items": Fragment{"type": "string"},
			},
		},
	}
}

// baseDefinitions returns the shared definitions every document starts
// from: the link/links pair and the error document shape.
func baseDefinitions() Fragment {
	return Fragment{
		"link": Fragment{
			"description": "A link to a related resource, as a URL string.",
			"type":        "string",
		},
		"links": Fragment{
			"type":                 "object",
			"additionalProperties": definitionRef("link"),
		},
		"error": Fragment{
			"type":                 "object",
			"additionalProperties": false,
			"properties": Fragment{
				"id": Fragment{
					"description": "A unique identifier for this particular occurrence of the problem.",
					"type":        "string",
				},
				"links": definitionRef("links"),
				"status": Fragment{
					"description": "The HTTP status code applicable to this problem, expressed as a string value.",
					"type":        "string",
				},
				"code": Fragment{
					"description": "An application-specific error code, expressed as a string value.",
					"type":        "string",
				},
				"title": Fragment{
					"description": "A short, human-readable summary of the problem.",
					"type":        "string",
				},
				"detail": Fragment{
					"description": "A human-readable explanation specific to this occurrence of the problem.",
					"type":        "string",
				},
				"source": Fragment{
					"type": "object",
					"properties": Fragment{
						"pointer": Fragment{
							"description": "A JSON Pointer to the associated entity in the request document.",
							"type":        "string",
						},
						"parameter": Fragment{
							"description": "A string indicating which query parameter caused the error.",
							"type":        "string",
						},
					},
				},
			},
		},
		"errors": Fragment{
			"type":        "array",
			"items":       definitionRef("error"),
			"uniqueItems": true,
		},
	}
}
