// Package loader reads resource model manifests. A manifest is a YAML
// file declaring the API prefix, any custom attribute types, and every
// resource with its attributes, relationships, aggregates, and routes.
// The loader is only a front door: it assembles an immutable
// resource.Model, validates it, and hands it off.
package loader

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/hyperline-api/hyperline/internal/resource"
)

// manifest mirrors the YAML document layout.
type manifest struct {
	Prefix string `yaml:"prefix"`

	// Types maps custom type names to the type expression of their
	// storage representation.
	Types map[string]string `yaml:"types"`

	Resources []manifestResource `yaml:"resources"`
}

type manifestResource struct {
	Type          string                 `yaml:"type"`
	Exposed       bool                   `yaml:"exposed"`
	Attributes    []manifestAttribute    `yaml:"attributes"`
	Relationships []manifestRelationship `yaml:"relationships"`
	Aggregates    []manifestAggregate    `yaml:"aggregates"`
	Routes        []manifestRoute        `yaml:"routes"`
}

type manifestAttribute struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Nullable   bool   `yaml:"nullable"`
	Writable   *bool  `yaml:"writable"`
	HasDefault bool   `yaml:"has_default"`
	Generated  bool   `yaml:"generated"`
}

type manifestRelationship struct {
	Name           string   `yaml:"name"`
	Cardinality    string   `yaml:"cardinality"`
	Destination    string   `yaml:"destination"`
	Through        string   `yaml:"through"`
	JoinAttributes []string `yaml:"join_attributes"`
}

type manifestAggregate struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

type manifestRoute struct {
	Path         string `yaml:"path"`
	Method       string `yaml:"method"`
	Kind         string `yaml:"kind"`
	Relationship string `yaml:"relationship"`
}

// LoadFile reads, parses, and validates a manifest file.
func LoadFile(path string) (*resource.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Load(data)
}

// Load parses and validates a manifest document.
func Load(data []byte) (*resource.Model, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	model := &resource.Model{Prefix: m.Prefix}
	for _, mr := range m.Resources {
		res, err := buildResource(mr, m.Types)
		if err != nil {
			return nil, err
		}
		model.Resources = append(model.Resources, res)
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	return model, nil
}

func buildResource(mr manifestResource, types map[string]string) (*resource.ResourceDefinition, error) {
	res := &resource.ResourceDefinition{
		Type:          mr.Type,
		Exposed:       mr.Exposed,
		Attributes:    make(map[string]*resource.AttributeDefinition),
		Relationships: make(map[string]*resource.RelationshipDefinition),
		Aggregates:    make(map[string]*resource.AggregateDefinition),
	}

	for _, ma := range mr.Attributes {
		td, err := parseType(ma.Type, types, nil)
		if err != nil {
			return nil, fmt.Errorf("resource %q, attribute %q: %w", mr.Type, ma.Name, err)
		}
		writable := true
		if ma.Writable != nil {
			writable = *ma.Writable
		}
		res.Fields = append(res.Fields, ma.Name)
		res.Attributes[ma.Name] = &resource.AttributeDefinition{
			Name:       ma.Name,
			Type:       td,
			Nullable:   ma.Nullable,
			Writable:   writable,
			HasDefault: ma.HasDefault,
			Generated:  ma.Generated,
		}
	}

	for _, mrel := range mr.Relationships {
		res.Fields = append(res.Fields, mrel.Name)
		res.Relationships[mrel.Name] = &resource.RelationshipDefinition{
			Name:           mrel.Name,
			Cardinality:    resource.Cardinality(mrel.Cardinality),
			Destination:    mrel.Destination,
			Through:        mrel.Through,
			JoinAttributes: mrel.JoinAttributes,
		}
	}

	for _, magg := range mr.Aggregates {
		res.Fields = append(res.Fields, magg.Name)
		res.Aggregates[magg.Name] = &resource.AggregateDefinition{
			Name: magg.Name,
			Kind: resource.AggregateKind(magg.Kind),
		}
	}

	for _, mroute := range mr.Routes {
		res.Routes = append(res.Routes, resource.RouteDefinition{
			Path:         mroute.Path,
			Method:       mroute.Method,
			Kind:         resource.RouteKind(mroute.Kind),
			Relationship: mroute.Relationship,
		})
	}

	return res, nil
}

// parseType turns a manifest type expression into a descriptor. Supported
// expressions: the primitive names, "array<expr>", and any name declared
// under types:. The seen set breaks cycles between custom types; a cycle
// is reported here instead of being left for the compiler to reject.
func parseType(expr string, types map[string]string, seen map[string]bool) (resource.TypeDescriptor, error) {
	expr = strings.TrimSpace(expr)

	switch expr {
	case "string":
		return resource.StringType(), nil
	case "boolean":
		return resource.BooleanType(), nil
	case "integer":
		return resource.IntegerType(), nil
	case "datetime":
		return resource.DateTimeType(), nil
	case "uuid":
		return resource.UUIDType(), nil
	}

	if inner, ok := strings.CutPrefix(expr, "array<"); ok {
		inner, ok = strings.CutSuffix(inner, ">")
		if !ok {
			return resource.TypeDescriptor{}, fmt.Errorf("malformed array type %q", expr)
		}
		elem, err := parseType(inner, types, seen)
		if err != nil {
			return resource.TypeDescriptor{}, err
		}
		return resource.ArrayOf(elem), nil
	}

	storageExpr, ok := types[expr]
	if !ok {
		return resource.TypeDescriptor{}, fmt.Errorf("unknown type %q", expr)
	}
	if seen[expr] {
		return resource.TypeDescriptor{}, fmt.Errorf("type %q storage definition is cyclic", expr)
	}
	if seen == nil {
		seen = make(map[string]bool)
	}
	seen[expr] = true

	storage, err := parseType(storageExpr, types, seen)
	if err != nil {
		return resource.TypeDescriptor{}, err
	}
	return resource.CustomType(expr, storage), nil
}
