package schema

import (
	"github.com/hyperline-api/hyperline/internal/resource"
)

// Fragment is one node of a schema document. Fragments marshal through
// encoding/json, which sorts object keys, so identical fragments always
// serialize identically.
type Fragment = map[string]any

// typeSchema maps an attribute type descriptor to a schema fragment. A
// custom type gets exactly one normalization redirect: its storage
// representation is looked up in its place. If the storage type is itself
// unmapped the compilation fails, which keeps a misconfigured custom type
// from normalizing forever.
func typeSchema(resourceType, field string, t resource.TypeDescriptor) (Fragment, error) {
	return mapType(resourceType, field, t, true)
}

func mapType(resourceType, field string, t resource.TypeDescriptor, redirect bool) (Fragment, error) {
	switch t.Kind {
	case resource.TypeString:
		return Fragment{"type": "string"}, nil
	case resource.TypeBoolean:
		return Fragment{"type": "boolean"}, nil
	case resource.TypeInteger:
		return Fragment{"type": "integer"}, nil
	case resource.TypeDateTime:
		return Fragment{"type": "string", "format": "date-time"}, nil
	case resource.TypeUUID:
		return Fragment{"type": "string", "format": "uuid"}, nil
	case resource.TypeArray:
		if t.Elem == nil {
			return nil, NewUnimplementedType(resourceType, field, t.String())
		}
		items, err := mapType(resourceType, field, *t.Elem, redirect)
		if err != nil {
			return nil, err
		}
		return Fragment{"type": "array", "items": items}, nil
	case resource.TypeCustom:
		if redirect && t.Storage != nil {
			return mapType(resourceType, field, *t.Storage, false)
		}
		return nil, NewUnimplementedType(resourceType, field, t.String())
	default:
		return nil, NewUnimplementedType(resourceType, field, t.String())
	}
}
