package schema

import (
	"github.com/hyperline-api/hyperline/internal/resource"
)

// testModel builds a small blog model exercising every field class,
// cardinality, and route kind.
func testModel() *resource.Model {
	posts := &resource.ResourceDefinition{
		Type:    "posts",
		Exposed: true,
		Fields: []string{
			"id", "title", "body", "views", "inserted_at",
			"author", "comments", "tags", "comment_count",
		},
		Attributes: map[string]*resource.AttributeDefinition{
			"id":          {Name: "id", Type: resource.UUIDType(), Generated: true},
			"title":       {Name: "title", Type: resource.StringType(), Writable: true},
			"body":        {Name: "body", Type: resource.StringType(), Writable: true, Nullable: true},
			"views":       {Name: "views", Type: resource.IntegerType(), Writable: true, HasDefault: true},
			"inserted_at": {Name: "inserted_at", Type: resource.DateTimeType(), Generated: true},
		},
		Relationships: map[string]*resource.RelationshipDefinition{
			"author":   {Name: "author", Cardinality: resource.One, Destination: "users"},
			"comments": {Name: "comments", Cardinality: resource.Many, Destination: "comments"},
			"tags": {
				Name:           "tags",
				Cardinality:    resource.Many,
				Destination:    "tags",
				Through:        "post_tags",
				JoinAttributes: []string{"note", "weight"},
			},
		},
		Aggregates: map[string]*resource.AggregateDefinition{
			"comment_count": {Name: "comment_count", Kind: resource.AggregateCount},
		},
		Routes: []resource.RouteDefinition{
			{Path: "/posts", Method: "get", Kind: resource.RouteIndex},
			{Path: "/posts/:id", Method: "get", Kind: resource.RouteGet},
			{Path: "/posts", Method: "post", Kind: resource.RoutePost},
			{Path: "/posts/:id", Method: "patch", Kind: resource.RoutePatch},
			{Path: "/posts/:id", Method: "delete", Kind: resource.RouteDelete},
			{Path: "/posts/:id/relationships/tags", Method: "post", Kind: resource.RoutePostToRelationship, Relationship: "tags"},
			{Path: "/posts/:id/relationships/tags", Method: "patch", Kind: resource.RoutePatchRelationship, Relationship: "tags"},
			{Path: "/posts/:id/relationships/tags", Method: "delete", Kind: resource.RouteDeleteFromRelationship, Relationship: "tags"},
		},
	}

	users := &resource.ResourceDefinition{
		Type:    "users",
		Exposed: true,
		Fields:  []string{"id", "name"},
		Attributes: map[string]*resource.AttributeDefinition{
			"id":   {Name: "id", Type: resource.UUIDType(), Generated: true},
			"name": {Name: "name", Type: resource.StringType(), Writable: true},
		},
		Routes: []resource.RouteDefinition{
			{Path: "/users/:id", Method: "get", Kind: resource.RouteGet},
		},
	}

	comments := &resource.ResourceDefinition{
		Type:   "comments",
		Fields: []string{"id", "text"},
		Attributes: map[string]*resource.AttributeDefinition{
			"id":   {Name: "id", Type: resource.UUIDType(), Generated: true},
			"text": {Name: "text", Type: resource.StringType(), Writable: true},
		},
	}

	tags := &resource.ResourceDefinition{
		Type:    "tags",
		Exposed: true,
		Fields:  []string{"id", "name"},
		Attributes: map[string]*resource.AttributeDefinition{
			"id":   {Name: "id", Type: resource.UUIDType(), Generated: true},
			"name": {Name: "name", Type: resource.StringType(), Writable: true},
		},
		Routes: []resource.RouteDefinition{
			{Path: "/tags", Method: "get", Kind: resource.RouteIndex},
		},
	}

	postTags := &resource.ResourceDefinition{
		Type:   "post_tags",
		Fields: []string{"id", "note", "weight"},
		Attributes: map[string]*resource.AttributeDefinition{
			"id":     {Name: "id", Type: resource.UUIDType(), Generated: true},
			"note":   {Name: "note", Type: resource.StringType(), Writable: true, Nullable: true},
			"weight": {Name: "weight", Type: resource.IntegerType()},
		},
	}

	return &resource.Model{
		Resources: []*resource.ResourceDefinition{posts, users, comments, tags, postTags},
	}
}

func testCompiler() *compiler {
	return &compiler{model: testModel()}
}

func findRoute(res *resource.ResourceDefinition, kind resource.RouteKind) resource.RouteDefinition {
	for _, route := range res.Routes {
		if route.Kind == kind {
			return route
		}
	}
	panic("no route of kind " + string(kind))
}
