package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperline-api/hyperline/internal/resource"
)

func TestCompileDocumentShape(t *testing.T) {
	model := testModel()

	doc, err := Compile(model)
	require.NoError(t, err)

	assert.Equal(t, "http://json-schema.org/draft-06/schema#", doc.Schema)
	assert.Equal(t, "autogenerated_ash_json_api_schema", doc.ID)

	// Shared base definitions plus one per exposed resource.
	for _, name := range []string{"link", "links", "error", "errors", "posts", "users", "tags"} {
		assert.Contains(t, doc.Definitions, name)
	}
	assert.NotContains(t, doc.Definitions, "comments")
	assert.NotContains(t, doc.Definitions, "post_tags")

	// One link per route of an exposed resource, in declaration order.
	assert.Len(t, doc.Links, 8+1+1)
	assert.Equal(t, "/posts{?filter,sort,page,include}", doc.Links[0]["href"])
	assert.Equal(t, "GET", doc.Links[0]["method"])
	assert.Equal(t, "index", doc.Links[0]["rel"])
}

func TestCompileLinkFields(t *testing.T) {
	model := testModel()
	model.Prefix = "/api"

	doc, err := Compile(model)
	require.NoError(t, err)

	var get Fragment
	for _, link := range doc.Links {
		if link["rel"] == "get" && link["href"] == "/api/posts/{id}{?include}" {
			get = link
		}
	}
	require.NotNil(t, get)

	assert.Equal(t, "pending", get["description"])
	assert.Contains(t, get, "targetSchema")
	assert.Contains(t, get, "headerSchema")

	hrefSchema := get["hrefSchema"].(Fragment)
	assert.Equal(t, []string{"id"}, hrefSchema["required"])
	hrefProps := hrefSchema["properties"].(Fragment)
	assert.Equal(t, Fragment{"type": "string"}, hrefProps["id"])
	assert.Contains(t, hrefProps, "include")
}

func TestCompileOmitsRequestSchemaForFetchAndDelete(t *testing.T) {
	doc, err := Compile(testModel())
	require.NoError(t, err)

	for _, link := range doc.Links {
		switch link["rel"] {
		case "get", "delete":
			assert.NotContains(t, link, "schema", "rel %s", link["rel"])
		default:
			assert.Contains(t, link, "schema", "rel %s", link["rel"])
		}
	}
}

func TestCompileHeaderSchema(t *testing.T) {
	doc, err := Compile(testModel())
	require.NoError(t, err)

	header := doc.Links[0]["headerSchema"].(Fragment)
	assert.Equal(t, true, header["additionalProperties"])

	props := header["properties"].(Fragment)
	assert.Equal(t, Fragment{"const": []any{"application/vnd.api+json"}}, props["content-type"])
	assert.Equal(t, Fragment{"type": "array", "items": Fragment{"type": "string"}}, props["accept"])
}

func TestCompileDeterministic(t *testing.T) {
	first, err := Compile(testModel())
	require.NoError(t, err)
	second, err := Compile(testModel())
	require.NoError(t, err)

	firstBytes, err := Marshal(first)
	require.NoError(t, err)
	secondBytes, err := Marshal(second)
	require.NoError(t, err)

	assert.Equal(t, firstBytes, secondBytes)
}

func TestCompileUnknownFieldYieldsNoDocument(t *testing.T) {
	model := testModel()
	posts := model.Resource("posts")
	posts.Fields = append(posts.Fields, "phantom")

	doc, err := Compile(model)
	require.Error(t, err)
	assert.Nil(t, doc)

	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrUnknownField, cerr.Code)
}

func TestCompileUnmappableLinkageIdentifierYieldsNoDocument(t *testing.T) {
	// The destination resource is not exposed, so its own definition is
	// never compiled; the linkage identifier path must still surface the
	// unmappable id type instead of degrading it to a plain string.
	model := testModel()
	model.Resource("comments").Attributes["id"].Type =
		resource.TypeDescriptor{Kind: resource.TypeCustom, Name: "CommentID"}

	posts := model.Resource("posts")
	posts.Routes = append(posts.Routes, resource.RouteDefinition{
		Path:         "/posts/:id/relationships/comments",
		Method:       "post",
		Kind:         resource.RoutePostToRelationship,
		Relationship: "comments",
	})

	doc, err := Compile(model)
	require.Error(t, err)
	assert.Nil(t, doc)

	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrUnimplementedType, cerr.Code)
	assert.Equal(t, "comments", cerr.Resource)
	assert.Equal(t, "id", cerr.Field)
}

func TestCompileRejectsComplexRouteShapes(t *testing.T) {
	model := testModel()
	users := model.Resource("users")
	users.Routes = append(users.Routes, resource.RouteDefinition{
		Path:   "/users/:id/posts/:post_id",
		Method: "get",
		Kind:   resource.RouteGet,
	})

	doc, err := Compile(model)
	require.Error(t, err)
	assert.Nil(t, doc)

	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrUnsupportedRouteShape, cerr.Code)
	assert.Equal(t, "users", cerr.Resource)
}

func TestCompileAllowsParameterlessDeleteShapes(t *testing.T) {
	// Listing and deletion routes are exempt from the path shape check.
	model := testModel()
	posts := model.Resource("posts")
	posts.Routes = append(posts.Routes, resource.RouteDefinition{
		Path:   "/posts/:id/archive/:reason",
		Method: "delete",
		Kind:   resource.RouteDelete,
	})

	_, err := Compile(model)
	require.NoError(t, err)
}

func TestCompileDoesNotMutateModel(t *testing.T) {
	model := testModel()
	before, err := model.Fingerprint()
	require.NoError(t, err)

	_, err = Compile(model)
	require.NoError(t, err)

	after, err := model.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
