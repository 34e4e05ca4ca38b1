package schema

import (
	"strings"
)

// hrefTemplate is a route path rendered as an RFC 6570 level-1 template,
// with path parameters in order of appearance.
type hrefTemplate struct {
	Href   string
	Params []string
}

// buildHref joins the API prefix with a route path pattern and rewrites
// ":name" parameter segments as "{name}" placeholders. The function is
// pure: the same prefix and path always produce the same template.
func buildHref(prefix, path string) hrefTemplate {
	var segments []string
	var params []string

	for _, raw := range []string{prefix, path} {
		for _, seg := range strings.Split(raw, "/") {
			if seg == "" {
				continue
			}
			if strings.HasPrefix(seg, ":") {
				name := strings.TrimPrefix(seg, ":")
				params = append(params, name)
				segments = append(segments, "{"+name+"}")
				continue
			}
			segments = append(segments, seg)
		}
	}

	return hrefTemplate{
		Href:   "/" + strings.Join(segments, "/"),
		Params: params,
	}
}
