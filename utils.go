package foundry

import (
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"
)

// pathParam renders value as a single path segment using simple style.
func pathParam(name, value string) (string, error) {
	if value == "" {
		return "", fmt.Errorf("%s cannot be empty", name)
	}
	seg, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
	if err != nil {
		return "", fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	return seg, nil
}

// withQuery appends query to a path relative to the OpenAI base URL.
func withQuery(path string, query map[string]string) string {
	if len(query) == 0 {
		return path
	}
	values := url.Values{}
	for k, v := range query {
		values.Set(k, v)
	}
	return path + "?" + values.Encode()
}
