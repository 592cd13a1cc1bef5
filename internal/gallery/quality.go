package gallery

import "strings"

// MaxQualityValue is what any quality parameter is rewritten to.
const MaxQualityValue = "100"

// MaxQuality rewrites the quality parameter (quality= or q=) of an image
// reference to its maximum. Other parameters keep their order and the
// reference is returned unchanged when it has no query.
func MaxQuality(ref string) string {
	base, query, ok := strings.Cut(ref, "?")
	if !ok || query == "" {
		return ref
	}
	fragment := ""
	if i := strings.IndexByte(query, '#'); i >= 0 {
		query, fragment = query[:i], query[i:]
	}

	params := strings.Split(query, "&")
	for i, p := range params {
		key, _, _ := strings.Cut(p, "=")
		if strings.EqualFold(key, "quality") || strings.EqualFold(key, "q") {
			params[i] = key + "=" + MaxQualityValue
		}
	}
	return base + "?" + strings.Join(params, "&") + fragment
}
