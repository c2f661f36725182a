package site

import (
	"bytes"
	"fmt"
)

// ShimTags builds the markup every served HTML document gets: the manifest
// link that makes the page installable plus the shim assets.
func ShimTags(manifestURL, cssURL, scriptURL string) string {
	return fmt.Sprintf(
		"<link rel=\"manifest\" href=%q>\n<link rel=\"stylesheet\" href=%q>\n<script defer src=%q></script>\n",
		manifestURL, cssURL, scriptURL)
}

// InjectShim inserts tags into an HTML document, preferring the end of the
// head, falling back to the end of the body, then to plain append. A
// document that already carries the tags is returned unchanged, so authored
// pages may include the shim themselves.
func InjectShim(doc []byte, tags string) []byte {
	if tags == "" || bytes.Contains(doc, []byte(tags)) {
		return doc
	}

	lower := bytes.ToLower(doc)
	for _, marker := range []string{"</head>", "</body>"} {
		if i := bytes.Index(lower, []byte(marker)); i >= 0 {
			out := make([]byte, 0, len(doc)+len(tags))
			out = append(out, doc[:i]...)
			out = append(out, tags...)
			out = append(out, doc[i:]...)
			return out
		}
	}

	out := make([]byte, 0, len(doc)+len(tags))
	out = append(out, doc...)
	out = append(out, tags...)
	return out
}
