package utils

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	policy = bluemonday.UGCPolicy()
)

func init() {
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// RenderMarkdown converts a post or comment body to sanitized HTML for the
// body_html response field. Rendering is memoized by content hash; this is a
// pure function of the source text so the memo can never go stale.
func RenderMarkdown(source string) string {
	key := "md:" + hashKey(source)
	if cached := GetCache().Get(key); cached != nil {
		if s, ok := cached.(string); ok {
			return s
		}
	}

	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return policy.Sanitize(source) // Fallback
	}
	rendered := string(policy.SanitizeBytes(buf.Bytes()))

	GetCache().Set(key, rendered, time.Hour)
	return rendered
}

func hashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}
