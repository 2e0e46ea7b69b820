package webpage

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// ExtractSchemaTypes collects schema.org types from an HTML document:
// JSON-LD script blocks, microdata itemtype attributes and RDFa typeof
// attributes. The result is sorted and deduplicated.
func ExtractSchemaTypes(body []byte) ([]string, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	types := make(map[string]bool)
	walkHTML(doc, func(node *html.Node) {
		if node.Type != html.ElementNode {
			return
		}
		if node.Data == "script" && attrValue(node, "type") == "application/ld+json" {
			collectJSONLDTypes(textContent(node), types)
		}
		if itemtype := attrValue(node, "itemtype"); itemtype != "" {
			collectSchemaTokens(itemtype, types)
		}
		if typeof := attrValue(node, "typeof"); typeof != "" {
			collectSchemaTokens(typeof, types)
		}
	})

	out := make([]string, 0, len(types))
	for t := range types {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

func walkHTML(node *html.Node, visit func(*html.Node)) {
	visit(node)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walkHTML(child, visit)
	}
}

func attrValue(node *html.Node, name string) string {
	for _, attr := range node.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

func textContent(node *html.Node) string {
	var sb strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			sb.WriteString(child.Data)
		}
	}
	return sb.String()
}

// collectJSONLDTypes parses a JSON-LD blob and gathers every @type
// value, recursing through nested objects and arrays. Invalid JSON-LD
// is common in the wild and silently ignored.
func collectJSONLDTypes(raw string, types map[string]bool) {
	var decoded interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return
	}
	collectJSONLDValue(decoded, types)
}

func collectJSONLDValue(value interface{}, types map[string]bool) {
	switch v := value.(type) {
	case map[string]interface{}:
		switch t := v["@type"].(type) {
		case string:
			types[t] = true
		case []interface{}:
			for _, item := range t {
				if s, ok := item.(string); ok {
					types[s] = true
				}
			}
		}
		for _, nested := range v {
			collectJSONLDValue(nested, types)
		}
	case []interface{}:
		for _, item := range v {
			collectJSONLDValue(item, types)
		}
	}
}

// collectSchemaTokens extracts type names from space-separated
// attribute values whose tokens reference schema.org, keeping the last
// path segment.
func collectSchemaTokens(attr string, types map[string]bool) {
	for _, token := range strings.Fields(attr) {
		if !strings.Contains(token, "schema.org") {
			continue
		}
		trimmed := strings.TrimRight(token, "/")
		if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
		if trimmed != "" {
			types[trimmed] = true
		}
	}
}
