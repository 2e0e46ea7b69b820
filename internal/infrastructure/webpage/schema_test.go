package webpage

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractSchemaTypesJSONLD(t *testing.T) {
	page := []byte(`<html><head>
		<script type="application/ld+json">
		{"@context": "https://schema.org", "@type": "Article",
		 "author": {"@type": "Person", "name": "A"},
		 "about": [{"@type": ["Thing", "Product"]}]}
		</script>
		<script type="application/ld+json">not json at all</script>
	</head><body></body></html>`)

	types, err := ExtractSchemaTypes(page)
	if err != nil {
		t.Fatalf("ExtractSchemaTypes() error = %v", err)
	}
	want := []string{"Article", "Person", "Product", "Thing"}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Errorf("types mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractSchemaTypesMicrodataAndRDFa(t *testing.T) {
	page := []byte(`<html><body>
		<div itemscope itemtype="https://schema.org/Recipe">
			<span itemprop="name">Cake</span>
		</div>
		<div typeof="schema.org/BreadcrumbList other">x</div>
		<div itemtype="https://example.com/NotSchema">y</div>
	</body></html>`)

	types, err := ExtractSchemaTypes(page)
	if err != nil {
		t.Fatalf("ExtractSchemaTypes() error = %v", err)
	}
	want := []string{"BreadcrumbList", "Recipe"}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Errorf("types mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractSchemaTypesEmptyPage(t *testing.T) {
	types, err := ExtractSchemaTypes([]byte("<html><body><p>plain</p></body></html>"))
	if err != nil {
		t.Fatalf("ExtractSchemaTypes() error = %v", err)
	}
	if len(types) != 0 {
		t.Errorf("types = %v, want none", types)
	}
}
