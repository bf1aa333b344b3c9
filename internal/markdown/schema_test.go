package markdown

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testSchema = Schema{
	Name: "test",
	Fields: []Field{
		{Key: "title", Type: FieldString, Required: true, NonEmpty: true},
		{Key: "pubDate", Type: FieldDate, Required: true},
		{Key: "description", Type: FieldString},
		{Key: "language", Type: FieldString, Default: "Unknown"},
		{Key: "homepage", Type: FieldOptionalString},
		{Key: "stars", Type: FieldInt},
		{Key: "featured", Type: FieldBool},
		{Key: "tags", Type: FieldStrings},
	},
}

func TestSchemaParse(t *testing.T) {
	header, body, err := testSchema.Parse(readFixture(t, "testdata/basic.md"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if header.Kind() != "test" {
		t.Fatalf("expected kind test, got %q", header.Kind())
	}
	if header.String("title") != "Sample Document" {
		t.Fatalf("title mismatch: %q", header.String("title"))
	}
	if header.String("description") != "Sample summary goes here" {
		t.Fatalf("description mismatch: %q", header.String("description"))
	}
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if !header.Date("pubDate").Equal(want) {
		t.Fatalf("pubDate mismatch: %v", header.Date("pubDate"))
	}
	tags := header.Strings("tags")
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "cms" {
		t.Fatalf("tags mismatch: %#v", tags)
	}
	if !strings.HasPrefix(body, "# Sample Document") {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestSchemaExtractDefaults(t *testing.T) {
	tree, err := DecodeHeader("title: Only Required\npubDate: 2024-01-01\n")
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}

	header, err := testSchema.Extract(tree)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if header.String("description") != "" {
		t.Fatalf("description should default to empty")
	}
	if header.String("language") != "Unknown" {
		t.Fatalf("language should default to Unknown, got %q", header.String("language"))
	}
	if header.OptionalString("homepage") != nil {
		t.Fatalf("homepage should default to nil")
	}
	if header.Int("stars") != 0 || header.Bool("featured") {
		t.Fatalf("numeric and bool defaults not applied")
	}
	tags := header.Strings("tags")
	if tags == nil || len(tags) != 0 {
		t.Fatalf("absent list must decode to an empty, non-nil slice: %#v", tags)
	}
}

func TestSchemaExtractWrongTypesFallBackToDefaults(t *testing.T) {
	tree, err := DecodeHeader("title: T\npubDate: 2024-01-01\nstars: many\nfeatured: yes please\ntags: single\nhomepage: 12\n")
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	header, err := testSchema.Extract(tree)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if header.Int("stars") != 0 {
		t.Fatalf("expected default stars")
	}
	if header.Bool("featured") {
		t.Fatalf("expected default featured")
	}
	if len(header.Strings("tags")) != 0 {
		t.Fatalf("expected empty tags for scalar value")
	}
	if header.OptionalString("homepage") != nil {
		t.Fatalf("expected nil homepage for non-string value")
	}
}

func TestSchemaExtractErrors(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   error
		field  string
	}{
		{name: "missing title", header: "pubDate: 2024-01-01\n", want: ErrMissingField, field: "title"},
		{name: "blank title", header: "title: \"  \"\npubDate: 2024-01-01\n", want: ErrMissingField, field: "title"},
		{name: "numeric title", header: "title: 12\npubDate: 2024-01-01\n", want: ErrMissingField, field: "title"},
		{name: "missing date", header: "title: A\n", want: ErrMissingField, field: "pubDate"},
		{name: "invalid date", header: "title: A\npubDate: 2024/01/01\n", want: ErrInvalidDate, field: "pubDate"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := DecodeHeader(tc.header)
			if err != nil {
				t.Fatalf("DecodeHeader: %v", err)
			}
			_, err = testSchema.Extract(tree)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var headerErr *HeaderError
			if !errors.As(err, &headerErr) || headerErr.Field != tc.field {
				t.Fatalf("expected field %q in %#v", tc.field, err)
			}
		})
	}
}

func TestInvalidDateErrorCarriesValue(t *testing.T) {
	tree, _ := DecodeHeader("title: A\npubDate: yesterday\n")
	_, err := testSchema.Extract(tree)

	var headerErr *HeaderError
	if !errors.As(err, &headerErr) {
		t.Fatalf("expected HeaderError, got %v", err)
	}
	if headerErr.Value != "yesterday" {
		t.Fatalf("expected offending value, got %q", headerErr.Value)
	}
}

func TestHeaderAccessorsReturnCopies(t *testing.T) {
	tree, _ := DecodeHeader("title: A\npubDate: 2024-01-01\ntags: [a, b]\nhomepage: https://example.com\n")
	header, err := testSchema.Extract(tree)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	tags := header.Strings("tags")
	tags[0] = "mutated"
	if header.Strings("tags")[0] != "a" {
		t.Fatalf("Strings must return a copy")
	}

	home := header.OptionalString("homepage")
	*home = "mutated"
	if *header.OptionalString("homepage") != "https://example.com" {
		t.Fatalf("OptionalString must return a copy")
	}
}
