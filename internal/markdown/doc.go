// Package markdown turns flat-file content documents into parsed headers and
// rendered HTML. A document is a YAML header fenced by "---" lines followed by
// a Markdown body. Header fields are extracted through a Schema so every
// content kind shares one parsing pipeline.
package markdown
