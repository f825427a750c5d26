package template

import (
	"path"
	"strings"
)

// ContentType names the document format a template produces. When set on an
// Engine, the matching escape modifier is applied to every variable after any
// explicit modifiers, so templates do not need to spell out escaping
// themselves. The zero value disables automatic escaping.
type ContentType string

const (
	ContentTypeUnspecified ContentType = ""
	ContentTypeHTML        ContentType = "html"
	ContentTypeXML         ContentType = "xml"
	ContentTypeJSON        ContentType = "json"
	ContentTypeCSV         ContentType = "csv"
)

// ContentTypeForName returns the content type implied by a template file
// name's extension, or ContentTypeUnspecified when the extension is not
// recognized.
func ContentTypeForName(name string) ContentType {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(name), ".")) {
	case "html", "htm":
		return ContentTypeHTML
	case "xml":
		return ContentTypeXML
	case "json":
		return ContentTypeJSON
	case "csv":
		return ContentTypeCSV
	default:
		return ContentTypeUnspecified
	}
}

// MIMEType returns the Content-Type header value for rendered output.
func (ct ContentType) MIMEType() string {
	switch ct {
	case ContentTypeHTML:
		return "text/html; charset=utf-8"
	case ContentTypeXML:
		return "text/xml; charset=utf-8"
	case ContentTypeJSON:
		return "application/json"
	case ContentTypeCSV:
		return "text/csv; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}
