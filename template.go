package novelsrc

import (
	"net/url"
	"path"
	"strconv"
	"strings"
)

// ExpandTemplate substitutes {name} placeholders in tmpl with params and
// resolves the result against baseURL.
//
// Values are escaped exactly once: placeholders in the path with
// url.PathEscape ("a b" becomes "a%20b"), placeholders after '?' with
// url.QueryEscape ("a b" becomes "a+b"). A placeholder written {+name} is
// inserted verbatim, for values that are already URLs, and so is {name}
// when params holds an encoded value under "+name". Placeholders with no
// value expand to the empty string.
func ExpandTemplate(baseURL, tmpl string, params map[string]string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	var b strings.Builder
	inQuery := false
	for i := 0; i < len(tmpl); {
		c := tmpl[i]
		if c == '?' {
			inQuery = true
		}
		if c != '{' {
			b.WriteByte(c)
			i++
			continue
		}
		end := strings.IndexByte(tmpl[i:], '}')
		if end < 0 {
			b.WriteString(tmpl[i:])
			break
		}
		name := tmpl[i+1 : i+end]
		i += end + 1

		if raw, ok := strings.CutPrefix(name, "+"); ok {
			b.WriteString(params[raw])
			continue
		}
		if encoded, ok := params["+"+name]; ok {
			b.WriteString(encoded)
			continue
		}
		value := params[name]
		if inQuery {
			b.WriteString(url.QueryEscape(value))
		} else {
			b.WriteString(url.PathEscape(value))
		}
	}

	ref, err := url.Parse(b.String())
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL from template %q: %v", tmpl, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// ExpandForm expands every value of form as a query-position template, so
// each value is escaped by the form encoder only.
func ExpandForm(form map[string]string, params map[string]string) map[string]string {
	if len(form) == 0 {
		return nil
	}
	out := make(map[string]string, len(form))
	for k, v := range form {
		out[k] = expandRaw(v, params)
	}
	return out
}

// expandRaw substitutes placeholders without escaping.
func expandRaw(tmpl string, params map[string]string) string {
	var b strings.Builder
	for i := 0; i < len(tmpl); {
		if tmpl[i] != '{' {
			b.WriteByte(tmpl[i])
			i++
			continue
		}
		end := strings.IndexByte(tmpl[i:], '}')
		if end < 0 {
			b.WriteString(tmpl[i:])
			break
		}
		name := strings.TrimPrefix(tmpl[i+1:i+end], "+")
		b.WriteString(params[name])
		i += end + 1
	}
	return b.String()
}

// ListParams builds the placeholder values for a listing request. OnPage
// remaps the page before substitution. OnQuery output is already encoded:
// it is stored under "+query" for URL templates, and its decoded form
// under "query" for form bodies. Filter values are added under their keys.
func ListParams(d ExploreDescriptor, page int, query string, filters FilterList) map[string]string {
	params := filters.Params()
	params["page"] = strconv.Itoa(ApplyPage(d.OnPage, page))
	params["query"] = ""
	if query == "" {
		return params
	}
	if d.OnQuery == nil {
		params["query"] = query
		return params
	}
	encoded := d.OnQuery(query)
	params["+query"] = encoded
	params["query"] = encoded
	if decoded, err := url.QueryUnescape(encoded); err == nil {
		params["query"] = decoded
	}
	return params
}

// EncodeQuery returns an OnQuery hook that escapes each word of the query
// and joins the words with sep. An empty sep joins with "+", the form
// encoding of a space.
func EncodeQuery(sep string) TextFunc {
	if sep == "" {
		sep = "+"
	}
	return func(q string) string {
		words := strings.Fields(q)
		for i, w := range words {
			words[i] = url.QueryEscape(w)
		}
		return strings.Join(words, sep)
	}
}

// ChapterParams builds the placeholder values for a chapter index request.
func ChapterParams(d ChaptersDescriptor, mangaKey string, page int) map[string]string {
	return map[string]string{
		"key":  mangaKey,
		"slug": Slug(mangaKey),
		"page": strconv.Itoa(ApplyPage(d.OnPage, page)),
	}
}

// Slug returns the last non-empty path segment of a key or URL.
func Slug(key string) string {
	p := key
	if u, err := url.Parse(key); err == nil {
		p = u.Path
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}

// AbsoluteURL resolves link against baseURL. Absolute links are returned
// unchanged, protocol-relative links take the base scheme, and
// javascript:, mailto: and data: links resolve to "".
func AbsoluteURL(baseURL, link string) string {
	link = strings.TrimSpace(link)
	if link == "" || isNonHTTPLink(link) {
		return ""
	}
	ref, err := url.Parse(link)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return link
	}
	return base.ResolveReference(ref).String()
}

func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
