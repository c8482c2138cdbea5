// apex_api_url.go
package apex

import (
	"net/url"
	"strings"
)

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Query is an ordered set of query parameters. Keys are unique and keep the position of their
// first insertion.
type Query []Param

// Q builds a Query from alternating keys and values. A trailing key without a value gets "".
func Q(keyValues ...string) Query {
	var q Query
	for i := 0; i < len(keyValues); i += 2 {
		value := ""
		if i+1 < len(keyValues) {
			value = keyValues[i+1]
		}
		q = q.Set(keyValues[i], value)
	}
	return q
}

// Set returns q with key set to value. An existing key keeps its position.
func (q Query) Set(key, value string) Query {
	for i := range q {
		if q[i].Key == key {
			q[i].Value = value
			return q
		}
	}
	return append(q, Param{Key: key, Value: value})
}

// Get returns the value of key and whether it is present.
func (q Query) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Merge returns q with every parameter of other applied on top, in other's order.
func (q Query) Merge(other Query) Query {
	merged := append(Query(nil), q...)
	for _, p := range other {
		merged = merged.Set(p.Key, p.Value)
	}
	return merged
}

// Encode serialises the parameters in order with standard query escaping.
func (q Query) Encode() string {
	var sb strings.Builder
	for i, p := range q {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}

// ParseQuery decodes a raw query string. Duplicate keys keep their first position and their last value.
func ParseQuery(rawQuery string) Query {
	var q Query
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		q = q.Set(unescape(key), unescape(value))
	}
	return q
}

func unescape(s string) string {
	if decoded, err := url.QueryUnescape(s); err == nil {
		return decoded
	}
	return s
}

// BaseURL returns the API base URL without a trailing slash. When mutual TLS is in use and the
// URI does not already carry ".com:8443", the first ".com" in it becomes ".com:8443".
func BaseURL(apexURI string, mtls bool) string {
	if mtls && !strings.Contains(apexURI, tlsHostWithPort) {
		apexURI = strings.Replace(apexURI, tlsHostMarker, tlsHostWithPort, 1)
	}
	return strings.TrimRight(apexURI, "/")
}

// IsAbsolute reports whether endpoint already carries an http or https scheme.
func IsAbsolute(endpoint string) bool {
	return strings.HasPrefix(endpoint, absoluteHTTP) || strings.HasPrefix(endpoint, absoluteHTTPS)
}

// BuildURL resolves endpoint against baseURL and merges extra into any query the endpoint
// already has. Parameters in extra win over embedded ones with the same key. Embedded keys come
// first in their original order, followed by new keys from extra. Fragments are dropped.
// Input that cannot be parsed is returned unchanged.
func BuildURL(baseURL, endpoint string, extra Query) string {
	fullURL := endpoint
	if !IsAbsolute(endpoint) {
		fullURL = baseURL + "/" + strings.TrimLeft(endpoint, "/")
	}

	withoutFragment, _, _ := strings.Cut(fullURL, fragmentSplitter)
	target, rawQuery, _ := strings.Cut(withoutFragment, querySeparator)

	u, err := url.Parse(target)
	if err != nil {
		return fullURL
	}

	var sb strings.Builder
	if u.Scheme != "" {
		sb.WriteString(u.Scheme)
		sb.WriteString("://")
	}
	sb.WriteString(u.Host)
	sb.WriteString(u.EscapedPath())

	if merged := ParseQuery(rawQuery).Merge(extra); len(merged) > 0 {
		sb.WriteString(querySeparator)
		sb.WriteString(merged.Encode())
	}
	return sb.String()
}
