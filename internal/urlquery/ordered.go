// Package urlquery encodes query strings in insertion order.
package urlquery

import (
	"net/url"
	"strings"
)

// Ordered keeps insertion order, unlike url.Values which sorts on Encode.
type Ordered []Param

// Param is one key/value pair.
type Param struct {
	Key   string
	Value string
}

// Add appends a pair.
func (q *Ordered) Add(key, value string) {
	*q = append(*q, Param{Key: key, Value: value})
}

// Encode returns "k1=v1&k2=v2" with query escaping.
func (q Ordered) Encode() string {
	parts := make([]string, 0, len(q))
	for _, p := range q {
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	return strings.Join(parts, "&")
}
