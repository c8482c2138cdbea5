// response/error.go
// Package response extracts human readable error messages from failed API response bodies.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"strings"

	"github.com/antchfx/xmlquery"
	"golang.org/x/net/html"
)

// UnknownErrorMessage is used when no message can be recovered from the body.
const UnknownErrorMessage = "Unknown Salesforce API error"

// DecodeJSON decodes body as JSON. It returns nil when the body is empty or not valid JSON.
func DecodeJSON(body []byte) interface{} {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	var decoded interface{}
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return nil
	}
	return decoded
}

// ExtractErrorMessage returns the diagnostic message for a failed response together with the
// decoded JSON body, if the body was JSON.
//
// JSON bodies use the top level "message" field, or the "message" of the first element of an
// error list. A JSON body without one yields UnknownErrorMessage. Other bodies are read as XML,
// HTML or plain text depending on contentType, and an empty body yields UnknownErrorMessage.
func ExtractErrorMessage(body []byte, contentType string) (string, interface{}) {
	if decoded := DecodeJSON(body); decoded != nil {
		if msg, ok := jsonMessage(decoded); ok {
			return msg, decoded
		}
		return UnknownErrorMessage, decoded
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return UnknownErrorMessage, nil
	}

	mimeType, _, _ := mime.ParseMediaType(contentType)
	switch mimeType {
	case "application/xml", "text/xml":
		if msg := parseXMLMessage(body); msg != "" {
			return msg, nil
		}
	case "text/html":
		if msg := parseHTMLMessage(body); msg != "" {
			return msg, nil
		}
	}
	return text, nil
}

func jsonMessage(decoded interface{}) (string, bool) {
	switch v := decoded.(type) {
	case map[string]interface{}:
		return messageField(v)
	case []interface{}:
		if len(v) == 0 {
			return "", false
		}
		if first, ok := v[0].(map[string]interface{}); ok {
			return messageField(first)
		}
	}
	return "", false
}

func messageField(obj map[string]interface{}) (string, bool) {
	raw, ok := obj["message"]
	if !ok || raw == nil {
		return "", false
	}
	if s, ok := raw.(string); ok {
		return s, true
	}
	return fmt.Sprint(raw), true
}

// parseXMLMessage joins the non-empty text nodes of an XML document.
func parseXMLMessage(body []byte) string {
	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var messages []string
	var traverse func(*xmlquery.Node)
	traverse = func(n *xmlquery.Node) {
		if n.Type == xmlquery.TextNode && strings.TrimSpace(n.Data) != "" {
			messages = append(messages, strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	return strings.Join(messages, "; ")
}

// parseHTMLMessage joins the text of every <p> element, with links rendered inline.
func parseHTMLMessage(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var messages []string
	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			var content strings.Builder
			var collect func(*html.Node)
			collect = func(c *html.Node) {
				switch {
				case c.Type == html.TextNode:
					if s := strings.TrimSpace(c.Data); s != "" {
						content.WriteString(s + " ")
					}
				case c.Type == html.ElementNode && c.Data == "a":
					for _, attr := range c.Attr {
						if attr.Key == "href" {
							content.WriteString("[Link: " + attr.Val + "] ")
							break
						}
					}
				}
				for child := c.FirstChild; child != nil; child = child.NextSibling {
					collect(child)
				}
			}
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				collect(child)
			}
			if s := strings.TrimSpace(content.String()); s != "" {
				messages = append(messages, s)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}
	parse(doc)

	return strings.Join(messages, "; ")
}
