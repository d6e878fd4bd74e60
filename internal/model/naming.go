// Package model provides data models for the RabbitMQ collector.
package model

import (
	"strings"
	"unicode"
)

// Separator joins the components of a metric name.
const Separator = "."

// RootVHost is the name of the broker's default virtual host.
const RootVHost = "/"

// Vhost naming modes.
const (
	// NamingCompat replaces every '/' with the placeholder, as older
	// tcollector deployments do. The root vhost "/" and a vhost literally
	// named after the placeholder produce the same token.
	NamingCompat = "compat"
	// NamingStrict maps the root vhost to "__<placeholder>" and any other
	// '/' to '_', so the root vhost no longer collides with a real vhost
	// named after the placeholder.
	NamingStrict = "strict"
)

// VHostNamer turns vhost names into metric name tokens.
type VHostNamer struct {
	Mode        string
	Placeholder string
}

// NewVHostNamer returns a namer; unknown modes fall back to NamingCompat.
func NewVHostNamer(mode, placeholder string) VHostNamer {
	if mode != NamingStrict {
		mode = NamingCompat
	}
	if placeholder == "" {
		placeholder = "default_vhost"
	}
	return VHostNamer{Mode: mode, Placeholder: placeholder}
}

// Sanitize returns the token for a vhost name. The result never contains '/'.
func (n VHostNamer) Sanitize(vhost string) string {
	if n.Mode == NamingStrict {
		if vhost == RootVHost {
			return "__" + n.Placeholder
		}
		return SanitizeComponent(strings.ReplaceAll(vhost, "/", "_"))
	}
	return SanitizeComponent(strings.ReplaceAll(vhost, "/", n.Placeholder))
}

// SanitizeComponent replaces whitespace, which would break the
// "<name> <timestamp> <value>" line format, with '_'.
func SanitizeComponent(s string) string {
	if strings.IndexFunc(s, unicode.IsSpace) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, s)
}

// MetricName joins parts with Separator.
func MetricName(parts ...string) string {
	return strings.Join(parts, Separator)
}
