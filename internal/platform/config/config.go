// Package config reads application settings from prefix-scoped environment variables
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"babyfood/internal/platform/logger"
)

// Conf is a namespaced view over environment variables such as "CORE_API_" or "WORKER_"
// New() reads unprefixed keys; Prefix narrows the scope for a module
type Conf struct{ prefix string }

// New returns the unprefixed root Conf
func New() Conf { return Conf{} }

// Prefix returns a child Conf, e.g. cfg.Prefix("WORKER_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the fully-qualified variable name for key
func (c Conf) Key(key string) string { return c.prefix + key }

func (c Conf) lookup(key string) (name, val string) {
	name = c.Key(key)
	return name, strings.TrimSpace(os.Getenv(name))
}

// required returns the trimmed value or panics through the logger when it is empty
func (c Conf) required(key string) (string, string) {
	name, v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", name).Msg("missing required env")
	}
	return name, v
}

func invalid(name, val, msg string) {
	logger.Get().Panic().Str("key", name).Str("value", val).Msg(msg)
}

func fallback(name, val string, def any, what string) {
	logger.Get().Warn().Str("key", name).Str("value", val).Interface("default", def).
		Msg("invalid " + what + "; using default")
}

// MustString returns the value or panics when it is missing
func (c Conf) MustString(key string) string {
	_, v := c.required(key)
	return v
}

// MustInt returns the value as an int or panics
func (c Conf) MustInt(key string) int {
	name, s := c.required(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		invalid(name, s, "invalid int value")
	}
	return v
}

// MustBool returns the value as a bool or panics
func (c Conf) MustBool(key string) bool {
	name, s := c.required(key)
	v, err := strconv.ParseBool(s)
	if err != nil {
		invalid(name, s, "invalid bool value")
	}
	return v
}

// MustDuration returns the value as a time.Duration or panics
func (c Conf) MustDuration(key string) time.Duration {
	name, s := c.required(key)
	d, err := time.ParseDuration(s)
	if err != nil {
		invalid(name, s, "invalid duration (e.g., 250ms, 2s, 1h)")
	}
	return d
}

// MustURL returns the value as an absolute URL or panics
func (c Conf) MustURL(key string) *url.URL {
	name, s := c.required(key)
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		invalid(name, s, "invalid absolute URL")
	}
	return u
}

// MustPort returns a listen address like ":4000" for a port in 1..65535
func (c Conf) MustPort(key string) string {
	name, s := c.required(key)
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		invalid(name, s, "invalid TCP port; expected 1..65535")
	}
	return ":" + s
}

// Require panics on the first key that is missing or empty
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		c.required(k)
	}
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string {
	if _, v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def; an unparsable value is logged and replaced by def
func (c Conf) MayInt(key string, def int) int {
	name, s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		fallback(name, s, def, "int")
		return def
	}
	return v
}

// MayBool returns the value or def; an unparsable value is logged and replaced by def
func (c Conf) MayBool(key string, def bool) bool {
	name, s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		fallback(name, s, def, "bool")
		return def
	}
	return v
}

// MayDuration returns the value or def; an unparsable value is logged and replaced by def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	name, s := c.lookup(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		fallback(name, s, def.String(), "duration")
		return def
	}
	return d
}

// MayCSV splits a comma-separated value, dropping blanks; def when nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	_, s := c.lookup(key)
	if s == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value when it is one of allowed (case-insensitive), def when empty, and panics otherwise
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	logger.Get().Panic().Str("key", c.Key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}

// MayLocation loads an IANA zone name such as "Europe/Berlin"
// def is used when the key is empty or names an unknown zone; an unknown def falls back to UTC
func (c Conf) MayLocation(key, def string) *time.Location {
	name, s := c.lookup(key)
	if s != "" {
		if loc, err := time.LoadLocation(s); err == nil {
			return loc
		}
		fallback(name, s, def, "time zone")
	}
	loc, err := time.LoadLocation(def)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MayCron returns a cron schedule spec (five fields or an @descriptor) after checking it parses
func (c Conf) MayCron(key, def string) string {
	name, s := c.lookup(key)
	if s == "" {
		return def
	}
	if _, err := cron.ParseStandard(s); err != nil {
		fallback(name, s, def, "cron spec")
		return def
	}
	return s
}
