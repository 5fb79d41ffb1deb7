package config

import (
	"reflect"
	"testing"
	"time"

	kit "babyfood/internal/platform/testkit"
)

func TestPrefixNesting(t *testing.T) {
	c := New().Prefix("CORE_").Prefix("API_")
	if got := c.Key("PORT"); got != "CORE_API_PORT" {
		t.Fatalf("Key() = %q", got)
	}
}

func TestMust(t *testing.T) {
	c := New().Prefix("M_")
	t.Setenv("M_NAME", "  babyfood ")
	t.Setenv("M_N", " 8 ")
	t.Setenv("M_ON", "true")
	t.Setenv("M_TTL", "250ms")
	t.Setenv("M_URL", "https://babyfood.example/app")
	t.Setenv("M_PORT", "4000")

	if got := c.MustString("NAME"); got != "babyfood" {
		t.Fatalf("MustString = %q", got)
	}
	if got := c.MustInt("N"); got != 8 {
		t.Fatalf("MustInt = %d", got)
	}
	if !c.MustBool("ON") {
		t.Fatalf("MustBool = false")
	}
	if got := c.MustDuration("TTL"); got != 250*time.Millisecond {
		t.Fatalf("MustDuration = %v", got)
	}
	if got := c.MustURL("URL"); got.Host != "babyfood.example" {
		t.Fatalf("MustURL host = %q", got.Host)
	}
	if got := c.MustPort("PORT"); got != ":4000" {
		t.Fatalf("MustPort = %q", got)
	}
	c.Require("NAME", "PORT")
}

func TestMust_Panics(t *testing.T) {
	c := New().Prefix("MP_")
	t.Setenv("MP_WORD", "abc")
	t.Setenv("MP_REL", "/relative")
	t.Setenv("MP_OOB", "70000")

	cases := map[string]func(){
		"missing string": func() { c.MustString("NOPE") },
		"bad int":        func() { c.MustInt("WORD") },
		"bad bool":       func() { c.MustBool("WORD") },
		"bad duration":   func() { c.MustDuration("WORD") },
		"relative url":   func() { c.MustURL("REL") },
		"port range":     func() { c.MustPort("OOB") },
		"require":        func() { c.Require("WORD", "NOPE") },
		"enum":           func() { c.MayEnum("WORD", "json", "json", "console") },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) { kit.MustPanic(t, fn) })
	}
}

func TestMay_Defaults(t *testing.T) {
	c := New().Prefix("MAY_")
	t.Setenv("MAY_BAD", "zzz")
	t.Setenv("MAY_N", "12")
	t.Setenv("MAY_CSV", " a, ,b ,")
	t.Setenv("MAY_BLANKS", " , ")
	t.Setenv("MAY_FMT", "JSON")

	if got := c.MayString("NOPE", "def"); got != "def" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayInt("N", 1); got != 12 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("BAD", 3); got != 3 {
		t.Fatalf("MayInt bad = %d", got)
	}
	if got := c.MayBool("BAD", true); !got {
		t.Fatalf("MayBool bad = false")
	}
	if got := c.MayDuration("BAD", time.Second); got != time.Second {
		t.Fatalf("MayDuration bad = %v", got)
	}
	if got := c.MayCSV("CSV", nil); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("MayCSV = %v", got)
	}
	if got := c.MayCSV("BLANKS", []string{"x"}); !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("MayCSV blanks = %v", got)
	}
	if got := c.MayEnum("FMT", "console", "json", "console"); got != "json" {
		t.Fatalf("MayEnum = %q", got)
	}
	if got := c.MayEnum("NOPE", "console", "json", "console"); got != "console" {
		t.Fatalf("MayEnum default = %q", got)
	}
}

func TestMayLocation(t *testing.T) {
	c := New().Prefix("TZ_")
	t.Setenv("TZ_GOOD", "America/New_York")
	t.Setenv("TZ_BAD", "Mars/Olympus")

	if _, err := time.LoadLocation("America/New_York"); err != nil {
		t.Skipf("zoneinfo unavailable: %v", err)
	}
	if got := c.MayLocation("GOOD", "UTC"); got.String() != "America/New_York" {
		t.Fatalf("MayLocation = %s", got)
	}
	if got := c.MayLocation("BAD", "America/New_York"); got.String() != "America/New_York" {
		t.Fatalf("MayLocation bad = %s", got)
	}
	if got := c.MayLocation("NOPE", "Nowhere/Invalid"); got != time.UTC {
		t.Fatalf("MayLocation invalid default = %s", got)
	}
}

func TestMayCron(t *testing.T) {
	c := New().Prefix("CRON_")
	t.Setenv("CRON_EVERY", "@every 5m")
	t.Setenv("CRON_FIELDS", "*/15 * * * *")
	t.Setenv("CRON_BAD", "every now and then")

	if got := c.MayCron("EVERY", "@hourly"); got != "@every 5m" {
		t.Fatalf("MayCron = %q", got)
	}
	if got := c.MayCron("FIELDS", "@hourly"); got != "*/15 * * * *" {
		t.Fatalf("MayCron fields = %q", got)
	}
	if got := c.MayCron("BAD", "@hourly"); got != "@hourly" {
		t.Fatalf("MayCron bad = %q", got)
	}
}
