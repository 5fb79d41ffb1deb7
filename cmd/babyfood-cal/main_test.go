package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"babyfood/internal/platform/config"
	ident "babyfood/internal/services/ident/service"
)

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd(strings.NewReader(stdin), &out)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestRange(t *testing.T) {
	var got spanOut
	if err := json.Unmarshal([]byte(run(t, "", "range", "week", "2024-03-06", "-o", "json")), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := spanOut{
		View:  "week",
		Label: "Mar 3 - Mar 9, 2024",
		Start: "2024-03-03T00:00:00Z",
		End:   "2024-03-09T23:59:59.999Z",
		Zone:  "UTC",
	}
	if got != want {
		t.Fatalf("range = %+v", got)
	}
}

func TestGridMonth(t *testing.T) {
	var days []string
	if err := yaml.Unmarshal([]byte(run(t, "", "grid", "month", "2024", "1")), &days); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(days) != 35 || days[0] != "2024-01-28" || days[34] != "2024-03-02" {
		t.Fatalf("grid = %v", days)
	}
}

func TestCluster_FromStdin(t *testing.T) {
	in := `[
	  {"at": "2024-03-06T08:00:00Z", "label": "Pear"},
	  {"at": "2024-03-06T08:20:00Z", "label": "Oats"},
	  {"at": "2024-03-06T09:30:00Z", "label": "Egg"},
	  {"at": "2024-03-07T08:00:00Z", "label": "Tomorrow"}
	]`
	var got [][]event
	if err := json.Unmarshal([]byte(run(t, in, "cluster", "2024-03-06", "--output", "json")), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || len(got[0]) != 2 || len(got[1]) != 1 {
		t.Fatalf("clusters = %v", got)
	}
	if got[0][1].Label != "Oats" || got[1][0].At != "2024-03-06T09:30:00Z" {
		t.Fatalf("clusters = %v", got)
	}
}

func TestCluster_BadInput(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd(strings.NewReader(`- {at: yesterday, label: Pear}`), &out)
	cmd.SetArgs([]string{"cluster", "2024-03-06"})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("bad timestamp accepted")
	}
}

func TestToken(t *testing.T) {
	t.Setenv("CORE_API_JWT_SECRET", "cli-secret-at-least-32-chars-long-for-hs256")
	uid := uuid.NewString()
	tok := strings.TrimSpace(run(t, "", "token", uid))

	svc, err := ident.New(ident.FromConfig(config.New().Prefix("CORE_API_")))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, err := svc.Verify(tok); err != nil || got != uid {
		t.Fatalf("Verify = %q, %v", got, err)
	}
}
