package repo

import (
	"strings"
	"testing"
)

const baby = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"

func TestListQuery(t *testing.T) {
	sql, args, err := listQuery(baby, "fruit").ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	if !strings.Contains(sql, "WHERE f.baby_id = $1 AND $2 = any(f.category)") {
		t.Fatalf("sql = %s", sql)
	}
	if len(args) != 2 || args[0] != baby || args[1] != "fruit" {
		t.Fatalf("args = %v", args)
	}

	sql, args, err = listQuery(baby, "").ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	if strings.Contains(sql, "any(f.category)") || len(args) != 1 {
		t.Fatalf("unfiltered sql = %s args = %v", sql, args)
	}
	if !strings.HasSuffix(sql, "ORDER BY lower(f.name)") {
		t.Fatalf("order = %s", sql)
	}
}
