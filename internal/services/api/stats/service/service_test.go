package service

import (
	"context"
	"testing"
	"time"

	"babyfood/internal/modkit/repokit/repotest"
	perr "babyfood/internal/platform/errors"
	"babyfood/internal/services/api/babies/babiestest"
	babies "babyfood/internal/services/api/babies/domain"
	"babyfood/internal/services/api/stats/domain"
	"babyfood/internal/services/api/stats/repo"
)

type memRepo struct {
	stats []domain.FoodStat
	got   domain.FoodsInput
}

func (m *memRepo) FoodStats(_ context.Context, _ string, in domain.FoodsInput) ([]domain.FoodStat, error) {
	m.got = in
	return append([]domain.FoodStat(nil), m.stats...), nil
}

type fakeCH struct {
	cells      []domain.HeatCell
	start, end string
}

func (f *fakeCH) Heatmap(_ context.Context, _ string, start, end string) ([]domain.HeatCell, error) {
	f.start, f.end = start, end
	return f.cells, nil
}

const (
	baby     = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	member   = "22222222-2222-2222-2222-222222222222"
	stranger = "33333333-3333-3333-3333-333333333333"
)

var now = time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

func setup(ch repo.Analytics) (*Svc, *memRepo) {
	mem := &memRepo{}
	s := New(&repotest.Tx{}, repotest.Binder[repo.Repo](mem), ch, babiestest.Access{member: babies.RoleMember}, func() time.Time { return now })
	return s, mem
}

func TestFoods_DaysSince(t *testing.T) {
	s, mem := setup(nil)
	fed := now.Add(-50 * time.Hour)
	mem.stats = []domain.FoodStat{
		{ID: "f1", Name: "Pear", TimesFed: 3, LastFedAt: &fed},
		{ID: "f2", Name: "Oats"},
	}
	in := domain.FoodsInput{IncludeDismissed: true}
	out, err := s.Foods(context.Background(), baby, member, in)
	if err != nil {
		t.Fatalf("Foods: %v", err)
	}
	if out[0].DaysSinceLastFed == nil || *out[0].DaysSinceLastFed != 2 {
		t.Fatalf("pear days = %v", out[0].DaysSinceLastFed)
	}
	if out[1].DaysSinceLastFed != nil {
		t.Fatalf("never fed days = %v", *out[1].DaysSinceLastFed)
	}
	if !mem.got.IncludeDismissed {
		t.Fatalf("input not forwarded")
	}
	if _, err := s.Foods(context.Background(), baby, stranger, in); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("stranger err = %v", err)
	}
}

func TestHeatmap_ZeroFills(t *testing.T) {
	ch := &fakeCH{cells: []domain.HeatCell{
		{Day: "2024-02-28", Feedings: 2, Foods: 1},
		{Day: "2024-03-01", Feedings: 5, Foods: 3},
	}}
	s, _ := setup(ch)
	out, err := s.Heatmap(context.Background(), baby, member, domain.HeatmapInput{Start: "2024-02-27", End: "2024-03-02"})
	if err != nil {
		t.Fatalf("Heatmap: %v", err)
	}
	want := []domain.HeatCell{
		{Day: "2024-02-27"},
		{Day: "2024-02-28", Feedings: 2, Foods: 1},
		{Day: "2024-02-29"},
		{Day: "2024-03-01", Feedings: 5, Foods: 3},
		{Day: "2024-03-02"},
	}
	if len(out) != len(want) {
		t.Fatalf("cells = %v", out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("cell %d = %+v, want %+v", i, out[i], want[i])
		}
	}
	if ch.start != "2024-02-27" || ch.end != "2024-03-02" {
		t.Fatalf("range = %s..%s", ch.start, ch.end)
	}
}

func TestHeatmap_Errors(t *testing.T) {
	ctx := context.Background()
	off, _ := setup(nil)
	if _, err := off.Heatmap(ctx, baby, member, domain.HeatmapInput{Start: "2024-03-01", End: "2024-03-02"}); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("no ch err = %v", err)
	}

	s, _ := setup(&fakeCH{})
	cases := map[string]struct {
		in    domain.HeatmapInput
		field string
	}{
		"bad start": {domain.HeatmapInput{Start: "03/01/2024", End: "2024-03-02"}, "start"},
		"reversed":  {domain.HeatmapInput{Start: "2024-03-02", End: "2024-03-01"}, "end"},
		"too long":  {domain.HeatmapInput{Start: "2023-01-01", End: "2024-03-01"}, "end"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Heatmap(ctx, baby, member, tc.in)
			e, ok := perr.As(err)
			if !ok || e.Code() != perr.ErrorCodeInvalidArgument || e.Field() != tc.field {
				t.Fatalf("err = %v", err)
			}
		})
	}

	if out, err := s.Heatmap(ctx, baby, member, domain.HeatmapInput{Start: "2024-01-01", End: "2024-12-31"}); err != nil || len(out) != 366 {
		t.Fatalf("leap year = %d, %v", len(out), err)
	}
}
