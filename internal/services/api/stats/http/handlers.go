// Package http provides http transport for feeding statistics
package http

import (
	stdhttp "net/http"
	"strings"

	"babyfood/internal/modkit/httpkit"
	perr "babyfood/internal/platform/errors"
	"babyfood/internal/platform/net/http/bind"
	logs "babyfood/internal/services/api/foodlogs/domain"
	"babyfood/internal/services/api/stats/domain"
	svc "babyfood/internal/services/api/stats/service"
)

// Register mounts stats endpoints under a baby-scoped router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	r.Get("/foods", httpkit.Call(h.foods))
	r.Get("/heatmap", httpkit.Call(h.heatmap))
}

type handlers struct{ svc svc.Service }

// @Summary Foods ranked by times fed
// @Tags Stats
// @Produce json
// @Param babyID path string true "Baby id"
// @Param reactions query string false "Latest reaction filter, comma separated (loved,okay,disliked,none)"
// @Param include_dismissed query bool false "Include foods hidden from statistics"
// @Success 200 {array} domain.FoodStat "ok"
// @Router /babies/{babyID}/stats/foods [get]
func (h *handlers) foods(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	in, err := foodsInput(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Foods(r.Context(), httpkit.Baby(r), uid, in)
}

func foodsInput(r *stdhttp.Request) (domain.FoodsInput, error) {
	var in domain.FoodsInput
	for _, s := range httpkit.QueryCSV(r, "reactions") {
		if strings.EqualFold(s, string(logs.NoReaction)) {
			in.Reactions = append(in.Reactions, logs.NoReaction)
			continue
		}
		rx, ok := logs.ParseReaction(s)
		if !ok {
			return in, perr.WithField(perr.InvalidArgf("unknown reaction %q", s), "reactions")
		}
		in.Reactions = append(in.Reactions, rx)
	}
	incl, err := httpkit.QueryBool(r, "include_dismissed", false)
	if err != nil {
		return in, err
	}
	in.IncludeDismissed = incl
	return in, nil
}

// @Summary Daily feeding activity
// @Tags Stats
// @Produce json
// @Param babyID path string true "Baby id"
// @Param start query string true "First day, YYYY-MM-DD"
// @Param end query string true "Last day, YYYY-MM-DD"
// @Success 200 {array} domain.HeatCell "ok"
// @Failure 503 {object} httpkit.Envelope "analytics disabled"
// @Router /babies/{babyID}/stats/heatmap [get]
func (h *handlers) heatmap(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	in := domain.HeatmapInput{Start: httpkit.Query(r, "start"), End: httpkit.Query(r, "end")}
	if err := bind.Validate(in); err != nil {
		return nil, err
	}
	return h.svc.Heatmap(r.Context(), httpkit.Baby(r), uid, in)
}
