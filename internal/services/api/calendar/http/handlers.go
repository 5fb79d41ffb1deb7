// Package http provides http transport for the calendar
package http

import (
	stdhttp "net/http"

	"babyfood/internal/modkit/httpkit"
	"babyfood/internal/platform/net/http/bind"
	"babyfood/internal/services/api/calendar/domain"
	svc "babyfood/internal/services/api/calendar/service"
)

// Register mounts calendar endpoints under a baby-scoped router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	r.Get("/", httpkit.Call(h.view))
	r.Get("/ics", httpkit.Handle(h.ics))
}

type handlers struct{ svc svc.Service }

func queryFrom(r *stdhttp.Request) (domain.Query, error) {
	q := domain.Query{
		View: httpkit.Query(r, "view"),
		Date: httpkit.Query(r, "date"),
		TZ:   httpkit.Query(r, "tz"),
	}
	return q, bind.Validate(q)
}

// @Summary Feedings laid out on a day, week or month grid
// @Tags Calendar
// @Produce json
// @Param babyID path string true "Baby id"
// @Param view query string false "day, week or month" default(week)
// @Param date query string false "Anchor date YYYY-MM-DD, default today"
// @Param tz query string false "IANA zone overriding the baby's zone"
// @Success 200 {object} domain.Calendar "ok"
// @Router /babies/{babyID}/calendar [get]
func (h *handlers) view(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	q, err := queryFrom(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Build(r.Context(), httpkit.Baby(r), uid, q)
}

// @Summary Calendar window as iCalendar
// @Tags Calendar
// @Produce text/calendar
// @Param babyID path string true "Baby id"
// @Param view query string false "day, week or month" default(week)
// @Param date query string false "Anchor date YYYY-MM-DD, default today"
// @Param tz query string false "IANA zone overriding the baby's zone"
// @Success 200 {string} string "ics document"
// @Router /babies/{babyID}/calendar/ics [get]
func (h *handlers) ics(r *stdhttp.Request) httpkit.Response {
	uid, err := httpkit.User(r)
	if err != nil {
		return httpkit.Error(err)
	}
	q, err := queryFrom(r)
	if err != nil {
		return httpkit.Error(err)
	}
	doc, err := h.svc.ICS(r.Context(), httpkit.Baby(r), uid, q)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.File("text/calendar; charset=utf-8", "feedings.ics", doc)
}
