package restserver

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/chrissnell/wxastro/pkg/lunar"
	"github.com/chrissnell/wxastro/pkg/responseformat"
	"github.com/chrissnell/wxastro/pkg/riseset"
	"github.com/chrissnell/wxastro/pkg/solar"
	"github.com/chrissnell/wxastro/pkg/wxcalc"
)

// standard sea-level pressure, used when a request omits pressure
const defaultPressureInHg = 29.921

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// GetDerived computes every derived quantity for the readings in the query.
// temp and humidity are required; wind and solar default to 0 and pressure
// to standard sea level.
func (h *Handlers) GetDerived(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	var sample wxcalc.Sample
	var err error
	if sample.TempF, err = floatParam(q, "temp", nil); err != nil {
		h.badRequest(w, req, err)
		return
	}
	if sample.Humidity, err = floatParam(q, "humidity", nil); err != nil {
		h.badRequest(w, req, err)
		return
	}
	if sample.Humidity <= 0 || sample.Humidity > 100 {
		h.badRequest(w, req, fmt.Errorf("humidity must be in (0,100], got %v", sample.Humidity))
		return
	}
	zero := 0.0
	if sample.WindMph, err = floatParam(q, "wind", &zero); err != nil {
		h.badRequest(w, req, err)
		return
	}
	if sample.WindMph < 0 {
		h.badRequest(w, req, fmt.Errorf("wind must not be negative, got %v", sample.WindMph))
		return
	}
	if sample.SolarWm2, err = floatParam(q, "solar", &zero); err != nil {
		h.badRequest(w, req, err)
		return
	}
	if sample.SolarWm2 < 0 {
		h.badRequest(w, req, fmt.Errorf("solar must not be negative, got %v", sample.SolarWm2))
		return
	}
	pressure := defaultPressureInHg
	if sample.PressureInHg, err = floatParam(q, "pressure", &pressure); err != nil {
		h.badRequest(w, req, err)
		return
	}
	if sample.PressureInHg <= 0 {
		h.badRequest(w, req, fmt.Errorf("pressure must be positive, got %v", sample.PressureInHg))
		return
	}

	t, err := h.timeParam(q)
	if err != nil {
		h.badRequest(w, req, err)
		return
	}

	s := h.controller.site
	pos, err := solar.Compute(t, s)
	if err != nil {
		h.serverError(w, req, err)
		return
	}

	h.write(w, req, DerivedResponse{
		Time:    t,
		Site:    s,
		Sample:  sample,
		Derived: wxcalc.Derive(sample, pos),
	})
}

// GetSolar returns the Sun's position at the requested time.
func (h *Handlers) GetSolar(w http.ResponseWriter, req *http.Request) {
	t, err := h.timeParam(req.URL.Query())
	if err != nil {
		h.badRequest(w, req, err)
		return
	}

	s := h.controller.site
	pos, err := solar.Compute(t, s)
	if err != nil {
		h.serverError(w, req, err)
		return
	}

	h.write(w, req, SolarResponse{
		Time:      t,
		Site:      s,
		Position:  pos,
		SunUp:     pos.SunUp(),
		SolarNoon: riseset.FormatHour(pos.SolarNoon * 24),
		Sunrise:   riseset.FormatHour(pos.Sunrise * 24),
		Sunset:    riseset.FormatHour(pos.Sunset * 24),
	})
}

// GetRiseSet returns the rise, set and twilight times for a date
// (YYYY-MM-DD, default today at the site).
func (h *Handlers) GetRiseSet(w http.ResponseWriter, req *http.Request) {
	s := h.controller.site

	date := req.URL.Query().Get("date")
	var d time.Time
	if date == "" {
		d = s.LocalTime(h.controller.now())
	} else {
		var err error
		d, err = time.Parse(time.DateOnly, date)
		if err != nil {
			h.badRequest(w, req, fmt.Errorf("date must be YYYY-MM-DD: %w", err))
			return
		}
	}

	r, err := riseset.CalculateDate(d, s)
	if err != nil {
		if errors.Is(err, riseset.ErrInvalidDate) {
			h.badRequest(w, req, err)
			return
		}
		h.serverError(w, req, err)
		return
	}

	h.write(w, req, RiseSetResponse{
		Date:      d.Format(time.DateOnly),
		Site:      s,
		Result:    r,
		Formatted: formatRiseSet(r),
	})
}

// GetMoon returns the moon phase at the requested time.
func (h *Handlers) GetMoon(w http.ResponseWriter, req *http.Request) {
	t, err := h.timeParam(req.URL.Query())
	if err != nil {
		h.badRequest(w, req, err)
		return
	}
	h.write(w, req, MoonResponse{Time: t, Moon: lunar.Calculate(t)})
}

// Healthz reports that the server is up.
func (h *Handlers) Healthz(w http.ResponseWriter, req *http.Request) {
	h.write(w, req, HealthResponse{Status: "ok", Site: h.controller.site})
}

// NotFound answers unknown paths with a JSON error.
func (h *Handlers) NotFound(w http.ResponseWriter, req *http.Request) {
	h.writeError(w, req, http.StatusNotFound, fmt.Errorf("no such endpoint: %s", req.URL.Path))
}

// MethodNotAllowed answers known paths hit with the wrong method.
func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, req *http.Request) {
	h.writeError(w, req, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", req.Method))
}

// timeParam parses the optional RFC 3339 time parameter and returns it in
// the site's local standard time.
func (h *Handlers) timeParam(q url.Values) (time.Time, error) {
	s := h.controller.site
	v := q.Get("time")
	if v == "" {
		return s.LocalTime(h.controller.now()), nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("time must be RFC 3339: %w", err)
	}
	return s.LocalTime(t), nil
}

// floatParam parses a finite numeric query parameter. A nil def makes it
// required.
func floatParam(q url.Values, name string, def *float64) (float64, error) {
	v := q.Get(name)
	if v == "" {
		if def == nil {
			return 0, fmt.Errorf("missing required parameter %q", name)
		}
		return *def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %w", name, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("parameter %q must be a finite number, got %q", name, v)
	}
	return f, nil
}

// write sends data with a 200. The formatter writes nothing when encoding
// fails, so that case still gets a proper 500.
func (h *Handlers) write(w http.ResponseWriter, req *http.Request, data any) {
	err := h.formatter.WriteResponse(w, req, http.StatusOK, data, nil)
	switch {
	case err == nil:
	case errors.Is(err, responseformat.ErrEncode):
		h.serverError(w, req, err)
	default:
		h.controller.logger.Errorw("error writing response", "path", req.URL.Path, "request_id", requestID(req), "error", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, req *http.Request, status int, err error) {
	if werr := h.formatter.WriteError(w, req, status, err); werr != nil {
		h.controller.logger.Errorw("error writing error response", "path", req.URL.Path, "request_id", requestID(req), "error", werr)
	}
}

func (h *Handlers) badRequest(w http.ResponseWriter, req *http.Request, err error) {
	h.controller.logger.Debugw("bad request", "path", req.URL.Path, "request_id", requestID(req), "error", err)
	h.writeError(w, req, http.StatusBadRequest, err)
}

func (h *Handlers) serverError(w http.ResponseWriter, req *http.Request, err error) {
	h.controller.logger.Errorw("request failed", "path", req.URL.Path, "request_id", requestID(req), "error", err)
	recordError(req, err)
	h.writeError(w, req, http.StatusInternalServerError, err)
}
