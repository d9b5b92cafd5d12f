package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/outlink-dev/outlink/internal/codec"
	"github.com/outlink-dev/outlink/internal/domain"
	"github.com/outlink-dev/outlink/internal/engine"
	"github.com/outlink-dev/outlink/internal/httpserver/deps"
	"github.com/outlink-dev/outlink/internal/launch"
	"github.com/outlink-dev/outlink/internal/logger"
)

type launchStep struct {
	URL    string `json:"url"`
	Type   string `json:"type"`
	Label  string `json:"label,omitempty"`
	Method string `json:"method"`
}

type timingsResponse struct {
	PerAttemptMs       int64 `json:"per_attempt_ms"`
	AfterStoreReturnMs int64 `json:"after_store_return_ms"`
	InterAttemptMs     int64 `json:"inter_attempt_ms"`
	ReturnSettleMs     int64 `json:"return_settle_ms"`
	StoreReturnWindowS int64 `json:"store_return_window_s"`
}

type launchPlanResponse struct {
	Link        domain.CandidateLink  `json:"link"`
	OS          string                `json:"os"`
	InApp       bool                  `json:"in_app"`
	AutoTry     []launchStep          `json:"auto_try"`
	StoreLinks  []domain.OutboundLink `json:"store_links"`
	WebLink     string                `json:"web_link,omitempty"`
	GooglePlay  string                `json:"google_play,omitempty"`
	IntlAndroid bool                  `json:"intl_android"`
	ReturnTo    string                `json:"return_to,omitempty"`
	Timings     timingsResponse       `json:"timings"`
}

type decodeErrorResponse struct {
	Error codec.DecodeError `json:"error"`
}

// Out is the landing page's single backend call: it decodes the token,
// detects the caller's platform and returns the full launch plan.
func Out(d deps.Deps) http.HandlerFunc {
	memIndex := d.MemoryIndex

	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		locale := q.Get("locale")

		ua := q.Get("ua")
		if ua == "" {
			ua = r.UserAgent()
		}
		appFlag, _ := strconv.ParseBool(q.Get("app"))

		allow := codec.NewAllowlist(memIndex.Registry())
		link, decErr := codec.Decode(q.Get("data"), locale, allow)
		if decErr != nil {
			d.Logger.Warn("token decode failed",
				logger.String("code", string(decErr.Code)))
			status := http.StatusBadRequest
			if decErr.Code == codec.ErrTargetNotAllowed {
				status = http.StatusForbidden
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(decodeErrorResponse{Error: *decErr})
			return
		}

		platform := engine.DetectPlatform(ua, appFlag, nil, d.DeploymentCN)
		intlAndroid := engine.IsIntlAndroidContext(link, platform.OS, d.DeploymentCN)

		autoTry := engine.AutoTryLinks(link, platform.OS)
		if intlAndroid {
			autoTry = engine.SanitizeIntlAndroid(autoTry)
		}

		steps := make([]launchStep, 0, len(autoTry))
		for _, l := range autoTry {
			steps = append(steps, launchStep{
				URL:    l.URL,
				Type:   string(l.Type),
				Label:  l.Label,
				Method: string(launch.MethodFor(l, platform.InApp)),
			})
		}

		stores := engine.FilterStoreLinksByOS(engine.StoreLinks(link), platform.OS)
		if stores == nil {
			stores = []domain.OutboundLink{}
		}

		plan := launchPlanResponse{
			Link:        *link,
			OS:          string(platform.OS),
			InApp:       platform.InApp,
			AutoTry:     steps,
			StoreLinks:  stores,
			IntlAndroid: intlAndroid,
			ReturnTo:    codec.ValidateReturnTo(q.Get("returnTo")),
			Timings: timingsResponse{
				PerAttemptMs:       d.Timings.PerAttempt.Milliseconds(),
				AfterStoreReturnMs: d.Timings.AfterStoreReturn.Milliseconds(),
				InterAttemptMs:     d.Timings.InterAttempt.Milliseconds(),
				ReturnSettleMs:     d.Timings.ReturnSettle.Milliseconds(),
				StoreReturnWindowS: int64(d.Timings.StoreReturnWindow.Seconds()),
			},
		}
		if web := engine.WebLink(link); web != nil {
			plan.WebLink = web.URL
		}
		if gp := engine.GooglePlayLink(stores); gp != nil {
			plan.GooglePlay = gp.URL
		} else if intlAndroid {
			plan.GooglePlay = engine.FallbackGooglePlayURL(link)
		}

		d.Logger.Info("launch plan built",
			logger.String("provider", link.Provider),
			logger.String("os", string(platform.OS)),
			logger.Bool("in_app", platform.InApp),
			logger.Bool("intl_android", intlAndroid),
			logger.Int("auto_try", len(steps)),
			logger.Int("store_links", len(stores)))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(plan)
	}
}
