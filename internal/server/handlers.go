package server

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/headwayhq/headway/internal/catalog"
	"github.com/headwayhq/headway/internal/codec"
	"github.com/headwayhq/headway/internal/month"
	"github.com/headwayhq/headway/internal/plan"
	"github.com/headwayhq/headway/internal/project"
)

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// projectRequest is a standalone scenario for projection. Roles reference
// the catalog by key; a zero salary means "use the band at the given tier".
type projectRequest struct {
	FundingAmount        float64       `json:"fundingAmount"`
	MRR                  float64       `json:"mrr"`
	MRRGrowthRate        float64       `json:"mrrGrowthRate"`
	OtherCosts           float64       `json:"otherCosts"`
	OtherCostsGrowthRate float64       `json:"otherCostsGrowthRate"`
	HorizonMonths        int           `json:"horizonMonths"`
	Roles                []roleRequest `json:"roles"`
}

type roleRequest struct {
	Role       string  `json:"role"`
	StartMonth string  `json:"startMonth"`
	Location   string  `json:"location"`
	Tier       string  `json:"tier,omitempty"`
	Salary     float64 `json:"salary,omitempty"`
}

type projectResponse struct {
	Runway   runwayJSON     `json:"runway"`
	Timeline []timelineJSON `json:"timeline"`
}

type runwayJSON struct {
	RunOutMonth     string `json:"runOutMonth,omitempty"`
	RunOutLabel     string `json:"runOutLabel,omitempty"`
	IsProfitable    bool   `json:"isProfitable"`
	ProfitableMonth string `json:"profitableMonth,omitempty"`
	ProfitableLabel string `json:"profitableLabel,omitempty"`
}

type timelineJSON struct {
	Month   string  `json:"month"`
	Balance float64 `json:"balance"`
	Burn    float64 `json:"burn"`
}

type scenarioJSON struct {
	Name                 string     `json:"name,omitempty"`
	FundingAmount        float64    `json:"fundingAmount"`
	MRR                  float64    `json:"mrr"`
	MRRGrowthRate        float64    `json:"mrrGrowthRate"`
	OtherCosts           float64    `json:"otherCosts"`
	OtherCostsGrowthRate float64    `json:"otherCostsGrowthRate"`
	DefaultLocation      string     `json:"defaultLocation"`
	DefaultRateTier      string     `json:"defaultRateTier"`
	Roles                []roleJSON `json:"roles"`
}

type roleJSON struct {
	ID         string  `json:"id"`
	Role       string  `json:"role"`
	StartMonth string  `json:"startMonth"`
	Location   string  `json:"location"`
	Salary     float64 `json:"salary"`
	Selection  string  `json:"selection"`
}

type stateJSON struct {
	ActiveIndex int            `json:"activeIndex"`
	Scenarios   []scenarioJSON `json:"scenarios"`
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(ctx *fasthttp.RequestCtx) {
	type bandJSON struct {
		Min     float64 `json:"min"`
		Default float64 `json:"default"`
		Max     float64 `json:"max"`
	}
	type catalogRole struct {
		Key      string              `json:"key"`
		Name     string              `json:"name"`
		Function string              `json:"function"`
		Salary   map[string]bandJSON `json:"salary"`
	}

	out := struct {
		Roles     []catalogRole `json:"roles"`
		Locations []string      `json:"locations"`
	}{}

	for _, role := range catalog.Roles() {
		cr := catalogRole{
			Key:      string(role.Key),
			Name:     role.Name,
			Function: string(role.Function),
			Salary:   make(map[string]bandJSON, len(role.Salary)),
		}
		for loc, band := range role.Salary {
			cr.Salary[string(loc)] = bandJSON{Min: band.Min, Default: band.Default, Max: band.Max}
		}
		out.Roles = append(out.Roles, cr)
	}
	for _, loc := range catalog.LocationOrder {
		out.Locations = append(out.Locations, string(loc))
	}

	writeJSON(ctx, fasthttp.StatusOK, out)
}

func (s *Server) handleProject(ctx *fasthttp.RequestCtx) {
	var req projectRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	roles, err := placedRoles(req.Roles)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	horizon := req.HorizonMonths
	if horizon <= 0 {
		horizon = 36
	}

	runway := project.Runway(
		roles, req.FundingAmount, req.MRR, req.MRRGrowthRate,
		req.OtherCosts, req.OtherCostsGrowthRate,
	)
	timeline := project.CashBalanceTimeline(
		roles, req.FundingAmount, req.MRR, req.MRRGrowthRate,
		req.OtherCosts, req.OtherCostsGrowthRate,
		month.Range(month.CurrentStart(), horizon),
	)

	resp := projectResponse{
		Runway: runwayJSON{
			RunOutMonth:     runway.RunOutMonth,
			RunOutLabel:     runway.RunOutLabel,
			IsProfitable:    runway.IsProfitable,
			ProfitableMonth: runway.ProfitableMonth,
			ProfitableLabel: runway.ProfitableLabel,
		},
	}
	for _, mb := range timeline {
		resp.Timeline = append(resp.Timeline, timelineJSON{Month: mb.Month, Balance: mb.Balance, Burn: mb.Burn})
	}

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *Server) handleDecode(ctx *fasthttp.RequestCtx) {
	encoded := string(ctx.QueryArgs().Peek("s"))
	if encoded == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "missing query parameter s")
		return
	}

	st := codec.DecodeScenariosState(encoded)
	if st == nil {
		writeError(ctx, fasthttp.StatusBadRequest, "unrecognized share payload")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, stateToJSON(*st))
}

func (s *Server) handleEncode(ctx *fasthttp.RequestCtx) {
	var req stateJSON
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Scenarios) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "at least one scenario is required")
		return
	}

	st, err := stateFromJSON(req)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	encoded, err := codec.EncodeScenariosState(st)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "encoding failed: "+err.Error())
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"s": encoded})
}

// placedRoles validates request roles against the catalog. Band salaries are
// resolved server-side so callers only send a tier unless hand-editing.
func placedRoles(reqs []roleRequest) ([]plan.PlacedRole, error) {
	out := make([]plan.PlacedRole, 0, len(reqs))
	for i, rr := range reqs {
		key := catalog.RoleKey(rr.Role)
		if _, ok := catalog.Lookup(key); !ok {
			return nil, fmt.Errorf("role %d: unknown role %q", i+1, rr.Role)
		}
		loc := catalog.LocationKey(rr.Location)
		if !catalog.ValidLocation(loc) {
			return nil, fmt.Errorf("role %d: unknown location %q", i+1, rr.Location)
		}
		if _, err := month.Parse(rr.StartMonth); err != nil {
			return nil, fmt.Errorf("role %d: bad start month %q", i+1, rr.StartMonth)
		}

		sel := plan.SalarySelection(rr.Tier)
		if rr.Tier == "" {
			sel = plan.SalaryDefault
		}

		var salary float64
		switch sel {
		case plan.SalaryMin, plan.SalaryDefault, plan.SalaryMax:
			band, ok := catalog.SalaryBand(key, loc)
			if !ok {
				return nil, fmt.Errorf("role %d: no salary band for %q at %q", i+1, rr.Role, rr.Location)
			}
			salary = plan.BandAmount(band, sel)
		case plan.SalaryCustom:
			if rr.Salary <= 0 {
				return nil, fmt.Errorf("role %d: custom tier needs a positive salary", i+1)
			}
			salary = rr.Salary
		default:
			return nil, fmt.Errorf("role %d: unknown tier %q", i+1, rr.Tier)
		}

		out = append(out, plan.PlacedRole{
			ID:         fmt.Sprintf("api-%d", i),
			Role:       key,
			StartMonth: rr.StartMonth,
			Location:   loc,
			Salary:     salary,
			Selection:  sel,
		})
	}
	return out, nil
}

func stateToJSON(st plan.State) stateJSON {
	out := stateJSON{ActiveIndex: st.ActiveIndex}
	for _, s := range st.Scenarios {
		sj := scenarioJSON{
			Name:                 s.Name,
			FundingAmount:        s.FundingAmount,
			MRR:                  s.MRR,
			MRRGrowthRate:        s.MRRGrowthRate,
			OtherCosts:           s.OtherCosts,
			OtherCostsGrowthRate: s.OtherCostsGrowthRate,
			DefaultLocation:      string(s.DefaultLocation),
			DefaultRateTier:      string(s.DefaultRateTier),
			Roles:                []roleJSON{},
		}
		for _, pr := range s.PlacedRoles {
			sj.Roles = append(sj.Roles, roleJSON{
				ID:         pr.ID,
				Role:       string(pr.Role),
				StartMonth: pr.StartMonth,
				Location:   string(pr.Location),
				Salary:     pr.Salary,
				Selection:  string(pr.Selection),
			})
		}
		out.Scenarios = append(out.Scenarios, sj)
	}
	return out
}

func stateFromJSON(in stateJSON) (plan.State, error) {
	st := plan.State{ActiveIndex: in.ActiveIndex}
	for i, sj := range in.Scenarios {
		loc := catalog.LocationKey(sj.DefaultLocation)
		if sj.DefaultLocation == "" {
			loc = catalog.LocSF
		} else if !catalog.ValidLocation(loc) {
			return plan.State{}, fmt.Errorf("scenario %d: unknown default location %q", i+1, sj.DefaultLocation)
		}

		tier := plan.RateTier(sj.DefaultRateTier)
		switch tier {
		case plan.TierMin, plan.TierDefault, plan.TierMax:
		case "":
			tier = plan.TierDefault
		default:
			return plan.State{}, fmt.Errorf("scenario %d: unknown rate tier %q", i+1, sj.DefaultRateTier)
		}

		s := plan.Scenario{
			Name:                 sj.Name,
			FundingAmount:        sj.FundingAmount,
			MRR:                  sj.MRR,
			MRRGrowthRate:        sj.MRRGrowthRate,
			OtherCosts:           sj.OtherCosts,
			OtherCostsGrowthRate: sj.OtherCostsGrowthRate,
			DefaultLocation:      loc,
			DefaultRateTier:      tier,
		}

		reqs := make([]roleRequest, 0, len(sj.Roles))
		for _, rj := range sj.Roles {
			reqs = append(reqs, roleRequest{
				Role:       rj.Role,
				StartMonth: rj.StartMonth,
				Location:   rj.Location,
				Tier:       rj.Selection,
				Salary:     rj.Salary,
			})
		}
		roles, err := placedRoles(reqs)
		if err != nil {
			return plan.State{}, fmt.Errorf("scenario %d: %w", i+1, err)
		}
		for j := range roles {
			if sj.Roles[j].ID != "" {
				roles[j].ID = sj.Roles[j].ID
			}
		}
		s.PlacedRoles = roles
		st.Scenarios = append(st.Scenarios, s)
	}

	if st.ActiveIndex < 0 || st.ActiveIndex >= len(st.Scenarios) {
		st.ActiveIndex = 0
	}
	return st, nil
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	data, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"status":500,"message":"encoding response"}`)
		return
	}
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, errorResponse{Status: status, Message: message})
}
