// Package catalog holds the static role and compensation reference data.
//
// The catalog is read-only: the planner queries bands by role and location
// but never mutates them. Amounts are annual USD.
package catalog

import "sort"

// RoleKey identifies a catalog role.
type RoleKey string

// LocationKey identifies a supported location/cost tier.
type LocationKey string

// Function groups roles for display.
type Function string

// Role keys.
const (
	EngSoftware  RoleKey = "ENG_SOFTWARE"
	EngSenior    RoleKey = "ENG_SENIOR"
	EngStaff     RoleKey = "ENG_STAFF"
	EngManager   RoleKey = "ENG_MANAGER"
	SalesSDR     RoleKey = "SALES_SDR"
	SalesAE      RoleKey = "SALES_AE"
	SalesManager RoleKey = "SALES_MANAGER"
	DesignPD     RoleKey = "DESIGN_PD"
	DesignLead   RoleKey = "DESIGN_LEAD"
	OpsPeople    RoleKey = "OPS_PEOPLE"
	OpsFinance   RoleKey = "OPS_FINANCE"
)

// Locations.
const (
	LocSF       LocationKey = "SF"
	LocNYC      LocationKey = "NYC"
	LocAusDen   LocationKey = "AUS_DEN"
	LocRemoteUS LocationKey = "REMOTE_US"
	LocOffshore LocationKey = "OFFSHORE"
)

// Functions.
const (
	Engineering Function = "Engineering"
	Sales       Function = "Sales"
	Design      Function = "Design"
	Operations  Function = "Operations"
)

// Band is the below-market / mid-market / above-market salary range for a
// role at a location.
type Band struct {
	Min     float64
	Default float64
	Max     float64
}

// Role is one catalog entry.
type Role struct {
	Key      RoleKey
	Name     string
	Function Function
	Salary   map[LocationKey]Band
}

// RoleOrder is the canonical role ordering. The share-link codec stores
// roles by position in this slice, so entries must never be reordered.
var RoleOrder = []RoleKey{
	EngSoftware,
	EngSenior,
	EngStaff,
	EngManager,
	SalesSDR,
	SalesAE,
	SalesManager,
	DesignPD,
	DesignLead,
	OpsPeople,
	OpsFinance,
}

// LocationOrder is the canonical location ordering, same contract as RoleOrder.
var LocationOrder = []LocationKey{LocSF, LocNYC, LocAusDen, LocRemoteUS, LocOffshore}

var locationLabels = map[LocationKey]string{
	LocSF:       "SF",
	LocNYC:      "NYC",
	LocAusDen:   "Austin / Denver",
	LocRemoteUS: "Remote (US)",
	LocOffshore: "Offshore",
}

var roles = map[RoleKey]Role{
	EngSoftware: {
		Key: EngSoftware, Name: "Software Engineer", Function: Engineering,
		Salary: map[LocationKey]Band{
			LocSF:       {Min: 140_000, Default: 165_000, Max: 190_000},
			LocNYC:      {Min: 135_000, Default: 160_000, Max: 185_000},
			LocAusDen:   {Min: 120_000, Default: 145_000, Max: 165_000},
			LocRemoteUS: {Min: 115_000, Default: 140_000, Max: 165_000},
			LocOffshore: {Min: 45_000, Default: 60_000, Max: 80_000},
		},
	},
	EngSenior: {
		Key: EngSenior, Name: "Senior Software Engineer", Function: Engineering,
		Salary: map[LocationKey]Band{
			LocSF:       {Min: 180_000, Default: 220_000, Max: 260_000},
			LocNYC:      {Min: 175_000, Default: 210_000, Max: 250_000},
			LocAusDen:   {Min: 155_000, Default: 185_000, Max: 220_000},
			LocRemoteUS: {Min: 150_000, Default: 180_000, Max: 220_000},
			LocOffshore: {Min: 60_000, Default: 85_000, Max: 110_000},
		},
	},
	EngStaff: {
		Key: EngStaff, Name: "Staff Engineer", Function: Engineering,
		Salary: map[LocationKey]Band{
			LocSF:       {Min: 240_000, Default: 300_000, Max: 360_000},
			LocNYC:      {Min: 230_000, Default: 285_000, Max: 340_000},
			LocAusDen:   {Min: 200_000, Default: 245_000, Max: 300_000},
			LocRemoteUS: {Min: 195_000, Default: 240_000, Max: 300_000},
			LocOffshore: {Min: 80_000, Default: 115_000, Max: 150_000},
		},
	},
	EngManager: {
		Key: EngManager, Name: "Engineering Manager", Function: Engineering,
		Salary: map[LocationKey]Band{
			LocSF:       {Min: 220_000, Default: 280_000, Max: 340_000},
			LocNYC:      {Min: 210_000, Default: 270_000, Max: 330_000},
			LocAusDen:   {Min: 185_000, Default: 235_000, Max: 285_000},
			LocRemoteUS: {Min: 180_000, Default: 230_000, Max: 285_000},
			LocOffshore: {Min: 75_000, Default: 105_000, Max: 140_000},
		},
	},
	SalesSDR: {
		Key: SalesSDR, Name: "Sales Development Rep (SDR)", Function: Sales,
		Salary: map[LocationKey]Band{
			LocSF:       {Min: 70_000, Default: 85_000, Max: 95_000},
			LocNYC:      {Min: 70_000, Default: 85_000, Max: 95_000},
			LocAusDen:   {Min: 60_000, Default: 75_000, Max: 85_000},
			LocRemoteUS: {Min: 55_000, Default: 70_000, Max: 85_000},
			LocOffshore: {Min: 25_000, Default: 35_000, Max: 45_000},
		},
	},
	SalesAE: {
		Key: SalesAE, Name: "Account Executive (AE)", Function: Sales,
		Salary: map[LocationKey]Band{
			LocSF:       {Min: 110_000, Default: 135_000, Max: 160_000},
			LocNYC:      {Min: 110_000, Default: 135_000, Max: 160_000},
			LocAusDen:   {Min: 95_000, Default: 120_000, Max: 140_000},
			LocRemoteUS: {Min: 90_000, Default: 115_000, Max: 140_000},
			LocOffshore: {Min: 35_000, Default: 50_000, Max: 70_000},
		},
	},
	SalesManager: {
		Key: SalesManager, Name: "Sales Manager", Function: Sales,
		Salary: map[LocationKey]Band{
			LocSF:       {Min: 150_000, Default: 190_000, Max: 230_000},
			LocNYC:      {Min: 145_000, Default: 185_000, Max: 225_000},
			LocAusDen:   {Min: 130_000, Default: 165_000, Max: 200_000},
			LocRemoteUS: {Min: 125_000, Default: 160_000, Max: 200_000},
			LocOffshore: {Min: 55_000, Default: 75_000, Max: 100_000},
		},
	},
	DesignPD: {
		Key: DesignPD, Name: "Product Designer", Function: Design,
		Salary: map[LocationKey]Band{
			LocSF:       {Min: 130_000, Default: 160_000, Max: 190_000},
			LocNYC:      {Min: 125_000, Default: 155_000, Max: 185_000},
			LocAusDen:   {Min: 110_000, Default: 135_000, Max: 160_000},
			LocRemoteUS: {Min: 105_000, Default: 130_000, Max: 160_000},
			LocOffshore: {Min: 40_000, Default: 60_000, Max: 80_000},
		},
	},
	DesignLead: {
		Key: DesignLead, Name: "Design Lead", Function: Design,
		Salary: map[LocationKey]Band{
			LocSF:       {Min: 170_000, Default: 215_000, Max: 260_000},
			LocNYC:      {Min: 165_000, Default: 205_000, Max: 250_000},
			LocAusDen:   {Min: 145_000, Default: 180_000, Max: 220_000},
			LocRemoteUS: {Min: 140_000, Default: 175_000, Max: 220_000},
			LocOffshore: {Min: 65_000, Default: 90_000, Max: 120_000},
		},
	},
	OpsPeople: {
		Key: OpsPeople, Name: "People Ops / HR Generalist", Function: Operations,
		Salary: map[LocationKey]Band{
			LocSF:       {Min: 90_000, Default: 115_000, Max: 140_000},
			LocNYC:      {Min: 90_000, Default: 115_000, Max: 140_000},
			LocAusDen:   {Min: 75_000, Default: 95_000, Max: 120_000},
			LocRemoteUS: {Min: 70_000, Default: 90_000, Max: 120_000},
			LocOffshore: {Min: 30_000, Default: 42_000, Max: 55_000},
		},
	},
	OpsFinance: {
		Key: OpsFinance, Name: "Finance / Ops Generalist", Function: Operations,
		Salary: map[LocationKey]Band{
			LocSF:       {Min: 100_000, Default: 130_000, Max: 160_000},
			LocNYC:      {Min: 100_000, Default: 130_000, Max: 160_000},
			LocAusDen:   {Min: 85_000, Default: 110_000, Max: 140_000},
			LocRemoteUS: {Min: 80_000, Default: 105_000, Max: 140_000},
			LocOffshore: {Min: 35_000, Default: 50_000, Max: 65_000},
		},
	},
}

// Lookup returns the catalog entry for a role key.
func Lookup(key RoleKey) (Role, bool) {
	r, ok := roles[key]
	return r, ok
}

// SalaryBand returns the band for a role at a location.
func SalaryBand(key RoleKey, loc LocationKey) (Band, bool) {
	r, ok := roles[key]
	if !ok {
		return Band{}, false
	}
	b, ok := r.Salary[loc]
	return b, ok
}

// Roles returns all catalog entries in canonical order.
func Roles() []Role {
	out := make([]Role, 0, len(RoleOrder))
	for _, key := range RoleOrder {
		out = append(out, roles[key])
	}
	return out
}

// RolesByFunction returns catalog entries grouped by function, each group
// sorted by SF mid-market salary ascending.
func RolesByFunction() map[Function][]Role {
	grouped := make(map[Function][]Role)
	for _, key := range RoleOrder {
		r := roles[key]
		grouped[r.Function] = append(grouped[r.Function], r)
	}
	for fn := range grouped {
		group := grouped[fn]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Salary[LocSF].Default < group[j].Salary[LocSF].Default
		})
	}
	return grouped
}

// LocationLabel returns the display label for a location.
func LocationLabel(loc LocationKey) string {
	if l, ok := locationLabels[loc]; ok {
		return l
	}
	return string(loc)
}

// ValidLocation reports whether loc is a known location key.
func ValidLocation(loc LocationKey) bool {
	_, ok := locationLabels[loc]
	return ok
}

// FunctionColor returns the display color (hex) for a role function.
func FunctionColor(fn Function) string {
	switch fn {
	case Engineering:
		return "#3B82F6"
	case Sales:
		return "#10B981"
	case Design:
		return "#8B5CF6"
	case Operations:
		return "#F59E0B"
	default:
		return "#6F6E69"
	}
}

// FunctionGlyph returns a single-rune marker for a role function, used by
// terminal views in place of the web app's icons.
func FunctionGlyph(fn Function) string {
	switch fn {
	case Engineering:
		return "⚙"
	case Sales:
		return "◆"
	case Design:
		return "✎"
	case Operations:
		return "▣"
	default:
		return "·"
	}
}
