package plan

import (
	"github.com/google/uuid"

	"github.com/headwayhq/headway/internal/catalog"
)

// FindRole returns the placed role with the given id, or nil.
func (s *Scenario) FindRole(id string) *PlacedRole {
	for i := range s.PlacedRoles {
		if s.PlacedRoles[i].ID == id {
			return &s.PlacedRoles[i]
		}
	}
	return nil
}

// AddRole places a catalog role on the timeline at startMonth using the
// scenario's default location and rate tier. Returns nil for unknown roles.
func (s *Scenario) AddRole(key catalog.RoleKey, startMonth string) *PlacedRole {
	band, ok := catalog.SalaryBand(key, s.DefaultLocation)
	if !ok {
		return nil
	}

	sel := s.DefaultRateTier.Selection()
	s.PlacedRoles = append(s.PlacedRoles, PlacedRole{
		ID:         uuid.NewString(),
		Role:       key,
		StartMonth: startMonth,
		Location:   s.DefaultLocation,
		Salary:     BandAmount(band, sel),
		Selection:  sel,
	})
	return &s.PlacedRoles[len(s.PlacedRoles)-1]
}

// RemoveRole deletes a placed role by id.
func (s *Scenario) RemoveRole(id string) bool {
	for i := range s.PlacedRoles {
		if s.PlacedRoles[i].ID == id {
			s.PlacedRoles = append(s.PlacedRoles[:i], s.PlacedRoles[i+1:]...)
			return true
		}
	}
	return false
}

// DuplicateRole copies a placed role under a fresh id.
func (s *Scenario) DuplicateRole(id string) *PlacedRole {
	src := s.FindRole(id)
	if src == nil {
		return nil
	}
	dup := *src
	dup.ID = uuid.NewString()
	s.PlacedRoles = append(s.PlacedRoles, dup)
	return &s.PlacedRoles[len(s.PlacedRoles)-1]
}

// MoveRole changes a placed role's start month.
func (s *Scenario) MoveRole(id, startMonth string) bool {
	r := s.FindRole(id)
	if r == nil {
		return false
	}
	r.StartMonth = startMonth
	return true
}

// SetRoleLocation moves a placed role to a new location and re-resolves its
// salary from the catalog band at the unchanged tier. Hand-edited (custom)
// salaries are left alone.
func (s *Scenario) SetRoleLocation(id string, loc catalog.LocationKey) bool {
	r := s.FindRole(id)
	if r == nil {
		return false
	}
	band, ok := catalog.SalaryBand(r.Role, loc)
	if !ok {
		return false
	}
	r.Location = loc
	if r.Selection != SalaryCustom {
		r.Salary = BandAmount(band, r.Selection)
	}
	return true
}

// SetRoleTier switches a placed role to an explicit band point and
// re-resolves the salary, clearing any custom amount.
func (s *Scenario) SetRoleTier(id string, tier RateTier) bool {
	r := s.FindRole(id)
	if r == nil {
		return false
	}
	band, ok := catalog.SalaryBand(r.Role, r.Location)
	if !ok {
		return false
	}
	sel := tier.Selection()
	r.Selection = sel
	r.Salary = BandAmount(band, sel)
	return true
}

// SetRoleSalary hand-edits a placed role's salary, marking it custom.
func (s *Scenario) SetRoleSalary(id string, amount float64) bool {
	r := s.FindRole(id)
	if r == nil {
		return false
	}
	r.Salary = amount
	r.Selection = SalaryCustom
	return true
}
