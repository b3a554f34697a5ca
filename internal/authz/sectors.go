package authz

import (
	"database/sql/driver"
	"fmt"
)

// Sector is the organizational department of the acting user.
type Sector int

const (
	SectorUnknown Sector = iota
	SectorAdministration
	SectorMaintenance
	SectorOperations
	SectorProcurement
	SectorCrew
	SectorWarehouse
	SectorHR
	SectorIT
	SectorUndefined

	sectorCount
)

var sectorCodes = [...]string{
	SectorUnknown:        "",
	SectorAdministration: "ADMINISTRATION",
	SectorMaintenance:    "MAINTENANCE",
	SectorOperations:     "OPERATIONS",
	SectorProcurement:    "PROCUREMENT",
	SectorCrew:           "CREW",
	SectorWarehouse:      "WAREHOUSE",
	SectorHR:             "HR",
	SectorIT:             "IT",
	SectorUndefined:      "UNDEFINED",
}

var _ [sectorCount]struct{} = [len(sectorCodes)]struct{}{}

var sectorsByCode = func() map[string]Sector {
	m := make(map[string]Sector, sectorCount)
	for s := SectorAdministration; s < sectorCount; s++ {
		m[sectorCodes[s]] = s
	}
	return m
}()

// AllSectors returns every valid sector in declaration order.
func AllSectors() []Sector {
	out := make([]Sector, 0, sectorCount-1)
	for s := SectorAdministration; s < sectorCount; s++ {
		out = append(out, s)
	}
	return out
}

// IsValid reports whether s is a declared sector. SectorUndefined is valid:
// it is the department of users not yet assigned anywhere.
func (s Sector) IsValid() bool { return s > SectorUnknown && s < sectorCount }

func (s Sector) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("Sector(%d)", int(s))
	}
	return sectorCodes[s]
}

func ParseSector(code string) (Sector, error) {
	if s, ok := sectorsByCode[code]; ok {
		return s, nil
	}
	return SectorUnknown, newValidationError("sector", code)
}

func (s Sector) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, newValidationError("sector", s.String())
	}
	return []byte(sectorCodes[s]), nil
}

func (s *Sector) UnmarshalText(text []byte) error {
	parsed, err := ParseSector(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s *Sector) Scan(src any) error {
	code, err := scanCode("sector", src)
	if err != nil {
		return err
	}
	return s.UnmarshalText([]byte(code))
}

func (s Sector) Value() (driver.Value, error) {
	b, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

type sectorSet uint16

func sectorsOf(sectors ...Sector) sectorSet {
	var set sectorSet
	for _, s := range sectors {
		set |= 1 << uint(s)
	}
	return set
}

func (set sectorSet) has(s Sector) bool {
	return s.IsValid() && set&(1<<uint(s)) != 0
}

func (set sectorSet) list() []Sector {
	var out []Sector
	for s := SectorAdministration; s < sectorCount; s++ {
		if set.has(s) {
			out = append(out, s)
		}
	}
	return out
}
