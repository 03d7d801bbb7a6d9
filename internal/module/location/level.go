package location

import (
	"regexp"
	"strings"

	"github.com/identi-digital/identi-modules/internal/domain"
)

var (
	countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)
	ubigeoPattern      = regexp.MustCompile(`^[0-9]{6,10}$`)
)

// fields holds validated values for a create or update. Nil pointers are
// left untouched on update; codeSet distinguishes clearing from absence.
type fields struct {
	parentID *string
	name     *string
	code     *string
	codeSet  bool
}

// level describes one tier of the location hierarchy.
type level[T any] struct {
	entity      string
	route       string
	parentField string // query/body key of the parent id, empty for the root
	codeField   string // body key of the level code, empty when the level has none
	codeNeeded  bool
	checkCode   func(string) (string, error)
	build       func(id string) *T
	idOf        func(*T) string
	assign      func(*T, fields)
}

var countries = level[domain.Country]{
	entity:     "country",
	route:      "countries",
	codeField:  "code",
	codeNeeded: true,
	checkCode: func(v string) (string, error) {
		v = strings.ToUpper(strings.TrimSpace(v))
		if !countryCodePattern.MatchString(v) {
			return "", domain.Validationf("code must be two letters")
		}
		return v, nil
	},
	build: func(id string) *domain.Country { return &domain.Country{BaseModel: domain.BaseModel{ID: id}} },
	idOf:  func(c *domain.Country) string { return c.ID },
	assign: func(c *domain.Country, f fields) {
		if f.name != nil {
			c.Name = *f.name
		}
		if f.codeSet && f.code != nil {
			c.Code = *f.code
		}
	},
}

var departments = level[domain.Department]{
	entity:      "department",
	route:       "departments",
	parentField: "country_id",
	build:       func(id string) *domain.Department { return &domain.Department{BaseModel: domain.BaseModel{ID: id}} },
	idOf:        func(d *domain.Department) string { return d.ID },
	assign: func(d *domain.Department, f fields) {
		if f.parentID != nil {
			d.CountryID = *f.parentID
		}
		if f.name != nil {
			d.Name = *f.name
		}
	},
}

var provinces = level[domain.Province]{
	entity:      "province",
	route:       "provinces",
	parentField: "department_id",
	build:       func(id string) *domain.Province { return &domain.Province{BaseModel: domain.BaseModel{ID: id}} },
	idOf:        func(p *domain.Province) string { return p.ID },
	assign: func(p *domain.Province, f fields) {
		if f.parentID != nil {
			p.DepartmentID = *f.parentID
		}
		if f.name != nil {
			p.Name = *f.name
		}
	},
}

var districts = level[domain.District]{
	entity:      "district",
	route:       "districts",
	parentField: "province_id",
	codeField:   "ubigeo",
	checkCode: func(v string) (string, error) {
		v = strings.TrimSpace(v)
		if !ubigeoPattern.MatchString(v) {
			return "", domain.Validationf("ubigeo must be 6 to 10 digits")
		}
		return v, nil
	},
	build: func(id string) *domain.District { return &domain.District{BaseModel: domain.BaseModel{ID: id}} },
	idOf:  func(d *domain.District) string { return d.ID },
	assign: func(d *domain.District, f fields) {
		if f.parentID != nil {
			d.ProvinceID = *f.parentID
		}
		if f.name != nil {
			d.Name = *f.name
		}
		if f.codeSet {
			d.Ubigeo = f.code
		}
	},
}
