package location

// CreateLocationRequest is the body accepted by every level. Only the parent
// key and code key of the target level are read.
type CreateLocationRequest struct {
	CountryID    string  `json:"country_id" binding:"omitempty,uuid"`
	DepartmentID string  `json:"department_id" binding:"omitempty,uuid"`
	ProvinceID   string  `json:"province_id" binding:"omitempty,uuid"`
	Name         string  `json:"name" binding:"required,min=2,max=100"`
	Code         *string `json:"code" binding:"omitempty,max=2"`
	Ubigeo       *string `json:"ubigeo" binding:"omitempty,max=10"`
}

// UpdateLocationRequest is a partial update; omitted fields are kept.
type UpdateLocationRequest struct {
	CountryID    *string `json:"country_id" binding:"omitempty,uuid"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	ProvinceID   *string `json:"province_id" binding:"omitempty,uuid"`
	Name         *string `json:"name" binding:"omitempty,min=2,max=100"`
	Code         *string `json:"code" binding:"omitempty,max=2"`
	Ubigeo       *string `json:"ubigeo" binding:"omitempty,max=10"`
}

func (r *CreateLocationRequest) parent(key string) string {
	switch key {
	case "country_id":
		return r.CountryID
	case "department_id":
		return r.DepartmentID
	case "province_id":
		return r.ProvinceID
	}
	return ""
}

func (r *UpdateLocationRequest) parent(key string) *string {
	switch key {
	case "country_id":
		return r.CountryID
	case "department_id":
		return r.DepartmentID
	case "province_id":
		return r.ProvinceID
	}
	return nil
}

func pickCode(key string, code, ubigeo *string) *string {
	switch key {
	case "code":
		return code
	case "ubigeo":
		return ubigeo
	}
	return nil
}
