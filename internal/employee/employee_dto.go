package employee

type CreateEmployeeRequest struct {
	EmpNo        string  `json:"emp_no" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Position     *string `json:"position"`
	NationalID   *string `json:"national_id"`
	Phone        *string `json:"phone"`
	HourlyWage   int64   `json:"hourly_wage" validate:"gte=0"`
	Bank         *string `json:"bank"`
	Account      *string `json:"account"`
	Address      *string `json:"address"`
	ContractDate *string `json:"contract_date"`
	Memo         *string `json:"memo"`
}

type UpdateEmployeeRequest struct {
	Name         string  `json:"name" validate:"required"`
	Position     *string `json:"position"`
	NationalID   *string `json:"national_id"`
	Phone        *string `json:"phone"`
	HourlyWage   int64   `json:"hourly_wage" validate:"gte=0"`
	Bank         *string `json:"bank"`
	Account      *string `json:"account"`
	Address      *string `json:"address"`
	ContractDate *string `json:"contract_date"`
	Memo         *string `json:"memo"`
}

type EmployeeResponse struct {
	EmpNo        string  `json:"emp_no"`
	Name         string  `json:"name"`
	Position     *string `json:"position,omitempty"`
	NationalID   *string `json:"national_id,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	HourlyWage   int64   `json:"hourly_wage"`
	Bank         *string `json:"bank,omitempty"`
	Account      *string `json:"account,omitempty"`
	Address      *string `json:"address,omitempty"`
	ContractDate *string `json:"contract_date,omitempty"`
	Memo         *string `json:"memo,omitempty"`
}
