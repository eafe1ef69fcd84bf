package employee

// Employee is one row of the employees table. Column names are part of the
// on-disk compatibility contract and must not change without a migration.
type Employee struct {
	EmpNo        string  `gorm:"column:emp_no;primaryKey"`
	Name         string  `gorm:"column:name"`
	Position     *string `gorm:"column:position"`
	NationalID   *string `gorm:"column:rrn"`
	Phone        *string `gorm:"column:phone"`
	HourlyWage   int64   `gorm:"column:wage;default:0"`
	Bank         *string `gorm:"column:bank"`
	Account      *string `gorm:"column:account"`
	Address      *string `gorm:"column:address"`
	ContractDate *string `gorm:"column:contract_date"`
	Memo         *string `gorm:"column:memo"`
}

func (Employee) TableName() string {
	return "employees"
}
