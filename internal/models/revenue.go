package models

// Revenue is one month of the revenue chart, in whole dollars.
type Revenue struct {
	Month   string `gorm:"size:4;not null;uniqueIndex" json:"month"`
	Revenue int64  `gorm:"type:integer;not null;check:chk_revenue_non_negative,revenue >= 0" json:"revenue"`
}

func (Revenue) TableName() string {
	return "revenue"
}

// All lists every model in foreign-key order, for migrations.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Customer{},
		&Invoice{},
		&Revenue{},
	}
}
