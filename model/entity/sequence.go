package entity

// Sequence is one row of the primary-key allocator. Not a registered entity.
type Sequence struct {
	Name  string `gorm:"column:Name;primaryKey;type:varchar(64)"`
	Value int64  `gorm:"column:Value;not null;default:0"`
}

func (Sequence) TableName() string { return "T_Sequences" }

// Schema returns every model AutoMigrate should create, including the allocator.
func Schema() []any {
	return append(Models(), &Sequence{})
}
