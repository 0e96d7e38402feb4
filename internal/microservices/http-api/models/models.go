package models

// All lists every model in migration order; parents come before children.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Genre{},
		&Title{},
		&GenreTitle{},
		&Review{},
		&Comment{},
	}
}
