package models

// ModelsToAutoMigrate lists the tables owned by the local audit database.
func ModelsToAutoMigrate() []interface{} {
	return []interface{}{
		&NotificationRecord{},
	}
}
