package query

import "gorm.io/gorm"

// Apply adds p to db as a WHERE condition.
func Apply(db *gorm.DB, p Predicate) *gorm.DB {
	sql, args := p.SQL()
	if sql == "" {
		return db
	}
	return db.Where(sql, args...)
}

// Order adds the resolved ordering with the scheme's id as tiebreak.
func (s Scheme) Order(db *gorm.DB, srt Sort) *gorm.DB {
	return db.Order(srt.OrderBy(s.IDColumn))
}
