package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Group{},
		&User{},
		&Wish{},
		&CartReservation{},
		&QuizQuestion{},
		&UserQuiz{},
		&UserAnswer{},
		&PaymentInfo{},
		&TokenBlocklist{},
	)
}
