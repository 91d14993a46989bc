package mongodb

import (
	"time"

	"github.com/google/uuid"

	"crashlog/internal/models"
)

// The store owns ID and timestamp assignment, same as the other backends.

func prepareUser(user *models.User) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}
}

func preparePersonID(person *models.Person) {
	if person.ID == "" {
		person.ID = uuid.New().String()
	}
}

func prepareInsuranceID(ins *models.Insurance) {
	if ins.ID == "" {
		ins.ID = uuid.New().String()
	}
}

func prepareAccident(acc *models.Accident) {
	if acc.ID == "" {
		acc.ID = uuid.New().String()
	}
	if acc.Date.IsZero() {
		acc.Date = time.Now().UTC()
	}
}
