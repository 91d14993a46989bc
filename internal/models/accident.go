package models

import "time"

// Accident represents one accident report, owned by exactly one user.
//
// Photos, witnesses, and other vehicles are embedded value records with no
// identity of their own. They are appended in order and removed by value
// match: photos by URL, witnesses by phone number, vehicles by registration
// number.
type Accident struct {
	// ID is the unique identifier for the report (UUID format).
	ID string `bson:"_id" json:"id"`

	// UserID is the ID of the user who filed the report. It is the
	// authorization source of truth: mutations are allowed only for
	// this user.
	UserID string `bson:"userID" json:"userID"`

	// Date is when the accident happened. Defaults to the time of
	// filing when not supplied.
	Date time.Time `bson:"date" json:"date"`

	// Time is the free-form time of day as reported, e.g. "14:30".
	Time string `bson:"time" json:"time"`

	Location          string `bson:"location" json:"location"`
	Speed             string `bson:"speed" json:"speed"`
	WeatherConditions string `bson:"weatherConditions" json:"weatherConditions"`
	CrashDescription  string `bson:"crashDescription" json:"crashDescription"`

	Photos        []Photo   `bson:"photos" json:"photos"`
	Witnesses     []Witness `bson:"witnesses" json:"witnesses"`
	OtherVehicles []Vehicle `bson:"otherVehicles" json:"otherVehicles"`
}

// Photo is an attachment on an accident report, addressed by its URL.
type Photo struct {
	URL string `bson:"url" json:"url"`
}

// Witness is an embedded witness record on an accident report.
// Witnesses are matched by phone number on removal.
type Witness struct {
	FirstName   string `bson:"firstName" json:"firstName"`
	LastName    string `bson:"lastName" json:"lastName"`
	PhoneNumber string `bson:"phoneNumber" json:"phoneNumber"`
	Involvement string `bson:"involvement" json:"involvement"`
}

// Vehicle is an embedded record for another vehicle involved in an
// accident, matched by registration number on removal.
type Vehicle struct {
	RegistrationNumber string `bson:"registrationNumber" json:"registrationNumber"`
	Make               string `bson:"make" json:"make"`
	Model              string `bson:"model" json:"model"`
}
