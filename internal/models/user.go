package models

// User represents a registered account.
//
// A user's insurance records and accident reports are not stored on the
// user document; they are looked up by owner when a caller requests them.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `bson:"_id" json:"id"`

	// Email is the user's email address (unique). Used for login.
	Email string `bson:"email" json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never exposed through the API.
	PasswordHash string `bson:"passwordHash" json:"-"`

	FirstName   string `bson:"firstName" json:"firstName"`
	LastName    string `bson:"lastName" json:"lastName"`
	Address     string `bson:"address" json:"address"`
	PhoneNumber string `bson:"phoneNumber" json:"phoneNumber"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `bson:"createdAt" json:"createdAt"`
}

// Person represents a non-account individual involved in an accident:
// a witness or the other driver. Persons are registered by reporting users
// on the other party's behalf and can own insurance records.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	ID string `bson:"_id" json:"id"`

	FirstName   string `bson:"firstName" json:"firstName"`
	LastName    string `bson:"lastName" json:"lastName"`
	PhoneNumber string `bson:"phoneNumber" json:"phoneNumber"`

	// Involvement describes the person's role, e.g. "witness" or
	// "other driver".
	Involvement string `bson:"involvement" json:"involvement"`
}
