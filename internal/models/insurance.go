package models

// OwnerKind discriminates the polymorphic owner of an insurance record.
type OwnerKind string

const (
	// OwnerUser marks an insurance record owned by a registered User.
	OwnerUser OwnerKind = "user"
	// OwnerPerson marks an insurance record owned by a Person
	// (typically the other driver).
	OwnerPerson OwnerKind = "person"
)

// Insurance represents one insurance record in the ledger.
//
// Exactly one owner is referenced: OwnerKind tags whether OwnerID points at
// a User or a Person, so the owner resolves with a single lookup.
type Insurance struct {
	// ID is the unique identifier for the record (UUID format).
	ID string `bson:"_id" json:"id"`

	// OwnerKind tags the type of the owning aggregate.
	OwnerKind OwnerKind `bson:"ownerKind" json:"ownerKind"`

	// OwnerID is the ID of the owning User or Person.
	OwnerID string `bson:"ownerID" json:"ownerID"`

	CarRegistrationNumber string `bson:"carRegistrationNumber" json:"carRegistrationNumber"`
	InsurerCompany        string `bson:"insurerCompany" json:"insurerCompany"`
	InsurerContactNumber  string `bson:"insurerContactNumber" json:"insurerContactNumber"`
	InsurancePolicy       string `bson:"insurancePolicy" json:"insurancePolicy"`
	InsurancePolicyNumber string `bson:"insurancePolicyNumber" json:"insurancePolicyNumber"`
}
