package graph

import (
	"github.com/graphql-go/graphql"

	"crashlog/internal/models"
)

// buildTypes constructs the GraphQL object types. User, Insurance, and
// Accident reference each other, so the user fields are built through a
// thunk that runs after every type exists.
func (b *builder) buildTypes() {
	b.photoType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Photo",
		Fields: graphql.Fields{
			"url": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	b.witnessType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Witness",
		Fields: graphql.Fields{
			"firstName":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"lastName":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"phoneNumber": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"involvement": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	b.vehicleType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Vehicle",
		Fields: graphql.Fields{
			"registrationNumber": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"make":               &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"model":              &graphql.Field{Type: graphql.String},
		},
	})

	b.personType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Person",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"firstName":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"lastName":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"phoneNumber": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"involvement": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	b.tokenType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Token",
		Fields: graphql.Fields{
			"value": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	// The password hash is deliberately absent from the user type.
	b.userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: (graphql.FieldsThunk)(func() graphql.Fields {
			return graphql.Fields{
				"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
				"email":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"firstName":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"lastName":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"address":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"phoneNumber": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"insuranceDetails": &graphql.Field{
					Type:    graphql.NewList(b.insuranceType),
					Resolve: b.resolveUserInsurances,
				},
				"accidents": &graphql.Field{
					Type:    graphql.NewList(b.accidentType),
					Resolve: b.resolveUserAccidents,
				},
			}
		}),
	})

	b.ownerType = graphql.NewUnion(graphql.UnionConfig{
		Name:        "Owner",
		Description: "The owner of an insurance record: a registered user or a person from the registry.",
		Types:       []*graphql.Object{b.userType, b.personType},
		ResolveType: func(p graphql.ResolveTypeParams) *graphql.Object {
			switch p.Value.(type) {
			case *models.User:
				return b.userType
			case *models.Person:
				return b.personType
			}
			return nil
		},
	})

	b.insuranceType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Insurance",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"owner": &graphql.Field{
				Type:    b.ownerType,
				Resolve: b.resolveInsuranceOwner,
			},
			"carRegistrationNumber": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"insurerCompany":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"insurerContactNumber":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"insurancePolicy":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"insurancePolicyNumber": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	b.accidentType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Accident",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"user": &graphql.Field{
				Type:    b.userType,
				Resolve: b.resolveAccidentUser,
			},
			"date":              &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"time":              &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"location":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"speed":             &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"weatherConditions": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"crashDescription":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"photos":            &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(b.photoType))},
			"witnesses":         &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(b.witnessType))},
			"otherVehicles":     &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(b.vehicleType))},
		},
	})

	b.photoInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PhotoInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"url": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	b.witnessInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "WitnessInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"firstName":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"lastName":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"phoneNumber": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"involvement": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	b.vehicleInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "VehicleInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"registrationNumber": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"make":               &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"model":              &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	b.editInsuranceInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EditInsuranceInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"insuranceID":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"carRegistrationNumber": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"insurerCompany":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"insurerContactNumber":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"insurancePolicy":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"insurancePolicyNumber": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
}

// resolveUserInsurances hydrates a user's insurance list by owner query.
func (b *builder) resolveUserInsurances(p graphql.ResolveParams) (interface{}, error) {
	user, ok := p.Source.(*models.User)
	if !ok {
		return nil, nil
	}
	list, err := b.insurances.AllMine(p.Context, user.ID)
	return list, wrapErr(err)
}

// resolveUserAccidents hydrates a user's accident list by owner query.
func (b *builder) resolveUserAccidents(p graphql.ResolveParams) (interface{}, error) {
	user, ok := p.Source.(*models.User)
	if !ok {
		return nil, nil
	}
	list, err := b.accidents.AllMine(p.Context, user.ID)
	return list, wrapErr(err)
}

// resolveInsuranceOwner resolves the tagged owner union.
func (b *builder) resolveInsuranceOwner(p graphql.ResolveParams) (interface{}, error) {
	ins, ok := p.Source.(*models.Insurance)
	if !ok {
		return nil, nil
	}
	owner, err := b.insurances.ResolveOwner(p.Context, ins)
	if err != nil {
		return nil, wrapErr(err)
	}
	if owner == nil {
		return nil, nil
	}
	if owner.User != nil {
		return owner.User, nil
	}
	return owner.Person, nil
}

// resolveAccidentUser resolves the owning user of an accident report.
func (b *builder) resolveAccidentUser(p graphql.ResolveParams) (interface{}, error) {
	acc, ok := p.Source.(*models.Accident)
	if !ok {
		return nil, nil
	}
	user, err := b.identity.User(p.Context, acc.UserID)
	if err != nil {
		return nil, wrapErr(err)
	}
	if user == nil {
		return nil, nil
	}
	return user, nil
}
