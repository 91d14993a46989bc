// Package graph exposes the API's query/mutation surface. It maps each
// named GraphQL operation onto a service call and each typed result back
// onto the schema; all business rules live in the service layer.
package graph

import (
	"github.com/graphql-go/graphql"

	"crashlog/internal/middleware"
	"crashlog/internal/service"
)

// builder assembles the schema around the service layer.
type builder struct {
	identity   *service.IdentityService
	persons    *service.PersonService
	insurances *service.InsuranceService
	accidents  *service.AccidentService

	userType     *graphql.Object
	personType   *graphql.Object
	insuranceType *graphql.Object
	accidentType *graphql.Object
	photoType    *graphql.Object
	witnessType  *graphql.Object
	vehicleType  *graphql.Object
	tokenType    *graphql.Object
	ownerType    *graphql.Union

	photoInput         *graphql.InputObject
	witnessInput       *graphql.InputObject
	vehicleInput       *graphql.InputObject
	editInsuranceInput *graphql.InputObject
}

// NewSchema builds the executable schema over the given services.
func NewSchema(
	identity *service.IdentityService,
	persons *service.PersonService,
	insurances *service.InsuranceService,
	accidents *service.AccidentService,
) (graphql.Schema, error) {
	b := &builder{
		identity:   identity,
		persons:    persons,
		insurances: insurances,
		accidents:  accidents,
	}
	b.buildTypes()

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    b.queryType(),
		Mutation: b.mutationType(),
	})
}

func (b *builder) queryType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: b.userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, err := b.identity.Me(p.Context, middleware.GetUserID(p.Context))
					return result(user, err)
				},
			},
			"findAccident": &graphql.Field{
				Type: b.accidentType,
				Args: graphql.FieldConfigArgument{
					"accidentID": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					acc, err := b.accidents.Find(p.Context, strArg(p, "accidentID"))
					return result(acc, err)
				},
			},
			"getAllAccidents": &graphql.Field{
				Type: graphql.NewList(b.accidentType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					list, err := b.accidents.All(p.Context)
					return list, wrapErr(err)
				},
			},
			"getAllMyAccidents": &graphql.Field{
				Type: graphql.NewList(b.accidentType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					list, err := b.accidents.AllMine(p.Context, middleware.GetUserID(p.Context))
					return list, wrapErr(err)
				},
			},
			"findInsurance": &graphql.Field{
				Type: b.insuranceType,
				Args: graphql.FieldConfigArgument{
					"insuranceID": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ins, err := b.insurances.Find(p.Context, strArg(p, "insuranceID"))
					return result(ins, err)
				},
			},
			"getAllInsurances": &graphql.Field{
				Type: graphql.NewList(b.insuranceType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					list, err := b.insurances.All(p.Context)
					return list, wrapErr(err)
				},
			},
			"getAllMyInsurances": &graphql.Field{
				Type: graphql.NewList(b.insuranceType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					list, err := b.insurances.AllMine(p.Context, middleware.GetUserID(p.Context))
					return list, wrapErr(err)
				},
			},
		},
	})
}

func (b *builder) mutationType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser":             b.createUserField(),
			"login":                  b.loginField(),
			"addPerson":              b.addPersonField(),
			"editPerson":             b.editPersonField(),
			"deletePerson":           b.deletePersonField(),
			"addInsuranceDetails":    b.addInsuranceField(),
			"editInsuranceDetails":   b.editInsuranceField(),
			"deleteInsuranceDetails": b.deleteInsuranceField(),
			"deleteAllInsurances":    b.deleteAllInsurancesField(),
			"addAccident":            b.addAccidentField(),
			"editAccident":           b.editAccidentField(),
			"deleteAccident":         b.deleteAccidentField(),
			"addPhoto":               b.addPhotoField(),
			"deletePhoto":            b.deletePhotoField(),
			"addWitness":             b.addWitnessField(),
			"deleteWitness":          b.deleteWitnessField(),
			"addOtherVehicle":        b.addOtherVehicleField(),
			"deleteOtherVehicle":     b.deleteOtherVehicleField(),
		},
	})
}

// result collapses typed-nil service results into untyped nil so the
// engine renders a plain null for soft misses.
func result[T any](v *T, err error) (interface{}, error) {
	if err != nil {
		return nil, wrapErr(err)
	}
	if v == nil {
		return nil, nil
	}
	return v, nil
}

func nonNullString() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)}
}

func optString() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.String}
}

func (b *builder) createUserField() *graphql.Field {
	return &graphql.Field{
		Type: b.userType,
		Args: graphql.FieldConfigArgument{
			"email":             nonNullString(),
			"password":          nonNullString(),
			"confirmedPassword": nonNullString(),
			"firstName":         nonNullString(),
			"lastName":          nonNullString(),
			"address":           nonNullString(),
			"phoneNumber":       nonNullString(),
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, err := b.identity.CreateUser(p.Context, service.CreateUserInput{
				Email:             strArg(p, "email"),
				Password:          strArg(p, "password"),
				ConfirmedPassword: strArg(p, "confirmedPassword"),
				FirstName:         strArg(p, "firstName"),
				LastName:          strArg(p, "lastName"),
				Address:           strArg(p, "address"),
				PhoneNumber:       strArg(p, "phoneNumber"),
			})
			return result(user, err)
		},
	}
}

func (b *builder) loginField() *graphql.Field {
	return &graphql.Field{
		Type: b.tokenType,
		Args: graphql.FieldConfigArgument{
			"email":    nonNullString(),
			"password": nonNullString(),
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			token, err := b.identity.Login(p.Context, strArg(p, "email"), strArg(p, "password"))
			if err != nil {
				return nil, wrapErr(err)
			}
			return map[string]interface{}{"value": token}, nil
		},
	}
}

func (b *builder) addPersonField() *graphql.Field {
	return &graphql.Field{
		Type: b.personType,
		Args: graphql.FieldConfigArgument{
			"firstName":   nonNullString(),
			"lastName":    nonNullString(),
			"phoneNumber": nonNullString(),
			"involvement": nonNullString(),
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			person, err := b.persons.Add(p.Context, service.AddPersonInput{
				FirstName:   strArg(p, "firstName"),
				LastName:    strArg(p, "lastName"),
				PhoneNumber: strArg(p, "phoneNumber"),
				Involvement: strArg(p, "involvement"),
			})
			return result(person, err)
		},
	}
}

func (b *builder) editPersonField() *graphql.Field {
	return &graphql.Field{
		Type: b.personType,
		Args: graphql.FieldConfigArgument{
			"personID":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			"firstName":   optString(),
			"lastName":    optString(),
			"phoneNumber": optString(),
			"involvement": optString(),
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			person, err := b.persons.Edit(p.Context, service.EditPersonInput{
				PersonID:    strArg(p, "personID"),
				FirstName:   optStrArg(p, "firstName"),
				LastName:    optStrArg(p, "lastName"),
				PhoneNumber: optStrArg(p, "phoneNumber"),
				Involvement: optStrArg(p, "involvement"),
			})
			return result(person, err)
		},
	}
}

func (b *builder) deletePersonField() *graphql.Field {
	return &graphql.Field{
		Type: b.personType,
		Args: graphql.FieldConfigArgument{
			"personID": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			person, err := b.persons.Delete(p.Context, strArg(p, "personID"))
			return result(person, err)
		},
	}
}

func (b *builder) addInsuranceField() *graphql.Field {
	return &graphql.Field{
		Type: b.insuranceType,
		Args: graphql.FieldConfigArgument{
			"carRegistrationNumber": nonNullString(),
			"insurerCompany":        nonNullString(),
			"insurerContactNumber":  nonNullString(),
			"insurancePolicy":       nonNullString(),
			"insurancePolicyNumber": nonNullString(),
			"otherDriver":           &graphql.ArgumentConfig{Type: graphql.ID},
			"ownerType":             optString(),
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			ins, err := b.insurances.Add(p.Context, middleware.GetUserID(p.Context), service.AddInsuranceInput{
				CarRegistrationNumber: strArg(p, "carRegistrationNumber"),
				InsurerCompany:        strArg(p, "insurerCompany"),
				InsurerContactNumber:  strArg(p, "insurerContactNumber"),
				InsurancePolicy:       strArg(p, "insurancePolicy"),
				InsurancePolicyNumber: strArg(p, "insurancePolicyNumber"),
				OtherDriverID:         optStrArg(p, "otherDriver"),
				OwnerType:             optStrArg(p, "ownerType"),
			})
			return result(ins, err)
		},
	}
}

func (b *builder) editInsuranceField() *graphql.Field {
	return &graphql.Field{
		Type: b.insuranceType,
		Args: graphql.FieldConfigArgument{
			"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.editInsuranceInput)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			input := mapArg(p, "input")
			ins, err := b.insurances.Edit(p.Context, middleware.GetUserID(p.Context), service.EditInsuranceInput{
				InsuranceID:           strField(input, "insuranceID"),
				CarRegistrationNumber: optStrField(input, "carRegistrationNumber"),
				InsurerCompany:        optStrField(input, "insurerCompany"),
				InsurerContactNumber:  optStrField(input, "insurerContactNumber"),
				InsurancePolicy:       optStrField(input, "insurancePolicy"),
				InsurancePolicyNumber: optStrField(input, "insurancePolicyNumber"),
			})
			return result(ins, err)
		},
	}
}

func (b *builder) deleteInsuranceField() *graphql.Field {
	return &graphql.Field{
		Type: b.insuranceType,
		Args: graphql.FieldConfigArgument{
			"insuranceID": nonNullString(),
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			ins, err := b.insurances.Delete(p.Context, middleware.GetUserID(p.Context), strArg(p, "insuranceID"))
			return result(ins, err)
		},
	}
}

func (b *builder) deleteAllInsurancesField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewNonNull(graphql.Boolean),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if err := b.insurances.DeleteAll(p.Context, middleware.IsAdmin(p.Context)); err != nil {
				return nil, wrapErr(err)
			}
			return true, nil
		},
	}
}

func (b *builder) addAccidentField() *graphql.Field {
	return &graphql.Field{
		Type: b.accidentType,
		Args: graphql.FieldConfigArgument{
			"date":              &graphql.ArgumentConfig{Type: graphql.DateTime},
			"time":              nonNullString(),
			"location":          nonNullString(),
			"speed":             nonNullString(),
			"weatherConditions": nonNullString(),
			"crashDescription":  nonNullString(),
			"photos":            &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(b.photoInput))},
			"witnesses":         &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(b.witnessInput))},
			"otherVehicles":     &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(b.vehicleInput))},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			acc, err := b.accidents.Add(p.Context, middleware.GetUserID(p.Context), service.AddAccidentInput{
				Date:              optTimeArg(p, "date"),
				Time:              strArg(p, "time"),
				Location:          strArg(p, "location"),
				Speed:             strArg(p, "speed"),
				WeatherConditions: strArg(p, "weatherConditions"),
				CrashDescription:  strArg(p, "crashDescription"),
				Photos:            photosArg(p, "photos"),
				Witnesses:         witnessesArg(p, "witnesses"),
				OtherVehicles:     vehiclesArg(p, "otherVehicles"),
			})
			return result(acc, err)
		},
	}
}

func (b *builder) editAccidentField() *graphql.Field {
	return &graphql.Field{
		Type: b.accidentType,
		Args: graphql.FieldConfigArgument{
			"accidentID":        nonNullString(),
			"date":              &graphql.ArgumentConfig{Type: graphql.DateTime},
			"time":              optString(),
			"location":          optString(),
			"speed":             optString(),
			"weatherConditions": optString(),
			"crashDescription":  optString(),
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			acc, err := b.accidents.Edit(p.Context, middleware.GetUserID(p.Context), service.EditAccidentInput{
				AccidentID:        strArg(p, "accidentID"),
				Date:              optTimeArg(p, "date"),
				Time:              optStrArg(p, "time"),
				Location:          optStrArg(p, "location"),
				Speed:             optStrArg(p, "speed"),
				WeatherConditions: optStrArg(p, "weatherConditions"),
				CrashDescription:  optStrArg(p, "crashDescription"),
			})
			return result(acc, err)
		},
	}
}

func (b *builder) deleteAccidentField() *graphql.Field {
	return &graphql.Field{
		Type: b.accidentType,
		Args: graphql.FieldConfigArgument{
			"accidentID": nonNullString(),
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			acc, err := b.accidents.Delete(p.Context, middleware.GetUserID(p.Context), strArg(p, "accidentID"))
			return result(acc, err)
		},
	}
}

func (b *builder) addPhotoField() *graphql.Field {
	return &graphql.Field{
		Type: b.accidentType,
		Args: graphql.FieldConfigArgument{
			"accidentID": nonNullString(),
			"photoURL":   nonNullString(),
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			acc, err := b.accidents.AddPhoto(p.Context, middleware.GetUserID(p.Context),
				strArg(p, "accidentID"), strArg(p, "photoURL"))
			return result(acc, err)
		},
	}
}

func (b *builder) deletePhotoField() *graphql.Field {
	return &graphql.Field{
		Type: b.accidentType,
		Args: graphql.FieldConfigArgument{
			"accidentID": nonNullString(),
			"photoURL":   nonNullString(),
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			acc, err := b.accidents.DeletePhoto(p.Context, middleware.GetUserID(p.Context),
				strArg(p, "accidentID"), strArg(p, "photoURL"))
			return result(acc, err)
		},
	}
}

func (b *builder) addWitnessField() *graphql.Field {
	return &graphql.Field{
		Type: b.accidentType,
		Args: graphql.FieldConfigArgument{
			"accidentID": nonNullString(),
			"input":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.witnessInput)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			acc, err := b.accidents.AddWitness(p.Context, middleware.GetUserID(p.Context),
				strArg(p, "accidentID"), witnessFromMap(mapArg(p, "input")))
			return result(acc, err)
		},
	}
}

func (b *builder) deleteWitnessField() *graphql.Field {
	return &graphql.Field{
		Type: b.accidentType,
		Args: graphql.FieldConfigArgument{
			"accidentID":  nonNullString(),
			"phoneNumber": nonNullString(),
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			acc, err := b.accidents.DeleteWitness(p.Context, middleware.GetUserID(p.Context),
				strArg(p, "accidentID"), strArg(p, "phoneNumber"))
			return result(acc, err)
		},
	}
}

func (b *builder) addOtherVehicleField() *graphql.Field {
	return &graphql.Field{
		Type: b.accidentType,
		Args: graphql.FieldConfigArgument{
			"accidentID": nonNullString(),
			"input":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.vehicleInput)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			acc, err := b.accidents.AddOtherVehicle(p.Context, middleware.GetUserID(p.Context),
				strArg(p, "accidentID"), vehicleFromMap(mapArg(p, "input")))
			return result(acc, err)
		},
	}
}

func (b *builder) deleteOtherVehicleField() *graphql.Field {
	return &graphql.Field{
		Type: b.accidentType,
		Args: graphql.FieldConfigArgument{
			"accidentID":         nonNullString(),
			"registrationNumber": nonNullString(),
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			acc, err := b.accidents.DeleteOtherVehicle(p.Context, middleware.GetUserID(p.Context),
				strArg(p, "accidentID"), strArg(p, "registrationNumber"))
			return result(acc, err)
		},
	}
}
