package graph

import (
	"time"

	"github.com/graphql-go/graphql"

	"crashlog/internal/models"
)

// Argument extraction helpers. The GraphQL engine has already validated
// types against the schema, so missing optional arguments are the only
// case these need to tolerate.

func strArg(p graphql.ResolveParams, name string) string {
	v, _ := p.Args[name].(string)
	return v
}

func optStrArg(p graphql.ResolveParams, name string) *string {
	if v, ok := p.Args[name].(string); ok {
		return &v
	}
	return nil
}

func optTimeArg(p graphql.ResolveParams, name string) *time.Time {
	if v, ok := p.Args[name].(time.Time); ok {
		return &v
	}
	return nil
}

func mapArg(p graphql.ResolveParams, name string) map[string]interface{} {
	v, _ := p.Args[name].(map[string]interface{})
	return v
}

func strField(m map[string]interface{}, name string) string {
	v, _ := m[name].(string)
	return v
}

func optStrField(m map[string]interface{}, name string) *string {
	if v, ok := m[name].(string); ok {
		return &v
	}
	return nil
}

func witnessFromMap(m map[string]interface{}) models.Witness {
	return models.Witness{
		FirstName:   strField(m, "firstName"),
		LastName:    strField(m, "lastName"),
		PhoneNumber: strField(m, "phoneNumber"),
		Involvement: strField(m, "involvement"),
	}
}

func vehicleFromMap(m map[string]interface{}) models.Vehicle {
	return models.Vehicle{
		RegistrationNumber: strField(m, "registrationNumber"),
		Make:               strField(m, "make"),
		Model:              strField(m, "model"),
	}
}

func photosArg(p graphql.ResolveParams, name string) []models.Photo {
	raw, _ := p.Args[name].([]interface{})
	var photos []models.Photo
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			photos = append(photos, models.Photo{URL: strField(m, "url")})
		}
	}
	return photos
}

func witnessesArg(p graphql.ResolveParams, name string) []models.Witness {
	raw, _ := p.Args[name].([]interface{})
	var witnesses []models.Witness
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			witnesses = append(witnesses, witnessFromMap(m))
		}
	}
	return witnesses
}

func vehiclesArg(p graphql.ResolveParams, name string) []models.Vehicle {
	raw, _ := p.Args[name].([]interface{})
	var vehicles []models.Vehicle
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			vehicles = append(vehicles, vehicleFromMap(m))
		}
	}
	return vehicles
}
