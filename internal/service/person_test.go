package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crashlog/internal/apperr"
)

func TestPersonRegistry(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	t.Run("add validates the fields", func(t *testing.T) {
		cases := []AddPersonInput{
			{FirstName: "A", LastName: "Driver", PhoneNumber: "5551234567", Involvement: "witness"},
			{FirstName: "Pat", LastName: "Driver", PhoneNumber: "123", Involvement: "witness"},
			{FirstName: "Pat", LastName: "Driver", PhoneNumber: "5551234567"},
		}
		for _, in := range cases {
			_, err := env.persons.Add(ctx, in)
			require.Error(t, err)
			assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
		}
	})

	person, err := env.persons.Add(ctx, AddPersonInput{
		FirstName:   "Pat",
		LastName:    "Driver",
		PhoneNumber: "5551234567",
		Involvement: "other driver",
	})
	require.NoError(t, err)
	require.NotEmpty(t, person.ID)

	t.Run("edit applies only the supplied fields", func(t *testing.T) {
		edited, err := env.persons.Edit(ctx, EditPersonInput{
			PersonID:    person.ID,
			Involvement: strPtr("witness"),
		})
		require.NoError(t, err)
		assert.Equal(t, "witness", edited.Involvement)
		assert.Equal(t, "Pat", edited.FirstName)
	})

	t.Run("edit of a missing person is not found", func(t *testing.T) {
		_, err := env.persons.Edit(ctx, EditPersonInput{PersonID: "nope"})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
	})

	t.Run("delete returns the removed snapshot", func(t *testing.T) {
		deleted, err := env.persons.Delete(ctx, person.ID)
		require.NoError(t, err)
		assert.Equal(t, person.ID, deleted.ID)

		_, err = env.persons.Delete(ctx, person.ID)
		require.Error(t, err)
		assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
	})
}
