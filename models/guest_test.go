package models

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-reservation/apperror"
	"hotel-reservation/patch"
)

func TestNewGuest(t *testing.T) {
	clk := clockwork.NewFakeClock()
	g, err := NewGuest("  João ", "Souza", "111.444.777-35", "Joao@Mail.com", clk)
	require.NoError(t, err)
	assert.Equal(t, "João", g.FirstName)
	assert.Equal(t, "João Souza", g.FullName())
	assert.Equal(t, "11144477735", g.CPF.String())
	assert.Equal(t, "joao@mail.com", g.Email.String())
}

func TestNewGuest_ReportsEveryBadField(t *testing.T) {
	_, err := NewGuest("", "S", "11111111111", "nope", clockwork.NewFakeClock())
	var v *apperror.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Len(t, v.Fields, 4)
	assert.Contains(t, v.Fields, "firstName")
	assert.Contains(t, v.Fields, "lastName")
	assert.Contains(t, v.Fields, "cpf")
	assert.Contains(t, v.Fields, "email")
}

func TestGuest_Update(t *testing.T) {
	clk := clockwork.NewFakeClock()
	g, err := NewGuest("Ana", "Lima", "52998224725", "ana@mail.com", clk)
	require.NoError(t, err)
	clk.Advance(time.Second)

	require.NoError(t, g.Update(GuestPatch{Email: patch.Of("ANA.LIMA@mail.com")}, clk))
	assert.Equal(t, "ana.lima@mail.com", g.Email.String())
	assert.Equal(t, "Ana", g.FirstName)
	assert.Equal(t, clk.Now(), g.UpdatedAt)

	err = g.Update(GuestPatch{LastName: patch.Null[string](), Email: patch.Of("bad")}, clk)
	var v *apperror.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "lastName")
	assert.Contains(t, v.Fields, "email")
	assert.Equal(t, "ana.lima@mail.com", g.Email.String())
}
