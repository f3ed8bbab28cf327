package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-reservation/apperror"
)

func TestNewCPF_AcceptsValidNumbers(t *testing.T) {
	for _, raw := range []string{"529.982.247-25", "52998224725", "111.444.777-35", " 111 444 777 35 "} {
		cpf, err := NewCPF(raw)
		require.NoError(t, err, raw)
		assert.Len(t, cpf.String(), 11)
	}
}

func TestNewCPF_Formats(t *testing.T) {
	cpf, err := NewCPF("52998224725")
	require.NoError(t, err)
	assert.Equal(t, "52998224725", cpf.String())
	assert.Equal(t, "529.982.247-25", cpf.Formatted())
}

func TestNewCPF_RejectsRepeatedDigits(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		raw := ""
		for i := 0; i < 11; i++ {
			raw += string(d)
		}
		_, err := NewCPF(raw)
		assert.True(t, apperror.IsValidation(err), raw)
	}
}

func TestNewCPF_RejectsAlteredCheckDigit(t *testing.T) {
	_, err := NewCPF("52998224725")
	require.NoError(t, err)

	_, err = NewCPF("52998224726")
	assert.True(t, apperror.IsValidation(err))

	_, err = NewCPF("52998224715")
	assert.True(t, apperror.IsValidation(err))
}

func TestNewCPF_RejectsWrongLength(t *testing.T) {
	for _, raw := range []string{"", "123", "5299822472", "529982247250"} {
		_, err := NewCPF(raw)
		assert.True(t, apperror.IsValidation(err), raw)
	}
}

func TestCPF_ScanValue(t *testing.T) {
	var c CPF
	require.NoError(t, c.Scan([]byte("11144477735")))
	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, "11144477735", v)
	assert.Error(t, c.Scan(42))
}
