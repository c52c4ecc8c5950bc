package nomina

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NIT real de ejemplo: 900373115 → DV 3 (módulo 11 DIAN).

func TestComputeNITVerificationDigit(t *testing.T) {
	dv, err := ComputeNITVerificationDigit("900373115")
	require.NoError(t, err)
	assert.Equal(t, byte('3'), dv)
}

func TestValidateNITVerificationDigit_ConPuntosYGuion(t *testing.T) {
	assert.NoError(t, ValidateNITVerificationDigit("900.373.115-3"))
}

func TestValidateNITVerificationDigit_DVIncorrecto(t *testing.T) {
	assert.Error(t, ValidateNITVerificationDigit("900373115-9"))
}

func TestParseNIT_SinDV(t *testing.T) {
	base, dv, err := ParseNIT("900373115")
	require.NoError(t, err)
	assert.Equal(t, "900373115", base)
	assert.Equal(t, byte('3'), dv)
}

func TestParseNIT_ConDVValido(t *testing.T) {
	base, dv, err := ParseNIT("900.373.115-3")
	require.NoError(t, err)
	assert.Equal(t, "900373115", base)
	assert.Equal(t, byte('3'), dv)
}

func TestParseNIT_ConDVInvalido(t *testing.T) {
	_, _, err := ParseNIT("900373115-1")
	assert.Error(t, err)
}

func TestParseNIT_MuyCorto(t *testing.T) {
	_, _, err := ParseNIT("12345")
	assert.Error(t, err)
}
