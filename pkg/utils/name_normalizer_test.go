package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Sentadilla", "sentadilla"},
		{"sentadilla", "sentadilla"},
		{"SENTADILLA  ", "sentadilla"},
		{"Press de banca (máquina)", "pressdebancamaquina"},
		{"Extensión de cuádriceps", "extensiondecuadriceps"},
		{"Remo-con_barra", "remoconbarra"},
		{"Peso muerto 2x", "pesomuerto2x"},
		{"Ñandú", "nandu"},
		{"ﬁt ball", "fitball"},
		{"", ""},
		{"   ", ""},
		{"!!!", ""},
		{"深蹲", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeName(tc.input))
		})
	}
}

func TestNormalizeName_Idempotent(t *testing.T) {
	inputs := []string{
		"Sentadilla",
		"  Curl  de Bíceps ",
		"Jalón al pecho / agarre ancho",
		"ÁÉÍÓÚ áéíóú",
		"",
	}

	for _, input := range inputs {
		once := NormalizeName(input)
		assert.Equal(t, once, NormalizeName(once), "input %q", input)
	}
}

func TestNormalizeName_SameExercise(t *testing.T) {
	assert.Equal(t, NormalizeName("Sentadilla"), NormalizeName("sentadilla"))
	assert.Equal(t, NormalizeName("sentadilla"), NormalizeName("SENTADILLA  "))
	assert.NotEqual(t, NormalizeName("Sentadilla"), NormalizeName("Sentadilla búlgara"))
}
