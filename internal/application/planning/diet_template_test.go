package planning

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/coachplan/internal/domain/entities"
)

func TestBuildFallbackDiet_Defaults(t *testing.T) {
	diet := BuildFallbackDiet(entities.GenerationContext{})

	blocks := strings.Split(diet, "\n\n")
	require.Len(t, blocks, 9)
	assert.Equal(t, "Plan semanal (balance). Peso: 70.0 kg, Proteina diaria: 112 g aprox.", blocks[0])
	assert.Equal(t, "Hidratacion: 2-3 L agua dia. Ajusta por actividad.", blocks[1])

	for i, day := range DietWeekDays {
		lines := strings.Split(blocks[i+2], "\n")
		require.Len(t, lines, 5)
		assert.Equal(t, day+":", lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "- Desayuno:"))
		assert.True(t, strings.HasPrefix(lines[2], "- Comida:"))
		assert.True(t, strings.HasPrefix(lines[3], "- Cena:"))
		assert.True(t, strings.HasPrefix(lines[4], "- Snack:"))
	}
}

func TestBuildFallbackDiet_Hints(t *testing.T) {
	calories := 2400
	diet := BuildFallbackDiet(entities.GenerationContext{
		Profile:      entities.StudentProfile{WeightKG: 82.5, Objective: "Ganar masa muscular"},
		DietNotes:    " sin lactosa ",
		DietCalories: &calories,
	})

	blocks := strings.Split(diet, "\n\n")
	require.Len(t, blocks, 11)
	assert.Equal(t, "Plan semanal (calorico moderado). Peso: 82.5 kg, Proteina diaria: 132 g aprox.", blocks[0])
	assert.Equal(t, "Calorias objetivo: 2400 kcal/dia", blocks[1])
	assert.Equal(t, "Notas del coach/alergias: sin lactosa", blocks[2])
}

func TestDietFocus(t *testing.T) {
	assert.Equal(t, "calorico moderado", dietFocus("Volumen"))
	assert.Equal(t, "deficit ligero", dietFocus("definicion"))
	assert.Equal(t, "deficit ligero", dietFocus("Bajar de peso"))
	assert.Equal(t, "deficit ligero", dietFocus("perder grasa"))
	assert.Equal(t, "balance", dietFocus("salud"))
	assert.Equal(t, "balance", dietFocus(""))
}

func TestBuildFallbackDiet_Deterministic(t *testing.T) {
	gc := entities.GenerationContext{Profile: entities.StudentProfile{WeightKG: 64, Objective: "definir"}}
	assert.Equal(t, BuildFallbackDiet(gc), BuildFallbackDiet(gc))
}
