package planning

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zatekoja/coachplan/internal/domain/entities"
)

const defaultWeightKG = 70.0

// DietWeekDays is the fixed section order of every diet.
var DietWeekDays = []string{"Lunes", "Martes", "Miercoles", "Jueves", "Viernes", "Sabado", "Domingo"}

var fallbackMeals = []string{
	"- Desayuno: Avena + fruta + proteina en polvo + nueces.",
	"- Comida: Pollo/pavo o pescado + arroz/quinoa + verduras.",
	"- Cena: Huevos/claras + vegetales salteados + tortilla integral.",
	"- Snack: Yogur griego + fruta o frutos secos.",
}

// BuildFallbackDiet renders the templated seven day diet used when generation fails.
func BuildFallbackDiet(gc entities.GenerationContext) string {
	weight := gc.Profile.WeightKG
	if weight == 0 {
		weight = defaultWeightKG
	}
	protein := int(weight * 1.6)

	lines := []string{
		fmt.Sprintf("Plan semanal (%s). Peso: %s kg, Proteina diaria: %d g aprox.",
			dietFocus(gc.Profile.Objective), formatWeight(weight), protein),
	}
	if gc.DietCalories != nil && *gc.DietCalories != 0 {
		lines = append(lines, fmt.Sprintf("Calorias objetivo: %d kcal/dia", *gc.DietCalories))
	}
	if notes := strings.TrimSpace(gc.DietNotes); notes != "" {
		lines = append(lines, "Notas del coach/alergias: "+notes)
	}
	lines = append(lines, "Hidratacion: 2-3 L agua dia. Ajusta por actividad.")

	for _, day := range DietWeekDays {
		block := append([]string{day + ":"}, fallbackMeals...)
		lines = append(lines, strings.Join(block, "\n"))
	}

	return strings.Join(lines, "\n\n")
}

func dietFocus(objective string) string {
	objective = strings.ToLower(objective)
	switch {
	case strings.Contains(objective, "volumen"), strings.Contains(objective, "ganar"):
		return "calorico moderado"
	case strings.Contains(objective, "def"), strings.Contains(objective, "baja"), strings.Contains(objective, "perder"):
		return "deficit ligero"
	default:
		return "balance"
	}
}

// formatWeight always shows a decimal part, so 70 renders as "70.0".
func formatWeight(w float64) string {
	s := strconv.FormatFloat(w, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
