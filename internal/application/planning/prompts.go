package planning

import (
	"fmt"
	"strings"

	"github.com/zatekoja/coachplan/internal/domain/entities"
	"github.com/zatekoja/coachplan/internal/domain/providers"
)

const (
	// MaxPromptCatalogEntries caps how many catalog lines a workout prompt carries.
	MaxPromptCatalogEntries = 120

	// SystemPrompt frames every generator request.
	SystemPrompt = "Eres un entrenador y nutriologo profesional. Responde de forma clara, estructurada y practica."
)

var (
	// WorkoutOptions are the sampling options for workout prompts.
	WorkoutOptions = providers.GenerateOptions{Temperature: 0.25, MaxOutputTokens: 900}

	// DietOptions are the sampling options for diet prompts.
	DietOptions = providers.GenerateOptions{Temperature: 0.7, MaxOutputTokens: 800}
)

// BuildWorkoutPrompt asks for a JSON weekly routine restricted to the given catalog entries.
func BuildWorkoutPrompt(gc entities.GenerationContext, catalog []entities.CatalogEntry) string {
	p := gc.Profile
	var b strings.Builder

	b.WriteString("Genera una rutina semanal clara y estructurada usando SOLO los ejercicios listados.")
	b.WriteString("\nNo inventes nombres ni variantes, usa exactamente los nombres provistos.")
	b.WriteString("\nNo devuelvas explicaciones ni notas fuera del JSON.")
	b.WriteString("\n\nPerfil del alumno:")
	fmt.Fprintf(&b, "\n- Edad: %d anos", p.Age)
	fmt.Fprintf(&b, "\n- Peso: %s kg", formatWeight(p.WeightKG))
	fmt.Fprintf(&b, "\n- Estatura: %d cm", p.HeightCM)
	fmt.Fprintf(&b, "\n- Nivel: %s", p.Level)
	fmt.Fprintf(&b, "\n- Objetivo: %s", p.Objective)
	if focus := strings.TrimSpace(gc.FocusMuscle); focus != "" {
		fmt.Fprintf(&b, "\n- Enfoque: %s", focus)
	}
	if gc.DaysPerWeek != nil && *gc.DaysPerWeek != 0 {
		fmt.Fprintf(&b, "\n- Dias por semana: %d", *gc.DaysPerWeek)
	}
	if notes := strings.TrimSpace(gc.Notes); notes != "" {
		fmt.Fprintf(&b, "\n- Notas del coach: %s", notes)
	}

	b.WriteString("\n\nFormato de respuesta (JSON puro):")
	b.WriteString("\n{\"week\": [")
	b.WriteString("\n  {\"day\": \"Lunes\",")
	b.WriteString("\n   \"exercises\": [")
	b.WriteString("\n     {\"name\": \"<nombre exacto>\", \"sets\": 4, \"reps\": \"10-12\", \"notes\": \"opcional\"}")
	b.WriteString("\n   ]}")
	b.WriteString("\n ]}")

	b.WriteString("\n\nEjercicios disponibles (usa el nombre exacto):\n")
	lines := make([]string, 0, min(len(catalog), MaxPromptCatalogEntries))
	for _, entry := range catalog[:min(len(catalog), MaxPromptCatalogEntries)] {
		group := entry.MuscleGroup
		if group == "" {
			group = "General"
		}
		lines = append(lines, fmt.Sprintf("- %s | Grupo: %s | Nivel: %s", entry.Title, group, entry.Level))
	}
	b.WriteString(strings.Join(lines, "\n"))

	return b.String()
}

// BuildDietPrompt asks for a plain text diet covering every weekday in DietWeekDays order.
func BuildDietPrompt(gc entities.GenerationContext) string {
	p := gc.Profile
	var b strings.Builder

	b.WriteString("Genera una dieta semanal clara y practica en texto plano.\n")
	b.WriteString("Devuelve SIEMPRE 7 dias (Lunes a Domingo) con 3-4 tiempos cada dia.\n")
	fmt.Fprintf(&b, "Edad: %d anos\n", p.Age)
	fmt.Fprintf(&b, "Peso: %s kg\n", formatWeight(p.WeightKG))
	fmt.Fprintf(&b, "Estatura: %d cm\n", p.HeightCM)
	fmt.Fprintf(&b, "Objetivo: %s\n", p.Objective)
	if p.WeightKG > 0 {
		fmt.Fprintf(&b, "Proteina diaria objetivo: %d g\n", int(p.WeightKG*1.6))
	}
	if notes := strings.TrimSpace(gc.DietNotes); notes != "" {
		fmt.Fprintf(&b, "Restricciones / preferencias: %s\n", notes)
	}
	if gc.DietCalories != nil && *gc.DietCalories != 0 {
		fmt.Fprintf(&b, "Calorias objetivo por dia: %d\n", *gc.DietCalories)
	}

	b.WriteString("\nFormato exacto (usa estos encabezados):\n")
	sections := make([]string, 0, len(DietWeekDays))
	for _, day := range DietWeekDays {
		sections = append(sections, day+":\n- Desayuno: ...\n- Comida: ...\n- Cena: ...\n- Snack: ...\n")
	}
	b.WriteString(strings.Join(sections, "\n"))

	return b.String()
}
