package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/backyard-skies/internal/species"
)

var speciesCmd = &cobra.Command{
	Use:   "species",
	Short: "Show the bird attribute table",
	Long:  `Shows every bird you can fly and the numbers behind it.`,
	Args:  cobra.NoArgs,
	Run:   runSpecies,
}

func runSpecies(_ *cobra.Command, _ []string) {
	birds := species.List()

	maxIDLen := 2 // "ID" header
	for _, b := range birds {
		if len(b.ID) > maxIDLen {
			maxIDLen = len(b.ID)
		}
	}

	fmt.Println("Available birds:")
	fmt.Println()

	fmt.Printf("  %-*s  %-18s  %5s  %4s  %7s  %4s  %5s  %4s  %5s  %6s  %6s\n", maxIDLen,
		"ID", "Name", "Speed", "Flap", "Stamina", "Food", "Water", "Feed", "Drink", "Hunger", "Thirst")
	fmt.Printf("  %-*s  %-18s  %5s  %4s  %7s  %4s  %5s  %4s  %5s  %6s  %6s\n", maxIDLen,
		"--", "----", "-----", "----", "-------", "----", "-----", "----", "-----", "------", "------")
	for _, b := range birds {
		a := b.Attributes
		fmt.Printf("  %-*s  %-18s  %5g  %4g  %7g  %4g  %5g  %4g  %5g  %6g  %6g\n", maxIDLen,
			b.ID, b.Name, a.Speed, a.FlapPower, a.Stamina, a.MaxFood, a.MaxWater,
			a.FeedRate, a.DrinkRate, a.FoodDrain, a.WaterDrain)
	}

	fmt.Println()
	for _, b := range birds {
		fmt.Printf("  %s (%s)\n    %s\n", b.Name, b.ScientificName, b.Description)
	}
	fmt.Println()
	fmt.Println("Run 'skies play --species <id>' to fly one.")
}
