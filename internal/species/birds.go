package species

// Built-in species.
const (
	Cardinal ID = "cardinal"
	Tanager  ID = "tanager"
	Bunting  ID = "bunting"
	Starling ID = "starling"
)

// Default is the species selected when nothing else was chosen.
const Default = Cardinal

func init() {
	Register(Species{
		ID:             Cardinal,
		Name:           "Northern Cardinal",
		ScientificName: "Cardinalis cardinalis",
		Description:    "A robust songbird with a distinctive crest. Balanced stats make it ideal for beginners.",
		Attributes: Attributes{
			Speed: 7, FlapPower: 1.0, Stamina: 80,
			MaxFood: 85, MaxWater: 75,
			FeedRate: 10, DrinkRate: 8,
			FoodDrain: 2.0, WaterDrain: 1.5,
		},
	})

	Register(Species{
		ID:             Tanager,
		Name:           "Scarlet Tanager",
		ScientificName: "Piranga olivacea",
		Description:    "A blazing scarlet flyer with jet-black wings. Fast but burns energy quickly.",
		Attributes: Attributes{
			Speed: 9, FlapPower: 1.2, Stamina: 65,
			MaxFood: 70, MaxWater: 65,
			FeedRate: 8, DrinkRate: 7,
			FoodDrain: 2.8, WaterDrain: 2.0,
		},
	})

	Register(Species{
		ID:             Bunting,
		Name:           "Indigo Bunting",
		ScientificName: "Passerina cyanea",
		Description:    "A tiny electric-blue gem. Agile with great stamina, but limited food capacity.",
		Attributes: Attributes{
			Speed: 8, FlapPower: 1.1, Stamina: 90,
			MaxFood: 60, MaxWater: 60,
			FeedRate: 12, DrinkRate: 10,
			FoodDrain: 1.5, WaterDrain: 1.2,
		},
	})

	Register(Species{
		ID:             Starling,
		Name:           "Common Starling",
		ScientificName: "Sturnus vulgaris",
		Description:    "A stocky, iridescent powerhouse. Slow but can store the most food and water.",
		Attributes: Attributes{
			Speed: 6, FlapPower: 0.9, Stamina: 100,
			MaxFood: 100, MaxWater: 100,
			FeedRate: 7, DrinkRate: 6,
			FoodDrain: 1.8, WaterDrain: 1.3,
		},
	})
}
