package seed

import (
	"context"

	"github.com/pirate444/food-order-app/database"
	"github.com/pirate444/food-order-app/models"
	"go.uber.org/zap"
)

var sampleFoods = []models.Food{
	{
		Name:        "Margherita Pizza",
		Description: "Classic pizza with fresh mozzarella, tomato sauce, and basil",
		Price:       12.99,
		Category:    models.CategoryMainCourse,
		Image:       "https://via.placeholder.com/300?text=Margherita+Pizza",
		Available:   true,
		Rating:      4.5,
	},
	{
		Name:        "Caesar Salad",
		Description: "Fresh romaine lettuce with parmesan and creamy caesar dressing",
		Price:       8.99,
		Category:    models.CategoryAppetizer,
		Image:       "https://via.placeholder.com/300?text=Caesar+Salad",
		Available:   true,
		Rating:      4.2,
	},
	{
		Name:        "Grilled Chicken Burger",
		Description: "Juicy grilled chicken breast with lettuce, tomato, and special sauce",
		Price:       10.99,
		Category:    models.CategoryMainCourse,
		Image:       "https://via.placeholder.com/300?text=Chicken+Burger",
		Available:   true,
		Rating:      4.6,
	},
	{
		Name:        "Chocolate Lava Cake",
		Description: "Warm chocolate cake with a flowing molten center, served with vanilla ice cream",
		Price:       7.99,
		Category:    models.CategoryDessert,
		Image:       "https://via.placeholder.com/300?text=Chocolate+Lava+Cake",
		Available:   true,
		Rating:      4.8,
	},
	{
		Name:        "Fresh Orange Juice",
		Description: "Freshly squeezed orange juice with no added sugar",
		Price:       4.99,
		Category:    models.CategoryBeverage,
		Image:       "https://via.placeholder.com/300?text=Orange+Juice",
		Available:   true,
		Rating:      4.3,
	},
	{
		Name:        "Garlic Bread",
		Description: "Toasted bread with garlic butter and herbs",
		Price:       3.99,
		Category:    models.CategorySides,
		Image:       "https://via.placeholder.com/300?text=Garlic+Bread",
		Available:   true,
		Rating:      4.4,
	},
	{
		Name:        "Spaghetti Carbonara",
		Description: "Creamy pasta with bacon, eggs, and parmesan cheese",
		Price:       13.99,
		Category:    models.CategoryMainCourse,
		Image:       "https://via.placeholder.com/300?text=Spaghetti+Carbonara",
		Available:   true,
		Rating:      4.7,
	},
	{
		Name:        "Iced Coffee",
		Description: "Cold brew coffee with ice and a splash of cream",
		Price:       4.49,
		Category:    models.CategoryBeverage,
		Image:       "https://via.placeholder.com/300?text=Iced+Coffee",
		Available:   true,
		Rating:      4.5,
	},
}

// Run inserts the sample menu when the catalog is empty. It never touches a
// non-empty catalog.
func Run(ctx context.Context, repo database.FoodRepository, log *zap.Logger) error {
	existing, err := repo.Find(ctx, "")
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info("Catalog already populated, skipping seed", zap.Int("count", len(existing)))
		return nil
	}

	for i := range sampleFoods {
		food := sampleFoods[i]
		if err := repo.Create(ctx, &food); err != nil {
			return err
		}
	}

	log.Info("Seeded sample catalog", zap.Int("count", len(sampleFoods)))
	return nil
}
