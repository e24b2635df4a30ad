package dish

// SampleMenu returns the demo menu used to seed the in-memory store.
func SampleMenu() []Candidate {
	return []Candidate{
		sample("Spicy Basil Chicken", 14.99,
			"Fresh basil leaves stir-fried with chicken, chili, and garlic.",
			"https://images.unsplash.com/photo-1589302168068-964664d93dc0?auto=format&fit=crop&w=800&q=80"),
		sample("Classic Cheeseburger", 11.50,
			"Juicy beef patty topped with cheddar, lettuce, tomato, and house sauce.",
			"https://images.unsplash.com/photo-1568901346375-23c9450c58cd?auto=format&fit=crop&w=800&q=80"),
		sample("Vegan Buddha Bowl", 13.00,
			"Quinoa, avocado, roasted chickpeas, kale, and tahini dressing.",
			"https://images.unsplash.com/photo-1512621776951-a57141f2eefd?auto=format&fit=crop&w=800&q=80"),
		sample("Seafood Paella", 22.00,
			"Traditional Spanish rice dish with shrimp, mussels, and saffron.",
			"https://images.unsplash.com/photo-1534080564583-6be75777b70a?auto=format&fit=crop&w=800&q=80"),
		sample("Tiramisu", 8.50,
			"Classic Italian dessert with layers of coffee-soaked ladyfingers and mascarpone.",
			"https://images.unsplash.com/photo-1571877227200-a0d98ea607e9?auto=format&fit=crop&w=800&q=80"),
	}
}

func sample(name string, price float64, desc, image string) Candidate {
	p := Price(price)
	return Candidate{Name: &name, Price: &p, Description: &desc, Image: &image}
}
