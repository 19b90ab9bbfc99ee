// Package vocab holds the fixed reference vocabulary of known menu-item
// names and the fuzzy-matching routines used to clean up OCR output.
// All data in this package is built once at load and never mutated, so it
// is safe for concurrent use without locking.
package vocab

// dishes is the reference list of common food items found on restaurant
// bills. Order matters: ties in edit distance resolve to the earlier entry.
var dishes = []string{
	// North Indian
	"Paneer Butter Masala", "Butter Chicken", "Chicken Tikka Masala", "Dal Makhani",
	"Palak Paneer", "Kadai Paneer", "Shahi Paneer", "Malai Kofta", "Chole Bhature",
	"Rajma Chawal", "Aloo Gobi", "Baingan Bharta", "Bhindi Masala",

	// Breads
	"Butter Naan", "Garlic Naan", "Plain Naan", "Tandoori Roti", "Laccha Paratha",
	"Missi Roti", "Roomali Roti", "Kulcha", "Bhatura", "Puri",

	// South Indian
	"Masala Dosa", "Plain Dosa", "Idli", "Vada", "Medu Vada", "Uttapam",
	"Rava Dosa", "Onion Dosa", "Paper Dosa", "Sambar", "Rasam",

	// Chinese & Indo-Chinese
	"Chilli Chicken", "Manchurian", "Fried Rice", "Hakka Noodles", "Schezwan Noodles",
	"Spring Roll", "Momos", "Chowmein", "Gobi Manchurian", "Paneer Chilli",

	// Rice
	"Biryani", "Veg Biryani", "Chicken Biryani", "Mutton Biryani", "Egg Biryani",
	"Pulao", "Jeera Rice", "Plain Rice", "Steamed Rice",

	// Fast food
	"Pizza", "Burger", "Sandwich", "French Fries", "Pasta", "Garlic Bread",
	"Nachos", "Tacos", "Wrap", "Sub", "Hot Dog",

	// Desserts
	"Gulab Jamun", "Rasgulla", "Rasmalai", "Kulfi", "Ice Cream", "Brownie",
	"Pastry", "Cake", "Kheer", "Gajar Halwa", "Jalebi",

	// Drinks
	"Lassi", "Masala Chai", "Coffee", "Cold Coffee", "Cappuccino", "Latte",
	"Fresh Lime", "Coca Cola", "Pepsi", "Sprite", "Thumbs Up", "Fanta",
	"Mango Shake", "Chocolate Shake", "Buttermilk", "Mineral Water",

	// Starters
	"Paneer Tikka", "Chicken Tikka", "Tandoori Chicken", "Kebab", "Seekh Kebab",
	"Hara Bhara Kebab", "Veg Cutlet", "Samosa", "Pakora", "Aloo Tikki",
}

// Size returns the number of entries in the vocabulary.
func Size() int { return len(dishes) }
