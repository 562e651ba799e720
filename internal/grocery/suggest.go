// Package grocery guesses a category for an item name so the add form can
// pre-select one.
package grocery

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fallback is the category of anything that matches no keyword.
const Fallback = "General"

type category struct {
	name    string
	aliases []string
}

// categories are the canonical groups. Aliases are how users tend to name
// the same group in their own catalog.
var categories = []category{
	{"Produce", []string{"produce", "frutas y verduras", "frutas", "verduras", "fruteria", "fruit & veg"}},
	{"Dairy", []string{"dairy", "lacteos", "lacteos y huevos", "dairy & eggs"}},
	{"Meat & Seafood", []string{"meat & seafood", "meat", "carnes", "carniceria", "pescaderia", "carnes y pescados"}},
	{"Bakery", []string{"bakery", "panaderia", "pan"}},
	{"Frozen", []string{"frozen", "congelados"}},
	{"Pantry", []string{"pantry", "despensa", "abarrotes", "almacen"}},
	{"Beverages", []string{"beverages", "drinks", "bebidas"}},
	{"Snacks", []string{"snacks", "botanas", "aperitivos"}},
	{"Household", []string{"household", "cleaning", "limpieza", "hogar"}},
	{"Personal Care", []string{"personal care", "higiene", "cuidado personal"}},
}

type keyword struct {
	word     string
	category string
}

// keywords match at the start of a word of the normalized name, in order,
// so phrases come before the words they begin with ("agua" would claim
// "aguacate").
var keywords = []keyword{
	{"pasta dental", "Personal Care"},
	{"aguacate", "Produce"},
	{"ice cream", "Frozen"},
	{"helado", "Frozen"},
	{"frozen", "Frozen"},
	{"congelad", "Frozen"},
	{"peanut butter", "Pantry"},
	{"crema de cacahuate", "Pantry"},
	{"almond milk", "Beverages"},
	{"oat milk", "Beverages"},
	{"leche de almendra", "Beverages"},
	{"paper towel", "Household"},
	{"papel higienico", "Household"},
	{"toilet paper", "Household"},
	{"chicken", "Meat & Seafood"},
	{"pollo", "Meat & Seafood"},
	{"beef", "Meat & Seafood"},
	{"res", "Meat & Seafood"},
	{"cerdo", "Meat & Seafood"},
	{"pork", "Meat & Seafood"},
	{"jamon", "Meat & Seafood"},
	{"ham", "Meat & Seafood"},
	{"salmon", "Meat & Seafood"},
	{"atun", "Meat & Seafood"},
	{"pescado", "Meat & Seafood"},
	{"fish", "Meat & Seafood"},
	{"shrimp", "Meat & Seafood"},
	{"camaron", "Meat & Seafood"},
	{"milk", "Dairy"},
	{"leche", "Dairy"},
	{"cheese", "Dairy"},
	{"queso", "Dairy"},
	{"yogurt", "Dairy"},
	{"butter", "Dairy"},
	{"mantequilla", "Dairy"},
	{"cream", "Dairy"},
	{"crema", "Dairy"},
	{"egg", "Dairy"},
	{"huevo", "Dairy"},
	{"bread", "Bakery"},
	{"pan ", "Bakery"},
	{"bolillo", "Bakery"},
	{"tortilla", "Bakery"},
	{"bagel", "Bakery"},
	{"croissant", "Bakery"},
	{"galleta", "Snacks"},
	{"cookie", "Snacks"},
	{"chips", "Snacks"},
	{"papitas", "Snacks"},
	{"chocolate", "Snacks"},
	{"coffee", "Beverages"},
	{"cafe", "Beverages"},
	{"juice", "Beverages"},
	{"jugo", "Beverages"},
	{"refresco", "Beverages"},
	{"soda", "Beverages"},
	{"agua", "Beverages"},
	{"water", "Beverages"},
	{"cerveza", "Beverages"},
	{"beer", "Beverages"},
	{"wine", "Beverages"},
	{"vino", "Beverages"},
	{"rice", "Pantry"},
	{"arroz", "Pantry"},
	{"frijol", "Pantry"},
	{"beans", "Pantry"},
	{"pasta", "Pantry"},
	{"flour", "Pantry"},
	{"harina", "Pantry"},
	{"sugar", "Pantry"},
	{"azucar", "Pantry"},
	{"oil", "Pantry"},
	{"aceite", "Pantry"},
	{"sal", "Pantry"},
	{"salt", "Pantry"},
	{"cereal", "Pantry"},
	{"soap", "Household"},
	{"jabon", "Household"},
	{"detergent", "Household"},
	{"cloro", "Household"},
	{"bleach", "Household"},
	{"shampoo", "Personal Care"},
	{"toothpaste", "Personal Care"},
	{"desodorante", "Personal Care"},
	{"deodorant", "Personal Care"},
	{"apple", "Produce"},
	{"manzana", "Produce"},
	{"banana", "Produce"},
	{"platano", "Produce"},
	{"tomato", "Produce"},
	{"tomate", "Produce"},
	{"jitomate", "Produce"},
	{"potato", "Produce"},
	{"papa", "Produce"},
	{"onion", "Produce"},
	{"cebolla", "Produce"},
	{"lettuce", "Produce"},
	{"lechuga", "Produce"},
	{"lemon", "Produce"},
	{"limon", "Produce"},
	{"avocado", "Produce"},
	{"carrot", "Produce"},
	{"zanahoria", "Produce"},
	{"fruit", "Produce"},
	{"fruta", "Produce"},
}

// Normalize lowercases s, strips accents and turns punctuation into spaces,
// so "Jamón (rebanado)" becomes "jamon  rebanado".
func Normalize(s string) string {
	decomposed := norm.NFD.String(strings.ToLower(strings.TrimSpace(s)))
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '&':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(b.String())
}

// Categorize returns the canonical category for an item name, or Fallback.
func Categorize(itemName string) string {
	normalized := Normalize(itemName)
	if normalized == "" {
		return Fallback
	}
	// Padding lets "pan " match only the whole word.
	name := " " + normalized + " "
	for _, k := range keywords {
		if strings.Contains(name, " "+k.word) {
			return k.category
		}
	}
	return Fallback
}

// Suggest maps an item name onto one of the user's own category names.
// With no known categories it returns the canonical name. When the guess has
// no counterpart among known, it returns Fallback.
func Suggest(itemName string, known []string) string {
	guess := Categorize(itemName)
	if len(known) == 0 || guess == Fallback {
		return guess
	}
	var aliases []string
	for _, c := range categories {
		if c.name == guess {
			aliases = c.aliases
			break
		}
	}
	for _, k := range known {
		nk := Normalize(k)
		for _, a := range aliases {
			if nk == a {
				return k
			}
		}
	}
	return Fallback
}
