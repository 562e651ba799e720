// Package notice builds the short localized messages shown after an action.
package notice

import (
	"fmt"
	"strings"

	"github.com/dukerupert/listkeeper/internal/apperr"
)

type Locale string

const (
	Spanish Locale = "es"
	English Locale = "en"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

type Key string

const (
	ListsLoaded      Key = "lists_loaded"
	ListLoaded       Key = "list_loaded"
	ListCreated      Key = "list_created"
	ListUpdated      Key = "list_updated"
	ListDeleted      Key = "list_deleted"
	ListClosed       Key = "list_closed"
	ListReopened     Key = "list_reopened"
	ItemAdded        Key = "item_added"
	ItemUpdated      Key = "item_updated"
	ItemDeleted      Key = "item_deleted"
	ItemToggled      Key = "item_toggled"
	CategoryCreated  Key = "category_created"
	CategoryUpdated  Key = "category_updated"
	CategoryDeleted  Key = "category_deleted"
	ProductCreated   Key = "product_created"
	ProductUpdated   Key = "product_updated"
	ProductDeleted   Key = "product_deleted"
	SignedIn         Key = "signed_in"
	Registered       Key = "registered"
	SignedOut        Key = "signed_out"
	ProfileUpdated   Key = "profile_updated"
	ThemeUpdated     Key = "theme_updated"
	OnboardingDone   Key = "onboarding_done"
	CatalogLoaded    Key = "catalog_loaded"
	PreferencesSaved Key = "preferences_saved"
	ImageUploaded    Key = "image_uploaded"
)

// Notice is what a screen shows as a toast.
type Notice struct {
	Level   Level       `json:"level"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
	Kind    apperr.Kind `json:"kind,omitempty"`
}

type text struct {
	ok, fail string
}

var messages = map[Locale]map[Key]text{
	Spanish: {
		ListsLoaded:      {"Listas cargadas", "No se pudieron cargar las listas"},
		ListLoaded:       {"Lista cargada", "No se pudo cargar la lista"},
		ListCreated:      {"Lista %q creada", "No se pudo crear la lista"},
		ListUpdated:      {"Lista actualizada", "No se pudo actualizar la lista"},
		ListDeleted:      {"Lista eliminada", "No se pudo eliminar la lista"},
		ListClosed:       {"Compra finalizada", "No se pudo finalizar la compra"},
		ListReopened:     {"Lista reabierta", "No se pudo reabrir la lista"},
		ItemAdded:        {"Producto agregado", "No se pudo agregar el producto"},
		ItemUpdated:      {"Producto actualizado", "No se pudo actualizar el producto"},
		ItemDeleted:      {"Producto eliminado", "No se pudo eliminar el producto"},
		ItemToggled:      {"Producto actualizado", "No se pudo actualizar el producto"},
		CategoryCreated:  {"Categoría creada", "No se pudo guardar la categoría"},
		CategoryUpdated:  {"Categoría actualizada", "No se pudo guardar la categoría"},
		CategoryDeleted:  {"Categoría eliminada", "No se pudo eliminar la categoría"},
		ProductCreated:   {"Producto creado", "No se pudo guardar el producto"},
		ProductUpdated:   {"Producto actualizado", "No se pudo guardar el producto"},
		ProductDeleted:   {"Producto eliminado", "No se pudo eliminar el producto"},
		SignedIn:         {"Bienvenido", "No se pudo iniciar sesión"},
		Registered:       {"Cuenta creada", "No se pudo crear la cuenta"},
		SignedOut:        {"Sesión cerrada", "No se pudo cerrar la sesión"},
		ProfileUpdated:   {"Perfil actualizado", "No se pudo actualizar el perfil"},
		ThemeUpdated:     {"Tema actualizado", "No se pudo guardar el tema"},
		OnboardingDone:   {"Listo", "No se pudo guardar el progreso"},
		CatalogLoaded:    {"Catálogo cargado", "No se pudieron cargar los datos"},
		PreferencesSaved: {"Preferencias guardadas", "No se pudieron guardar las preferencias"},
		ImageUploaded:    {"Imagen subida", "No se pudo subir la imagen"},
	},
	English: {
		ListsLoaded:      {"Lists loaded", "Could not load lists"},
		ListLoaded:       {"List loaded", "Could not load the list"},
		ListCreated:      {"List %q created", "Could not create the list"},
		ListUpdated:      {"List updated", "Could not update the list"},
		ListDeleted:      {"List deleted", "Could not delete the list"},
		ListClosed:       {"Shopping finished", "Could not finish shopping"},
		ListReopened:     {"List reopened", "Could not reopen the list"},
		ItemAdded:        {"Item added", "Could not add the item"},
		ItemUpdated:      {"Item updated", "Could not update the item"},
		ItemDeleted:      {"Item deleted", "Could not delete the item"},
		ItemToggled:      {"Item updated", "Could not update the item"},
		CategoryCreated:  {"Category created", "Could not save the category"},
		CategoryUpdated:  {"Category updated", "Could not save the category"},
		CategoryDeleted:  {"Category deleted", "Could not delete the category"},
		ProductCreated:   {"Product created", "Could not save the product"},
		ProductUpdated:   {"Product updated", "Could not save the product"},
		ProductDeleted:   {"Product deleted", "Could not delete the product"},
		SignedIn:         {"Welcome", "Could not sign in"},
		Registered:       {"Account created", "Could not create the account"},
		SignedOut:        {"Signed out", "Could not sign out"},
		ProfileUpdated:   {"Profile updated", "Could not update the profile"},
		ThemeUpdated:     {"Theme updated", "Could not save the theme"},
		OnboardingDone:   {"All set", "Could not save progress"},
		CatalogLoaded:    {"Catalog loaded", "Could not load data"},
		PreferencesSaved: {"Preferences saved", "Could not save preferences"},
		ImageUploaded:    {"Image uploaded", "Could not upload the image"},
	},
}

var titles = map[Locale][2]string{
	Spanish: {"Éxito", "Error"},
	English: {"Success", "Error"},
}

// kindMessages explain failures whose cause matters more than the action.
var kindMessages = map[Locale]map[apperr.Kind]string{
	Spanish: {
		apperr.KindNetwork:  "Sin conexión con el servidor. Intenta de nuevo",
		apperr.KindAuth:     "Tu sesión expiró. Inicia sesión de nuevo",
		apperr.KindNotFound: "No encontrado",
		apperr.KindState:    "La lista está cerrada",
	},
	English: {
		apperr.KindNetwork:  "Cannot reach the server. Try again",
		apperr.KindAuth:     "Your session expired. Please sign in again",
		apperr.KindNotFound: "Not found",
		apperr.KindState:    "The list is closed",
	},
}

// Catalog renders notices in one locale.
type Catalog struct {
	locale Locale
}

// New returns a catalog for locale, falling back to Spanish.
func New(locale string) *Catalog {
	l := Locale(strings.ToLower(strings.TrimSpace(locale)))
	if _, ok := messages[l]; !ok {
		l = Spanish
	}
	return &Catalog{locale: l}
}

func (c *Catalog) Locale() Locale { return c.locale }

// Success renders the success text of key. args fill any verbs in it.
func (c *Catalog) Success(key Key, args ...any) Notice {
	msg := messages[c.locale][key].ok
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return Notice{Level: LevelSuccess, Title: titles[c.locale][0], Message: msg}
}

// Failure renders the failure of action key caused by err. Validation
// errors show their own message since it names the offending field.
func (c *Catalog) Failure(key Key, err error) Notice {
	kind := apperr.KindOf(err)
	n := Notice{Level: LevelError, Title: titles[c.locale][1], Kind: kind}
	switch {
	case kind == apperr.KindValidation:
		n.Message = apperr.As(err).Message
	case kindMessages[c.locale][kind] != "":
		n.Message = kindMessages[c.locale][kind]
	default:
		n.Message = messages[c.locale][key].fail
	}
	if n.Message == "" {
		n.Message = titles[c.locale][1]
	}
	return n
}
