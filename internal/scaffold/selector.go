package scaffold

import (
	"fmt"

	"github.com/artisanexperiences/trestle/internal/scaffold/types"
)

// Identifier names one template tree, e.g. "postgres-htmx".
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

type selection struct {
	frontend types.Frontend
	database types.Database
}

// catalog maps every frontend x database combination to its template. It
// must stay total over types.Frontends() x (DatabaseNone + types.Databases()).
var catalog = map[selection]Identifier{
	{types.FrontendHTMX, types.DatabaseNone}:       "static-htmx",
	{types.FrontendDioxus, types.DatabaseNone}:     "static-dioxus",
	{types.FrontendHTMX, types.DatabasePostgres}:   "postgres-htmx",
	{types.FrontendDioxus, types.DatabasePostgres}: "postgres-dioxus",
	{types.FrontendHTMX, types.DatabaseMySQL}:      "mysql-htmx",
	{types.FrontendDioxus, types.DatabaseMySQL}:    "mysql-dioxus",
	{types.FrontendHTMX, types.DatabaseMongoDB}:    "mongodb-htmx",
	{types.FrontendDioxus, types.DatabaseMongoDB}:  "mongodb-dioxus",
	{types.FrontendHTMX, types.DatabaseFirebase}:   "firebase-htmx",
	{types.FrontendDioxus, types.DatabaseFirebase}: "firebase-dioxus",
}

// Select returns the template for a frontend and database. The combination
// space is closed, so an unmapped pair is a programming error and panics.
func Select(frontend types.Frontend, database types.Database) Identifier {
	id, ok := catalog[selection{frontend, database}]
	if !ok {
		panic(fmt.Sprintf("programming error: no template for frontend %q and database %q", frontend, database))
	}
	return id
}

// TemplateInfo describes one entry of the template catalog.
type TemplateInfo struct {
	ID       Identifier
	Frontend types.Frontend
	Database types.Database
}

// Catalog lists every template, grouped by database (none first) and then
// by frontend.
func Catalog() []TemplateInfo {
	databases := append([]types.Database{types.DatabaseNone}, types.Databases()...)

	infos := make([]TemplateInfo, 0, len(catalog))
	for _, database := range databases {
		for _, frontend := range types.Frontends() {
			infos = append(infos, TemplateInfo{
				ID:       Select(frontend, database),
				Frontend: frontend,
				Database: database,
			})
		}
	}
	return infos
}

// Identifiers returns the identifiers of Catalog in the same order.
func Identifiers() []Identifier {
	infos := Catalog()
	ids := make([]Identifier, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}
