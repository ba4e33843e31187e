package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

// authenticated lets any signed-in member use the REST API of a collection.
const authenticated = "@request.auth.id != ''"

// Setup programmatically creates/ensures the members, clients, vendors,
// projects, company, estimations and estimation_parts collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureAuthCollection(app, "members", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "role",
			Values:    []string{"admin", "sales", "engineer", "shop"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "phone"})
	})

	clients := ensureCollection(app, "clients", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "client_id"})
		c.Fields.Add(&core.TextField{Name: "address"})
		c.Fields.Add(&core.TextField{Name: "poc"})
		c.Fields.Add(&core.TextField{Name: "phone"})
		c.Fields.Add(&core.EmailField{Name: "email"})
		addTimestamps(c)
	})

	ensureCollection(app, "vendors", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "vendor_id"})
		c.Fields.Add(&core.TextField{Name: "address"})
		c.Fields.Add(&core.TextField{Name: "poc"})
		c.Fields.Add(&core.TextField{Name: "phone"})
		c.Fields.Add(&core.EmailField{Name: "email"})
		addTimestamps(c)
	})

	ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "quotation_no"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Values:    []string{"active", "on_hold", "completed"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "poc_phone"})
		addTimestamps(c)
	})

	ensureCollection(app, "company", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "address"})
		c.Fields.Add(&core.EmailField{Name: "email"})
		c.Fields.Add(&core.TextField{Name: "phone"})
	})

	estimations := ensureCollection(app, "estimations", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:         "client",
			CollectionId: clients.Id,
			MaxSelect:    1,
		})
		// Client column
		c.Fields.Add(&core.TextField{Name: "client_name"})
		c.Fields.Add(&core.TextField{Name: "billing_address"})
		c.Fields.Add(&core.TextField{Name: "ship_to_address"})
		c.Fields.Add(&core.BoolField{Name: "same_as_billing"})
		c.Fields.Add(&core.TextField{Name: "poc_name"})
		c.Fields.Add(&core.TextField{Name: "poc_phone"})
		// Seller column
		c.Fields.Add(&core.TextField{Name: "prepared_by"})
		c.Fields.Add(&core.TextField{Name: "poc_designation"})
		c.Fields.Add(&core.TextField{Name: "poc_email"})
		c.Fields.Add(&core.TextField{Name: "project_name"})
		c.Fields.Add(&core.TextField{Name: "revision"})
		// Quotation
		c.Fields.Add(&core.TextField{Name: "quotation_no"})
		c.Fields.Add(&core.TextField{Name: "quotation_date"})
		c.Fields.Add(&core.TextField{Name: "quotation_valid_till"})
		c.Fields.Add(&core.TextField{Name: "delivery_time"})
		c.Fields.Add(&core.TextField{Name: "payment_terms"})
		c.Fields.Add(&core.TextField{Name: "shipment"})
		c.Fields.Add(&core.TextField{Name: "quotation_note"})
		// Work order
		c.Fields.Add(&core.TextField{Name: "customer_po_no"})
		c.Fields.Add(&core.TextField{Name: "work_order_no"})
		c.Fields.Add(&core.TextField{Name: "wo_delivery_time"})
		c.Fields.Add(&core.TextField{Name: "wo_note"})
		// Certificate
		c.Fields.Add(&core.JSONField{Name: "cert_checks"})
		c.Fields.Add(&core.TextField{Name: "cert_note"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Values:    []string{"draft", "quoted", "ordered", "closed"},
			MaxSelect: 1,
		})
		addTimestamps(c)
	})

	ensureCollection(app, "estimation_parts", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "estimation",
			Required:      true,
			CollectionId:  estimations.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.TextField{Name: "job_description"})
		c.Fields.Add(&core.TextField{Name: "material"})
		c.Fields.Add(&core.TextField{Name: "heat_number"})
		c.Fields.Add(&core.TextField{Name: "drawing_given_by_client"})
		c.Fields.Add(&core.TextField{Name: "material_grade"})
		// Quantity and unit cost keep the text as typed.
		c.Fields.Add(&core.TextField{Name: "quantity"})
		c.Fields.Add(&core.TextField{Name: "drawing_part_no"})
		c.Fields.Add(&core.TextField{Name: "raw_material_supplied_by"})
		c.Fields.Add(&core.TextField{Name: "job_cost_unit"})
		c.Fields.Add(&core.TextField{Name: "raw_material_dimension"})
	})
}

func addTimestamps(c *core.Collection) {
	c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	return ensure(app, name, core.NewBaseCollection, addFields)
}

// ensureAuthCollection is ensureCollection for auth collections, whose
// records can sign in and call the REST API with a bearer token.
func ensureAuthCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	return ensure(app, name, core.NewAuthCollection, addFields)
}

func ensure(app *pocketbase.PocketBase, name string, newCollection func(string, ...string) *core.Collection, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := newCollection(name)
	addFields(collection)
	collection.ListRule = types.Pointer(authenticated)
	collection.ViewRule = types.Pointer(authenticated)
	collection.CreateRule = types.Pointer(authenticated)
	collection.UpdateRule = types.Pointer(authenticated)
	collection.DeleteRule = types.Pointer(authenticated)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
