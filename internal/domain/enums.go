package domain

type BillStatus string

const (
	BillPending  BillStatus = "pending"
	BillAccepted BillStatus = "accepted"
	BillRefused  BillStatus = "refused"
)

type UserRole string

const (
	RoleEmployee      UserRole = "Employee"
	RoleAdministrator UserRole = "Administrator"
)

// ExpenseTypes is the catalogue of expense categories accepted by the backend.
var ExpenseTypes = []string{
	"Transports",
	"Restaurants et bars",
	"Hôtel et logement",
	"Services en ligne",
	"IT et électronique",
	"Équipement et matériel",
	"Fournitures de bureau",
}
