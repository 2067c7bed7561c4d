package models

// EntityKind tells a client's headquarters apart from one of its branches.
type EntityKind string

const (
	KindHeadquarters EntityKind = "headquarters"
	KindBranch       EntityKind = "branch"
)

// Client is a directory entry: a business with a central address and zero or more branches.
type Client struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	CentralAddress string   `json:"central_address"`
	Branches       []Branch `json:"branches"`
}

// Branch is a secondary site of a client, reachable through its contact person.
type Branch struct {
	ID               int64  `json:"id"`
	ClientID         int64  `json:"client_id"`
	Address          string `json:"address"`
	ContactFirstname string `json:"contact_firstname"`
	ContactLastname  string `json:"contact_lastname"`
	Phone            string `json:"phone"`
}

// Entity is anything that can be placed on a map: a title and a postal address.
type Entity struct {
	Title   string     `json:"title"`
	Address string     `json:"address"`
	Kind    EntityKind `json:"kind"`
}

// Entities flattens the client into its headquarters followed by its branches.
func (c Client) Entities() []Entity {
	entities := make([]Entity, 0, len(c.Branches)+1)
	entities = append(entities, Entity{Title: c.Name, Address: c.CentralAddress, Kind: KindHeadquarters})
	for _, b := range c.Branches {
		entities = append(entities, Entity{Title: b.ContactFirstname, Address: b.Address, Kind: KindBranch})
	}
	return entities
}
