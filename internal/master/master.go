// Package master holds the client/factory/machine reference data the
// wizard drills through. The catalog is seeded with mock rows; inline
// registration adds to it for the life of the process.
package master

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// NewEntry is the sentinel a wizard step submits to register a record
// inline instead of picking an existing one.
const NewEntry = "NEW"

type Client struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Factory struct {
	ID       string `json:"id"`
	ClientID string `json:"clientId"`
	Name     string `json:"name"`
}

type Manufacturer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Machine struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ClientID       string `json:"clientId"`
	FactoryID      string `json:"factoryId"`
	ManufacturerID string `json:"manufacturerId"`
	Serial         string `json:"serial"`
	Location       string `json:"location"`
}

// Catalog is the in-memory master-data set plus the current selection.
type Catalog struct {
	mu            sync.Mutex
	clients       []Client
	factories     []Factory
	manufacturers []Manufacturer
	machines      []Machine

	selectedClientID  string
	selectedMachineID string
}

// NewCatalog returns a catalog seeded with the demo rows.
func NewCatalog() *Catalog {
	return &Catalog{
		clients: []Client{
			{ID: "C-001", Name: "Acme Corp"},
			{ID: "C-002", Name: "Wayne Enterprises"},
			{ID: "C-003", Name: "Cyberdyne Systems"},
		},
		factories: []Factory{
			{ID: "F-001", ClientID: "C-001", Name: "Tokyo Plant"},
			{ID: "F-002", ClientID: "C-001", Name: "Osaka Branch"},
			{ID: "F-003", ClientID: "C-002", Name: "Gotham Main"},
			{ID: "F-004", ClientID: "C-002", Name: "Underground Lab"},
			{ID: "F-005", ClientID: "C-003", Name: "Skynet Hub"},
		},
		manufacturers: []Manufacturer{
			{ID: "MF-001", Name: "Amada"},
			{ID: "MF-002", Name: "Mazak"},
			{ID: "MF-003", Name: "Fanuc"},
		},
		machines: []Machine{
			{ID: "M-01", Name: "Press Machine A", ClientID: "C-001", FactoryID: "F-001", ManufacturerID: "MF-001", Serial: "SN-1001", Location: "Tokyo Plant, Zone A"},
			{ID: "M-02", Name: "Lathe B", ClientID: "C-001", FactoryID: "F-001", ManufacturerID: "MF-002", Serial: "SN-2002", Location: "Tokyo Plant, Zone B"},
			{ID: "M-03", Name: "Robot Arm C", ClientID: "C-002", FactoryID: "F-004", ManufacturerID: "MF-003", Serial: "SN-3003", Location: "Underground Lab"},
		},
	}
}

func (c *Catalog) Clients() []Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Client(nil), c.clients...)
}

func (c *Catalog) Manufacturers() []Manufacturer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Manufacturer(nil), c.manufacturers...)
}

// FactoriesOf lists the factories belonging to one client, name-sorted.
func (c *Catalog) FactoriesOf(clientID string) []Factory {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Factory
	for _, f := range c.factories {
		if f.ClientID == clientID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// MachinesOf lists the machines installed at one factory.
func (c *Catalog) MachinesOf(factoryID string) []Machine {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Machine
	for _, m := range c.machines {
		if m.FactoryID == factoryID {
			out = append(out, m)
		}
	}
	return out
}

func (c *Catalog) Client(id string) (Client, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cl := range c.clients {
		if cl.ID == id {
			return cl, true
		}
	}
	return Client{}, false
}

func (c *Catalog) Factory(id string) (Factory, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range c.factories {
		if f.ID == id {
			return f, true
		}
	}
	return Factory{}, false
}

func (c *Catalog) Machine(id string) (Machine, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.machines {
		if m.ID == id {
			return m, true
		}
	}
	return Machine{}, false
}

// RegisterClient adds an inline-registered client and returns it.
func (c *Catalog) RegisterClient(name string) Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	cl := Client{ID: "C-" + uuid.NewString()[:8], Name: name}
	c.clients = append(c.clients, cl)
	return cl
}

// RegisterFactory adds an inline-registered factory under a client.
func (c *Catalog) RegisterFactory(clientID, name string) Factory {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := Factory{ID: "F-" + uuid.NewString()[:8], ClientID: clientID, Name: name}
	c.factories = append(c.factories, f)
	return f
}

// RegisterMachine adds an inline-registered machine at a factory.
func (c *Catalog) RegisterMachine(clientID, factoryID, name string) Machine {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := Machine{
		ID:        "M-" + uuid.NewString()[:8],
		Name:      name,
		ClientID:  clientID,
		FactoryID: factoryID,
	}
	c.machines = append(c.machines, m)
	return m
}

// SelectClient sets the active client and clears any machine selection.
func (c *Catalog) SelectClient(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedClientID = id
	c.selectedMachineID = ""
}

// SelectMachine sets the active machine. A known machine also pins its
// owning client; an unknown ID leaves the client untouched.
func (c *Catalog) SelectMachine(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedMachineID = id
	for _, m := range c.machines {
		if m.ID == id {
			c.selectedClientID = m.ClientID
			return
		}
	}
}

func (c *Catalog) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedClientID = ""
	c.selectedMachineID = ""
}

// Selection reports the active client and machine IDs.
func (c *Catalog) Selection() (clientID, machineID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedClientID, c.selectedMachineID
}
