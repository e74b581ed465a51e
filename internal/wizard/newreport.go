// Package wizard implements the linear flows of the UI: the new-report
// wizard and the parts-import pipeline. Both are strict forward
// machines; stepping back discards everything collected downstream.
package wizard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dgallion1/fieldreport/internal/master"
	"github.com/dgallion1/fieldreport/internal/reports"
)

// Wizard steps.
const (
	StepClient  = 1
	StepFactory = 2
	StepMachine = 3
)

var ErrIncompleteStep = errors.New("current step incomplete")

// ReportWizard walks client, factory, machine selection and creates a
// report from the result. Each step accepts an existing ID or the NEW
// sentinel plus a name for inline registration.
type ReportWizard struct {
	mu      sync.Mutex
	step    int
	catalog *master.Catalog
	reports *reports.Store

	clientID  string
	factoryID string
	machineID string

	newClientName  string
	newFactoryName string
	newMachineName string
}

func NewReportWizard(catalog *master.Catalog, store *reports.Store) *ReportWizard {
	return &ReportWizard{step: StepClient, catalog: catalog, reports: store}
}

// Start resets the wizard to a clean first step.
func (w *ReportWizard) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
}

func (w *ReportWizard) reset() {
	w.step = StepClient
	w.clientID, w.factoryID, w.machineID = "", "", ""
	w.newClientName, w.newFactoryName, w.newMachineName = "", "", ""
}

func (w *ReportWizard) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// SelectClient records the step-1 choice. Pass master.NewEntry with a
// name to register inline.
func (w *ReportWizard) SelectClient(id, newName string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clientID = id
	w.newClientName = newName
}

func (w *ReportWizard) SelectFactory(id, newName string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.factoryID = id
	w.newFactoryName = newName
}

func (w *ReportWizard) SelectMachine(id, newName string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.machineID = id
	w.newMachineName = newName
}

// Next advances past the current step, refusing while the step's
// required choice is missing. From the final step it creates the
// report and resets the wizard, returning the new report ID.
func (w *ReportWizard) Next() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepClient:
		if w.clientID == "" && w.newClientName == "" {
			return "", fmt.Errorf("%w: pick a client", ErrIncompleteStep)
		}
		w.step = StepFactory
		return "", nil
	case StepFactory:
		if w.clientID == master.NewEntry && w.newClientName == "" {
			return "", fmt.Errorf("%w: name the new client", ErrIncompleteStep)
		}
		if w.clientID != master.NewEntry && w.factoryID == "" && w.newFactoryName == "" {
			return "", fmt.Errorf("%w: pick a factory", ErrIncompleteStep)
		}
		w.step = StepMachine
		return "", nil
	case StepMachine:
		if w.clientID != master.NewEntry && w.factoryID != master.NewEntry &&
			w.machineID == "" && w.newMachineName == "" {
			return "", fmt.Errorf("%w: pick a machine", ErrIncompleteStep)
		}
		id := w.finish()
		w.reset()
		return id, nil
	}
	return "", fmt.Errorf("unknown step %d", w.step)
}

// Back returns to the previous step, discarding everything chosen on
// the current one.
func (w *ReportWizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepFactory:
		w.factoryID, w.newFactoryName = "", ""
		w.step = StepClient
	case StepMachine:
		w.machineID, w.newMachineName = "", ""
		w.step = StepFactory
	}
}

// Close abandons the wizard entirely.
func (w *ReportWizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
}

// finish resolves the selection, registering inline entries in the
// catalog, and creates the report summary. Caller holds the lock.
func (w *ReportWizard) finish() string {
	clientID, clientName := w.clientID, ""
	if w.clientID == master.NewEntry {
		cl := w.catalog.RegisterClient(w.newClientName)
		clientID, clientName = cl.ID, cl.Name
	} else if cl, ok := w.catalog.Client(w.clientID); ok {
		clientName = cl.Name
	}

	factoryID := w.factoryID
	if w.factoryID == master.NewEntry || (w.clientID == master.NewEntry && w.factoryID == "") {
		name := w.newFactoryName
		if name == "" {
			name = "Main Site"
		}
		factoryID = w.catalog.RegisterFactory(clientID, name).ID
	}

	machineID, machineName := w.machineID, ""
	if w.machineID == master.NewEntry || (w.machineID == "" && w.newMachineName != "") {
		m := w.catalog.RegisterMachine(clientID, factoryID, w.newMachineName)
		machineID, machineName = m.ID, m.Name
	} else if m, ok := w.catalog.Machine(w.machineID); ok {
		machineName = m.Name
	}

	return w.reports.Create(reports.Summary{
		ClientID:  clientID,
		FactoryID: factoryID,
		MachineID: machineID,
		Client:    clientName,
		Machine:   machineName,
	})
}
