package wizard

import (
	"errors"
	"testing"

	"github.com/dgallion1/fieldreport/internal/master"
	"github.com/dgallion1/fieldreport/internal/reports"
)

func TestReportWizard_ExistingSelection(t *testing.T) {
	catalog := master.NewCatalog()
	store := reports.NewStore()
	w := NewReportWizard(catalog, store)

	w.SelectClient("C-001", "")
	if _, err := w.Next(); err != nil {
		t.Fatalf("Next() step 1: %v", err)
	}
	w.SelectFactory("F-001", "")
	if _, err := w.Next(); err != nil {
		t.Fatalf("Next() step 2: %v", err)
	}
	w.SelectMachine("M-02", "")

	id, err := w.Next()
	if err != nil {
		t.Fatalf("Next() step 3: %v", err)
	}
	got, ok := store.Get(id)
	if !ok {
		t.Fatal("created report not in list")
	}
	if got.Client != "Acme Corp" || got.Machine != "Lathe B" {
		t.Errorf("summary = %+v", got)
	}
	if got.Description != "Report for Lathe B (Acme Corp)" {
		t.Errorf("description = %q", got.Description)
	}

	// Wizard resets after create.
	if w.Step() != StepClient {
		t.Errorf("step after finish = %d, want %d", w.Step(), StepClient)
	}
}

func TestReportWizard_StepGating(t *testing.T) {
	w := NewReportWizard(master.NewCatalog(), reports.NewStore())

	if _, err := w.Next(); !errors.Is(err, ErrIncompleteStep) {
		t.Fatalf("Next() with no client = %v, want ErrIncompleteStep", err)
	}

	w.SelectClient("C-001", "")
	if _, err := w.Next(); err != nil {
		t.Fatalf("Next() step 1: %v", err)
	}
	if _, err := w.Next(); !errors.Is(err, ErrIncompleteStep) {
		t.Fatalf("Next() with no factory = %v, want ErrIncompleteStep", err)
	}
}

func TestReportWizard_InlineRegistration(t *testing.T) {
	catalog := master.NewCatalog()
	store := reports.NewStore()
	w := NewReportWizard(catalog, store)

	w.SelectClient(master.NewEntry, "Initech")
	if _, err := w.Next(); err != nil {
		t.Fatalf("Next() step 1: %v", err)
	}
	w.SelectFactory(master.NewEntry, "Basement")
	if _, err := w.Next(); err != nil {
		t.Fatalf("Next() step 2: %v", err)
	}
	w.SelectMachine(master.NewEntry, "Printer")

	id, err := w.Next()
	if err != nil {
		t.Fatalf("Next() step 3: %v", err)
	}

	got, _ := store.Get(id)
	if got.Client != "Initech" || got.Machine != "Printer" {
		t.Errorf("summary = %+v", got)
	}

	// Inline entries landed in the catalog.
	cl, ok := catalog.Client(got.ClientID)
	if !ok || cl.Name != "Initech" {
		t.Errorf("client not registered: %+v", cl)
	}
	if machines := catalog.MachinesOf(got.FactoryID); len(machines) != 1 || machines[0].Name != "Printer" {
		t.Errorf("machine not registered under new factory: %v", machines)
	}
}

func TestReportWizard_BackDiscards(t *testing.T) {
	w := NewReportWizard(master.NewCatalog(), reports.NewStore())

	w.SelectClient("C-001", "")
	w.Next()
	w.SelectFactory("F-001", "")
	w.Next()
	w.SelectMachine("M-01", "")

	// Back from machine drops the machine choice.
	w.Back()
	if w.Step() != StepFactory {
		t.Fatalf("step = %d, want %d", w.Step(), StepFactory)
	}
	if w.machineID != "" || w.newMachineName != "" {
		t.Error("machine selection survived Back()")
	}

	// Back again drops the factory choice too.
	w.Back()
	if w.Step() != StepClient {
		t.Fatalf("step = %d, want %d", w.Step(), StepClient)
	}
	if w.factoryID != "" {
		t.Error("factory selection survived Back()")
	}
	// Client choice on the current step stays.
	if w.clientID != "C-001" {
		t.Errorf("clientID = %q, want C-001", w.clientID)
	}
}

func TestReportWizard_CloseResets(t *testing.T) {
	w := NewReportWizard(master.NewCatalog(), reports.NewStore())
	w.SelectClient("C-002", "")
	w.Next()
	w.Close()

	if w.Step() != StepClient {
		t.Errorf("step after close = %d", w.Step())
	}
	if w.clientID != "" {
		t.Error("selection survived Close()")
	}
}
