package v1

import (
	"encoding/json"
	"net/http"
	"testing"

	"vezbudget/internal/model"
)

func TestRenameConcept_CascadesToEntries(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(t, http.MethodPost, "/api/concepts/rename", map[string]any{
		"category": "Ingresos",
		"oldName":  "Servicio A (Consultoría)",
		"newName":  "Consultoría Estratégica",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	// 历史条目跟随新名字
	e := a.entry(t, "Vezeel Sales", "Consultoría Estratégica", 1)
	if e.PlanValue != 15000 {
		t.Errorf("entry under new name = %v, want 15000", e.PlanValue)
	}
	if old := a.entry(t, "Vezeel Sales", "Servicio A (Consultoría)", 1); old.PlanValue != 0 {
		t.Error("entry still reachable under old concept name")
	}

	cfg := a.mem.GetConfig()
	if !cfg.HasConcept(model.CategoryIncome, "Consultoría Estratégica") {
		t.Error("memory catalog not renamed")
	}
}

func TestUpdateCompany_RenameCascades(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(t, http.MethodPatch, "/api/companies/vezeel-sales", map[string]any{
		"name": "Vezeel Global Sales",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	e := a.entry(t, "Vezeel Global Sales", "Servicio A (Consultoría)", 1)
	if e.PlanValue != 15000 {
		t.Errorf("entry under new company name = %v, want 15000", e.PlanValue)
	}
	if !a.mem.IsAssigned("Vezeel Global Sales", model.CategoryIncome, "Servicio A (Consultoría)") {
		t.Error("assignment not renamed")
	}
}

func TestDeleteCompany_RemovesEntries(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(t, http.MethodDelete, "/api/companies/vezeel-tech", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	if e := a.entry(t, "Vezeel Tech", "Licencias SaaS", 1); e.PlanValue != 0 {
		t.Error("entries survived company delete")
	}
	cfg := a.mem.GetConfig()
	if _, ok := cfg.Company("Vezeel Tech"); ok {
		t.Error("company still in memory config")
	}
}

func TestCreateConcept_AssignedToAllCompanies(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(t, http.MethodPost, "/api/concepts", map[string]any{
		"category": "Costos Directos",
		"name":     "Hardware",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	for _, name := range []string{"Vezeel Sales", "Vezeel Tech", "Vezeel Consulting"} {
		if !a.mem.IsAssigned(name, model.CategoryDirectCosts, "Hardware") {
			t.Errorf("new concept not assigned to %s", name)
		}
	}
}

func TestSetAssignment_Toggle(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(t, http.MethodPut, "/api/assignments", map[string]any{
		"company":     "Vezeel Sales",
		"category":    "Ingresos",
		"subCategory": "Licencias SaaS",
		"assigned":    false,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	if a.mem.IsAssigned("Vezeel Sales", model.CategoryIncome, "Licencias SaaS") {
		t.Error("concept still assigned after unassign")
	}

	w = a.do(t, http.MethodPut, "/api/assignments", map[string]any{
		"company":     "Vezeel Sales",
		"category":    "Ingresos",
		"subCategory": "Licencias SaaS",
		"assigned":    true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	if !a.mem.IsAssigned("Vezeel Sales", model.CategoryIncome, "Licencias SaaS") {
		t.Error("concept not assigned after re-assign")
	}
}

func TestVersionsEndpoints(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(t, http.MethodGet, "/api/versions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var list ListVersionsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list.Items) != 2 || list.ActiveID == "" {
		t.Fatalf("versions = %d active=%q", len(list.Items), list.ActiveID)
	}

	w = a.do(t, http.MethodPost, "/api/versions/"+list.ActiveID+"/clone", map[string]any{
		"name": "Escenario Pesimista",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("clone status: %d body=%s", w.Code, w.Body.String())
	}
	var clone model.BudgetVersion
	if err := json.Unmarshal(w.Body.Bytes(), &clone); err != nil {
		t.Fatalf("decode clone: %v", err)
	}

	w = a.do(t, http.MethodPost, "/api/versions/"+clone.ID+"/activate", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("activate status: %d body=%s", w.Code, w.Body.String())
	}
	if a.versions.ActiveID() != clone.ID {
		t.Errorf("active = %s, want %s", a.versions.ActiveID(), clone.ID)
	}
}
