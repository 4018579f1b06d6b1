package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vezbudget/internal/model"
)

// assignmentRow 指派关系行
type assignmentRow struct {
	Company  string             `json:"company"`
	Category model.CategoryType `json:"category"`
	Concept  string             `json:"subCategory"`
}

// ConfigResponse 公司与科目配置响应
type ConfigResponse struct {
	Companies        []model.CompanyDetail           `json:"companies"`
	Categories       map[model.CategoryType][]string `json:"categories"`
	Assignments      []assignmentRow                 `json:"assignments"`
	ConsolidatedID   string                          `json:"consolidatedId"`
	ConsolidatedName string                          `json:"consolidatedName"`
	Currency         string                          `json:"currency"`
}

// GetConfig 获取公司清单、科目体系与指派关系
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	cfg := h.mem.GetConfig()

	keys := h.mem.Assignments().Keys()
	assigns := make([]assignmentRow, 0, len(keys))
	for _, k := range keys {
		assigns = append(assigns, assignmentRow{
			Company:  k.Company,
			Category: k.Category,
			Concept:  k.Concept,
		})
	}

	c.JSON(http.StatusOK, ConfigResponse{
		Companies:        cfg.Companies,
		Categories:       cfg.Categories,
		Assignments:      assigns,
		ConsolidatedID:   model.ConsolidatedID,
		ConsolidatedName: model.ConsolidatedName,
		Currency:         h.mem.Reporting(),
	})
}

type createCompanyRequest struct {
	Name     string `json:"name" binding:"required"`
	Currency string `json:"currency" binding:"required"`
}

// CreateCompany 新增公司
// POST /api/companies
func (h *Handler) CreateCompany(c *gin.Context) {
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := h.mem.GetConfig()
	if _, ok := cfg.Company(req.Name); ok {
		c.JSON(http.StatusConflict, gin.H{"error": "company already exists"})
		return
	}

	detail := model.CompanyDetail{ID: uuid.NewString(), Name: req.Name, Currency: req.Currency}
	if err := h.db.SaveCompany(detail); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cfg.Companies = append(cfg.Companies, detail)
	h.mem.SetConfig(cfg)

	c.JSON(http.StatusOK, detail)
}

type updateCompanyRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// UpdateCompany 修改公司名称或本币。改名级联改写条目、汇率与指派
// PATCH /api/companies/:id
func (h *Handler) UpdateCompany(c *gin.Context) {
	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, ok := h.companyByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
		return
	}

	oldName := detail.Name
	if req.Name != "" {
		detail.Name = req.Name
	}
	if req.Currency != "" {
		detail.Currency = req.Currency
	}

	if err := h.db.SaveCompany(detail); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if detail.Name != oldName {
		if err := h.db.RenameCompanyData(oldName, detail.Name); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		h.mem.RenameCompany(oldName, detail.Name)
	}

	// 货币变更只影响清单本身，条目金额保持本币原值
	cfg := h.mem.GetConfig()
	for i := range cfg.Companies {
		if cfg.Companies[i].ID == detail.ID {
			cfg.Companies[i] = detail
		}
	}
	h.mem.SetConfig(cfg)

	c.JSON(http.StatusOK, detail)
}

// DeleteCompany 删除公司，连带删除其全部条目、汇率与指派
// DELETE /api/companies/:id
func (h *Handler) DeleteCompany(c *gin.Context) {
	detail, ok := h.companyByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
		return
	}

	if err := h.db.DeleteCompany(detail.Name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.db.DeleteEntriesByCompany(detail.Name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.mem.DeleteCompany(detail.Name)

	c.JSON(http.StatusOK, gin.H{"deleted": detail.Name})
}

type createConceptRequest struct {
	Category model.CategoryType `json:"category" binding:"required"`
	Name     string             `json:"name" binding:"required"`
}

// CreateConcept 新增概念，默认指派给全部公司
// POST /api/concepts
func (h *Handler) CreateConcept(c *gin.Context) {
	var req createConceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !model.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return
	}

	cfg := h.mem.GetConfig()
	if cfg.HasConcept(req.Category, req.Name) {
		c.JSON(http.StatusConflict, gin.H{"error": "concept already exists"})
		return
	}

	if err := h.db.SaveConcept(req.Category, req.Name, len(cfg.Categories[req.Category])); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for _, comp := range cfg.Companies {
		if err := h.db.SaveAssignment(comp.Name, req.Category, req.Name); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		h.mem.Assign(comp.Name, req.Category, req.Name)
	}

	cfg.Categories[req.Category] = append(cfg.Categories[req.Category], req.Name)
	h.mem.SetConfig(cfg)

	c.JSON(http.StatusOK, gin.H{"category": req.Category, "name": req.Name})
}

type renameConceptRequest struct {
	Category model.CategoryType `json:"category" binding:"required"`
	OldName  string             `json:"oldName" binding:"required"`
	NewName  string             `json:"newName" binding:"required"`
}

// RenameConcept 概念改名，级联改写条目与指派
// POST /api/concepts/rename
func (h *Handler) RenameConcept(c *gin.Context) {
	var req renameConceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := h.mem.GetConfig()
	if !cfg.HasConcept(req.Category, req.OldName) {
		c.JSON(http.StatusNotFound, gin.H{"error": "concept not found"})
		return
	}

	if err := h.db.RenameConceptCatalog(req.Category, req.OldName, req.NewName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.db.RenameConceptData(req.Category, req.OldName, req.NewName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.mem.RenameConcept(req.Category, req.OldName, req.NewName)

	c.JSON(http.StatusOK, gin.H{"category": req.Category, "name": req.NewName})
}

type deleteConceptRequest struct {
	Category model.CategoryType `json:"category" binding:"required"`
	Name     string             `json:"name" binding:"required"`
}

// DeleteConcept 删除概念，连带删除其全部条目与指派
// POST /api/concepts/delete
func (h *Handler) DeleteConcept(c *gin.Context) {
	var req deleteConceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.DeleteConcept(req.Category, req.Name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.db.DeleteEntriesByConcept(req.Category, req.Name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.mem.DeleteConcept(req.Category, req.Name)

	c.JSON(http.StatusOK, gin.H{"deleted": req.Name})
}

type setAssignmentRequest struct {
	Company  string             `json:"company" binding:"required"`
	Category model.CategoryType `json:"category" binding:"required"`
	Concept  string             `json:"subCategory" binding:"required"`
	Assigned *bool              `json:"assigned" binding:"required"`
}

// SetAssignment 建立或解除公司与概念的指派
// PUT /api/assignments
func (h *Handler) SetAssignment(c *gin.Context) {
	var req setAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if *req.Assigned {
		if err := h.db.SaveAssignment(req.Company, req.Category, req.Concept); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		h.mem.Assign(req.Company, req.Category, req.Concept)
	} else {
		if err := h.db.DeleteAssignment(req.Company, req.Category, req.Concept); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		h.mem.Unassign(req.Company, req.Category, req.Concept)
	}

	c.JSON(http.StatusOK, gin.H{"assigned": *req.Assigned})
}

// companyByID 按 ID 查找公司配置
func (h *Handler) companyByID(id string) (model.CompanyDetail, bool) {
	cfg := h.mem.GetConfig()
	for _, cd := range cfg.Companies {
		if cd.ID == id {
			return cd, true
		}
	}
	return model.CompanyDetail{}, false
}
