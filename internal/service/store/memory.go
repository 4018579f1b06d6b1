package store

import (
	"sync"

	"vezbudget/internal/model"
)

// MemoryStore 活动版本数据的内存存储
// 同一业务主键至多存在一条记录；读写均为值拷贝，调用方拿不到共享可变状态
type MemoryStore struct {
	mu          sync.RWMutex
	entries     map[model.EntryKey]model.BudgetEntry
	rates       map[model.RateKey]model.ExchangeRate
	config      model.AppConfig
	assignments *model.AssignmentSet
	reporting   string
}

// NewMemoryStore 创建内存存储。reporting 为集团申报货币
func NewMemoryStore(reporting string) *MemoryStore {
	return &MemoryStore{
		entries:     make(map[model.EntryKey]model.BudgetEntry),
		rates:       make(map[model.RateKey]model.ExchangeRate),
		assignments: model.NewAssignmentSet(),
		reporting:   reporting,
	}
}

// Reporting 申报货币
func (s *MemoryStore) Reporting() string {
	return s.reporting
}

// SetConfig 设置公司清单与科目体系
func (s *MemoryStore) SetConfig(cfg model.AppConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = copyConfig(cfg)
}

// GetConfig 获取公司清单与科目体系（副本）
func (s *MemoryStore) GetConfig() model.AppConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyConfig(s.config)
}

// SetAssignments 设置概念指派关系
func (s *MemoryStore) SetAssignments(a *model.AssignmentSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments = a.Clone()
}

// Assignments 获取概念指派关系（副本）
func (s *MemoryStore) Assignments() *model.AssignmentSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assignments.Clone()
}

// Assign 建立概念指派
func (s *MemoryStore) Assign(company string, cat model.CategoryType, concept string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments.Assign(company, cat, concept)
}

// Unassign 解除概念指派
func (s *MemoryStore) Unassign(company string, cat model.CategoryType, concept string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments.Unassign(company, cat, concept)
}

// IsAssigned 概念是否指派给该公司
func (s *MemoryStore) IsAssigned(company string, cat model.CategoryType, concept string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assignments.IsAssigned(company, cat, concept)
}

// GetEntry 按业务主键取条目；不存在时返回零值新条目（尚未入库），永不失败
func (s *MemoryStore) GetEntry(key model.EntryKey) model.BudgetEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getEntryLocked(key)
}

func (s *MemoryStore) getEntryLocked(key model.EntryKey) model.BudgetEntry {
	if e, ok := s.entries[key]; ok {
		return e
	}
	return model.BudgetEntry{
		Month:     key.Month,
		Year:      key.Year,
		Company:   key.Company,
		Category:  key.Category,
		Concept:   key.Concept,
		VersionID: key.VersionID,
	}
}

// UpsertEntry 以业务主键替换或插入条目
func (s *MemoryStore) UpsertEntry(e model.BudgetEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.Key()] = e
}

// ApplyBatch 应用一批条目更新。整批在同一把锁内完成，
// 批内条目之间保持互相一致
func (s *MemoryStore) ApplyBatch(b model.EntryBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range b.Entries {
		s.entries[e.Key()] = e
	}
}

// GetRate 按业务主键取汇率；不存在时返回默认值：
// 本币即申报货币的公司为 1，否则为 0（表示未设置）
func (s *MemoryStore) GetRate(key model.RateKey) model.ExchangeRate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getRateLocked(key)
}

func (s *MemoryStore) getRateLocked(key model.RateKey) model.ExchangeRate {
	if r, ok := s.rates[key]; ok {
		return r
	}
	var def float64
	if c, ok := s.config.Company(key.Company); ok && c.Currency == s.reporting {
		def = 1
	}
	return model.ExchangeRate{
		Company:   key.Company,
		Month:     key.Month,
		Year:      key.Year,
		VersionID: key.VersionID,
		PlanRate:  def,
		RealRate:  def,
	}
}

// UpsertRate 以业务主键替换或插入汇率
func (s *MemoryStore) UpsertRate(r model.ExchangeRate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[r.Key()] = r
}

// LoadVersion 整体载入一个版本的数据，替换该版本在内存中的全部条目与汇率
func (s *MemoryStore) LoadVersion(versionID string, entries []model.BudgetEntry, rates []model.ExchangeRate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range s.entries {
		if k.VersionID == versionID {
			delete(s.entries, k)
		}
	}
	for k := range s.rates {
		if k.VersionID == versionID {
			delete(s.rates, k)
		}
	}
	for _, e := range entries {
		s.entries[e.Key()] = e
	}
	for _, r := range rates {
		s.rates[r.Key()] = r
	}
}

// ConceptSnapshot 合并汇总所需的一致性读快照：
// 在一次加锁内取出各公司在 (大类, 概念, 月份) 上的条目与汇率
type ConceptSnapshot struct {
	Entries map[string]model.BudgetEntry  // 公司名 -> 条目
	Rates   map[string]model.ExchangeRate // 公司名 -> 汇率
}

// SnapshotConcept 为一次合并计算取快照，聚合期间的并发写不会造成撕裂读
func (s *MemoryStore) SnapshotConcept(versionID string, cat model.CategoryType, concept string, month, year int, companies []model.CompanyDetail) ConceptSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := ConceptSnapshot{
		Entries: make(map[string]model.BudgetEntry, len(companies)),
		Rates:   make(map[string]model.ExchangeRate, len(companies)),
	}
	for _, c := range companies {
		snap.Entries[c.Name] = s.getEntryLocked(model.EntryKey{
			VersionID: versionID,
			Company:   c.Name,
			Category:  cat,
			Concept:   concept,
			Month:     month,
			Year:      year,
		})
		snap.Rates[c.Name] = s.getRateLocked(model.RateKey{
			VersionID: versionID,
			Company:   c.Name,
			Month:     month,
			Year:      year,
		})
	}
	return snap
}

// MonthEntries 取某版本某月的全部已存条目（副本）
func (s *MemoryStore) MonthEntries(versionID string, month, year int) []model.BudgetEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.BudgetEntry
	for k, e := range s.entries {
		if k.VersionID == versionID && k.Month == month && k.Year == year {
			out = append(out, e)
		}
	}
	return out
}

// RenameCompany 公司改名：级联更新条目、汇率、指派关系与公司清单
func (s *MemoryStore) RenameCompany(oldName, newName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, e := range s.entries {
		if k.Company == oldName {
			delete(s.entries, k)
			e.Company = newName
			s.entries[e.Key()] = e
		}
	}
	for k, r := range s.rates {
		if k.Company == oldName {
			delete(s.rates, k)
			r.Company = newName
			s.rates[r.Key()] = r
		}
	}
	s.assignments.RenameCompany(oldName, newName)
	for i := range s.config.Companies {
		if s.config.Companies[i].Name == oldName {
			s.config.Companies[i].Name = newName
		}
	}
}

// RenameConcept 概念改名：级联更新条目、指派关系与科目体系
func (s *MemoryStore) RenameConcept(cat model.CategoryType, oldName, newName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, e := range s.entries {
		if k.Category == cat && k.Concept == oldName {
			delete(s.entries, k)
			e.Concept = newName
			s.entries[e.Key()] = e
		}
	}
	s.assignments.RenameConcept(cat, oldName, newName)
	concepts := s.config.Categories[cat]
	for i, c := range concepts {
		if c == oldName {
			concepts[i] = newName
		}
	}
}

// DeleteCompany 删除公司：批量清除其条目、汇率与指派
// 条目只在所属公司或概念被删除时成批消亡，不做单条删除
func (s *MemoryStore) DeleteCompany(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range s.entries {
		if k.Company == name {
			delete(s.entries, k)
		}
	}
	for k := range s.rates {
		if k.Company == name {
			delete(s.rates, k)
		}
	}
	for _, ak := range s.assignments.Keys() {
		if ak.Company == name {
			s.assignments.Unassign(ak.Company, ak.Category, ak.Concept)
		}
	}
	companies := s.config.Companies[:0]
	for _, c := range s.config.Companies {
		if c.Name != name {
			companies = append(companies, c)
		}
	}
	s.config.Companies = companies
}

// DeleteConcept 删除概念：批量清除其条目与指派
func (s *MemoryStore) DeleteConcept(cat model.CategoryType, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range s.entries {
		if k.Category == cat && k.Concept == name {
			delete(s.entries, k)
		}
	}
	for _, ak := range s.assignments.Keys() {
		if ak.Category == cat && ak.Concept == name {
			s.assignments.Unassign(ak.Company, ak.Category, ak.Concept)
		}
	}
	concepts := s.config.Categories[cat][:0]
	for _, c := range s.config.Categories[cat] {
		if c != name {
			concepts = append(concepts, c)
		}
	}
	s.config.Categories[cat] = concepts
}

// CountEntries 某版本已存条目数
func (s *MemoryStore) CountEntries(versionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for k := range s.entries {
		if k.VersionID == versionID {
			n++
		}
	}
	return n
}

func copyConfig(cfg model.AppConfig) model.AppConfig {
	out := model.AppConfig{
		Companies:  append([]model.CompanyDetail(nil), cfg.Companies...),
		Categories: make(map[model.CategoryType][]string, len(cfg.Categories)),
	}
	for cat, concepts := range cfg.Categories {
		out.Categories[cat] = append([]string(nil), concepts...)
	}
	return out
}
