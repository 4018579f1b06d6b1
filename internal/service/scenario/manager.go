package scenario

import (
	"fmt"
	"sync"

	"vezbudget/internal/model"
	memstore "vezbudget/internal/service/store"
	dbstore "vezbudget/internal/store"
)

// Manager 版本（情景）管理器：负责版本目录、克隆、切换与内存装载
// 引擎自身不实现克隆；克隆产生的新版本与任何其他版本的消费方式完全一致
type Manager struct {
	db  *dbstore.Store
	mem *memstore.MemoryStore

	mu       sync.Mutex
	activeID string
}

// NewManager 创建版本管理器
func NewManager(db *dbstore.Store, mem *memstore.MemoryStore) *Manager {
	return &Manager{db: db, mem: mem}
}

// Bootstrap 启动装载：空库时按需写入默认数据，
// 然后把公司/科目目录与活动版本载入内存存储
func (m *Manager) Bootstrap(seedDefaults bool, year int) error {
	seeded, err := m.db.Seeded()
	if err != nil {
		return err
	}
	if !seeded && seedDefaults {
		if err := m.db.SeedDefaults(year); err != nil {
			return fmt.Errorf("failed to seed defaults: %w", err)
		}
	}

	cfg, assigns, err := m.db.LoadCatalog()
	if err != nil {
		return err
	}
	m.mem.SetConfig(cfg)
	m.mem.SetAssignments(assigns)

	versions, err := m.db.ListVersions()
	if err != nil {
		return err
	}
	for _, v := range versions {
		if v.IsActive {
			return m.Activate(v.ID)
		}
	}
	if len(versions) > 0 {
		return m.Activate(versions[0].ID)
	}
	return nil
}

// ActiveID 当前活动版本
func (m *Manager) ActiveID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeID
}

// List 列出全部版本
func (m *Manager) List() ([]model.BudgetVersion, error) {
	return m.db.ListVersions()
}

// Create 创建空白版本
func (m *Manager) Create(name, description string) (*model.BudgetVersion, error) {
	return m.db.CreateVersion(name, description)
}

// Clone 克隆版本：复制源版本全部条目与汇率到新版本号下，
// 并载入内存以便立即可查
func (m *Manager) Clone(sourceID, name, description string) (*model.BudgetVersion, error) {
	v, err := m.db.CloneVersion(sourceID, name, description)
	if err != nil {
		return nil, err
	}
	if err := m.loadVersion(v.ID); err != nil {
		return nil, err
	}
	return v, nil
}

// Activate 切换活动版本并载入内存
func (m *Manager) Activate(id string) error {
	if err := m.db.SetActiveVersion(id); err != nil {
		return err
	}
	if err := m.loadVersion(id); err != nil {
		return err
	}
	m.mu.Lock()
	m.activeID = id
	m.mu.Unlock()
	return nil
}

// loadVersion 从持久层整体载入一个版本到内存存储
func (m *Manager) loadVersion(id string) error {
	entries, err := m.db.GetEntriesByVersion(id)
	if err != nil {
		return err
	}
	rates, err := m.db.GetRatesByVersion(id)
	if err != nil {
		return err
	}
	m.mem.LoadVersion(id, entries, rates)
	return nil
}
