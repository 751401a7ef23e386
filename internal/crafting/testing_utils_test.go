package crafting

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/osse101/SpiritForge_Go/internal/concurrency"
	"github.com/osse101/SpiritForge_Go/internal/domain"
	"github.com/osse101/SpiritForge_Go/internal/event"
	"github.com/osse101/SpiritForge_Go/internal/identifier"
	"github.com/osse101/SpiritForge_Go/internal/repository"
)

// MockRepository is an in-memory store with row-lock and commit simulation
type MockRepository struct {
	sync.RWMutex
	actors    map[string]*domain.Actor
	items     map[string]map[string]domain.InventoryItem
	templates map[string]*domain.ItemTemplate
	recipes   map[string]*domain.Recipe
	knowledge map[string]*domain.RecipeKnowledge
	syncMeta  map[string]*domain.SyncMetadata

	// Actor locks simulate SELECT ... FOR UPDATE
	actorLocks   map[string]*sync.Mutex
	actorLocksMu sync.Mutex

	// Error injection
	beginTxError      error
	getInventoryError error
	createItemError   error
	commitError       error

	// Called by GetInventory before reading, outside the store lock
	onGetInventory func()

	upsertRecipeCalls int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		actors:     make(map[string]*domain.Actor),
		items:      make(map[string]map[string]domain.InventoryItem),
		templates:  make(map[string]*domain.ItemTemplate),
		recipes:    make(map[string]*domain.Recipe),
		knowledge:  make(map[string]*domain.RecipeKnowledge),
		syncMeta:   make(map[string]*domain.SyncMetadata),
		actorLocks: make(map[string]*sync.Mutex),
	}
}

// ==================== Seeding helpers ====================

func (m *MockRepository) AddActor(id string, actorType domain.ActorType) {
	m.Lock()
	defer m.Unlock()
	m.actors[id] = &domain.Actor{ID: id, Name: id, Type: actorType}
}

func (m *MockRepository) AddItem(item domain.InventoryItem) {
	m.Lock()
	defer m.Unlock()
	if m.items[item.ActorID] == nil {
		m.items[item.ActorID] = make(map[string]domain.InventoryItem)
	}
	m.items[item.ActorID][item.ID] = item
}

func (m *MockRepository) AddTemplate(tmpl domain.ItemTemplate) {
	m.Lock()
	defer m.Unlock()
	m.templates[tmpl.UUID] = &tmpl
}

func (m *MockRepository) AddRecipe(recipe domain.Recipe) {
	m.Lock()
	defer m.Unlock()
	m.recipes[recipe.ID] = &recipe
}

func (m *MockRepository) Item(actorID, itemID string) (domain.InventoryItem, bool) {
	m.RLock()
	defer m.RUnlock()
	item, ok := m.items[actorID][itemID]
	return item, ok
}

func (m *MockRepository) Inventory(actorID string) []domain.InventoryItem {
	m.RLock()
	defer m.RUnlock()
	return m.inventoryLocked(actorID)
}

func (m *MockRepository) inventoryLocked(actorID string) []domain.InventoryItem {
	out := make([]domain.InventoryItem, 0, len(m.items[actorID]))
	for _, item := range m.items[actorID] {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MockRepository) actorLock(actorID string) *sync.Mutex {
	m.actorLocksMu.Lock()
	defer m.actorLocksMu.Unlock()
	if _, ok := m.actorLocks[actorID]; !ok {
		m.actorLocks[actorID] = &sync.Mutex{}
	}
	return m.actorLocks[actorID]
}

// ==================== repository.Crafting ====================

func (m *MockRepository) GetActor(_ context.Context, actorID string) (*domain.Actor, error) {
	m.RLock()
	defer m.RUnlock()
	actor, ok := m.actors[actorID]
	if !ok {
		return nil, nil
	}
	cp := *actor
	return &cp, nil
}

func (m *MockRepository) GetInventory(_ context.Context, actorID string) ([]domain.InventoryItem, error) {
	m.RLock()
	hook := m.onGetInventory
	m.RUnlock()
	if hook != nil {
		hook()
	}

	m.RLock()
	defer m.RUnlock()
	if m.getInventoryError != nil {
		return nil, m.getInventoryError
	}
	return m.inventoryLocked(actorID), nil
}

func (m *MockRepository) GetItemTemplate(_ context.Context, uuid string) (*domain.ItemTemplate, error) {
	m.RLock()
	defer m.RUnlock()
	tmpl, ok := m.templates[uuid]
	if !ok {
		return nil, nil
	}
	cp := *tmpl
	return &cp, nil
}

func (m *MockRepository) GetRecipe(_ context.Context, recipeID string) (*domain.Recipe, error) {
	m.RLock()
	defer m.RUnlock()
	recipe, ok := m.recipes[recipeID]
	if !ok {
		return nil, nil
	}
	cp := *recipe
	return &cp, nil
}

func (m *MockRepository) GetRecipesByType(ctx context.Context, recipeType domain.RecipeType) ([]domain.Recipe, error) {
	all, _ := m.GetAllRecipes(ctx)
	out := make([]domain.Recipe, 0, len(all))
	for _, r := range all {
		if r.RecipeType == recipeType {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockRepository) GetAllRecipes(_ context.Context) ([]domain.Recipe, error) {
	m.RLock()
	defer m.RUnlock()
	out := make([]domain.Recipe, 0, len(m.recipes))
	for _, r := range m.recipes {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockRepository) GetRecipeKnowledge(_ context.Context, actorID string) (*domain.RecipeKnowledge, error) {
	m.RLock()
	defer m.RUnlock()
	k, ok := m.knowledge[actorID]
	if !ok {
		return domain.NewRecipeKnowledge(actorID), nil
	}
	return k.Clone(), nil
}

func (m *MockRepository) knowledgeLocked(actorID string) *domain.RecipeKnowledge {
	k, ok := m.knowledge[actorID]
	if !ok {
		k = domain.NewRecipeKnowledge(actorID)
		m.knowledge[actorID] = k
	}
	return k
}

func (m *MockRepository) LearnRecipe(_ context.Context, actorID, recipeID string) error {
	m.Lock()
	defer m.Unlock()
	m.knowledgeLocked(actorID).Learn(recipeID)
	return nil
}

func (m *MockRepository) UnlearnRecipe(_ context.Context, actorID, recipeID string) error {
	m.Lock()
	defer m.Unlock()
	m.knowledgeLocked(actorID).Unlearn(recipeID)
	return nil
}

func (m *MockRepository) SetRecipeTypeEnabled(_ context.Context, actorID string, recipeType domain.RecipeType, enabled bool) error {
	m.Lock()
	defer m.Unlock()
	m.knowledgeLocked(actorID).SetEnabled(recipeType, enabled)
	return nil
}

func (m *MockRepository) BeginTx(_ context.Context) (repository.CraftingTx, error) {
	m.RLock()
	defer m.RUnlock()
	if m.beginTxError != nil {
		return nil, m.beginTxError
	}
	return &MockTx{repo: m}, nil
}

// ==================== repository.Catalog ====================

func (m *MockRepository) UpsertItemTemplate(_ context.Context, tmpl domain.ItemTemplate) error {
	m.AddTemplate(tmpl)
	return nil
}

func (m *MockRepository) UpsertRecipe(_ context.Context, recipe domain.Recipe) error {
	m.Lock()
	m.upsertRecipeCalls++
	m.Unlock()
	m.AddRecipe(recipe)
	return nil
}

func (m *MockRepository) GetSyncMetadata(_ context.Context, configName string) (*domain.SyncMetadata, error) {
	m.RLock()
	defer m.RUnlock()
	meta, ok := m.syncMeta[configName]
	if !ok {
		return nil, nil
	}
	cp := *meta
	return &cp, nil
}

func (m *MockRepository) UpsertSyncMetadata(_ context.Context, metadata *domain.SyncMetadata) error {
	m.Lock()
	defer m.Unlock()
	cp := *metadata
	m.syncMeta[metadata.ConfigName] = &cp
	return nil
}

// ==================== MockTx ====================

// MockTx buffers mutations and applies them on commit
type MockTx struct {
	repo    *MockRepository
	actorID string
	locked  *sync.Mutex
	pending []func()
	done    bool
}

func (tx *MockTx) GetInventoryForUpdate(_ context.Context, actorID string) ([]domain.InventoryItem, error) {
	tx.repo.RLock()
	err := tx.repo.getInventoryError
	tx.repo.RUnlock()
	if err != nil {
		return nil, err
	}

	lock := tx.repo.actorLock(actorID)
	lock.Lock()
	tx.locked = lock
	tx.actorID = actorID
	return tx.repo.Inventory(actorID), nil
}

func (tx *MockTx) UpdateItemQuantity(_ context.Context, itemID string, quantity int) error {
	actorID := tx.actorID
	tx.pending = append(tx.pending, func() {
		item, ok := tx.repo.items[actorID][itemID]
		if !ok {
			return
		}
		item.Quantity = quantity
		tx.repo.items[actorID][itemID] = item
	})
	return nil
}

func (tx *MockTx) DeleteItem(_ context.Context, itemID string) error {
	actorID := tx.actorID
	tx.pending = append(tx.pending, func() {
		delete(tx.repo.items[actorID], itemID)
	})
	return nil
}

func (tx *MockTx) CreateItem(_ context.Context, item domain.InventoryItem) error {
	tx.repo.RLock()
	err := tx.repo.createItemError
	tx.repo.RUnlock()
	if err != nil {
		return err
	}
	item.Identifier = nil
	tx.pending = append(tx.pending, func() {
		if tx.repo.items[item.ActorID] == nil {
			tx.repo.items[item.ActorID] = make(map[string]domain.InventoryItem)
		}
		tx.repo.items[item.ActorID][item.ID] = item
	})
	return nil
}

func (tx *MockTx) Commit(_ context.Context) error {
	if tx.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	defer tx.finish()

	tx.repo.Lock()
	defer tx.repo.Unlock()
	if tx.repo.commitError != nil {
		return tx.repo.commitError
	}
	for _, op := range tx.pending {
		op()
	}
	return nil
}

func (tx *MockTx) Rollback(_ context.Context) error {
	if tx.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	tx.finish()
	return nil
}

func (tx *MockTx) finish() {
	tx.done = true
	tx.pending = nil
	if tx.locked != nil {
		tx.locked.Unlock()
		tx.locked = nil
	}
}

// ==================== Fixtures ====================

// recordingBus captures published events
type recordingBus struct {
	mu     sync.Mutex
	events []event.Event
}

func (b *recordingBus) Publish(_ context.Context, evt event.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evt)
	return nil
}

func (b *recordingBus) Subscribe(event.Type, event.Handler) {}

func (b *recordingBus) Types() []event.Type {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]event.Type, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Type)
	}
	return out
}

func testCodec() *identifier.Codec {
	return identifier.NewCodec(identifier.DefaultSchema())
}

func intPtr(v int) *int { return &v }

// resourceItem builds an inventory item with a parsed identifier
func resourceItem(id, actorID string, typ domain.ResourceType, subtype, part string, qty int, grade *int) domain.InventoryItem {
	desc := &domain.ResourceDescriptor{Type: typ, Subtype: subtype, Part: part, Grade: grade}
	item := domain.InventoryItem{
		ID:       id,
		ActorID:  actorID,
		Name:     id,
		ItemType: domain.ItemTypeLoot,
		Quantity: qty,
		Resource: desc,
	}
	parsed, err := testCodec().FromDescriptor(desc)
	if err == nil {
		item.Identifier = parsed
	}
	return item
}

func mustParse(raw string) domain.ResourceIdentifier {
	id, err := testCodec().Parse(raw, true)
	if err != nil {
		panic(err)
	}
	return id
}

const (
	testActor = "actor-1"
	testNPC   = "npc-1"
)

// newTestService seeds a character, an npc, templates and recipes
func newTestService() (*service, *MockRepository, *recordingBus) {
	repo := NewMockRepository()
	repo.AddActor(testActor, domain.ActorTypeCharacter)
	repo.AddActor(testNPC, domain.ActorTypeNPC)

	repo.AddTemplate(domain.ItemTemplate{
		UUID:        "tmpl-blade",
		Name:        "Flame Tongue",
		Description: "<p>A burning blade.</p>",
		ItemType:    domain.ItemTypeWeapon,
		Rarity:      domain.RarityRare,
		Stats: domain.StatBlock{
			Damage: []domain.DamagePart{{Formula: "2d6", DamageType: "fire"}},
			SaveDC: intPtr(13),
			Area:   &domain.Measure{Value: 10, Units: "ft", Shape: "cone"},
		},
	})
	repo.AddTemplate(domain.ItemTemplate{UUID: "tmpl-stew", Name: "Hearty Stew", ItemType: domain.ItemTypeConsumable})
	repo.AddTemplate(domain.ItemTemplate{UUID: "tmpl-charm", Name: "Bone Charm", ItemType: domain.ItemTypeLoot})
	repo.AddTemplate(domain.ItemTemplate{UUID: "tmpl-spell", Name: "Spell", ItemType: domain.ItemType("spell")})

	repo.AddRecipe(domain.Recipe{
		ID: "recipe-charm", Name: "Bone Charm", RecipeType: domain.RecipeTypeMonster, IsBasic: true,
		Target:     domain.RecipeTarget{UUID: "tmpl-charm", Quantity: 2},
		Components: []domain.RecipeComponent{{Identifier: "monster.*.eye", Quantity: 2}},
	})
	repo.AddRecipe(domain.Recipe{
		ID: "recipe-stew", Name: "Hearty Stew", RecipeType: domain.RecipeTypeCooking,
		Target: domain.RecipeTarget{UUID: "tmpl-stew", Quantity: 3},
		Components: []domain.RecipeComponent{
			{Identifier: "monster.beast.heart", Quantity: 1},
			{Identifier: "monster.beast.*", Quantity: 1},
		},
	})
	repo.AddRecipe(domain.Recipe{
		ID: "recipe-spirit", Name: "Blade Spirit", RecipeType: domain.RecipeTypeSpirit,
		Target: domain.RecipeTarget{UUID: "tmpl-blade", Quantity: 5},
		Components: []domain.RecipeComponent{
			{Identifier: "essence.*", Quantity: 1},
			{Identifier: "gem.ruby", Quantity: 1},
		},
	})
	repo.AddRecipe(domain.Recipe{
		ID: "recipe-broken", Name: "Broken", RecipeType: domain.RecipeTypeMonster, IsBasic: true,
		Target:     domain.RecipeTarget{UUID: "tmpl-charm"},
		Components: []domain.RecipeComponent{{Identifier: "monster.robot.gear"}},
	})
	repo.AddRecipe(domain.Recipe{
		ID: "recipe-bad-target", Name: "Bad Target", RecipeType: domain.RecipeTypeMonster, IsBasic: true,
		Target:     domain.RecipeTarget{UUID: "tmpl-spell"},
		Components: []domain.RecipeComponent{{Identifier: "monster.*.eye"}},
	})

	bus := &recordingBus{}
	svc := NewService(repo, testCodec(), concurrency.NewLockManager(), bus, Config{}).(*service)
	return svc, repo, bus
}
