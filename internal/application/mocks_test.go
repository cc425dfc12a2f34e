package application

import (
	"context"
	"strings"
	"sync"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/model"
	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/port/driven"
)

// --- Mock implementations shared across application tests ---

type mockToolStore struct {
	tools []model.Tool
	err   error
}

func (m *mockToolStore) Get(_ context.Context, id int64) (*model.Tool, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, t := range m.tools {
		if t.ID == id {
			tool := t
			return &tool, nil
		}
	}
	return nil, driven.ErrToolNotFound
}

func (m *mockToolStore) List(_ context.Context) ([]model.Tool, error) {
	return m.tools, m.err
}

func (m *mockToolStore) Add(_ context.Context, tool model.Tool) (int64, error) {
	if tool.ID == 0 {
		for _, t := range m.tools {
			if t.ID >= tool.ID {
				tool.ID = t.ID + 1
			}
		}
		if tool.ID == 0 {
			tool.ID = 1
		}
	}
	m.tools = append(m.tools, tool)
	return tool.ID, m.err
}

func (m *mockToolStore) SetStatus(_ context.Context, id int64, status model.ToolStatus) error {
	for i := range m.tools {
		if m.tools[i].ID == id {
			m.tools[i].Status = status
			return nil
		}
	}
	return driven.ErrToolNotFound
}

// slowToolStore blocks until the context is done, simulating a stalled
// remote registry.
type slowToolStore struct{}

func (s *slowToolStore) Get(ctx context.Context, _ int64) (*model.Tool, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (s *slowToolStore) List(ctx context.Context) ([]model.Tool, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (s *slowToolStore) Add(_ context.Context, _ model.Tool) (int64, error) { return 0, nil }

func (s *slowToolStore) SetStatus(_ context.Context, _ int64, _ model.ToolStatus) error {
	return nil
}

type favoriteEdge struct {
	userID string
	toolID int64
}

type mockFavoriteStore struct {
	mu    sync.Mutex
	edges []favoriteEdge // insertion order
	err   error
}

func (m *mockFavoriteStore) IsFavorite(_ context.Context, userID string, toolID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	for _, e := range m.edges {
		if e.userID == userID && e.toolID == toolID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockFavoriteStore) Add(_ context.Context, userID string, toolID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.edges = append(m.edges, favoriteEdge{userID: userID, toolID: toolID})
	return nil
}

func (m *mockFavoriteStore) Remove(_ context.Context, userID string, toolID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	kept := m.edges[:0]
	for _, e := range m.edges {
		if e.userID != userID || e.toolID != toolID {
			kept = append(kept, e)
		}
	}
	m.edges = kept
	return nil
}

func (m *mockFavoriteStore) ListByUser(_ context.Context, userID string) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var ids []int64
	for _, e := range m.edges {
		if e.userID == userID {
			ids = append(ids, e.toolID)
		}
	}
	return ids, nil
}

type mockSecretStore struct {
	bundles map[int64]model.CredentialBundle
	err     error
}

func (m *mockSecretStore) GetBundle(_ context.Context, toolID int64) (*model.CredentialBundle, error) {
	if m.err != nil {
		return nil, m.err
	}
	bundle, ok := m.bundles[toolID]
	if !ok {
		return nil, driven.ErrBundleNotFound
	}
	return &bundle, nil
}

func (m *mockSecretStore) PutBundle(_ context.Context, bundle model.CredentialBundle) error {
	if m.bundles == nil {
		m.bundles = make(map[int64]model.CredentialBundle)
	}
	m.bundles[bundle.ToolID] = bundle
	return m.err
}

type mockDisclosureLog struct {
	events    []model.DisclosureEvent
	appendErr error
}

func (m *mockDisclosureLog) Append(_ context.Context, event model.DisclosureEvent) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockDisclosureLog) ListByUser(_ context.Context, userID string) ([]model.DisclosureEvent, error) {
	var out []model.DisclosureEvent
	for i := len(m.events) - 1; i >= 0; i-- {
		if m.events[i].UserID == userID {
			out = append(out, m.events[i])
		}
	}
	return out, nil
}

func (m *mockDisclosureLog) CountByTool(_ context.Context, toolID int64) (int64, error) {
	var n int64
	for _, e := range m.events {
		if e.ToolID == toolID {
			n++
		}
	}
	return n, nil
}

type mockMemberStore struct {
	members []model.Member
	err     error
}

func (m *mockMemberStore) GetByEmail(_ context.Context, email string) (*model.Member, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, mem := range m.members {
		if strings.EqualFold(mem.Email, email) {
			member := mem
			return &member, nil
		}
	}
	return nil, driven.ErrMemberNotFound
}

func (m *mockMemberStore) GetByID(_ context.Context, id string) (*model.Member, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, mem := range m.members {
		if mem.ID == id {
			member := mem
			return &member, nil
		}
	}
	return nil, driven.ErrMemberNotFound
}

func (m *mockMemberStore) Add(_ context.Context, member model.Member) error {
	if m.err != nil {
		return m.err
	}
	m.members = append(m.members, member)
	return nil
}
