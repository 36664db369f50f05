package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-ferre-inventory/internal/model"
	"go-ferre-inventory/internal/repository"
	"go-ferre-inventory/pkg/storage"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordingPublisher) Publish(e Event) {
	p.mu.Lock()
	p.events = append(p.events, e)
	p.mu.Unlock()
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Action
	}
	return out
}

func newTestRepo(t *testing.T) *repository.Repository {
	t.Helper()
	return repository.New(storage.NewMemoryStore(), repository.DefaultKeys("test_"))
}

func seedProducts(t *testing.T, repo *repository.Repository, products ...model.Product) {
	t.Helper()
	require.NoError(t, repo.SaveProducts(context.Background(), products))
}

func draft(code, name, price, qty, min string) model.ProductDraft {
	return model.ProductDraft{
		Code:     model.FormValue(code),
		Name:     model.FormValue(name),
		Price:    model.FormValue(price),
		Quantity: model.FormValue(qty),
		MinStock: model.FormValue(min),
	}
}

func newCatalog(t *testing.T, repo *repository.Repository, pub Publisher) CatalogService {
	return NewCatalogService(repo, pub, zaptest.NewLogger(t))
}
