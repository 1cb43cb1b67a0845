package persistence

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/flowgate/flowgate/modules/approvals/domain/aggregates/request"
)

// InmemRequestRepository keeps the collection newest-first: Create
// prepends, Update replaces in place. The mutex serializes every access
// so at most one mutation is in flight at a time.
type InmemRequestRepository struct {
	mu       sync.RWMutex
	requests []request.Request
	byID     map[uuid.UUID]int
}

func NewInmemRequestRepository() *InmemRequestRepository {
	return &InmemRequestRepository{
		byID: make(map[uuid.UUID]int),
	}
}

func (r *InmemRequestRepository) GetByID(_ context.Context, id uuid.UUID) (request.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, found := r.byID[id]
	if !found {
		return nil, request.ErrRequestNotFound
	}
	return r.requests[idx], nil
}

func (r *InmemRequestRepository) All(_ context.Context) ([]request.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.requests), nil
}

func (r *InmemRequestRepository) Find(_ context.Context, params *request.FindParams) ([]request.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if params == nil {
		return slices.Clone(r.requests), nil
	}
	out := make([]request.Request, 0, len(r.requests))
	for _, req := range r.requests {
		if len(params.Statuses) > 0 && !slices.Contains(params.Statuses, req.Status()) {
			continue
		}
		if len(params.Types) > 0 && !slices.Contains(params.Types, req.Type()) {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (r *InmemRequestRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.requests)), nil
}

func (r *InmemRequestRepository) Create(_ context.Context, req request.Request) (request.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append([]request.Request{req}, r.requests...)
	r.reindex()
	return req, nil
}

func (r *InmemRequestRepository) Update(_ context.Context, req request.Request) (request.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, found := r.byID[req.ID()]
	if !found {
		return nil, request.ErrRequestNotFound
	}
	r.requests[idx] = req
	return req, nil
}

func (r *InmemRequestRepository) reindex() {
	for i, req := range r.requests {
		r.byID[req.ID()] = i
	}
}
