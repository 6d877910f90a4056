package service

import (
	"context"
	"strings"

	"medlex/internal/cache"
	"medlex/internal/models"
	"medlex/internal/policy"
	"medlex/internal/repository"
)

// DictionaryService routes dictionary mutations: callers whose tier may apply
// directly write through to the canonical store, everyone else gets queued as
// a pending request for reviewer action.
type DictionaryService struct {
	entryRepo   repository.EntryRepository
	requestRepo repository.EntryRequestRepository
}

// SubmitChangeInput carries an add-or-update submission.
type SubmitChangeInput struct {
	Term         string
	Definition   string
	Phonetics    string
	PartOfSpeech string
}

// SubmitChangeResult reports how a submission was routed.
type SubmitChangeResult struct {
	Applied bool                       `json:"applied"`
	Entry   *models.Entry              `json:"entry,omitempty"`
	Request *models.EntryUpdateRequest `json:"request,omitempty"`
}

// SubmitDeleteResult reports how a delete submission was routed.
type SubmitDeleteResult struct {
	Applied bool   `json:"applied"`
	Message string `json:"message"`
}

// NewDictionaryService returns a new DictionaryService.
func NewDictionaryService(entryRepo repository.EntryRepository, requestRepo repository.EntryRequestRepository) *DictionaryService {
	return &DictionaryService{entryRepo: entryRepo, requestRepo: requestRepo}
}

// SubmitChange applies or queues an add-or-update of a dictionary entry.
// Queued submissions are stored unconditionally; only delete requests are
// deduplicated by term.
func (s *DictionaryService) SubmitChange(ctx context.Context, callerID uint, role models.Role, in SubmitChangeInput) (*SubmitChangeResult, error) {
	in.Term = strings.TrimSpace(in.Term)
	if in.Term == "" || strings.TrimSpace(in.Definition) == "" {
		return nil, models.NewValidationError("Word and definition are required")
	}
	if !policy.Valid(role) {
		return nil, models.NewValidationError("Invalid role")
	}

	if policy.CanApplyDirectly(role) {
		entry, err := s.entryRepo.Upsert(ctx, &models.Entry{
			Term:         in.Term,
			Definition:   in.Definition,
			Phonetics:    in.Phonetics,
			PartOfSpeech: in.PartOfSpeech,
		})
		if err != nil {
			return nil, err
		}
		cache.InvalidateEntry(ctx, in.Term)
		return &SubmitChangeResult{Applied: true, Entry: entry}, nil
	}

	req := &models.EntryUpdateRequest{
		Term:         in.Term,
		Definition:   in.Definition,
		Phonetics:    in.Phonetics,
		PartOfSpeech: in.PartOfSpeech,
		UserID:       &callerID,
	}
	// Back-reference the canonical entry when the term already exists so
	// reviewers see the current snapshot next to the proposed one. An absent
	// term just means no back-reference; any other store error propagates.
	entry, err := s.entryRepo.GetByTerm(ctx, in.Term)
	switch {
	case err == nil:
		req.EntryID = &entry.ID
	case !models.IsNotFound(err):
		return nil, err
	}

	if err := s.requestRepo.CreateUpdateRequest(ctx, req); err != nil {
		return nil, err
	}
	return &SubmitChangeResult{Applied: false, Request: req}, nil
}

// SubmitDelete applies or queues deletion of a dictionary entry. A direct
// apply also purges every pending delete request for the term; a queued
// submission is idempotent per term.
func (s *DictionaryService) SubmitDelete(ctx context.Context, callerID uint, role models.Role, term string) (*SubmitDeleteResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, models.NewValidationError("Word is required")
	}
	if !policy.Valid(role) {
		return nil, models.NewValidationError("Invalid role")
	}

	entry, err := s.entryRepo.GetByTerm(ctx, term)
	if err != nil {
		return nil, err
	}

	if policy.CanApplyDirectly(role) {
		if err := s.entryRepo.DeleteByTerm(ctx, term); err != nil {
			return nil, err
		}
		cache.InvalidateEntry(ctx, term)
		return &SubmitDeleteResult{Applied: true, Message: "Word deleted"}, nil
	}

	created, err := s.requestRepo.CreateDeleteRequestIfAbsent(ctx, &models.EntryDeleteRequest{
		Term:    entry.Term,
		UserID:  &callerID,
		EntryID: &entry.ID,
	})
	if err != nil {
		return nil, err
	}
	if !created {
		return &SubmitDeleteResult{Applied: false, Message: "Delete request for this word already exists"}, nil
	}
	return &SubmitDeleteResult{Applied: false, Message: "Delete request submitted successfully"}, nil
}

// Lookup returns the canonical entry for a term, cache-aside.
func (s *DictionaryService) Lookup(ctx context.Context, term string) (*models.Entry, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, models.NewValidationError("Word is required")
	}

	var entry models.Entry
	err := cache.Aside(ctx, cache.EntryKey(term), &entry, cache.EntryTTL, func() error {
		found, err := s.entryRepo.GetByTerm(ctx, term)
		if err != nil {
			return err
		}
		entry = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// SearchPrefix returns terms starting with prefix, case-insensitively.
func (s *DictionaryService) SearchPrefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.entryRepo.SearchPrefix(ctx, prefix, limit)
}

// ListUpdateRequests returns pending add-or-update requests with requester and
// entry snapshots resolved where possible.
func (s *DictionaryService) ListUpdateRequests(ctx context.Context, limit, skip int) ([]models.EntryUpdateRequest, error) {
	return s.requestRepo.ListUpdateRequests(ctx, limit, skip)
}

// ListDeleteRequests returns pending delete requests with requester and entry
// snapshots resolved where possible.
func (s *DictionaryService) ListDeleteRequests(ctx context.Context, limit, skip int) ([]models.EntryDeleteRequest, error) {
	return s.requestRepo.ListDeleteRequests(ctx, limit, skip)
}
