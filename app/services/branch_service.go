package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johssalinas/backend-accenture/app/domain"
)

type AddBranchInput struct {
	FranchiseID uuid.UUID
	Name        string
}

type BranchService struct {
	franchises domain.FranchiseRepository
	branches   domain.BranchRepository
	log        *zap.Logger
}

func NewBranchService(franchises domain.FranchiseRepository, branches domain.BranchRepository, log *zap.Logger) *BranchService {
	return &BranchService{franchises: franchises, branches: branches, log: named(log, "branch")}
}

// Add attaches a new branch to a franchise. The name is checked against
// storage and against the loaded aggregate.
func (s *BranchService) Add(ctx context.Context, in AddBranchInput) (_ *domain.Branch, err error) {
	defer finish(s.log, "branch.add", &err)
	s.log.Info("adding branch", zap.Stringer("franchise_id", in.FranchiseID), zap.String("name", in.Name))

	f, err := s.franchises.FindByID(ctx, in.FranchiseID)
	if err != nil {
		return nil, err
	}
	b, err := domain.NewBranch(in.Name)
	if err != nil {
		return nil, err
	}
	taken, err := s.branches.ExistsByNameAndFranchiseID(ctx, b.Name(), f.ID())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewDuplicateNameError(domain.EntityBranch, b.Name(), domain.EntityFranchise)
	}
	if err := f.AddBranch(b); err != nil {
		return nil, err
	}
	return s.branches.Save(ctx, b)
}

func (s *BranchService) Get(ctx context.Context, id uuid.UUID) (_ *domain.Branch, err error) {
	defer finish(s.log, "branch.get", &err)
	return s.branches.FindByID(ctx, id)
}

func (s *BranchService) ListByFranchise(ctx context.Context, franchiseID uuid.UUID) (_ []*domain.Branch, err error) {
	defer finish(s.log, "branch.list", &err)

	ok, err := s.franchises.ExistsByID(ctx, franchiseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewNotFoundError(domain.EntityFranchise, franchiseID)
	}
	return s.branches.FindByFranchiseID(ctx, franchiseID)
}

// UpdateName renames a branch, keeping names unique within its franchise.
func (s *BranchService) UpdateName(ctx context.Context, id uuid.UUID, name string) (_ *domain.Branch, err error) {
	defer finish(s.log, "branch.update_name", &err)
	s.log.Info("renaming branch", zap.Stringer("id", id), zap.String("name", name))

	f, b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	old := b.Name()
	if _, err := f.RenameBranch(id, name); err != nil {
		return nil, err
	}
	if b.Name() != old {
		taken, err := s.branches.ExistsByNameAndFranchiseID(ctx, b.Name(), f.ID())
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.NewDuplicateNameError(domain.EntityBranch, b.Name(), domain.EntityFranchise)
		}
	}
	return s.branches.Save(ctx, b)
}

// Delete removes a branch and its products.
func (s *BranchService) Delete(ctx context.Context, id uuid.UUID) (err error) {
	defer finish(s.log, "branch.delete", &err)
	s.log.Info("deleting branch", zap.Stringer("id", id))

	f, _, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	f.RemoveBranch(id)
	return s.branches.DeleteByID(ctx, id)
}

// load returns the owning franchise and the branch as held by it.
func (s *BranchService) load(ctx context.Context, id uuid.UUID) (*domain.Franchise, *domain.Branch, error) {
	stored, err := s.branches.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	f, err := s.franchises.FindByID(ctx, stored.FranchiseID())
	if err != nil {
		return nil, nil, err
	}
	b, ok := f.FindBranchByID(id)
	if !ok {
		return nil, nil, domain.NewNotFoundError(domain.EntityBranch, id)
	}
	return f, b, nil
}
