package service

import (
	"context"
	"errors"

	"github.com/tourdesh/tourdesh-api/internal/data"
	"github.com/tourdesh/tourdesh-api/internal/domain/model"
	apperrors "github.com/tourdesh/tourdesh-api/internal/errors"
)

// PackageStore is the view of the package collection the package
// service needs. data.PackageRepo satisfies it.
type PackageStore interface {
	List(ctx context.Context) ([]model.TourPackage, error)
	FindByID(ctx context.Context, id string) (model.TourPackage, error)
	Create(ctx context.Context, pkg model.TourPackage) (model.TourPackage, error)
}

// PackageService manages the tour package catalog.
type PackageService struct {
	packages PackageStore
}

// NewPackageService constructs a new PackageService.
func NewPackageService(packages PackageStore) *PackageService {
	return &PackageService{packages: packages}
}

// List returns all packages in the catalog.
func (s *PackageService) List(ctx context.Context) ([]model.TourPackage, error) {
	pkgs, err := s.packages.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "list packages")
	}
	return pkgs, nil
}

// Get fetches a single package by ID.
func (s *PackageService) Get(ctx context.Context, id string) (model.TourPackage, error) {
	pkg, err := s.packages.FindByID(ctx, id)
	if err != nil {
		return model.TourPackage{}, mapPackageStoreError(err)
	}
	return pkg, nil
}

// Create adds a package to the catalog. Admin-gated at the HTTP layer.
func (s *PackageService) Create(ctx context.Context, pkg model.TourPackage) (model.TourPackage, error) {
	if pkg.Title == "" {
		return model.TourPackage{}, apperrors.ValidationField("title", "title is required")
	}
	if pkg.Price <= 0 {
		return model.TourPackage{}, apperrors.ValidationField("price", "price must be positive")
	}

	created, err := s.packages.Create(ctx, pkg)
	if err != nil {
		return model.TourPackage{}, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "create package")
	}
	return created, nil
}

func mapPackageStoreError(err error) error {
	switch {
	case errors.Is(err, data.ErrPackageNotFound):
		return apperrors.NotFound("package not found")
	case errors.Is(err, data.ErrInvalidID):
		return apperrors.ValidationField("id", "invalid package id")
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "package store")
	}
}
