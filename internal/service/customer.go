package service

import (
	"context"
	"io"

	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/repository"
	"fleetdesk-backend/internal/storage"
)

const (
	DocumentKindPassport = "passport"
	DocumentKindLicence  = "licence"
)

type customerService struct {
	customerRepo repository.CustomerRepository
	documents    storage.DocumentStore
}

func NewCustomerService(customerRepo repository.CustomerRepository, documents storage.DocumentStore) CustomerService {
	return &customerService{customerRepo: customerRepo, documents: documents}
}

func (s *customerService) AddCustomer(ctx context.Context, c *domain.Customer) error {
	if c.Name == "" {
		return domain.NewValidationError("name", "name is required")
	}
	return s.customerRepo.Create(ctx, c)
}

func (s *customerService) GetCustomer(ctx context.Context, id int32) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) UpdateCustomer(ctx context.Context, c *domain.Customer) error {
	if c.Name == "" {
		return domain.NewValidationError("name", "name is required")
	}
	existing, err := s.customerRepo.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	// Document filenames change only through AttachDocument.
	c.PassportFile = existing.PassportFile
	c.LicenceFile = existing.LicenceFile
	return s.customerRepo.Update(ctx, c)
}

func (s *customerService) DeleteCustomer(ctx context.Context, id int32) error {
	return s.customerRepo.Delete(ctx, id)
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customerRepo.List(ctx)
}

// AttachDocument stores a passport or licence scan and records its generated
// filename on the customer, replacing any previous document of that kind.
func (s *customerService) AttachDocument(ctx context.Context, customerID int32, kind, filename string, content io.Reader) (*domain.Customer, error) {
	if kind != DocumentKindPassport && kind != DocumentKindLicence {
		return nil, domain.NewValidationError("kind", "must be %q or %q", DocumentKindPassport, DocumentKindLicence)
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	stored, err := s.documents.Save(kind, filename, content)
	if err != nil {
		return nil, err
	}

	switch kind {
	case DocumentKindPassport:
		customer.PassportFile = stored
	case DocumentKindLicence:
		customer.LicenceFile = stored
	}
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) OpenDocument(ctx context.Context, customerID int32, kind string) (io.ReadCloser, string, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, "", err
	}

	var filename string
	switch kind {
	case DocumentKindPassport:
		filename = customer.PassportFile
	case DocumentKindLicence:
		filename = customer.LicenceFile
	default:
		return nil, "", domain.NewValidationError("kind", "must be %q or %q", DocumentKindPassport, DocumentKindLicence)
	}
	if filename == "" {
		return nil, "", domain.ErrNotFound
	}

	rc, err := s.documents.Open(filename)
	if err != nil {
		return nil, "", err
	}
	return rc, filename, nil
}
