package service

import (
	"context"

	"github.com/lavanderia/backend/internal/dto"
	"github.com/lavanderia/backend/internal/model"
	"github.com/lavanderia/backend/internal/repository"
)

type ClientService struct {
	repo *repository.ClientRepository
}

func NewClientService(repo *repository.ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

func (s *ClientService) CreateClient(ctx context.Context, req *dto.ClientRequest) (*model.Client, error) {
	client := &model.Client{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Notes:   req.Notes,
	}
	if err := s.repo.Insert(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) GetClient(ctx context.Context, id string) (*model.Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ClientService) ListClients(ctx context.Context, search string, limit, offset int) ([]model.Client, int, error) {
	return s.repo.List(ctx, search, limit, offset)
}

func (s *ClientService) UpdateClient(ctx context.Context, id string, req *dto.ClientRequest) (*model.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	client.Name = req.Name
	client.Phone = req.Phone
	client.Email = req.Email
	client.Address = req.Address
	client.Notes = req.Notes

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) DeleteClient(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
