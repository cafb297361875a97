package firestore

import (
	"context"
	"fmt"

	fs "cloud.google.com/go/firestore"

	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/repository"
)

type clientRepository struct {
	client *fs.Client
}

func NewClientRepository(client *fs.Client) repository.ClientRepository {
	return &clientRepository{client: client}
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	snap, err := r.client.Collection(collClients).Doc(id).Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get client %s: %w", id, err)
	}
	var c domain.Client
	if err := snap.DataTo(&c); err != nil {
		return nil, fmt.Errorf("decode client %s: %w", id, err)
	}
	c.ID = snap.Ref.ID
	return &c, nil
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	if _, err := r.client.Collection(collClients).Doc(c.ID).Set(ctx, c); err != nil {
		return fmt.Errorf("create client %s: %w", c.ID, err)
	}
	return nil
}
