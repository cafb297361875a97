// Package firestore implements the repository interfaces on Cloud Firestore.
// Multi-document mutations (balance + audit record, order + mirror) run in
// Firestore transactions, which retry on contention.
package firestore

import (
	"context"
	"fmt"

	fs "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/kofi-dx/NoxManage/internal/repository"
)

const (
	collStores      = "stores"
	collUsers       = "users"
	collClients     = "clients"
	collOrders      = "orders"
	collWithdrawals = "withdrawals"
)

// Store aggregates all Firestore-backed repositories over one client.
type Store struct {
	StoreRepository  repository.StoreRepository
	UserRepository   repository.UserRepository
	ClientRepository repository.ClientRepository
	OrderRepository  repository.OrderRepository
	LedgerRepository repository.LedgerRepository

	client *fs.Client
}

// NewClient connects to Firestore for the given project. credentialsFile may
// be empty, in which case application-default credentials are used.
func NewClient(ctx context.Context, projectID, credentialsFile string) (*fs.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firestore client: %w", err)
	}
	return client, nil
}

func NewStore(client *fs.Client) *Store {
	return &Store{
		StoreRepository:  NewStoreRepository(client),
		UserRepository:   NewUserRepository(client),
		ClientRepository: NewClientRepository(client),
		OrderRepository:  NewOrderRepository(client),
		LedgerRepository: NewLedgerRepository(client),
		client:           client,
	}
}

// Close releases the underlying Firestore client.
func (s *Store) Close() error {
	return s.client.Close()
}
